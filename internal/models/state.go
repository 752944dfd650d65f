// ABOUTME: HomeState - the whole-document local state blob
// ABOUTME: Read-modify-write only; no partial updates
package models

// HomeState bundles everything that lives outside the SQLite ledger:
// the Love-O-Meter, the partner state, and the note sequence. It is always
// loaded and saved as one document.
type HomeState struct {
	LoveMeter LoveMeter    `json:"loveOMeter"`
	Partner   PartnerState `json:"foxState"`
	Notes     []Note       `json:"notes"`
}

// DefaultHomeState is the document returned when nothing has been saved yet
func DefaultHomeState() *HomeState {
	return &HomeState{
		Partner: DefaultPartnerState(),
		Notes:   []Note{},
	}
}
