// ABOUTME: Root CLI command with global flags and service wiring
// ABOUTME: Opens the ledger database and state store for subcommands
package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/binary-home/internal/config"
	"github.com/harper/binary-home/internal/core"
	"github.com/harper/binary-home/internal/statestore"
	"github.com/harper/binary-home/internal/storage/sqlite"
	"github.com/harper/binary-home/internal/sync"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██████╗ ██╗███╗   ██╗ █████╗ ██████╗ ██╗   ██╗
██╔══██╗██║████╗  ██║██╔══██╗██╔══██╗╚██╗ ██╔╝
██████╔╝██║██╔██╗ ██║███████║██████╔╝ ╚████╔╝
██╔══██╗██║██║╚██╗██║██╔══██║██╔══██╗  ╚██╔╝
██████╔╝██║██║ ╚████║██║  ██║██║  ██║   ██║
╚═════╝ ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝
██╗  ██╗ ██████╗ ███╗   ███╗███████╗
██║  ██║██╔═══██╗████╗ ████║██╔════╝
███████║██║   ██║██╔████╔██║█████╗
██╔══██║██║   ██║██║╚██╔╝██║██╔══╝
██║  ██║╚██████╔╝██║ ╚═╝ ██║███████╗
╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝╚══════╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "home",
		Short: "Binary Home - shared emotional ledger for two stars",
		Long: banner + `
Binary Home keeps a shared emotional ledger for Alex and Fox:
observations tagged against the four pillars, an emergent type
snapshot, notes between stars, the Love-O-Meter, and Fox's
health uplinks.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewObserveCmd())
	cmd.AddCommand(NewEmotionCmd())
	cmd.AddCommand(NewSnapshotCmd())
	cmd.AddCommand(NewRecentCmd())
	cmd.AddCommand(NewNoteCmd())
	cmd.AddCommand(NewLoveCmd())
	cmd.AddCommand(NewPartnerCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// services bundles everything a subcommand may need
type services struct {
	cfg        *config.Config
	db         *sqlite.DB
	ledger     *core.Ledger
	aggregator *core.Aggregator
	emotions   *sqlite.EmotionStore
	states     statestore.Store
	cloud      *sync.Client
}

// openServices loads config and opens the database and state store.
// Callers must Close when done.
func openServices() (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, err
	}

	states, err := openStateStore(cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	svc := &services{
		cfg:        cfg,
		db:         db,
		ledger:     core.NewLedger(db),
		aggregator: core.NewAggregator(db),
		emotions:   sqlite.NewEmotionStore(db),
		states:     states,
	}

	if cfg.CloudURL != "" || cfg.UplinkURL != "" {
		svc.cloud = sync.NewClient(sync.Config{
			BaseURL:   cfg.CloudURL,
			UplinkURL: cfg.UplinkURL,
			APIKey:    cfg.CloudAPIKey,
			Timeout:   cfg.CloudTimeout,
		}, nil)
	}

	return svc, nil
}

// openStateStore picks the configured state backend
func openStateStore(cfg *config.Config) (statestore.Store, error) {
	if cfg.StateBackend == "charm" {
		return statestore.NewCharmStore(&statestore.CharmConfig{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: cfg.AutoSync,
		})
	}

	path := cfg.StatePath
	if path == "" {
		var err error
		path, err = statestore.DefaultStatePath()
		if err != nil {
			return nil, err
		}
	}
	return statestore.NewFileStore(path), nil
}

// Close releases the database and state store
func (s *services) Close() {
	_ = s.states.Close()
	_ = s.db.Close()
}

// now is swappable in tests
var now = time.Now
