// ABOUTME: Uplink ingestion - parses health-log front matter into partner state
// ABOUTME: Finds the newest uplink-*.md and applies its fields over the prior state
package core

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harper/binary-home/internal/models"
)

// UplinkReport is the front-matter payload of one health log. Zero values
// mean "not reported": the original client used truthy fallbacks, so a
// zero field keeps the previous state's value when applied.
type UplinkReport struct {
	Date         string   `yaml:"date"`
	Time         string   `yaml:"time"`
	Spoons       int      `yaml:"spoons"`
	Pain         int      `yaml:"pain"`
	PainLocation string   `yaml:"painLocation"`
	Fog          int      `yaml:"fog"`
	Fatigue      int      `yaml:"fatigue"`
	Nausea       int      `yaml:"nausea"`
	Mood         string   `yaml:"mood"`
	Need         string   `yaml:"need"`
	Location     string   `yaml:"location"`
	Flare        string   `yaml:"flare"`
	Tags         []string `yaml:"tags"`
}

var frontMatterFence = []byte("---")

// ParseFrontMatter extracts and decodes the `--- ... ---` block at the top
// of an uplink file. Files without a front-matter block are an error.
func ParseFrontMatter(data []byte) (*UplinkReport, error) {
	trimmed := bytes.TrimLeft(data, "\uFEFF\r\n ")
	if !bytes.HasPrefix(trimmed, frontMatterFence) {
		return nil, fmt.Errorf("no front matter block found")
	}
	rest := trimmed[len(frontMatterFence):]
	end := bytes.Index(rest, frontMatterFence)
	if end < 0 {
		return nil, fmt.Errorf("unterminated front matter block")
	}

	var report UplinkReport
	if err := yaml.Unmarshal(rest[:end], &report); err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}
	return &report, nil
}

// Apply folds the report over the previous partner state. Unreported
// fields retain the previous value (or the seed default); heart rate and
// body battery always carry forward since uplinks never include them.
func (r *UplinkReport) Apply(prev models.PartnerState) models.PartnerState {
	next := prev

	if r.Spoons != 0 {
		next.Spoons = r.Spoons
	} else if prev.Spoons == 0 {
		next.Spoons = 3
	}
	if r.Pain != 0 {
		next.PainLevel = r.Pain
	} else if prev.PainLevel == 0 {
		next.PainLevel = 5
	}
	next.PainLocation = r.PainLocation
	if r.Fog != 0 {
		next.FogLevel = r.Fog
	} else if prev.FogLevel == 0 {
		next.FogLevel = 4
	}
	if r.Fatigue != 0 {
		next.Fatigue = r.Fatigue
	} else if prev.Fatigue == 0 {
		next.Fatigue = 5
	}
	next.Nausea = r.Nausea

	if prev.HeartRate == 0 {
		next.HeartRate = 72
	}
	if prev.BodyBattery == 0 {
		next.BodyBattery = 45
	}

	if r.Mood != "" {
		next.Status = strings.ToLower(r.Mood)
	} else if prev.Status == "" {
		next.Status = "okay"
	}
	if r.Need != "" {
		next.Note = r.Need
	}
	next.Location = r.Location
	next.Flare = r.Flare
	if len(r.Tags) > 0 {
		next.Tags = r.Tags
	}
	next.LastUplink = strings.TrimSpace(r.Date + " " + r.Time)

	return next
}

// FindLatestUplink returns the newest uplink file in dir by name order
// (names embed the date, so lexical sort is chronological). Returns ""
// when the directory is missing or holds no uplinks.
func FindLatestUplink(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading uplink directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, "uplink-") && strings.HasSuffix(name, ".md") {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return filepath.Join(dir, names[0]), nil
}

// LoadLatestUplink finds and parses the newest uplink file. Returns nil
// (no error) when no uplink file exists.
func LoadLatestUplink(dir string) (*UplinkReport, error) {
	path, err := FindLatestUplink(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading uplink file: %w", err)
	}
	return ParseFrontMatter(data)
}
