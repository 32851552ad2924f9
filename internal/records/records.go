// Package records upgrades stored entry documents to the current record
// shape. Every read path (SQLite rows, JSON files, import documents) goes
// through UpgradeEntry so new fields get their defaults in one place.
package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/models"
)

// CurrentVersion is the record version written by this build.
//
//	1: original shape
//	2: moodScore introduced
const CurrentVersion = 2

// UnknownVersion marks documents that carry no version, such as import
// files.
const UnknownVersion = 0

var (
	ErrMissingID = errors.New("entry record has no id")
	// ErrVersionTooNew is returned for records written by a newer build.
	ErrVersionTooNew = errors.New("entry record version is newer than this build supports")
)

// Step fills in data introduced by one record version. Steps only add what
// is missing, so every step runs on every record whatever its version tag.
type Step struct {
	Version int
	Name    string
	Apply   func(record map[string]any)
}

var steps = []Step{
	{
		Version: 2,
		Name:    "mood-score",
		Apply: func(record map[string]any) {
			if v, ok := record["moodScore"]; !ok || v == nil {
				record["moodScore"] = constants.MoodScoreDefault
			}
		},
	},
}

// Steps returns the registered upgrade steps in application order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// UpgradeMap applies every step to record in place.
func UpgradeMap(record map[string]any) {
	for _, step := range steps {
		step.Apply(record)
	}
	normalize(record)
}

// normalize runs regardless of version.
func normalize(record map[string]any) {
	if v, ok := record["tags"]; !ok || v == nil {
		record["tags"] = []any{}
	}
	content, ok := record["content"].(map[string]any)
	if !ok {
		content = map[string]any{}
		record["content"] = content
	}
	for _, key := range []string{"event", "feeling", "evidence"} {
		if v, ok := content[key]; !ok || v == nil {
			content[key] = ""
		}
	}
}

// UpgradeEntry decodes a stored entry document written at version and
// returns it in the current shape.
func UpgradeEntry(raw []byte, version int) (models.DiaryEntry, error) {
	var record map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&record); err != nil {
		return models.DiaryEntry{}, fmt.Errorf("failed to decode entry record: %w", err)
	}
	if record == nil {
		return models.DiaryEntry{}, fmt.Errorf("entry record is not an object")
	}
	return FromMap(record, version)
}

// FromMap upgrades record and converts it to a DiaryEntry. The version tag
// only guards against records from a newer build.
func FromMap(record map[string]any, version int) (models.DiaryEntry, error) {
	if version > CurrentVersion {
		return models.DiaryEntry{}, fmt.Errorf("%w: %d > %d", ErrVersionTooNew, version, CurrentVersion)
	}
	UpgradeMap(record)

	data, err := json.Marshal(record)
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("failed to re-encode entry record: %w", err)
	}

	var entry models.DiaryEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return models.DiaryEntry{}, fmt.Errorf("failed to decode upgraded entry record: %w", err)
	}
	if entry.ID == "" {
		return models.DiaryEntry{}, ErrMissingID
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	return entry, nil
}

// Encode serializes entry for storage at CurrentVersion.
func Encode(entry models.DiaryEntry) ([]byte, error) {
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	return json.Marshal(entry)
}
