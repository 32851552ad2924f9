package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/models"
	"github.com/julianstephens/worthy/internal/records"
)

// ErrImportFormatInvalid is returned when an import payload is not a
// recognizable export document. Nothing is written in that case.
var ErrImportFormatInvalid = errors.New("import format invalid")

// exportedAtLayout is ISO-8601 in UTC with milliseconds.
const exportedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Document is the portable export of both stores.
type Document struct {
	Version    int                 `json:"version"`
	ExportedAt string              `json:"exportedAt"`
	Entries    []models.DiaryEntry `json:"entries"`
	Settings   models.AppSettings  `json:"settings"`
}

// Encode writes the document as JSON indented by two spaces.
func (d Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", constants.ExportIndent)
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}

// ExportTime parses ExportedAt.
func (d Document) ExportTime() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, d.ExportedAt)
}

// payload is an import document after its shape has been checked.
type payload struct {
	entries  []models.DiaryEntry
	settings *models.AppSettings
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrImportFormatInvalid, fmt.Sprintf(format, args...))
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// parsePayload checks the whole document before anything is applied.
// Missing settings fields take their defaults as of now.
func parsePayload(raw []byte, now time.Time) (payload, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return payload{}, invalid("document is not a JSON object: %v", err)
	}
	if top == nil {
		return payload{}, invalid("document is null")
	}

	var p payload

	if rawEntries, ok := top["entries"]; ok && !isNull(rawEntries) {
		var items []json.RawMessage
		// A non-array entries value is not something we recognize; it is
		// skipped rather than rejected.
		if err := json.Unmarshal(rawEntries, &items); err == nil {
			p.entries = make([]models.DiaryEntry, 0, len(items))
			for i, item := range items {
				entry, err := parseEntry(item)
				if err != nil {
					return payload{}, invalid("entry %d: %v", i, err)
				}
				p.entries = append(p.entries, entry)
			}
		}
	}

	// Like entries, a settings value that is not an object is skipped.
	if rawSettings, ok := top["settings"]; ok && isObject(rawSettings) {
		settings := models.DefaultSettings(now)
		if err := json.Unmarshal(rawSettings, &settings); err != nil {
			return payload{}, invalid("settings: %v", err)
		}
		settings.Normalize()
		p.settings = &settings
	}

	return p, nil
}

func parseEntry(raw json.RawMessage) (models.DiaryEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var record map[string]any
	if err := dec.Decode(&record); err != nil || record == nil {
		return models.DiaryEntry{}, errors.New("not an object")
	}
	if id, _ := record["id"].(string); id == "" {
		return models.DiaryEntry{}, records.ErrMissingID
	}
	return records.FromMap(record, records.UnknownVersion)
}

// DecodeDocument reads a full export document, as written by Encode.
func DecodeDocument(raw []byte) (Document, error) {
	p, err := parsePayload(raw, time.Now())
	if err != nil {
		return Document{}, err
	}
	var header struct {
		Version    int    `json:"version"`
		ExportedAt string `json:"exportedAt"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return Document{}, invalid("header: %v", err)
	}
	doc := Document{
		Version:    header.Version,
		ExportedAt: header.ExportedAt,
		Entries:    p.entries,
	}
	if doc.Entries == nil {
		doc.Entries = []models.DiaryEntry{}
	}
	if p.settings != nil {
		doc.Settings = *p.settings
	}
	return doc, nil
}
