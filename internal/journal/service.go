// Package journal turns user drafts into stored diary entries and answers
// the read-side questions the front ends ask: filtered listings, statistics,
// tags and backup staleness.
package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/worthy/internal/affirmation"
	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/logger"
	"github.com/julianstephens/worthy/internal/models"
	"github.com/julianstephens/worthy/internal/storage"
)

var (
	ErrInvalidEntry  = errors.New("invalid entry")
	ErrEntryNotFound = errors.New("entry not found")
)

type Service struct {
	store    storage.Provider
	selector *affirmation.Selector
	clock    func() time.Time
	newID    func() string
	loc      *time.Location
}

// Option configures a Service.
type Option func(*Service)

func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// WithLocation sets the time zone entry dates are derived in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func NewService(store storage.Provider, selector *affirmation.Selector, opts ...Option) *Service {
	s := &Service{
		store:    store,
		selector: selector,
		clock:    time.Now,
		newID:    uuid.NewString,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.selector == nil {
		s.selector = affirmation.NewSelector()
	}
	return s
}

// Store returns the underlying provider.
func (s *Service) Store() storage.Provider {
	return s.store
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.clock()
}

// Location returns the zone used for entry dates.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Validate checks that a draft can become an entry.
func Validate(draft models.EntryDraft) error {
	if strings.TrimSpace(draft.Content.Event) == "" {
		return fmt.Errorf("%w: event is required", ErrInvalidEntry)
	}
	if strings.TrimSpace(draft.Content.Evidence) == "" {
		return fmt.Errorf("%w: evidence is required", ErrInvalidEntry)
	}
	if !models.ValidMoodScore(draft.MoodScore) {
		return fmt.Errorf("%w: mood score %d outside %d-%d", ErrInvalidEntry, draft.MoodScore, constants.MoodScoreMin, constants.MoodScoreMax)
	}
	return nil
}

// Compose builds the entry a draft becomes, without storing it. The
// affirmation is drawn from the normalized draft.
func (s *Service) Compose(draft models.EntryDraft) (models.DiaryEntry, error) {
	if err := Validate(draft); err != nil {
		return models.DiaryEntry{}, err
	}

	normalized := models.EntryDraft{
		Title: strings.TrimSpace(draft.Title),
		Content: models.EntryContent{
			Event:    strings.TrimSpace(draft.Content.Event),
			Feeling:  strings.TrimSpace(draft.Content.Feeling),
			Evidence: strings.TrimSpace(draft.Content.Evidence),
		},
		Image:     draft.Image,
		Mood:      models.Mood(strings.TrimSpace(string(draft.Mood))),
		MoodScore: draft.MoodScore,
	}
	for _, tag := range draft.Tags {
		normalized.AddTag(tag)
	}
	if normalized.Tags == nil {
		normalized.Tags = []string{}
	}
	if normalized.Title == "" {
		normalized.Title = constants.JournalTitle
	}
	if normalized.Content.Feeling == "" {
		normalized.Content.Feeling = models.DefaultFeeling(normalized.MoodScore)
	}
	if normalized.Mood == "" {
		normalized.Mood = models.MoodFromScore(normalized.MoodScore)
	}

	now := s.clock()
	return models.DiaryEntry{
		ID:         s.newID(),
		Timestamp:  now.UnixMilli(),
		Date:       now.In(s.loc).Format(constants.DateFormat),
		Title:      normalized.Title,
		Content:    normalized.Content,
		Image:      normalized.Image,
		Tags:       normalized.Tags,
		Mood:       normalized.Mood,
		MoodScore:  normalized.MoodScore,
		AIResponse: s.selector.Select(normalized),
	}, nil
}

// Create composes and stores a new entry.
func (s *Service) Create(draft models.EntryDraft) (models.DiaryEntry, error) {
	entry, err := s.Compose(draft)
	if err != nil {
		return models.DiaryEntry{}, err
	}
	if err := s.store.PutEntry(entry); err != nil {
		return models.DiaryEntry{}, err
	}
	logger.Info("Entry created", "id", entry.ID, "mood", entry.Mood, "score", entry.MoodScore)
	return entry, nil
}

// Update overwrites an existing entry. The id and timestamp are kept from
// the stored record.
func (s *Service) Update(entry models.DiaryEntry) error {
	existing, err := s.Get(entry.ID)
	if err != nil {
		return err
	}
	entry.Timestamp = existing.Timestamp
	entry.Date = existing.Date
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	return s.store.PutEntry(entry)
}

// Delete removes an entry. A missing id is not an error.
func (s *Service) Delete(id string) error {
	if err := s.store.DeleteEntry(id); err != nil {
		return err
	}
	logger.Info("Entry deleted", "id", id)
	return nil
}

// Get finds an entry by id or by a unique id prefix of at least four
// characters.
func (s *Service) Get(id string) (models.DiaryEntry, error) {
	entries, err := s.store.ListEntries()
	if err != nil {
		return models.DiaryEntry{}, err
	}

	var match *models.DiaryEntry
	for i := range entries {
		if entries[i].ID == id {
			return entries[i], nil
		}
		if len(id) >= 4 && strings.HasPrefix(entries[i].ID, id) {
			if match != nil {
				return models.DiaryEntry{}, fmt.Errorf("%w: id prefix %q is ambiguous", ErrEntryNotFound, id)
			}
			match = &entries[i]
		}
	}
	if match == nil {
		return models.DiaryEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return *match, nil
}

// List returns the stored entries matching filter, newest first.
func (s *Service) List(filter Filter) ([]models.DiaryEntry, error) {
	entries, err := s.store.ListEntries()
	if err != nil {
		return nil, err
	}
	return filter.Apply(entries, s.loc), nil
}

// Settings returns the current settings.
func (s *Service) Settings() (models.AppSettings, error) {
	return s.store.GetSettings()
}

// UpdateSettings reads the settings, applies fn and writes the result.
func (s *Service) UpdateSettings(fn func(*models.AppSettings)) (models.AppSettings, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return models.AppSettings{}, err
	}
	fn(&settings)
	settings.Normalize()
	if err := s.store.SaveSettings(settings); err != nil {
		return models.AppSettings{}, err
	}
	return settings, nil
}

// BackupStatus reports how long ago the journal was last exported.
type BackupStatus struct {
	LastBackup time.Time
	Age        time.Duration
	Stale      bool
}

func (s *Service) BackupStatus() (BackupStatus, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return BackupStatus{}, err
	}
	last := settings.LastBackup()
	age := s.clock().Sub(last)
	return BackupStatus{
		LastBackup: last,
		Age:        age,
		Stale:      age > constants.BackupStaleAfter,
	}, nil
}
