package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"audiobio/internal/common"
	"audiobio/internal/domain/dto"
	"audiobio/internal/domain/entities"
	"audiobio/internal/domain/interfaces/repository"
	"audiobio/internal/infra/logger"
	"audiobio/internal/util"
)

// JournalService hands out journal managers bound to a single user
// record. The service itself is stateless; the clock is injectable so
// tests can pin "today".
type JournalService struct {
	Repo   repository.UserRepository
	Logger *logger.Logger
	now    func() time.Time
}

func NewJournalService(repo repository.UserRepository, logger *logger.Logger) *JournalService {
	return &JournalService{Repo: repo, Logger: logger, now: time.Now}
}

// WithClock overrides the wall clock. Returns the service for chaining
// in test setup.
func (s *JournalService) WithClock(now func() time.Time) *JournalService {
	s.now = now
	return s
}

// ManagerFor binds a manager to a user record and a reference date. An
// empty referenceDate defaults to today's key; an explicit one must
// already be canonical or construction fails with ErrInvalidDate. The
// reference date only steers read operations; appends always target
// today.
func (s *JournalService) ManagerFor(user *entities.User, referenceDate string) (*JournalManager, error) {
	if referenceDate == "" {
		referenceDate = util.KeyFromTime(s.now().UTC())
	}
	if !util.IsValidKey(referenceDate) {
		return nil, fmt.Errorf("%w: reference date %q", common.ErrInvalidDate, referenceDate)
	}
	user.EnsureJournal()
	return &JournalManager{svc: s, user: user, date: referenceDate}, nil
}

// JournalManager exposes the engine operations over one user's journal
// store. Mutating operations rewrite the whole user record through the
// repository; read operations work on the in-memory record only.
type JournalManager struct {
	svc  *JournalService
	user *entities.User
	date string
}

// ReferenceDate returns the canonical key the manager was bound to.
func (m *JournalManager) ReferenceDate() string {
	return m.date
}

// AppendEntry records a new entry under today's bundle, creating the
// bundle on first append of the day, and persists the user record.
// The recording key must be set and the duration must be a finite
// non-negative number.
func (m *JournalManager) AppendEntry(ctx context.Context, recordingFileName string, recordingSeconds float64) (*entities.DayEntryBundle, *entities.JournalEntry, error) {
	if recordingFileName == "" {
		return nil, nil, fmt.Errorf("%w: missing recording file name", common.ErrInvalidEntry)
	}
	if math.IsNaN(recordingSeconds) || math.IsInf(recordingSeconds, 0) || recordingSeconds < 0 {
		return nil, nil, fmt.Errorf("%w: recording length %v", common.ErrInvalidEntry, recordingSeconds)
	}

	now := m.svc.now().UTC()
	today := util.KeyFromTime(now)

	bundle, ok := m.user.Journal[today]
	if !ok {
		bundle = entities.NewDayEntryBundle(now)
		m.user.Journal[today] = bundle
	}

	entry := entities.NewJournalEntry(recordingFileName, recordingSeconds, now)
	bundle.Entries = append(bundle.Entries, entry)
	bundle.UpdatedAt = now
	m.user.UpdatedAt = now

	if err := m.svc.Repo.Save(ctx, m.user); err != nil {
		return nil, nil, err
	}

	m.svc.Logger.Info(fmt.Sprintf("Appended journal entry %s for %s on %s", entry.ID, m.user.Email, today))
	return bundle, entry, nil
}

// SetTranscription attaches a transcription to an entry in today's
// bundle and persists. It fails with ErrEntryNotFound when today has no
// bundle or no entry matches. Overwriting an existing transcription is
// permitted.
func (m *JournalManager) SetTranscription(ctx context.Context, entryID, transcription string) (*entities.JournalEntry, error) {
	now := m.svc.now().UTC()
	today := util.KeyFromTime(now)

	bundle, ok := m.user.Journal[today]
	if !ok {
		return nil, fmt.Errorf("%w: no bundle for %s", common.ErrEntryNotFound, today)
	}

	var entry *entities.JournalEntry
	for _, e := range bundle.Entries {
		if e.ID == entryID {
			entry = e
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: entry %s", common.ErrEntryNotFound, entryID)
	}

	entry.Transcription = &transcription
	entry.UpdatedAt = now
	bundle.UpdatedAt = now
	m.user.UpdatedAt = now

	if err := m.svc.Repo.Save(ctx, m.user); err != nil {
		return nil, err
	}
	return entry, nil
}

// ProgressTime sums the recorded seconds for the bundle at dateKey. An
// empty key means the reference date; a day without a bundle has zero
// progress and is not an error.
func (m *JournalManager) ProgressTime(dateKey string) float64 {
	if dateKey == "" {
		dateKey = m.date
	}
	bundle, ok := m.user.Journal[dateKey]
	if !ok {
		return 0
	}
	var total float64
	for _, entry := range bundle.Entries {
		total += entry.RecordingLengthInSeconds
	}
	return total
}

// MonthStreaks synthesizes one streak record per calendar day of the
// given month, in ascending day order. Days without a bundle report
// zero; the result length always equals the month's length.
func (m *JournalManager) MonthStreaks(month, year int) ([]dto.Streak, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, fmt.Errorf("%w: month %d year %d", common.ErrInvalidDate, month, year)
	}

	days := util.DaysInMonth(month, year)
	streaks := make([]dto.Streak, 0, days)
	for day := 1; day <= days; day++ {
		key, err := util.CanonicalKey(day, month, year)
		if err != nil {
			return nil, err
		}
		streaks = append(streaks, dto.Streak{
			Date:         key,
			ProgressTime: m.ProgressTime(key),
		})
	}
	return streaks, nil
}

// AllJournals lists every existing day bundle with its ordered
// transcripts. Order over bundles is unspecified; callers sort.
func (m *JournalManager) AllJournals() []dto.JournalDay {
	journals := make([]dto.JournalDay, 0, len(m.user.Journal))
	for day, bundle := range m.user.Journal {
		journals = append(journals, dto.JournalDay{
			ID:          bundle.ID,
			Date:        day,
			Transcripts: transcripts(bundle),
		})
	}
	return journals
}

// EntriesForDay returns the ordered transcriptions for the bundle at
// dateKey (reference date when empty), or an empty slice when the day
// has no bundle.
func (m *JournalManager) EntriesForDay(dateKey string) []*string {
	if dateKey == "" {
		dateKey = m.date
	}
	bundle, ok := m.user.Journal[dateKey]
	if !ok {
		return []*string{}
	}
	return transcripts(bundle)
}

// DeleteDay removes the whole bundle at dateKey and persists. Deleting
// a day that has no bundle is a no-op success and does not write.
func (m *JournalManager) DeleteDay(ctx context.Context, dateKey string) error {
	if _, ok := m.user.Journal[dateKey]; !ok {
		return nil
	}
	delete(m.user.Journal, dateKey)
	m.user.UpdatedAt = m.svc.now().UTC()

	if err := m.svc.Repo.Save(ctx, m.user); err != nil {
		return err
	}
	m.svc.Logger.Info(fmt.Sprintf("Deleted journal day %s for %s", dateKey, m.user.Email))
	return nil
}

func transcripts(bundle *entities.DayEntryBundle) []*string {
	out := make([]*string, 0, len(bundle.Entries))
	for _, entry := range bundle.Entries {
		out = append(out, entry.Transcription)
	}
	return out
}
