package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"audiobio/internal/util"
)

// JournalEntry is a single recorded-and-optionally-transcribed audio
// unit. Transcription is a pointer so an entry that was never
// transcribed is distinguishable from one transcribed to an empty
// string.
type JournalEntry struct {
	ID                       string    `json:"id" bson:"id"`
	RecordingFileName        string    `json:"recording_file_name" bson:"recording_file_name"`
	RecordingLengthInSeconds float64   `json:"recording_length_in_seconds" bson:"recording_length_in_seconds"`
	Transcription            *string   `json:"transcription" bson:"transcription,omitempty"`
	CreatedAt                time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt                time.Time `json:"updated_at" bson:"updated_at"`
}

// DayEntryBundle collects the journal entries recorded on one calendar
// day. Its ID equals the canonical day key it is stored under; Title is
// cosmetic only. Summary and ProcessedEntry are reserved for a future
// summarization collaborator.
type DayEntryBundle struct {
	ID             string          `json:"id" bson:"id"`
	Title          string          `json:"title" bson:"title"`
	Summary        string          `json:"summary,omitempty" bson:"summary,omitempty"`
	ProcessedEntry string          `json:"processed_entry,omitempty" bson:"processed_entry,omitempty"`
	Entries        []*JournalEntry `json:"entries" bson:"entries"`
	CreatedAt      time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" bson:"updated_at"`
}

// User is the persisted user record. The journal map from canonical day
// key to bundle is owned exclusively by this record and is persisted as
// part of the same document.
type User struct {
	Email          string                     `json:"email" bson:"email"`
	HashedPassword string                     `json:"-" bson:"hashed_password"`
	FirstName      string                     `json:"first_name" bson:"first_name"`
	LastName       string                     `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Journal        map[string]*DayEntryBundle `json:"journal" bson:"journal"`
	CreatedAt      time.Time                  `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at" bson:"updated_at"`
}

// NewEntryID generates a 9 character upper-case alphanumeric entry id.
// Uniqueness is only relied on within one day bundle.
func NewEntryID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:9])
}

// NewJournalEntry creates an untranscribed entry for an already
// uploaded recording.
func NewJournalEntry(recordingFileName string, recordingSeconds float64, now time.Time) *JournalEntry {
	return &JournalEntry{
		ID:                       NewEntryID(),
		RecordingFileName:        recordingFileName,
		RecordingLengthInSeconds: recordingSeconds,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
}

// NewDayEntryBundle creates an empty bundle for the calendar day of now.
// The bundle id doubles as the store key.
func NewDayEntryBundle(now time.Time) *DayEntryBundle {
	return &DayEntryBundle{
		ID:        util.KeyFromTime(now),
		Title:     util.TitleFromTime(now),
		Entries:   []*JournalEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewUser creates a user record with an empty journal. The password
// hash is set by the auth service.
func NewUser(email, firstName, lastName string, now time.Time) *User {
	return &User{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Journal:   map[string]*DayEntryBundle{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EnsureJournal initializes the journal map on records decoded from
// storage before it existed.
func (u *User) EnsureJournal() {
	if u.Journal == nil {
		u.Journal = map[string]*DayEntryBundle{}
	}
}
