package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/abhisek/learnpath/internal/engagement"
	"github.com/abhisek/learnpath/internal/mastery"
	"github.com/abhisek/learnpath/internal/vark"
)

// ErrNotFound is returned when a keyed lookup has no row.
var ErrNotFound = errors.New("store: not found")

// KV is a plain key-value collaborator. Get returns ErrNotFound for
// missing keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ProfileRepo persists the current VARK profile of each student.
type ProfileRepo interface {
	// Get returns the stored profile and whether one existed.
	Get(ctx context.Context, studentID string) (vark.Profile, bool, error)

	// Save replaces the stored profile.
	Save(ctx context.Context, studentID string, p vark.Profile) error
}

// MasteryRecord is one scored mastery observation for a (student, concept).
type MasteryRecord struct {
	ID          int64          `json:"id"`
	StudentID   string         `json:"studentId"`
	ConceptID   string         `json:"conceptId"`
	ConceptName string         `json:"conceptName"`
	Score       int            `json:"score"`
	Inputs      mastery.Inputs `json:"inputs"`
	RecordedAt  time.Time      `json:"recordedAt"`
}

// MasteryRepo stores the append-only mastery history.
type MasteryRepo interface {
	// Append inserts rec and fills in its ID (and RecordedAt when zero).
	Append(ctx context.Context, rec *MasteryRecord) error

	// Latest returns the most recent record per concept for a student,
	// ordered by concept ID.
	Latest(ctx context.Context, studentID string) ([]MasteryRecord, error)

	// LatestFor returns the most recent record for one concept or ErrNotFound.
	LatestFor(ctx context.Context, studentID, conceptID string) (*MasteryRecord, error)
}

// EngagementRecord is one scored engagement observation for a student.
type EngagementRecord struct {
	ID         int64             `json:"id"`
	StudentID  string            `json:"studentId"`
	Result     engagement.Result `json:"result"`
	Inputs     engagement.Inputs `json:"inputs"`
	RecordedAt time.Time         `json:"recordedAt"`
}

// EngagementRepo stores the append-only engagement history.
type EngagementRepo interface {
	Append(ctx context.Context, rec *EngagementRecord) error

	// Latest returns the newest record for a student or ErrNotFound.
	Latest(ctx context.Context, studentID string) (*EngagementRecord, error)
}

// SessionRecord is the stored form of a practice session. Body holds the
// full session document; the other fields are indexed copies.
type SessionRecord struct {
	ID          string
	StudentID   string
	ConceptID   string
	Status      string
	Score       *int
	StartedAt   time.Time
	CompletedAt *time.Time
	Body        json.RawMessage
}

// SessionRepo persists practice sessions.
type SessionRepo interface {
	// Save inserts or replaces the session with rec.ID.
	Save(ctx context.Context, rec *SessionRecord) error

	// Get returns the session or ErrNotFound.
	Get(ctx context.Context, id string) (*SessionRecord, error)

	// ListByStudent returns a student's sessions, newest first.
	// A non-positive limit means no limit.
	ListByStudent(ctx context.Context, studentID string, limit int) ([]SessionRecord, error)
}

// QueryOpts holds common query options for event queries.
type QueryOpts struct {
	Limit  int
	After  int64 // sequence number exclusive lower bound
	Before int64 // sequence number exclusive upper bound
	From   time.Time
	To     time.Time
}

// ProfileEventData captures one VARK profile transition.
type ProfileEventData struct {
	StudentID string
	Source    string
	Event     vark.Event
	Before    vark.Profile
	After     vark.Profile
}

// ProfileEvent is a stored ProfileEventData.
type ProfileEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	ProfileEventData
}

// LLMRequestEventData captures data for an LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLMRequestEventData.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls by purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls by model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo is the append-only event log.
type EventRepo interface {
	AppendProfileEvent(ctx context.Context, data ProfileEventData) error
	QueryProfileEvents(ctx context.Context, studentID string, opts QueryOpts) ([]ProfileEvent, error)

	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns nil when no event has the given ID.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
