package entity

import (
	"time"

	"github.com/google/uuid"
)

// TaskState is a per-turn snapshot of the dialogue task machine, kept
// for transcript inspection and debugging.
type TaskState struct {
	Id                    uuid.UUID
	ConversationSessionId uuid.UUID
	Intent                string
	Confidence            float64
	Status                string
	Entities              map[string]string
	MissingEntities       []string
	ClarificationCount    int
	TurnCount             int
	CreatedAt             time.Time
}

// ExecutedAction is the audit record of one dispatched skill.
type ExecutedAction struct {
	Id                    uuid.UUID
	UserId                uuid.UUID
	ConversationSessionId uuid.UUID
	Intent                string
	Slots                 map[string]string
	Success               bool
	Message               string
	DurationMs            int64
	ExecutedAt            time.Time
}

// Note is a quick voice note captured by the create_note skill.
type Note struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
