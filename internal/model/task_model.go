package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskState struct {
	Id                    uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationSessionId uuid.UUID         `gorm:"type:uuid;not null;index"`
	Intent                string            `gorm:"type:varchar(100);not null"`
	Confidence            float64           `gorm:"type:double precision;not null;default:0"`
	Status                string            `gorm:"type:varchar(50);not null"`
	Entities              datatypes.JSONMap `gorm:"type:jsonb"`
	MissingEntities       datatypes.JSON    `gorm:"type:jsonb"`
	ClarificationCount    int               `gorm:"default:0"`
	TurnCount             int               `gorm:"default:0"`
	CreatedAt             time.Time         `gorm:"autoCreateTime"`
}

func (TaskState) TableName() string {
	return "task_states"
}

type ExecutedAction struct {
	Id                    uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                uuid.UUID         `gorm:"type:uuid;not null;index"`
	ConversationSessionId uuid.UUID         `gorm:"type:uuid;not null;index"`
	Intent                string            `gorm:"type:varchar(100);not null"`
	Slots                 datatypes.JSONMap `gorm:"type:jsonb"`
	Success               bool              `gorm:"not null"`
	Message               string            `gorm:"type:text"`
	DurationMs            int64             `gorm:"default:0"`
	ExecutedAt            time.Time         `gorm:"autoCreateTime"`
}

func (ExecutedAction) TableName() string {
	return "executed_actions"
}

type Note struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Content   string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Note) TableName() string {
	return "notes"
}
