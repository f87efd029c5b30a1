package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationSession groups the turns of one assistant conversation.
type ConversationSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Language  string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// Message is one persisted turn of a conversation.
type Message struct {
	Id                    uuid.UUID
	ConversationSessionId uuid.UUID
	Role                  string
	Content               string
	CreatedAt             time.Time
	UpdatedAt             *time.Time
	DeletedAt             *time.Time
	IsDeleted             bool
}
