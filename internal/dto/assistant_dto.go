package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Language  string     `json:"language"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetTranscriptResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ProcessTurnRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Utterance string    `json:"utterance" validate:"required"`
}

type ProcessTurnResponse struct {
	SessionId        uuid.UUID `json:"session_id"`
	Reply            string    `json:"reply"`
	ShouldSpeak      bool      `json:"should_speak"`
	Status           string    `json:"status"`
	Intent           string    `json:"intent,omitempty"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
}

type DeleteSessionRequest struct {
	SessionId uuid.UUID `json:"session_id"`
}

// PublishActionExecutedMessage is the audit payload handed to the
// consumer after a turn dispatched (or failed to dispatch) an action.
type PublishActionExecutedMessage struct {
	UserId                uuid.UUID         `json:"user_id"`
	ConversationSessionId uuid.UUID         `json:"conversation_session_id"`
	Intent                string            `json:"intent"`
	Slots                 map[string]string `json:"slots,omitempty"`
	Success               bool              `json:"success"`
	Message               string            `json:"message,omitempty"`
	DurationMs            int64             `json:"duration_ms"`
	ExecutedAt            time.Time         `json:"executed_at"`
}
