package dto

import (
	"time"

	"github.com/google/uuid"
)

type ShowNoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
