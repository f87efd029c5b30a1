package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	DisplayName string            `json:"display_name" validate:"required"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email" validate:"omitempty,email"`
	PlatformIds map[string]string `json:"platform_ids,omitempty"`
}

type CreateContactResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowContactResponse struct {
	Id          uuid.UUID         `json:"id"`
	DisplayName string            `json:"display_name"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email"`
	PlatformIds map[string]string `json:"platform_ids,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at"`
}

type UpdateContactRequest struct {
	Id          uuid.UUID
	DisplayName string            `json:"display_name" validate:"required"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email" validate:"omitempty,email"`
	PlatformIds map[string]string `json:"platform_ids,omitempty"`
}

type UpdateContactResponse struct {
	Id uuid.UUID `json:"id"`
}
