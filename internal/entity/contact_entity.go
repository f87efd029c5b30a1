package entity

import (
	"time"

	"github.com/google/uuid"
)

// Contact is an address-book entry owned by a user. PlatformIds maps a
// messaging platform name ("whatsapp", "telegram") to the contact's
// identifier on that platform.
type Contact struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	DisplayName string
	Phone       string
	Email       string
	PlatformIds map[string]string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
