package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type User struct {
	Id        uuid.UUID
	Email     string
	FullName  string
	Status    UserStatus
	Language  string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Device is one phone or wearable registered by the user. Events for
// local actions are routed to the device the voice stream came from.
type Device struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Name       string
	Platform   string
	PushToken  *string
	LastSeenAt *time.Time
	CreatedAt  time.Time
}
