package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName  string         `gorm:"type:varchar(255);not null"`
	Status    string         `gorm:"type:varchar(50);not null;default:'pending'"`
	Language  string         `gorm:"type:varchar(10);not null;default:'es'"`
	Timezone  string         `gorm:"type:varchar(64);not null;default:'America/Argentina/Buenos_Aires'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

type Device struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Platform   string    `gorm:"type:varchar(50);not null"`
	PushToken  *string   `gorm:"type:text"`
	LastSeenAt *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Device) TableName() string {
	return "devices"
}
