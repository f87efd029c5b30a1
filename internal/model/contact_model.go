package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Contact struct {
	Id          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID         `gorm:"type:uuid;not null;index"`
	DisplayName string            `gorm:"type:varchar(255);not null;index"`
	Phone       string            `gorm:"type:varchar(50)"`
	Email       string            `gorm:"type:varchar(255)"`
	PlatformIds datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt    `gorm:"index"`
}

func (Contact) TableName() string {
	return "contacts"
}
