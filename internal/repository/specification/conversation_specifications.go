package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByConversationSessionID struct {
	ConversationSessionID uuid.UUID
}

func (s ByConversationSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_session_id = ?", s.ConversationSessionID)
}

type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByDisplayNameLike matches contacts by case-insensitive substring.
type ByDisplayNameLike struct {
	Query string
}

func (s ByDisplayNameLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("display_name ILIKE ?", "%"+s.Query+"%")
}
