package mapper

import (
	"time"

	"github.com/eneaslivv/livvos/internal/entity"
	"github.com/eneaslivv/livvos/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContactMapper struct{}

func NewContactMapper() *ContactMapper {
	return &ContactMapper{}
}

func (m *ContactMapper) ToEntity(c *model.Contact) *entity.Contact {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	platformIds := make(map[string]string, len(c.PlatformIds))
	for k, v := range c.PlatformIds {
		if s, ok := v.(string); ok {
			platformIds[k] = s
		}
	}

	return &entity.Contact{
		Id:          c.Id,
		UserId:      c.UserId,
		DisplayName: c.DisplayName,
		Phone:       c.Phone,
		Email:       c.Email,
		PlatformIds: platformIds,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   c.DeletedAt.Valid,
	}
}

func (m *ContactMapper) ToModel(c *entity.Contact) *model.Contact {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	platformIds := make(datatypes.JSONMap, len(c.PlatformIds))
	for k, v := range c.PlatformIds {
		platformIds[k] = v
	}

	return &model.Contact{
		Id:          c.Id,
		UserId:      c.UserId,
		DisplayName: c.DisplayName,
		Phone:       c.Phone,
		Email:       c.Email,
		PlatformIds: platformIds,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}
