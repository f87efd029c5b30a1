package mapper

import (
	"github.com/eneaslivv/livvos/internal/entity"
	"github.com/eneaslivv/livvos/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:        u.Id,
		Email:     u.Email,
		FullName:  u.FullName,
		Status:    entity.UserStatus(u.Status),
		Language:  u.Language,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:        u.Id,
		Email:     u.Email,
		FullName:  u.FullName,
		Status:    string(u.Status),
		Language:  u.Language,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (m *UserMapper) DeviceToEntity(d *model.Device) *entity.Device {
	if d == nil {
		return nil
	}
	return &entity.Device{
		Id:         d.Id,
		UserId:     d.UserId,
		Name:       d.Name,
		Platform:   d.Platform,
		PushToken:  d.PushToken,
		LastSeenAt: d.LastSeenAt,
		CreatedAt:  d.CreatedAt,
	}
}

func (m *UserMapper) DeviceToModel(d *entity.Device) *model.Device {
	if d == nil {
		return nil
	}
	return &model.Device{
		Id:         d.Id,
		UserId:     d.UserId,
		Name:       d.Name,
		Platform:   d.Platform,
		PushToken:  d.PushToken,
		LastSeenAt: d.LastSeenAt,
		CreatedAt:  d.CreatedAt,
	}
}
