package mapper

import (
	"encoding/json"
	"time"

	"github.com/eneaslivv/livvos/internal/entity"
	"github.com/eneaslivv/livvos/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskMapper struct{}

func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

func stringMapToJSON(in map[string]string) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func jsonToStringMap(in datatypes.JSONMap) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

func (m *TaskMapper) TaskStateToModel(t *entity.TaskState) *model.TaskState {
	if t == nil {
		return nil
	}

	missing, _ := json.Marshal(t.MissingEntities)

	return &model.TaskState{
		Id:                    t.Id,
		ConversationSessionId: t.ConversationSessionId,
		Intent:                t.Intent,
		Confidence:            t.Confidence,
		Status:                t.Status,
		Entities:              stringMapToJSON(t.Entities),
		MissingEntities:       datatypes.JSON(missing),
		ClarificationCount:    t.ClarificationCount,
		TurnCount:             t.TurnCount,
		CreatedAt:             t.CreatedAt,
	}
}

func (m *TaskMapper) TaskStateToEntity(t *model.TaskState) *entity.TaskState {
	if t == nil {
		return nil
	}

	var missing []string
	if len(t.MissingEntities) > 0 {
		_ = json.Unmarshal(t.MissingEntities, &missing)
	}

	return &entity.TaskState{
		Id:                    t.Id,
		ConversationSessionId: t.ConversationSessionId,
		Intent:                t.Intent,
		Confidence:            t.Confidence,
		Status:                t.Status,
		Entities:              jsonToStringMap(t.Entities),
		MissingEntities:       missing,
		ClarificationCount:    t.ClarificationCount,
		TurnCount:             t.TurnCount,
		CreatedAt:             t.CreatedAt,
	}
}

func (m *TaskMapper) ExecutedActionToModel(a *entity.ExecutedAction) *model.ExecutedAction {
	if a == nil {
		return nil
	}
	return &model.ExecutedAction{
		Id:                    a.Id,
		UserId:                a.UserId,
		ConversationSessionId: a.ConversationSessionId,
		Intent:                a.Intent,
		Slots:                 stringMapToJSON(a.Slots),
		Success:               a.Success,
		Message:               a.Message,
		DurationMs:            a.DurationMs,
		ExecutedAt:            a.ExecutedAt,
	}
}

func (m *TaskMapper) ExecutedActionToEntity(a *model.ExecutedAction) *entity.ExecutedAction {
	if a == nil {
		return nil
	}
	return &entity.ExecutedAction{
		Id:                    a.Id,
		UserId:                a.UserId,
		ConversationSessionId: a.ConversationSessionId,
		Intent:                a.Intent,
		Slots:                 jsonToStringMap(a.Slots),
		Success:               a.Success,
		Message:               a.Message,
		DurationMs:            a.DurationMs,
		ExecutedAt:            a.ExecutedAt,
	}
}

func (m *TaskMapper) NoteToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var deletedAt *time.Time
	if n.DeletedAt.Valid {
		t := n.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	return &entity.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: n.DeletedAt.Valid,
	}
}

func (m *TaskMapper) NoteToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if n.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *n.DeletedAt, Valid: true}
	} else if n.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}
