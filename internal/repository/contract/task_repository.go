package contract

import (
	"context"

	"github.com/eneaslivv/livvos/internal/entity"
	"github.com/eneaslivv/livvos/internal/repository/specification"

	"github.com/google/uuid"
)

type TaskStateRepository interface {
	Create(ctx context.Context, state *entity.TaskState) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TaskState, error)
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
}

type ExecutedActionRepository interface {
	Create(ctx context.Context, action *entity.ExecutedAction) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExecutedAction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
}
