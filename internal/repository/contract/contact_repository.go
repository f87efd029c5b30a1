package contract

import (
	"context"

	"github.com/eneaslivv/livvos/internal/entity"
	"github.com/eneaslivv/livvos/internal/repository/specification"

	"github.com/google/uuid"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Contact, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Contact, error)
	// SearchByName matches contacts of a user whose display name
	// contains the query, case-insensitively.
	SearchByName(ctx context.Context, userId uuid.UUID, query string) ([]*entity.Contact, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
