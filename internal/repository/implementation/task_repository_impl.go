package implementation

import (
	"context"
	"errors"

	"github.com/eneaslivv/livvos/internal/entity"
	"github.com/eneaslivv/livvos/internal/mapper"
	"github.com/eneaslivv/livvos/internal/model"
	"github.com/eneaslivv/livvos/internal/repository/contract"
	"github.com/eneaslivv/livvos/internal/repository/scope"
	"github.com/eneaslivv/livvos/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TaskMapper
}

func NewTaskStateRepository(db *gorm.DB) contract.TaskStateRepository {
	return &TaskStateRepositoryImpl{
		db:     db,
		mapper: mapper.NewTaskMapper(),
	}
}

func (r *TaskStateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TaskStateRepositoryImpl) Create(ctx context.Context, state *entity.TaskState) error {
	m := r.mapper.TaskStateToModel(state)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*state = *r.mapper.TaskStateToEntity(m)
	return nil
}

func (r *TaskStateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TaskState, error) {
	var models []*model.TaskState
	// Snapshots read as a timeline unless the caller orders otherwise.
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedAsc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.TaskState, len(models))
	for i, m := range models {
		entities[i] = r.mapper.TaskStateToEntity(m)
	}
	return entities, nil
}

func (r *TaskStateRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("conversation_session_id = ?", sessionId).Delete(&model.TaskState{}).Error
}

type ExecutedActionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TaskMapper
}

func NewExecutedActionRepository(db *gorm.DB) contract.ExecutedActionRepository {
	return &ExecutedActionRepositoryImpl{
		db:     db,
		mapper: mapper.NewTaskMapper(),
	}
}

func (r *ExecutedActionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ExecutedActionRepositoryImpl) Create(ctx context.Context, action *entity.ExecutedAction) error {
	m := r.mapper.ExecutedActionToModel(action)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*action = *r.mapper.ExecutedActionToEntity(m)
	return nil
}

func (r *ExecutedActionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExecutedAction, error) {
	var models []*model.ExecutedAction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ExecutedAction, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ExecutedActionToEntity(m)
	}
	return entities, nil
}

func (r *ExecutedActionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ExecutedAction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TaskMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewTaskMapper(),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.NoteToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.NoteToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Note{}, id).Error
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.NoteToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Note, len(models))
	for i, m := range models {
		entities[i] = r.mapper.NoteToEntity(m)
	}
	return entities, nil
}
