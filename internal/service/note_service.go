package service

import (
	"context"
	"fmt"
	"time"

	"github.com/eneaslivv/livvos/internal/dto"
	"github.com/eneaslivv/livvos/internal/entity"
	"github.com/eneaslivv/livvos/internal/repository/specification"
	"github.com/eneaslivv/livvos/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type INoteService interface {
	// CreateNote is the persistence capability behind the create_note
	// skill. Content arrives already transcribed.
	CreateNote(ctx context.Context, ownerID uuid.UUID, content string) error
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ShowNoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory) INoteService {
	return &noteService{
		uowFactory: uowFactory,
	}
}

func (ns *noteService) CreateNote(ctx context.Context, ownerID uuid.UUID, content string) error {
	uow := ns.uowFactory.NewUnitOfWork(ctx)

	note := entity.Note{
		Id:        uuid.New(),
		UserId:    ownerID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return err
	}

	return uow.Commit()
}

func (ns *noteService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ShowNoteResponse, error) {
	uow := ns.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ShowNoteResponse, 0, len(notes))
	for _, n := range notes {
		response = append(response, &dto.ShowNoteResponse{
			Id:        n.Id,
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		})
	}
	return response, nil
}

func (ns *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := ns.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return fmt.Errorf("note not found or access denied")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}
