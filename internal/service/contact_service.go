package service

import (
	"context"
	"fmt"
	"time"

	"github.com/eneaslivv/livvos/internal/dto"
	"github.com/eneaslivv/livvos/internal/entity"
	"github.com/eneaslivv/livvos/internal/repository/specification"
	"github.com/eneaslivv/livvos/internal/repository/unitofwork"
	"github.com/eneaslivv/livvos/pkg/agent"

	"github.com/google/uuid"
)

type IContactService interface {
	Create(ctx context.Context, userId uuid.UUID, request *dto.CreateContactRequest) (*dto.CreateContactResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowContactResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ShowContactResponse, error)
	Update(ctx context.Context, userId uuid.UUID, request *dto.UpdateContactRequest) (*dto.UpdateContactResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error

	// ResolveCandidates makes the service usable as the resolver's
	// contact lookup capability.
	ResolveCandidates(ctx context.Context, ownerID uuid.UUID, query string) ([]agent.Candidate, error)
}

type contactService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewContactService(uowFactory unitofwork.RepositoryFactory) IContactService {
	return &contactService{
		uowFactory: uowFactory,
	}
}

func (cs *contactService) Create(ctx context.Context, userId uuid.UUID, request *dto.CreateContactRequest) (*dto.CreateContactResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	contact := entity.Contact{
		Id:          uuid.New(),
		UserId:      userId,
		DisplayName: request.DisplayName,
		Phone:       request.Phone,
		Email:       request.Email,
		PlatformIds: request.PlatformIds,
		CreatedAt:   time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ContactRepository().Create(ctx, &contact); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateContactResponse{Id: contact.Id}, nil
}

func (cs *contactService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowContactResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, fmt.Errorf("contact not found or access denied")
	}

	return contactToResponse(contact), nil
}

func (cs *contactService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ShowContactResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	contacts, err := uow.ContactRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "display_name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ShowContactResponse, 0, len(contacts))
	for _, c := range contacts {
		response = append(response, contactToResponse(c))
	}
	return response, nil
}

func (cs *contactService) Update(ctx context.Context, userId uuid.UUID, request *dto.UpdateContactRequest) (*dto.UpdateContactResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: request.Id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, fmt.Errorf("contact not found or access denied")
	}

	now := time.Now()
	contact.DisplayName = request.DisplayName
	contact.Phone = request.Phone
	contact.Email = request.Email
	contact.PlatformIds = request.PlatformIds
	contact.UpdatedAt = &now

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ContactRepository().Update(ctx, contact); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.UpdateContactResponse{Id: contact.Id}, nil
}

func (cs *contactService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if contact == nil {
		return fmt.Errorf("contact not found or access denied")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ContactRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (cs *contactService) ResolveCandidates(ctx context.Context, ownerID uuid.UUID, query string) ([]agent.Candidate, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	contacts, err := uow.ContactRepository().SearchByName(ctx, ownerID, query)
	if err != nil {
		return nil, err
	}

	candidates := make([]agent.Candidate, 0, len(contacts))
	for _, c := range contacts {
		candidates = append(candidates, agent.Candidate{
			ID:          c.Id,
			DisplayName: c.DisplayName,
			Phone:       c.Phone,
			Email:       c.Email,
			PlatformIDs: c.PlatformIds,
		})
	}
	return candidates, nil
}

func contactToResponse(c *entity.Contact) *dto.ShowContactResponse {
	return &dto.ShowContactResponse{
		Id:          c.Id,
		DisplayName: c.DisplayName,
		Phone:       c.Phone,
		Email:       c.Email,
		PlatformIds: c.PlatformIds,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
