package unitofwork

import (
	"context"

	"github.com/eneaslivv/livvos/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	DeviceRepository() contract.DeviceRepository
	ContactRepository() contract.ContactRepository

	ConversationSessionRepository() contract.ConversationSessionRepository
	MessageRepository() contract.MessageRepository
	TaskStateRepository() contract.TaskStateRepository
	ExecutedActionRepository() contract.ExecutedActionRepository
	NoteRepository() contract.NoteRepository
}
