package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/eneaslivv/livvos/internal/dto"
	"github.com/eneaslivv/livvos/internal/entity"
	"github.com/eneaslivv/livvos/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the action audit topic and persists one
// ExecutedAction row per dispatched turn. Auditing runs off the request
// path so a slow insert never delays the spoken reply.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishActionExecutedMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	action := entity.ExecutedAction{
		Id:                    uuid.New(),
		UserId:                payload.UserId,
		ConversationSessionId: payload.ConversationSessionId,
		Intent:                payload.Intent,
		Slots:                 payload.Slots,
		Success:               payload.Success,
		Message:               payload.Message,
		DurationMs:            payload.DurationMs,
		ExecutedAt:            payload.ExecutedAt,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ExecutedActionRepository().Create(ctx, &action); err != nil {
		log.Printf("[ERROR] Failed to persist executed action: %v", err)
		msg.Nack() // Nack for retriable errors
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Audited action intent=%s session=%s success=%v",
		payload.Intent, payload.ConversationSessionId, payload.Success)
	msg.Ack()
}
