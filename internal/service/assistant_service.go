package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/eneaslivv/livvos/internal/constant"
	"github.com/eneaslivv/livvos/internal/dto"
	"github.com/eneaslivv/livvos/internal/entity"
	"github.com/eneaslivv/livvos/internal/repository/memory"
	"github.com/eneaslivv/livvos/internal/repository/specification"
	"github.com/eneaslivv/livvos/internal/repository/unitofwork"
	"github.com/eneaslivv/livvos/pkg/agent"

	"github.com/google/uuid"
)

// IAssistantService defines the dialogue orchestration service interface
type IAssistantService interface {
	CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetTranscript(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetTranscriptResponse, error)
	ProcessTurn(ctx context.Context, userId uuid.UUID, request *dto.ProcessTurnRequest) (*dto.ProcessTurnResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error
}

type assistantService struct {
	uowFactory        unitofwork.RepositoryFactory
	engine            *agent.Engine
	dialogueRepo      *memory.DialogueRepository
	publisherService  IPublisherService
	defaultLanguage   string
	maxClarifications int
	turnLogger        *log.Logger
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	engine *agent.Engine,
	dialogueRepo *memory.DialogueRepository,
	publisherService IPublisherService,
	defaultLanguage string,
	maxClarifications int,
) IAssistantService {
	if maxClarifications <= 0 {
		maxClarifications = agent.DefaultMaxClarifications
	}
	return &assistantService{
		uowFactory:        uowFactory,
		engine:            engine,
		dialogueRepo:      dialogueRepo,
		publisherService:  publisherService,
		defaultLanguage:   defaultLanguage,
		maxClarifications: maxClarifications,
		turnLogger:        initTurnLogger(),
	}
}

func initTurnLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "assistant_turns.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[TURN] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// CreateSession creates a new conversation session
func (as *assistantService) CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	session := entity.ConversationSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     "Unnamed session",
		Language:  as.defaultLanguage,
		CreatedAt: now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ConversationSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

// GetAllSessions retrieves all conversation sessions of a user
func (as *assistantService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ConversationSessionRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllSessionsResponse, 0, len(sessions))
	for _, s := range sessions {
		response = append(response, &dto.GetAllSessionsResponse{
			Id:        s.Id,
			Title:     s.Title,
			Language:  s.Language,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}

	return response, nil
}

// GetTranscript retrieves the message history of a session
func (as *assistantService) GetTranscript(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetTranscriptResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	sess, err := uow.ConversationSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("session not found or access denied")
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationSessionID{ConversationSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetTranscriptResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, &dto.GetTranscriptResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	return response, nil
}

// ProcessTurn runs one dialogue turn end to end: hydrate state, run the
// engine, persist the transcript and task snapshot, publish the audit
// event. Turns of the same session are serialized; concurrent requests
// for one session queue up on its turn lock.
func (as *assistantService) ProcessTurn(ctx context.Context, userId uuid.UUID, request *dto.ProcessTurnRequest) (*dto.ProcessTurnResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationSessionRepository().FindOne(ctx,
		specification.ByID{ID: request.SessionId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("session not found or access denied")
	}

	lock := as.dialogueRepo.TurnLock(request.SessionId.String())
	lock.Lock()
	defer lock.Unlock()

	sess, err := as.hydrateSession(ctx, uow, conversation)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	reply, shouldSpeak := as.engine.ProcessTurn(ctx, sess, request.Utterance)
	elapsed := time.Since(start).Milliseconds()

	as.turnLogger.Printf("session=%s status=%s intent=%s duration_ms=%d",
		request.SessionId, sess.Status, intentName(sess), elapsed)

	if err := as.persistTurn(ctx, uow, conversation, sess, request.Utterance, reply); err != nil {
		return nil, err
	}

	as.publishAudit(ctx, userId, sess, elapsed)
	as.dialogueRepo.Save(request.SessionId.String(), sess)

	return &dto.ProcessTurnResponse{
		SessionId:        request.SessionId,
		Reply:            reply,
		ShouldSpeak:      shouldSpeak,
		Status:           string(sess.Status),
		Intent:           intentName(sess),
		ProcessingTimeMs: elapsed,
	}, nil
}

// hydrateSession returns the warm in-memory dialogue state, or rebuilds
// the conversation history from the database after a cache miss. Slot
// negotiation progress does not survive a miss; the next classification
// starts the task over.
func (as *assistantService) hydrateSession(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.ConversationSession) (*agent.Session, error) {
	if sess, found := as.dialogueRepo.Get(conversation.Id.String()); found {
		return sess, nil
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationSessionID{ConversationSessionID: conversation.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	sess := agent.NewSession(conversation.UserId, conversation.Id)
	sess.InputLanguage = conversation.Language
	sess.MaxClarifications = as.maxClarifications
	for _, m := range messages {
		sess.AppendTurn(m.Role, m.Content)
		if m.Role == constant.MessageRoleUser {
			sess.TurnCount++
		}
	}

	return sess, nil
}

func (as *assistantService) persistTurn(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.ConversationSession, sess *agent.Session, utterance, reply string) error {
	existingCount, err := uow.MessageRepository().Count(ctx,
		specification.ByConversationSessionID{ConversationSessionID: conversation.Id},
	)
	if err != nil {
		return err
	}

	now := time.Now()
	messages := []*entity.Message{}
	if utterance != "" {
		messages = append(messages, &entity.Message{
			Id:                    uuid.New(),
			ConversationSessionId: conversation.Id,
			Role:                  constant.MessageRoleUser,
			Content:               utterance,
			CreatedAt:             now,
		})
	}
	messages = append(messages, &entity.Message{
		Id:                    uuid.New(),
		ConversationSessionId: conversation.Id,
		Role:                  constant.MessageRoleAssistant,
		Content:               reply,
		CreatedAt:             now.Add(1 * time.Millisecond),
	})

	snapshot := &entity.TaskState{
		Id:                    uuid.New(),
		ConversationSessionId: conversation.Id,
		Intent:                intentName(sess),
		Status:                string(sess.Status),
		Entities:              sess.MergedEntities(),
		MissingEntities:       sess.MissingEntities,
		ClarificationCount:    sess.ClarificationCount,
		TurnCount:             sess.TurnCount,
		CreatedAt:             now,
	}
	if sess.Intent != nil {
		snapshot.Confidence = sess.Intent.Confidence
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().CreateBulk(ctx, messages); err != nil {
		return err
	}
	if err := uow.TaskStateRepository().Create(ctx, snapshot); err != nil {
		return err
	}

	if existingCount == 0 && utterance != "" {
		conversation.Title = truncateTitle(utterance, 80)
		conversation.UpdatedAt = &now
		if err := uow.ConversationSessionRepository().Update(ctx, conversation); err != nil {
			return err
		}
	}

	return uow.Commit()
}

// publishAudit hands the turn outcome to the action audit consumer.
// Only turns that reached a dispatch verdict are audited; clarification
// round-trips are not.
func (as *assistantService) publishAudit(ctx context.Context, userId uuid.UUID, sess *agent.Session, elapsedMs int64) {
	if sess.Status != agent.StatusCompleted && sess.Status != agent.StatusFailed {
		return
	}
	if sess.Intent == nil {
		return
	}

	payload := dto.PublishActionExecutedMessage{
		UserId:                userId,
		ConversationSessionId: sess.ID,
		Intent:                sess.Intent.Intent,
		Slots:                 sess.MergedEntities(),
		Success:               sess.Status == agent.StatusCompleted,
		DurationMs:            elapsedMs,
		ExecutedAt:            time.Now(),
	}
	if sess.ActionResult != nil {
		payload.Message = sess.ActionResult.Message
	} else if sess.ActionError != "" {
		payload.Message = sess.ActionError
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		as.turnLogger.Printf("[ERROR] Failed to marshal audit payload: %v", err)
		return
	}
	if err := as.publisherService.Publish(ctx, payloadJson); err != nil {
		as.turnLogger.Printf("[ERROR] Failed to publish audit event: %v", err)
	}
}

// DeleteSession soft deletes a session and its transcript
func (as *assistantService) DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	sess, err := uow.ConversationSessionRepository().FindOne(ctx,
		specification.ByID{ID: request.SessionId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("session not found or access denied")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().DeleteBySessionId(ctx, request.SessionId); err != nil {
		return err
	}
	if err := uow.TaskStateRepository().DeleteBySessionId(ctx, request.SessionId); err != nil {
		return err
	}
	if err := uow.ConversationSessionRepository().Delete(ctx, request.SessionId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	as.dialogueRepo.Delete(request.SessionId.String())
	return nil
}

func intentName(sess *agent.Session) string {
	if sess.Intent == nil {
		return ""
	}
	return sess.Intent.Intent
}

func truncateTitle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
