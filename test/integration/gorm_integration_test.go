package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/eneaslivv/livvos/internal/entity"
	"github.com/eneaslivv/livvos/internal/repository/specification"
	"github.com/eneaslivv/livvos/internal/repository/unitofwork"
	"github.com/eneaslivv/livvos/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ConversationSessionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Executed Action Repository", func(t *testing.T) {
		count, err := uow.ExecutedActionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("ExecutedAction count: %d", count)
	})

	t.Run("Check Transactional Turn Persistence", func(t *testing.T) {
		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Status:   entity.UserStatusActive,
			Language: "es",
			Timezone: "America/Argentina/Buenos_Aires",
		}

		err := uow.UserRepository().Create(context.Background(), user)
		assert.NoError(t, err)

		// Transaction Test
		ctx := context.Background()
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		sessionId := uuid.New()
		session := &entity.ConversationSession{
			Id:       sessionId,
			UserId:   userId,
			Title:    "Integration session",
			Language: "es",
		}
		err = uow.ConversationSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		messages := []*entity.Message{
			{Id: uuid.New(), ConversationSessionId: sessionId, Role: "user", Content: "mandale un mensaje a Juan"},
			{Id: uuid.New(), ConversationSessionId: sessionId, Role: "assistant", Content: "¿Qué querés que diga el mensaje?"},
		}
		err = uow.MessageRepository().CreateBulk(ctx, messages)
		assert.NoError(t, err)

		snapshot := &entity.TaskState{
			Id:                    uuid.New(),
			ConversationSessionId: sessionId,
			Intent:                "send_message",
			Confidence:            0.92,
			Status:                "WAITING_USER_INPUT",
			Entities:              map[string]string{"recipient": "Juan"},
			MissingEntities:       []string{"message_content"},
			ClarificationCount:    1,
			TurnCount:             1,
		}
		err = uow.TaskStateRepository().Create(ctx, snapshot)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		persisted, err := uow.MessageRepository().FindAll(ctx,
			specification.ByConversationSessionID{ConversationSessionID: sessionId},
			specification.OrderBy{Field: "created_at", Desc: false},
		)
		assert.NoError(t, err)
		assert.Len(t, persisted, 2)

		t.Log("Successfully persisted a turn in a transaction")
	})
}
