package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/eneaslivv/livvos/internal/constant"
)

func TestClarifyAsksFirstMissingSlot(t *testing.T) {
	clarifier := NewClarifier(&fakeQuestionGen{}, testLogger)
	sess := NewSession(uuid.New(), uuid.New())
	sess.Intent = &IntentGuess{Intent: IntentSendMessage}
	sess.MissingEntities = []string{SlotRecipient, SlotMessageContent}

	clarifier.Clarify(context.Background(), sess)

	assert.Equal(t, "¿A quién le querés enviar el mensaje?", sess.ResponseText)
	assert.Equal(t, StatusWaitingUserInput, sess.Status)
	assert.Equal(t, 1, sess.ClarificationCount)
	assert.Equal(t, sess.ResponseText, sess.LastClarification)
	assert.Equal(t, RoleAssistant, sess.Turns[len(sess.Turns)-1].Role)
}

func TestClarifyPrefersDisambiguation(t *testing.T) {
	clarifier := NewClarifier(&fakeQuestionGen{}, testLogger)
	sess := NewSession(uuid.New(), uuid.New())
	sess.Intent = &IntentGuess{Intent: IntentSendMessage}
	sess.MissingEntities = []string{SlotMessageContent}
	sess.DisambiguationOptions = []DisambiguationOption{
		{Entity: SlotRecipient, Query: "Juan", Message: "Encontré varios contactos: Juan Pérez, Juan López. ¿A cuál te referís?"},
	}

	clarifier.Clarify(context.Background(), sess)

	assert.Equal(t, sess.DisambiguationOptions[0].Message, sess.ResponseText)
}

func TestClarifyGeneratorFallback(t *testing.T) {
	// A slot outside the canned catalog goes through the generator; if
	// that fails too, a formatted fallback question is used.
	t.Run("generator succeeds", func(t *testing.T) {
		clarifier := NewClarifier(&fakeQuestionGen{question: "¿Cada cuánto lo repito?"}, testLogger)
		sess := NewSession(uuid.New(), uuid.New())
		sess.Intent = &IntentGuess{Intent: IntentSetReminder}
		sess.MissingEntities = []string{"recurrence"}

		clarifier.Clarify(context.Background(), sess)

		assert.Equal(t, "¿Cada cuánto lo repito?", sess.ResponseText)
	})

	t.Run("generator fails", func(t *testing.T) {
		clarifier := NewClarifier(&fakeQuestionGen{err: errors.New("llm down")}, testLogger)
		sess := NewSession(uuid.New(), uuid.New())
		sess.Intent = &IntentGuess{Intent: IntentSetReminder}
		sess.MissingEntities = []string{"recurrence"}

		clarifier.Clarify(context.Background(), sess)

		assert.Contains(t, sess.ResponseText, "recurrence")
		assert.Equal(t, StatusWaitingUserInput, sess.Status)
	})
}

func TestClarifyBudgetExhausted(t *testing.T) {
	clarifier := NewClarifier(&fakeQuestionGen{}, testLogger)
	sess := NewSession(uuid.New(), uuid.New())
	sess.Intent = &IntentGuess{Intent: IntentSendMessage}
	sess.MissingEntities = []string{SlotRecipient}
	sess.ClarificationCount = DefaultMaxClarifications

	clarifier.Clarify(context.Background(), sess)

	assert.Equal(t, constant.PhraseStartOver, sess.ResponseText)
	assert.Equal(t, StatusCancelled, sess.Status)
	// The counter is not incremented past the budget.
	assert.Equal(t, DefaultMaxClarifications, sess.ClarificationCount)
}
