package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/eneaslivv/livvos/internal/constant"
)

func TestComposeSuccessPrefersSkillMessage(t *testing.T) {
	composer := NewComposer(&fakeReplyGen{}, testLogger)
	sess := NewSession(uuid.New(), uuid.New())
	sess.Intent = &IntentGuess{Intent: IntentSendMessage}
	sess.Status = StatusCompleted
	sess.ActionResult = &ActionResult{Success: true, Message: "Le mandé el mensaje a Juan Pérez."}

	composer.Compose(context.Background(), sess)

	assert.Equal(t, "Le mandé el mensaje a Juan Pérez.", sess.ResponseText)
	assert.True(t, sess.ShouldSpeak)
}

func TestComposeSuccessFallsBackToIntentPhrase(t *testing.T) {
	composer := NewComposer(&fakeReplyGen{}, testLogger)
	sess := NewSession(uuid.New(), uuid.New())
	sess.Intent = &IntentGuess{Intent: IntentSetTimer}
	sess.Status = StatusCompleted
	sess.ActionResult = &ActionResult{Success: true}

	composer.Compose(context.Background(), sess)

	assert.Equal(t, "Temporizador activado.", sess.ResponseText)
}

func TestComposeFailureEmbedsError(t *testing.T) {
	composer := NewComposer(&fakeReplyGen{}, testLogger)
	sess := NewSession(uuid.New(), uuid.New())
	sess.Intent = &IntentGuess{Intent: IntentSendMessage}
	sess.Status = StatusFailed
	sess.ActionError = "publish message request: timeout"

	composer.Compose(context.Background(), sess)

	assert.Equal(t, fmt.Sprintf(constant.PhraseFailureFmt, "publish message request: timeout"), sess.ResponseText)
}

func TestComposeFailureWithoutError(t *testing.T) {
	composer := NewComposer(&fakeReplyGen{}, testLogger)
	sess := NewSession(uuid.New(), uuid.New())
	sess.Status = StatusFailed

	composer.Compose(context.Background(), sess)

	assert.Contains(t, sess.ResponseText, constant.PhraseSomethingWrong)
}

func TestComposeGeneralQueryDegradesOnError(t *testing.T) {
	composer := NewComposer(&fakeReplyGen{err: errors.New("llm down")}, testLogger)
	sess := NewSession(uuid.New(), uuid.New())
	sess.Intent = &IntentGuess{Intent: IntentGeneralQuery}
	sess.Status = StatusIntentDetected
	sess.CurrentInput = "contame un chiste"

	composer.Compose(context.Background(), sess)

	assert.Equal(t, constant.PhraseRepeatPlease, sess.ResponseText)
}

func TestComposeIsIdempotent(t *testing.T) {
	composer := NewComposer(&fakeReplyGen{}, testLogger)
	sess := NewSession(uuid.New(), uuid.New())
	sess.Status = StatusWaitingUserInput
	sess.ResponseText = "¿A quién le querés enviar el mensaje?"
	sess.AppendTurn(RoleAssistant, sess.ResponseText)
	turns := len(sess.Turns)

	composer.Compose(context.Background(), sess)
	composer.Compose(context.Background(), sess)

	assert.Equal(t, "¿A quién le querés enviar el mensaje?", sess.ResponseText)
	assert.Len(t, sess.Turns, turns)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantInput string
		wantLang  string
	}{
		{name: "trims whitespace", input: "  mandale hola a Juan  ", wantInput: "mandale hola a Juan", wantLang: "es"},
		{name: "english marker flips language", input: "hello, open Spotify", wantInput: "hello, open Spotify", wantLang: "en"},
		{name: "spanish stays default", input: "abrí Spotify", wantInput: "abrí Spotify", wantLang: "es"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := NewSession(uuid.New(), uuid.New())
			sess.AppendTurn(RoleUser, tt.input)

			Normalize(sess, "es")

			assert.Equal(t, tt.wantInput, sess.CurrentInput)
			assert.Equal(t, tt.wantLang, sess.InputLanguage)
			assert.Equal(t, 1, sess.TurnCount)
		})
	}
}

func TestNormalizeNoUserTurn(t *testing.T) {
	sess := NewSession(uuid.New(), uuid.New())

	Normalize(sess, "es")

	assert.Empty(t, sess.CurrentInput)
	assert.Zero(t, sess.TurnCount)
}
