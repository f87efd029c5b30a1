package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/eneaslivv/livvos/internal/constant"
)

// ReplyGenerator produces a free-form conversational reply for general
// queries. May fail; Compose then degrades to a canned phrase.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, history []Turn, input string) (string, error)
}

// successPhrases are per-intent canned confirmations, used when the
// skill did not provide its own message.
var successPhrases = map[string]string{
	IntentSendMessage: "Listo, mensaje enviado.",
	IntentSetReminder: "Dale, te voy a recordar.",
	IntentCreateNote:  "Nota guardada.",
	IntentOpenApp:     "Abriendo...",
	IntentOpenURL:     "Abriendo la página...",
	IntentSearchWeb:   "Acá está lo que encontré.",
	IntentSetTimer:    "Temporizador activado.",
}

// Composer turns the final task status into user-facing reply text.
type Composer struct {
	replies ReplyGenerator
	logger  *log.Logger
}

// NewComposer creates a composer with the given conversational fallback.
func NewComposer(replies ReplyGenerator, logger *log.Logger) *Composer {
	return &Composer{replies: replies, logger: logger}
}

// Compose sets the session's response text and appends it to the turn
// history. When an upstream step (cancel, clarify, a system action)
// already decided the reply, Compose passes it through untouched:
// running it twice never appends a duplicate.
func (c *Composer) Compose(ctx context.Context, sess *Session) {
	if sess.ResponseText != "" {
		return
	}

	intent := IntentUnknown
	if sess.Intent != nil {
		intent = sess.Intent.Intent
	}

	var text string
	switch {
	case sess.Status == StatusCompleted && sess.ActionResult != nil:
		text = c.successText(intent, sess.ActionResult)

	case sess.Status == StatusFailed:
		errMsg := sess.ActionError
		if errMsg == "" {
			errMsg = constant.PhraseSomethingWrong
		}
		text = fmt.Sprintf(constant.PhraseFailureFmt, errMsg)

	case sess.Status == StatusCancelled:
		text = constant.PhraseCancelled

	case intent == IntentGeneralQuery || intent == IntentUnknown:
		text = c.conversationalText(ctx, sess)

	case intent == IntentGreeting:
		text = constant.PhraseGreeting

	default:
		text = constant.PhraseGenericDone
	}

	sess.ResponseText = text
	sess.ShouldSpeak = true
	sess.AppendTurn(RoleAssistant, text)
}

func (c *Composer) successText(intent string, result *ActionResult) string {
	if result.Message != "" {
		return result.Message
	}
	if phrase, ok := successPhrases[intent]; ok {
		return phrase
	}
	return constant.PhraseGenericSuccess
}

func (c *Composer) conversationalText(ctx context.Context, sess *Session) string {
	reply, err := c.replies.GenerateReply(ctx, sess.PriorTurns(historyWindow), sess.CurrentInput)
	if err != nil {
		c.logger.Printf("[COMPOSE] Conversational reply failed: %v", err)
		return constant.PhraseRepeatPlease
	}
	return reply
}
