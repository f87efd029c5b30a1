package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/eneaslivv/livvos/internal/constant"
)

// QuestionGenerator phrases a natural clarification question for a slot
// the catalog has no canned entry for. May fail; the clarifier then
// falls back to a hard-coded question.
type QuestionGenerator interface {
	GenerateQuestion(ctx context.Context, intent string, knownSlots map[string]string, missingSlot string) (string, error)
}

// clarificationCatalog maps slot names to canned questions, asked
// verbatim. One question per turn, for the first missing slot.
var clarificationCatalog = map[string]string{
	SlotRecipient:      "¿A quién le querés enviar el mensaje?",
	SlotMessageContent: "¿Qué querés que diga el mensaje?",
	SlotPlatform:       "¿Por qué plataforma? ¿WhatsApp, Telegram, o SMS?",
	SlotReminderText:   "¿Qué querés que te recuerde?",
	SlotDatetime:       "¿Cuándo querés que te avise?",
	SlotNoteContent:    "¿Qué querés anotar?",
	SlotAppName:        "¿Qué aplicación querés abrir?",
	SlotURL:            "¿A qué sitio querés ir?",
	SlotQuery:          "¿Qué querés buscar?",
	SlotDuration:       "¿De cuánto tiempo el temporizador?",
}

// Clarifier asks the user for missing or ambiguous slot values, bounded
// by the session's clarification budget.
type Clarifier struct {
	generator QuestionGenerator
	logger    *log.Logger
}

// NewClarifier creates a clarifier with the given fallback generator.
func NewClarifier(generator QuestionGenerator, logger *log.Logger) *Clarifier {
	return &Clarifier{generator: generator, logger: logger}
}

// Clarify picks the next question, emits it as the response and leaves
// the session waiting for user input. Once the clarification budget is
// exhausted it gives up and cancels the task instead.
func (c *Clarifier) Clarify(ctx context.Context, sess *Session) {
	if sess.ClarificationCount >= sess.MaxClarifications {
		c.logger.Printf("[CLARIFY] Budget exhausted (%d), cancelling", sess.ClarificationCount)
		sess.ResponseText = constant.PhraseStartOver
		sess.Status = StatusCancelled
		sess.ShouldSpeak = true
		sess.AppendTurn(RoleAssistant, constant.PhraseStartOver)
		return
	}

	question := c.nextQuestion(ctx, sess)
	if question == "" {
		question = constant.PhraseMoreDetails
	}

	sess.ResponseText = question
	sess.LastClarification = question
	sess.ClarificationCount++
	sess.Status = StatusWaitingUserInput
	sess.ShouldSpeak = true
	sess.AppendTurn(RoleAssistant, question)
}

// nextQuestion decides what to ask about: disambiguation prompts first,
// then the first missing slot.
func (c *Clarifier) nextQuestion(ctx context.Context, sess *Session) string {
	if len(sess.DisambiguationOptions) > 0 {
		return sess.DisambiguationOptions[0].Message
	}

	if len(sess.MissingEntities) == 0 {
		return ""
	}
	slot := sess.MissingEntities[0]

	if canned, ok := clarificationCatalog[slot]; ok {
		return canned
	}

	intent := IntentUnknown
	if sess.Intent != nil {
		intent = sess.Intent.Intent
	}
	question, err := c.generator.GenerateQuestion(ctx, intent, sess.Entities, slot)
	if err != nil {
		c.logger.Printf("[CLARIFY] Question generation failed for %q: %v", slot, err)
		return fmt.Sprintf(constant.PhraseSlotFallbackFmt, slot)
	}
	return question
}
