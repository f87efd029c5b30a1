package agent

import (
	"context"
	"errors"
	"log"

	"github.com/eneaslivv/livvos/internal/constant"
)

// historyWindow bounds how many turns are handed to external services.
const historyWindow = 10

// Engine sequences one dialogue turn:
// Normalize -> Classify -> route -> CheckSlots -> (Resolve | Clarify | Dispatch) -> Compose.
// It holds no mutable state of its own; everything lives on the Session,
// so sessions can be processed in parallel as long as each one is
// handled by a single goroutine per turn.
type Engine struct {
	classifier Classifier
	resolver   *EntityResolver
	clarifier  *Clarifier
	dispatcher *Dispatcher
	composer   *Composer
	schema     SlotSchema

	defaultLanguage string
	directIntents   map[string]bool
	logger          *log.Logger
}

// NewEngine wires the per-turn pipeline. defaultLanguage is the
// assistant's primary locale tag ("es" unless configured otherwise).
func NewEngine(
	classifier Classifier,
	resolver *EntityResolver,
	clarifier *Clarifier,
	dispatcher *Dispatcher,
	composer *Composer,
	defaultLanguage string,
	logger *log.Logger,
) *Engine {
	return &Engine{
		classifier: classifier,
		resolver:   resolver,
		clarifier:  clarifier,
		dispatcher: dispatcher,
		composer:   composer,
		schema:     DefaultSchema(),
		// Direct system actions skip slot negotiation entirely; their
		// entity extraction is embedded in the classification result.
		directIntents:   map[string]bool{IntentOpenApp: true},
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}

// ProcessTurn runs one full turn for the given utterance and returns the
// reply text plus whether it should be spoken aloud. All failures end in
// a terminal status with a non-empty reply; nothing propagates as an
// error past the engine boundary.
func (e *Engine) ProcessTurn(ctx context.Context, sess *Session, utterance string) (string, bool) {
	if utterance != "" {
		sess.AppendTurn(RoleUser, utterance)
	}
	sess.ResponseText = ""

	Normalize(sess, e.defaultLanguage)
	e.classify(ctx, sess)

	if sess.Status != StatusFailed && sess.Status != StatusIdle {
		e.route(ctx, sess)
	}

	e.composer.Compose(ctx, sess)
	return sess.ResponseText, sess.ShouldSpeak
}

// classify invokes the classifier and applies the degradation policy:
// empty input skips the call, an unparsable reply degrades to a
// low-confidence general_query, and a service failure fails the turn.
func (e *Engine) classify(ctx context.Context, sess *Session) {
	if sess.CurrentInput == "" {
		sess.Intent = &IntentGuess{Intent: IntentUnknown, Confidence: 0, Entities: map[string]string{}}
		sess.Status = StatusIdle
		return
	}

	guess, err := e.classifier.Classify(ctx, sess.PriorTurns(historyWindow), sess.CurrentInput)
	switch {
	case err == nil:
		if guess.Intent == IntentConfirm {
			// A bare confirmation re-arms whatever intent is pending
			// instead of replacing it. Known simplification: nothing
			// verifies an action is actually pending, so a stray "sí"
			// can re-dispatch a stale intent or fail on an absent one.
			sess.Status = StatusReadyToExecute
			return
		}
		sess.Intent = guess
		sess.Entities = guess.Entities
		sess.MissingEntities = guess.Missing
		sess.NeedsDisambiguation = false
		sess.DisambiguationOptions = nil
		sess.Status = StatusIntentDetected

	case errors.Is(err, ErrUnparsableIntent):
		sess.Intent = &IntentGuess{
			Intent:     IntentGeneralQuery,
			Confidence: 0.5,
			Entities:   map[string]string{},
			Reasoning:  "could not parse intent response",
		}
		sess.Status = StatusIntentDetected

	default:
		sess.Intent = &IntentGuess{Intent: IntentUnknown, Confidence: 0, Entities: map[string]string{}}
		sess.ActionError = err.Error()
		sess.Status = StatusFailed
	}
}

// route branches on the detected intent, in fixed priority order.
func (e *Engine) route(ctx context.Context, sess *Session) {
	intent := IntentUnknown
	if sess.Intent != nil {
		intent = sess.Intent.Intent
	}

	switch {
	case intent == IntentCancel:
		e.cancel(sess)

	case sess.Status == StatusReadyToExecute:
		// Set by classify when the user confirmed the pending intent.
		e.dispatcher.Dispatch(ctx, sess)

	case e.directIntents[intent]:
		e.dispatcher.Dispatch(ctx, sess)

	case intent == IntentGeneralQuery || intent == IntentUnknown || intent == IntentGreeting:
		// Straight to compose; these intents never require slots.

	default:
		e.checkSlots(ctx, sess)
	}
}

// checkSlots verifies completeness and continues to clarification,
// resolution or dispatch. Missing required slots take priority over
// ambiguous ones; unresolved slots are carried forward but not acted on
// until everything required is present.
func (e *Engine) checkSlots(ctx context.Context, sess *Session) {
	CheckSlots(sess, e.schema)

	switch {
	case len(sess.MissingEntities) > 0:
		e.clarifier.Clarify(ctx, sess)

	case len(sess.UnresolvedEntities) > 0:
		e.resolve(ctx, sess)

	default:
		e.dispatcher.Dispatch(ctx, sess)
	}
}

// resolve attempts entity resolution and either proceeds to dispatch or
// falls back to clarification, keeping UnresolvedEntities populated so a
// retry after the user answers re-attempts resolution.
func (e *Engine) resolve(ctx context.Context, sess *Session) {
	e.resolver.Resolve(ctx, sess)

	if sess.NeedsDisambiguation {
		sess.Status = StatusNeedsClarification
		e.clarifier.Clarify(ctx, sess)
		return
	}
	sess.Status = StatusReadyToExecute
	e.dispatcher.Dispatch(ctx, sess)
}

// cancel unconditionally abandons the current task.
func (e *Engine) cancel(sess *Session) {
	sess.Intent = nil
	sess.Status = StatusCancelled
	sess.ClearSlotState()
	sess.ResponseText = constant.PhraseCancelled
	sess.ShouldSpeak = true
	sess.AppendTurn(RoleAssistant, constant.PhraseCancelled)
}
