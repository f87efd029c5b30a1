package agent

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eneaslivv/livvos/internal/constant"
)

var testLogger = log.New(io.Discard, "", 0)

// scriptedClassifier replays a fixed sequence of classification results,
// one per call.
type scriptedClassifier struct {
	results []classifyResult
	calls   int
}

type classifyResult struct {
	guess *IntentGuess
	err   error
}

func (c *scriptedClassifier) Classify(ctx context.Context, history []Turn, input string) (*IntentGuess, error) {
	if c.calls >= len(c.results) {
		return nil, errors.New("scriptedClassifier: no result left")
	}
	r := c.results[c.calls]
	c.calls++
	return r.guess, r.err
}

// fakeLookup resolves contact queries from a static map.
type fakeLookup struct {
	contacts map[string][]Candidate
	err      error
}

func (f *fakeLookup) ResolveCandidates(ctx context.Context, ownerID uuid.UUID, query string) ([]Candidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.contacts[query], nil
}

type fakeQuestionGen struct {
	question string
	err      error
}

func (f *fakeQuestionGen) GenerateQuestion(ctx context.Context, intent string, known map[string]string, slot string) (string, error) {
	return f.question, f.err
}

type fakeReplyGen struct {
	reply string
	err   error
}

func (f *fakeReplyGen) GenerateReply(ctx context.Context, history []Turn, input string) (string, error) {
	return f.reply, f.err
}

// recordingSkill captures the slots it was dispatched with.
type recordingSkill struct {
	result *ActionResult
	err    error
	slots  map[string]string
	calls  int
}

func (s *recordingSkill) Execute(ctx context.Context, ownerID uuid.UUID, slots map[string]string) (*ActionResult, error) {
	s.calls++
	s.slots = slots
	return s.result, s.err
}

func guess(intent string, entities map[string]string) *IntentGuess {
	if entities == nil {
		entities = map[string]string{}
	}
	return &IntentGuess{Intent: intent, Confidence: 0.9, Entities: entities}
}

func newTestEngine(classifier Classifier, lookup ContactLookup, registry *Registry, replies ReplyGenerator) *Engine {
	if lookup == nil {
		lookup = &fakeLookup{}
	}
	if registry == nil {
		registry = NewRegistry()
	}
	if replies == nil {
		replies = &fakeReplyGen{reply: "charla"}
	}
	return NewEngine(
		classifier,
		NewEntityResolver(lookup, testLogger),
		NewClarifier(&fakeQuestionGen{question: "¿?"}, testLogger),
		NewDispatcher(registry, testLogger),
		NewComposer(replies, testLogger),
		"es",
		testLogger,
	)
}

func newTestSession() *Session {
	return NewSession(uuid.New(), uuid.New())
}

func TestProcessTurnCompleteIntent(t *testing.T) {
	skill := &recordingSkill{result: &ActionResult{Success: true, Message: "Listo, anoté eso."}}
	registry := NewRegistry()
	registry.Register(IntentCreateNote, skill)

	classifier := &scriptedClassifier{results: []classifyResult{
		{guess: guess(IntentCreateNote, map[string]string{SlotNoteContent: "comprar yerba"})},
	}}
	engine := newTestEngine(classifier, nil, registry, nil)
	sess := newTestSession()

	reply, speak := engine.ProcessTurn(context.Background(), sess, "anotá comprar yerba")

	assert.Equal(t, StatusCompleted, sess.Status)
	assert.Equal(t, "Listo, anoté eso.", reply)
	assert.True(t, speak)
	assert.Equal(t, 1, skill.calls)
	assert.Equal(t, "comprar yerba", skill.slots[SlotNoteContent])

	// One user turn plus one assistant turn.
	require.Len(t, sess.Turns, 2)
	assert.Equal(t, RoleUser, sess.Turns[0].Role)
	assert.Equal(t, RoleAssistant, sess.Turns[1].Role)
}

func TestProcessTurnMissingSlotThenFilled(t *testing.T) {
	skill := &recordingSkill{result: &ActionResult{Success: true}}
	registry := NewRegistry()
	registry.Register(IntentSendMessage, skill)

	lookup := &fakeLookup{contacts: map[string][]Candidate{
		"Juan": {{ID: uuid.New(), DisplayName: "Juan Pérez"}},
	}}
	classifier := &scriptedClassifier{results: []classifyResult{
		{guess: guess(IntentSendMessage, map[string]string{SlotRecipient: "Juan"})},
		{guess: guess(IntentSendMessage, map[string]string{
			SlotRecipient:      "Juan",
			SlotMessageContent: "llego tarde",
		})},
	}}
	engine := newTestEngine(classifier, lookup, registry, nil)
	sess := newTestSession()

	// Turn 1: message content missing. The assistant asks the canned
	// question; ambiguity of the recipient is carried but not acted on.
	reply, _ := engine.ProcessTurn(context.Background(), sess, "mandale un mensaje a Juan")

	assert.Equal(t, StatusWaitingUserInput, sess.Status)
	assert.Equal(t, "¿Qué querés que diga el mensaje?", reply)
	assert.Equal(t, 1, sess.ClarificationCount)
	assert.Equal(t, []string{SlotMessageContent}, sess.MissingEntities)
	assert.Equal(t, []string{SlotRecipient}, sess.UnresolvedEntities)
	assert.Equal(t, 0, skill.calls)

	// Turn 2: slot filled, recipient resolves to a single contact and
	// the resolved display name wins over the raw one at dispatch.
	_, _ = engine.ProcessTurn(context.Background(), sess, "que llego tarde")

	assert.Equal(t, StatusCompleted, sess.Status)
	require.Equal(t, 1, skill.calls)
	assert.Equal(t, "Juan Pérez", skill.slots[SlotRecipient])
	assert.Equal(t, "llego tarde", skill.slots[SlotMessageContent])
}

func TestProcessTurnAmbiguousContact(t *testing.T) {
	registry := NewRegistry()
	registry.Register(IntentSendMessage, &recordingSkill{result: &ActionResult{Success: true}})

	lookup := &fakeLookup{contacts: map[string][]Candidate{
		"Juan": {
			{ID: uuid.New(), DisplayName: "Juan Pérez"},
			{ID: uuid.New(), DisplayName: "Juan López"},
		},
	}}
	classifier := &scriptedClassifier{results: []classifyResult{
		{guess: guess(IntentSendMessage, map[string]string{
			SlotRecipient:      "Juan",
			SlotMessageContent: "hola",
		})},
	}}
	engine := newTestEngine(classifier, lookup, registry, nil)
	sess := newTestSession()

	reply, _ := engine.ProcessTurn(context.Background(), sess, "mandale hola a Juan")

	assert.Equal(t, StatusWaitingUserInput, sess.Status)
	assert.Contains(t, reply, "Juan Pérez")
	assert.Contains(t, reply, "Juan López")
	assert.True(t, sess.NeedsDisambiguation)
	assert.Equal(t, []string{SlotRecipient}, sess.UnresolvedEntities)
	// The raw extraction is never touched by resolution.
	assert.Equal(t, "Juan", sess.Entities[SlotRecipient])
}

func TestProcessTurnContactNotFound(t *testing.T) {
	registry := NewRegistry()
	registry.Register(IntentSendMessage, &recordingSkill{result: &ActionResult{Success: true}})

	classifier := &scriptedClassifier{results: []classifyResult{
		{guess: guess(IntentSendMessage, map[string]string{
			SlotRecipient:      "Zutano",
			SlotMessageContent: "hola",
		})},
	}}
	engine := newTestEngine(classifier, &fakeLookup{}, registry, nil)
	sess := newTestSession()

	reply, _ := engine.ProcessTurn(context.Background(), sess, "mandale hola a Zutano")

	assert.Equal(t, StatusWaitingUserInput, sess.Status)
	assert.Contains(t, reply, "Zutano")
}

func TestProcessTurnClarificationBudgetExhausted(t *testing.T) {
	classifier := &scriptedClassifier{results: []classifyResult{
		{guess: guess(IntentSendMessage, map[string]string{})},
		{guess: guess(IntentSendMessage, map[string]string{})},
		{guess: guess(IntentSendMessage, map[string]string{})},
		{guess: guess(IntentSendMessage, map[string]string{})},
	}}
	engine := newTestEngine(classifier, nil, nil, nil)
	sess := newTestSession()

	for i := 0; i < 3; i++ {
		_, _ = engine.ProcessTurn(context.Background(), sess, "mandá un mensaje")
		assert.Equal(t, StatusWaitingUserInput, sess.Status)
	}
	assert.Equal(t, 3, sess.ClarificationCount)

	reply, _ := engine.ProcessTurn(context.Background(), sess, "mandá un mensaje")

	assert.Equal(t, StatusCancelled, sess.Status)
	assert.Equal(t, constant.PhraseStartOver, reply)
}

func TestProcessTurnCancelClearsSlotState(t *testing.T) {
	classifier := &scriptedClassifier{results: []classifyResult{
		{guess: guess(IntentSendMessage, map[string]string{SlotRecipient: "Juan"})},
		{guess: guess(IntentCancel, nil)},
	}}
	engine := newTestEngine(classifier, nil, nil, nil)
	sess := newTestSession()

	_, _ = engine.ProcessTurn(context.Background(), sess, "mandale un mensaje a Juan")
	require.Equal(t, StatusWaitingUserInput, sess.Status)

	reply, _ := engine.ProcessTurn(context.Background(), sess, "no, dejá")

	assert.Equal(t, StatusCancelled, sess.Status)
	assert.Equal(t, constant.PhraseCancelled, reply)
	assert.Nil(t, sess.Intent)
	assert.Empty(t, sess.Entities)
	assert.Empty(t, sess.MissingEntities)
	assert.Zero(t, sess.ClarificationCount)
}

func TestProcessTurnConfirmDispatchesPendingIntent(t *testing.T) {
	skill := &recordingSkill{result: &ActionResult{Success: true}}
	registry := NewRegistry()
	registry.Register(IntentSendMessage, skill)

	lookup := &fakeLookup{contacts: map[string][]Candidate{
		"Juan": {
			{ID: uuid.New(), DisplayName: "Juan Pérez"},
			{ID: uuid.New(), DisplayName: "Juan López"},
		},
	}}
	classifier := &scriptedClassifier{results: []classifyResult{
		{guess: guess(IntentSendMessage, map[string]string{
			SlotRecipient:      "Juan",
			SlotMessageContent: "hola",
		})},
		{guess: guess(IntentConfirm, nil)},
	}}
	engine := newTestEngine(classifier, lookup, registry, nil)
	sess := newTestSession()

	_, _ = engine.ProcessTurn(context.Background(), sess, "mandale hola a Juan")
	require.Equal(t, StatusWaitingUserInput, sess.Status)

	// Confirming dispatches the still-pending send_message intent.
	_, _ = engine.ProcessTurn(context.Background(), sess, "sí, dale")

	assert.Equal(t, StatusCompleted, sess.Status)
	assert.Equal(t, 1, skill.calls)
	assert.Equal(t, IntentSendMessage, sess.Intent.Intent)
}

func TestProcessTurnEmptyInput(t *testing.T) {
	classifier := &scriptedClassifier{}
	engine := newTestEngine(classifier, nil, nil, &fakeReplyGen{reply: "¿Sí?"})
	sess := newTestSession()

	_, _ = engine.ProcessTurn(context.Background(), sess, "")

	assert.Equal(t, StatusIdle, sess.Status)
	assert.Equal(t, 0, classifier.calls)
	require.NotNil(t, sess.Intent)
	assert.Equal(t, IntentUnknown, sess.Intent.Intent)
	assert.Zero(t, sess.Intent.Confidence)
}

func TestProcessTurnUnparsableClassification(t *testing.T) {
	classifier := &scriptedClassifier{results: []classifyResult{
		{err: ErrUnparsableIntent},
	}}
	engine := newTestEngine(classifier, nil, nil, &fakeReplyGen{reply: "Contame más."})
	sess := newTestSession()

	reply, _ := engine.ProcessTurn(context.Background(), sess, "mmm eh")

	// Degrades to a low-confidence general query instead of failing.
	require.NotNil(t, sess.Intent)
	assert.Equal(t, IntentGeneralQuery, sess.Intent.Intent)
	assert.InDelta(t, 0.5, sess.Intent.Confidence, 0.001)
	assert.Equal(t, "Contame más.", reply)
	assert.NotEqual(t, StatusFailed, sess.Status)
}

func TestProcessTurnClassifierServiceError(t *testing.T) {
	classifier := &scriptedClassifier{results: []classifyResult{
		{err: errors.New("llm unreachable")},
	}}
	engine := newTestEngine(classifier, nil, nil, nil)
	sess := newTestSession()

	reply, _ := engine.ProcessTurn(context.Background(), sess, "hola")

	assert.Equal(t, StatusFailed, sess.Status)
	assert.Contains(t, reply, "llm unreachable")
	assert.Equal(t, IntentUnknown, sess.Intent.Intent)
}

func TestProcessTurnGreeting(t *testing.T) {
	classifier := &scriptedClassifier{results: []classifyResult{
		{guess: guess(IntentGreeting, nil)},
	}}
	engine := newTestEngine(classifier, nil, nil, nil)
	sess := newTestSession()

	reply, speak := engine.ProcessTurn(context.Background(), sess, "hola")

	assert.Equal(t, constant.PhraseGreeting, reply)
	assert.True(t, speak)
}

func TestProcessTurnGeneralQueryUsesHistory(t *testing.T) {
	classifier := &scriptedClassifier{results: []classifyResult{
		{guess: guess(IntentGeneralQuery, nil)},
	}}
	engine := newTestEngine(classifier, nil, nil, &fakeReplyGen{reply: "El cielo es azul."})
	sess := newTestSession()

	reply, _ := engine.ProcessTurn(context.Background(), sess, "¿de qué color es el cielo?")

	assert.Equal(t, "El cielo es azul.", reply)
}

func TestProcessTurnDirectIntentSkipsSlotCheck(t *testing.T) {
	skill := &recordingSkill{result: &ActionResult{Success: true, Message: "Abriendo Spotify."}}
	registry := NewRegistry()
	registry.Register(IntentOpenApp, skill)

	classifier := &scriptedClassifier{results: []classifyResult{
		{guess: guess(IntentOpenApp, map[string]string{SlotAppName: "Spotify"})},
	}}
	engine := newTestEngine(classifier, nil, registry, nil)
	sess := newTestSession()

	reply, _ := engine.ProcessTurn(context.Background(), sess, "abrí Spotify")

	assert.Equal(t, StatusCompleted, sess.Status)
	assert.Equal(t, "Abriendo Spotify.", reply)
	assert.Zero(t, sess.ClarificationCount)
}

func TestProcessTurnNoHandlerForIntent(t *testing.T) {
	classifier := &scriptedClassifier{results: []classifyResult{
		{guess: guess(IntentSetTimer, map[string]string{SlotDuration: "5 minutos"})},
	}}
	engine := newTestEngine(classifier, nil, NewRegistry(), nil)
	sess := newTestSession()

	reply, _ := engine.ProcessTurn(context.Background(), sess, "poné un timer de 5 minutos")

	assert.Equal(t, StatusFailed, sess.Status)
	assert.Contains(t, reply, "no handler for intent: set_timer")
}

func TestProcessTurnSkillPanicIsContained(t *testing.T) {
	registry := NewRegistry()
	registry.Register(IntentSetTimer, SkillFunc(func(ctx context.Context, ownerID uuid.UUID, slots map[string]string) (*ActionResult, error) {
		panic("boom")
	}))
	classifier := &scriptedClassifier{results: []classifyResult{
		{guess: guess(IntentSetTimer, map[string]string{SlotDuration: "5 minutos"})},
	}}
	engine := newTestEngine(classifier, nil, registry, nil)
	sess := newTestSession()

	_, _ = engine.ProcessTurn(context.Background(), sess, "poné un timer")

	assert.Equal(t, StatusFailed, sess.Status)
	assert.Contains(t, sess.ActionError, "skill panicked")
}

func TestProcessTurnAlwaysTerminalStatus(t *testing.T) {
	// Whatever happens in a turn, the session ends in a valid state
	// with a non-empty reply to speak.
	cases := []classifyResult{
		{guess: guess(IntentSendMessage, map[string]string{})},
		{guess: guess(IntentGreeting, nil)},
		{guess: guess(IntentCancel, nil)},
		{err: errors.New("down")},
		{err: ErrUnparsableIntent},
	}
	for _, c := range cases {
		classifier := &scriptedClassifier{results: []classifyResult{c}}
		engine := newTestEngine(classifier, nil, nil, nil)
		sess := newTestSession()

		reply, _ := engine.ProcessTurn(context.Background(), sess, "algo")

		assert.NotEmpty(t, reply)
		assert.True(t, sess.Status.Valid())
	}
}
