package integration

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/eneaslivv/livvos/pkg/agent"
	"github.com/eneaslivv/livvos/pkg/llm/factory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ollamaBaseURL = "http://localhost:11434"
	ollamaModel   = "gemma:2b"
)

func requireOllama(t *testing.T) {
	t.Helper()
	client := http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(ollamaBaseURL + "/api/tags")
	if err != nil {
		t.Skipf("Skipping integration test: Ollama not reachable at %s", ollamaBaseURL)
	}
	resp.Body.Close()
}

func TestLiveClassifierSendMessage(t *testing.T) {
	requireOllama(t)

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = ollamaModel
	}

	provider, err := factory.NewLLMProvider("ollama", model, ollamaBaseURL, "")
	require.NoError(t, err)

	classifier := agent.NewLLMClassifier(provider, log.New(io.Discard, "", 0))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	guess, err := classifier.Classify(ctx, nil, "mandale un whatsapp a Juan que llego tarde")
	require.NoError(t, err)

	t.Logf("intent=%s confidence=%.2f entities=%v missing=%v",
		guess.Intent, guess.Confidence, guess.Entities, guess.Missing)

	// Small local models are not deterministic enough to pin exact
	// entities; the intent label is the contract.
	assert.Equal(t, agent.IntentSendMessage, guess.Intent)
	assert.Greater(t, guess.Confidence, 0.0)
}

func TestLiveFullTurn(t *testing.T) {
	requireOllama(t)

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = ollamaModel
	}

	provider, err := factory.NewLLMProvider("ollama", model, ollamaBaseURL, "")
	require.NoError(t, err)

	logger := log.New(io.Discard, "", 0)
	engine := agent.NewEngine(
		agent.NewLLMClassifier(provider, logger),
		agent.NewEntityResolver(staticLookup{}, logger),
		agent.NewClarifier(agent.NewLLMQuestionGenerator(provider, logger), logger),
		agent.NewDispatcher(agent.NewRegistry(), logger),
		agent.NewComposer(agent.NewLLMReplyGenerator(provider, logger), logger),
		"es",
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	sess := agent.NewSession(uuid.New(), uuid.New())
	reply, shouldSpeak := engine.ProcessTurn(ctx, sess, "hola")

	t.Logf("status=%s reply=%q", sess.Status, reply)
	assert.NotEmpty(t, reply)
	assert.True(t, shouldSpeak)
	assert.True(t, sess.Status.Valid())
}

type staticLookup struct{}

func (staticLookup) ResolveCandidates(_ context.Context, _ uuid.UUID, query string) ([]agent.Candidate, error) {
	return []agent.Candidate{{ID: uuid.New(), DisplayName: query}}, nil
}
