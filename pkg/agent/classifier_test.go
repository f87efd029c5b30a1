package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eneaslivv/livvos/pkg/llm"
)

// fakeProvider returns a canned completion for any prompt.
type fakeProvider struct {
	response string
	err      error
	prompt   string
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func TestParseIntentResponse(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantIntent string
		wantErr    bool
	}{
		{
			name:       "plain json",
			response:   `{"intent": "send_message", "confidence": 0.9, "entities": {"recipient": "Juan"}}`,
			wantIntent: "send_message",
		},
		{
			name:       "fenced json",
			response:   "```json\n{\"intent\": \"create_note\", \"confidence\": 0.8, \"entities\": {}}\n```",
			wantIntent: "create_note",
		},
		{
			name:       "json with surrounding prose",
			response:   "Claro, acá está el resultado: {\"intent\": \"greeting\", \"confidence\": 1.0} espero que sirva",
			wantIntent: "greeting",
		},
		{
			name:       "uppercase intent is lowered",
			response:   `{"intent": "CANCEL", "confidence": 1.0}`,
			wantIntent: "cancel",
		},
		{
			name:       "empty intent defaults to unknown",
			response:   `{"confidence": 0.2}`,
			wantIntent: "unknown",
		},
		{
			name:     "no json at all",
			response: "no entiendo la consigna",
			wantErr:  true,
		},
		{
			name:     "malformed json",
			response: `{"intent": "send_message", "confidence":}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guess, err := parseIntentResponse(tt.response)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnparsableIntent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIntent, guess.Intent)
			assert.NotNil(t, guess.Entities)
		})
	}
}

func TestLLMClassifierPromptIncludesHistory(t *testing.T) {
	provider := &fakeProvider{response: `{"intent": "general_query", "confidence": 0.7}`}
	classifier := NewLLMClassifier(provider, testLogger)

	history := []Turn{
		{Role: RoleUser, Content: "hola"},
		{Role: RoleAssistant, Content: "¡Hola! ¿En qué te puedo ayudar?"},
	}
	guess, err := classifier.Classify(context.Background(), history, "¿qué hora es?")

	require.NoError(t, err)
	assert.Equal(t, IntentGeneralQuery, guess.Intent)
	assert.Contains(t, provider.prompt, "hola")
	assert.Contains(t, provider.prompt, "¿qué hora es?")
}

func TestLLMClassifierProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	classifier := NewLLMClassifier(provider, testLogger)

	_, err := classifier.Classify(context.Background(), nil, "hola")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnparsableIntent)
}

func TestLLMClassifierUnparsableResponse(t *testing.T) {
	provider := &fakeProvider{response: "perdón, no puedo clasificar eso"}
	classifier := NewLLMClassifier(provider, testLogger)

	_, err := classifier.Classify(context.Background(), nil, "hola")

	assert.ErrorIs(t, err, ErrUnparsableIntent)
}
