package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/eneaslivv/livvos/internal/constant"
	"github.com/eneaslivv/livvos/pkg/llm"
)

// ErrUnparsableIntent signals that the classification service replied,
// but with data that cannot be interpreted as an IntentGuess. The engine
// degrades this to a low-confidence general_query instead of failing the
// turn.
var ErrUnparsableIntent = errors.New("intent response is not valid JSON")

// Classifier turns recent history plus the latest input into a
// structured intent guess. Implementations may fail; the engine owns the
// degradation policy.
type Classifier interface {
	Classify(ctx context.Context, history []Turn, input string) (*IntentGuess, error)
}

// LLMClassifier resolves intents with a pure LLM call, temperature 0
// for consistent classification.
type LLMClassifier struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

var _ Classifier = &LLMClassifier{}

// NewLLMClassifier creates a classifier backed by the given provider.
func NewLLMClassifier(provider llm.LLMProvider, logger *log.Logger) *LLMClassifier {
	return &LLMClassifier{provider: provider, logger: logger}
}

func (c *LLMClassifier) Classify(ctx context.Context, history []Turn, input string) (*IntentGuess, error) {
	prompt := buildClassifyPrompt(history, input)

	response, err := c.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return nil, fmt.Errorf("intent classification: %w", err)
	}

	guess, err := parseIntentResponse(response)
	if err != nil {
		c.logger.Printf("[INTENT] Unparsable response: %v", err)
		return nil, err
	}

	c.logger.Printf("[INTENT] Detected: %s (confidence %.2f, %d entities)",
		guess.Intent, guess.Confidence, len(guess.Entities))
	return guess, nil
}

func buildClassifyPrompt(history []Turn, input string) string {
	var prompt strings.Builder

	prompt.WriteString(constant.IntentDetectionPrompt)
	prompt.WriteString("\n\nHistorial reciente:\n")
	for _, turn := range history {
		// Truncate long turns to keep the prompt small.
		content := turn.Content
		if len(content) > 200 {
			content = content[:200] + "..."
		}
		prompt.WriteString(strings.ToUpper(turn.Role))
		prompt.WriteString(": ")
		prompt.WriteString(content)
		prompt.WriteString("\n")
	}

	prompt.WriteString("\nÚltimo mensaje del usuario: \"")
	prompt.WriteString(input)
	prompt.WriteString("\"\n\nDetectá la intención y entidades. Respondé SOLO en JSON válido.")

	return prompt.String()
}

// parseIntentResponse extracts an IntentGuess from an LLM reply, which
// may be wrapped in markdown fences or surrounding prose.
func parseIntentResponse(response string) (*IntentGuess, error) {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	jsonContent := extractJSON(cleaned)
	if jsonContent == "" {
		return nil, ErrUnparsableIntent
	}

	var raw struct {
		Intent     string            `json:"intent"`
		Confidence float64           `json:"confidence"`
		Entities   map[string]string `json:"entities"`
		Missing    []string          `json:"missing"`
		Reasoning  string            `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(jsonContent), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableIntent, err)
	}

	guess := &IntentGuess{
		Intent:     strings.ToLower(strings.TrimSpace(raw.Intent)),
		Confidence: raw.Confidence,
		Entities:   raw.Entities,
		Missing:    raw.Missing,
		Reasoning:  raw.Reasoning,
	}
	if guess.Intent == "" {
		guess.Intent = IntentUnknown
	}
	if guess.Entities == nil {
		guess.Entities = map[string]string{}
	}
	return guess, nil
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}
	return response[startIdx : endIdx+1]
}
