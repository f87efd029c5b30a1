package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/eneaslivv/livvos/internal/constant"
	"github.com/eneaslivv/livvos/pkg/llm"
)

// LLMQuestionGenerator phrases clarification questions for slots that
// have no canned catalog entry.
type LLMQuestionGenerator struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewLLMQuestionGenerator(provider llm.LLMProvider, logger *log.Logger) *LLMQuestionGenerator {
	return &LLMQuestionGenerator{provider: provider, logger: logger}
}

func (g *LLMQuestionGenerator) GenerateQuestion(ctx context.Context, intent string, knownSlots map[string]string, missingSlot string) (string, error) {
	prompt := fmt.Sprintf(constant.ClarificationQuestionPrompt, intent, knownSlots, missingSlot)

	reply, err := g.provider.Generate(ctx, prompt, llm.WithTemperature(0.7))
	if err != nil {
		g.logger.Printf("question generation failed for slot %q: %v", missingSlot, err)
		return "", err
	}

	question := strings.TrimSpace(reply)
	if question == "" {
		return "", fmt.Errorf("empty question for slot %q", missingSlot)
	}
	return question, nil
}

// LLMReplyGenerator produces free-form conversational answers for
// general queries, framed by a fixed system prompt.
type LLMReplyGenerator struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewLLMReplyGenerator(provider llm.LLMProvider, logger *log.Logger) *LLMReplyGenerator {
	return &LLMReplyGenerator{provider: provider, logger: logger}
}

func (g *LLMReplyGenerator) GenerateReply(ctx context.Context, history []Turn, input string) (string, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: constant.MessageRoleSystem, Content: constant.ConversationalReplyPrompt})
	for _, t := range history {
		messages = append(messages, llm.Message{Role: t.Role, Content: t.Content})
	}
	messages = append(messages, llm.Message{Role: constant.MessageRoleUser, Content: input})

	reply, err := g.provider.Chat(ctx, messages, llm.WithTemperature(0.7))
	if err != nil {
		g.logger.Printf("conversational reply failed: %v", err)
		return "", err
	}
	return strings.TrimSpace(reply), nil
}
