package skills

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/eneaslivv/livvos/pkg/agent"
	"github.com/eneaslivv/livvos/pkg/events"
)

// DefaultPlatform is used when the user did not say which messaging app
// to send through.
const DefaultPlatform = "whatsapp"

// NewSendMessage builds the send_message skill. By the time the
// dispatcher reaches it the recipient slot holds a resolved contact
// display name.
func NewSendMessage(publisher EventPublisher) agent.Skill {
	return agent.SkillFunc(func(ctx context.Context, ownerID uuid.UUID, slots map[string]string) (*agent.ActionResult, error) {
		recipient := slots[agent.SlotRecipient]
		content := slots[agent.SlotMessageContent]
		platform := slots[agent.SlotPlatform]
		if platform == "" {
			platform = DefaultPlatform
		}

		event := events.NewMessageRequested(ownerID.String(), recipient, platform, content)
		if err := publisher.Publish(ctx, event); err != nil {
			return nil, fmt.Errorf("publish message request: %w", err)
		}

		return &agent.ActionResult{
			Success: true,
			Message: fmt.Sprintf("Listo, le mandé el mensaje a %s por %s.", recipient, platform),
			Data: map[string]any{
				"recipient": recipient,
				"platform":  platform,
				"content":   content,
			},
		}, nil
	})
}
