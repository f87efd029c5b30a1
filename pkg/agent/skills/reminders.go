package skills

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/eneaslivv/livvos/pkg/agent"
	"github.com/eneaslivv/livvos/pkg/events"
)

// NewSetReminder builds the set_reminder skill. Datetime stays as the
// natural-language string the user said; the device agent owns parsing
// it against the user's locale and timezone.
func NewSetReminder(publisher EventPublisher) agent.Skill {
	return agent.SkillFunc(func(ctx context.Context, ownerID uuid.UUID, slots map[string]string) (*agent.ActionResult, error) {
		text := slots[agent.SlotReminderText]
		datetime := slots[agent.SlotDatetime]

		event := events.NewReminderScheduled(ownerID.String(), text, datetime)
		if err := publisher.Publish(ctx, event); err != nil {
			return nil, fmt.Errorf("publish reminder: %w", err)
		}

		return &agent.ActionResult{
			Success: true,
			Message: fmt.Sprintf("Listo, te recuerdo %q %s.", text, datetime),
			Data: map[string]any{
				"text":     text,
				"datetime": datetime,
			},
		}, nil
	})
}

// NewSetTimer builds the set_timer skill.
func NewSetTimer(publisher EventPublisher) agent.Skill {
	return agent.SkillFunc(func(ctx context.Context, ownerID uuid.UUID, slots map[string]string) (*agent.ActionResult, error) {
		duration := slots[agent.SlotDuration]

		event := events.NewTimerStarted(ownerID.String(), duration)
		if err := publisher.Publish(ctx, event); err != nil {
			return nil, fmt.Errorf("publish timer: %w", err)
		}

		return &agent.ActionResult{
			Success: true,
			Message: fmt.Sprintf("Dale, timer de %s arrancado.", duration),
			Data:    map[string]any{"duration": duration},
		}, nil
	})
}
