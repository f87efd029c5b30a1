package events

import "time"

// Event type codes published by the assistant. Downstream device agents
// subscribe to these to carry out the actual side effect on the phone.
const (
	TypeMessageRequested  = "MESSAGE_REQUESTED"
	TypeReminderScheduled = "REMINDER_SCHEDULED"
	TypeTimerStarted      = "TIMER_STARTED"
)

// NewMessageRequested is emitted when the user asked to send a message
// to a resolved contact through a messaging platform.
func NewMessageRequested(userID, recipient, platform, content string) Event {
	return BaseEvent{
		Type: TypeMessageRequested,
		Data: map[string]interface{}{
			"user_id":   userID,
			"recipient": recipient,
			"platform":  platform,
			"content":   content,
		},
		OccurredAt: time.Now(),
	}
}

// NewReminderScheduled is emitted when a reminder has been accepted.
func NewReminderScheduled(userID, text, datetime string) Event {
	return BaseEvent{
		Type: TypeReminderScheduled,
		Data: map[string]interface{}{
			"user_id":  userID,
			"text":     text,
			"datetime": datetime,
		},
		OccurredAt: time.Now(),
	}
}

// NewTimerStarted is emitted when a countdown timer is started.
func NewTimerStarted(userID, duration string) Event {
	return BaseEvent{
		Type: TypeTimerStarted,
		Data: map[string]interface{}{
			"user_id":  userID,
			"duration": duration,
		},
		OccurredAt: time.Now(),
	}
}
