// Package skills holds the concrete action handlers the dispatcher can
// invoke once an intent has all its slots. Skills that touch the outside
// world go through an EventPublisher; the device itself picks the events
// up over the bus and performs the real side effect.
package skills

import (
	"context"

	"github.com/google/uuid"

	"github.com/eneaslivv/livvos/pkg/agent"
	"github.com/eneaslivv/livvos/pkg/events"
)

// EventPublisher is the slice of the NATS publisher the skills need.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// NoteWriter persists a note on behalf of the user.
type NoteWriter interface {
	CreateNote(ctx context.Context, ownerID uuid.UUID, content string) error
}

// DefaultRegistry wires every built-in skill. publisher and notes may be
// shared instances; skills never close them.
func DefaultRegistry(publisher EventPublisher, notes NoteWriter) *agent.Registry {
	r := agent.NewRegistry()
	r.Register(agent.IntentSendMessage, NewSendMessage(publisher))
	r.Register(agent.IntentSetReminder, NewSetReminder(publisher))
	r.Register(agent.IntentSetTimer, NewSetTimer(publisher))
	r.Register(agent.IntentCreateNote, NewCreateNote(notes))
	r.Register(agent.IntentOpenApp, OpenApp())
	r.Register(agent.IntentOpenURL, OpenURL())
	r.Register(agent.IntentSearchWeb, SearchWeb())
	return r
}
