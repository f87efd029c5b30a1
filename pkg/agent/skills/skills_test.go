package skills

import (
	"context"
	"errors"
	"testing"

	"github.com/eneaslivv/livvos/pkg/agent"
	"github.com/eneaslivv/livvos/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	published []events.Event
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, event events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

type fakeNoteWriter struct {
	notes []string
	err   error
}

func (w *fakeNoteWriter) CreateNote(_ context.Context, _ uuid.UUID, content string) error {
	if w.err != nil {
		return w.err
	}
	w.notes = append(w.notes, content)
	return nil
}

func TestDefaultRegistryCoversAllActionIntents(t *testing.T) {
	registry := DefaultRegistry(&fakePublisher{}, &fakeNoteWriter{})

	for _, intent := range []string{
		agent.IntentSendMessage,
		agent.IntentSetReminder,
		agent.IntentSetTimer,
		agent.IntentCreateNote,
		agent.IntentOpenApp,
		agent.IntentOpenURL,
		agent.IntentSearchWeb,
	} {
		_, ok := registry.Lookup(intent)
		assert.True(t, ok, "intent %s must be registered", intent)
	}

	_, ok := registry.Lookup(agent.IntentGeneralQuery)
	assert.False(t, ok, "chat intents are not dispatched")
}

func TestSendMessageDefaultsPlatform(t *testing.T) {
	publisher := &fakePublisher{}
	skill := NewSendMessage(publisher)

	result, err := skill.Execute(context.Background(), uuid.New(), map[string]string{
		agent.SlotRecipient:      "Juan Pérez",
		agent.SlotMessageContent: "llego tarde",
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	require.Len(t, publisher.published, 1)
	event := publisher.published[0]
	assert.Equal(t, events.TypeMessageRequested, event.EventType())
	assert.Equal(t, DefaultPlatform, event.Payload()["platform"])
	assert.Equal(t, "Juan Pérez", event.Payload()["recipient"])
	assert.Contains(t, result.Message, "Juan Pérez")
}

func TestSendMessagePublishFailure(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("nats down")}
	skill := NewSendMessage(publisher)

	result, err := skill.Execute(context.Background(), uuid.New(), map[string]string{
		agent.SlotRecipient:      "Juan",
		agent.SlotMessageContent: "hola",
	})
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestSetReminderKeepsNaturalLanguageDatetime(t *testing.T) {
	publisher := &fakePublisher{}
	skill := NewSetReminder(publisher)

	result, err := skill.Execute(context.Background(), uuid.New(), map[string]string{
		agent.SlotReminderText: "comprar leche",
		agent.SlotDatetime:     "mañana a las 9",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, "mañana a las 9", publisher.published[0].Payload()["datetime"])
}

func TestCreateNotePersistsContent(t *testing.T) {
	writer := &fakeNoteWriter{}
	skill := NewCreateNote(writer)

	result, err := skill.Execute(context.Background(), uuid.New(), map[string]string{
		agent.SlotNoteContent: "idea para el proyecto",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []string{"idea para el proyecto"}, writer.notes)
}

func TestOpenAppRequiresAppName(t *testing.T) {
	skill := OpenApp()

	_, err := skill.Execute(context.Background(), uuid.New(), map[string]string{})
	require.Error(t, err)

	result, err := skill.Execute(context.Background(), uuid.New(), map[string]string{
		agent.SlotAppName: "spotify",
	})
	require.NoError(t, err)
	assert.Equal(t, "open_app", result.Data["action"])
	assert.Equal(t, "spotify", result.Data["app_name"])
}
