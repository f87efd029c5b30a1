package agent

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCheckSlots(t *testing.T) {
	schema := DefaultSchema()

	tests := []struct {
		name           string
		intent         string
		entities       map[string]string
		wantMissing    []string
		wantUnresolved []string
		wantStatus     TaskStatus
	}{
		{
			name:           "all slots present",
			intent:         IntentCreateNote,
			entities:       map[string]string{SlotNoteContent: "comprar yerba"},
			wantStatus:     StatusReadyToExecute,
			wantMissing:    nil,
			wantUnresolved: nil,
		},
		{
			name:           "missing in schema order",
			intent:         IntentSendMessage,
			entities:       map[string]string{},
			wantMissing:    []string{SlotRecipient, SlotMessageContent},
			wantUnresolved: nil,
			wantStatus:     StatusNeedsClarification,
		},
		{
			name:           "recipient always re-marked unresolved",
			intent:         IntentSendMessage,
			entities:       map[string]string{SlotRecipient: "Juan", SlotMessageContent: "hola"},
			wantMissing:    nil,
			wantUnresolved: []string{SlotRecipient},
			wantStatus:     StatusNeedsClarification,
		},
		{
			name:           "empty slot value counts as missing",
			intent:         IntentSetReminder,
			entities:       map[string]string{SlotReminderText: "sacar la basura", SlotDatetime: ""},
			wantMissing:    []string{SlotDatetime},
			wantUnresolved: nil,
			wantStatus:     StatusNeedsClarification,
		},
		{
			name:           "intent without schema entry",
			intent:         IntentGeneralQuery,
			entities:       map[string]string{},
			wantMissing:    nil,
			wantUnresolved: nil,
			wantStatus:     StatusReadyToExecute,
		},
		{
			name:   "recipient entity outside its intent still flagged",
			intent: IntentCreateNote,
			entities: map[string]string{
				SlotNoteContent: "llamar a juan",
				SlotRecipient:   "Juan",
			},
			wantMissing:    nil,
			wantUnresolved: []string{SlotRecipient},
			wantStatus:     StatusNeedsClarification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := NewSession(uuid.New(), uuid.New())
			sess.Intent = &IntentGuess{Intent: tt.intent}
			sess.Entities = tt.entities

			CheckSlots(sess, schema)

			assert.Equal(t, tt.wantMissing, sess.MissingEntities)
			assert.Equal(t, tt.wantUnresolved, sess.UnresolvedEntities)
			assert.Equal(t, tt.wantStatus, sess.Status)
		})
	}
}

func TestCheckSlotsDeterministic(t *testing.T) {
	schema := DefaultSchema()
	for i := 0; i < 50; i++ {
		sess := NewSession(uuid.New(), uuid.New())
		sess.Intent = &IntentGuess{Intent: IntentSendMessage}
		sess.Entities = map[string]string{
			SlotRecipient:      "Juan",
			SlotMessageContent: "hola",
			SlotPlatform:       "whatsapp",
		}
		CheckSlots(sess, schema)
		assert.Equal(t, []string{SlotRecipient}, sess.UnresolvedEntities)
		assert.Nil(t, sess.MissingEntities)
	}
}

func TestMergedEntitiesResolvedWins(t *testing.T) {
	sess := NewSession(uuid.New(), uuid.New())
	sess.Entities = map[string]string{SlotRecipient: "Juan", SlotMessageContent: "hola"}
	sess.ResolvedEntities = map[string]string{SlotRecipient: "Juan Pérez"}

	merged := sess.MergedEntities()

	assert.Equal(t, "Juan Pérez", merged[SlotRecipient])
	assert.Equal(t, "hola", merged[SlotMessageContent])
	// Originals untouched.
	assert.Equal(t, "Juan", sess.Entities[SlotRecipient])
}
