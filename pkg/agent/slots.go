package agent

import "sort"

// Intent names the classifier may return. Anything outside this set is
// treated as "unknown" by the routing layer.
const (
	IntentSendMessage  = "send_message"
	IntentSetReminder  = "set_reminder"
	IntentCreateNote   = "create_note"
	IntentOpenApp      = "open_app"
	IntentOpenURL      = "open_url"
	IntentSearchWeb    = "search_web"
	IntentSetTimer     = "set_timer"
	IntentGeneralQuery = "general_query"
	IntentGreeting     = "greeting"
	IntentConfirm      = "confirm"
	IntentCancel       = "cancel"
	IntentUnknown      = "unknown"
)

// Slot names
const (
	SlotRecipient      = "recipient"
	SlotMessageContent = "message_content"
	SlotPlatform       = "platform"
	SlotReminderText   = "reminder_text"
	SlotDatetime       = "datetime"
	SlotNoteContent    = "note_content"
	SlotAppName        = "app_name"
	SlotURL            = "url"
	SlotQuery          = "query"
	SlotDuration       = "duration"
)

// SlotSchema is the static table of required and optional slots per
// intent. Required slots are declared in order: the first missing one is
// the first the assistant asks about.
type SlotSchema struct {
	required map[string][]string
	optional map[string][]string
}

// DefaultSchema returns the slot table for the built-in intents.
func DefaultSchema() SlotSchema {
	return SlotSchema{
		required: map[string][]string{
			IntentSendMessage: {SlotRecipient, SlotMessageContent},
			IntentSetReminder: {SlotReminderText, SlotDatetime},
			IntentCreateNote:  {SlotNoteContent},
			IntentOpenApp:     {SlotAppName},
			IntentOpenURL:     {SlotURL},
			IntentSearchWeb:   {SlotQuery},
			IntentSetTimer:    {SlotDuration},
		},
		optional: map[string][]string{
			IntentSendMessage: {SlotPlatform},
			IntentSetReminder: {"recurrence"},
			IntentCreateNote:  {"title", "tags"},
		},
	}
}

// Required returns the required slot names for an intent, in schema order.
func (s SlotSchema) Required(intent string) []string {
	return s.required[intent]
}

// Optional returns the optional slot names for an intent.
func (s SlotSchema) Optional(intent string) []string {
	return s.optional[intent]
}

// needsResolution reports whether a slot value must be resolved against
// the user's contacts before it can be acted on. Resolution is
// re-evaluated every turn, so a previously resolved recipient is marked
// again.
func needsResolution(slot string) bool {
	return slot == SlotRecipient
}

// CheckSlots verifies slot completeness for the current intent and
// updates the session's missing/unresolved lists and status. It is
// deterministic: identical intent and entities always produce identical
// results.
func CheckSlots(sess *Session, schema SlotSchema) {
	intent := IntentUnknown
	if sess.Intent != nil {
		intent = sess.Intent.Intent
	}

	var missing []string
	for _, slot := range schema.Required(intent) {
		if sess.Entities[slot] == "" {
			missing = append(missing, slot)
		}
	}

	// Any recipient-style slot with a value is re-marked for resolution,
	// whether or not the schema requires it. Keys are sorted so the
	// result is stable across runs.
	var unresolved []string
	for _, slot := range sortedKeys(sess.Entities) {
		if needsResolution(slot) && sess.Entities[slot] != "" {
			unresolved = append(unresolved, slot)
		}
	}

	sess.MissingEntities = missing
	sess.UnresolvedEntities = unresolved

	if len(missing) > 0 || len(unresolved) > 0 {
		sess.Status = StatusNeedsClarification
		return
	}
	sess.Status = StatusReadyToExecute
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
