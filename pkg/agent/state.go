package agent

import (
	"github.com/google/uuid"
)

// TaskStatus is the closed set of states the dialogue task machine can be in.
type TaskStatus string

const (
	StatusIdle               TaskStatus = "IDLE"
	StatusIntentDetected     TaskStatus = "INTENT_DETECTED"
	StatusNeedsClarification TaskStatus = "NEEDS_CLARIFICATION"
	StatusWaitingUserInput   TaskStatus = "WAITING_USER_INPUT"
	StatusReadyToExecute     TaskStatus = "READY_TO_EXECUTE"
	StatusExecuting          TaskStatus = "EXECUTING"
	StatusCompleted          TaskStatus = "COMPLETED"
	StatusFailed             TaskStatus = "FAILED"
	StatusCancelled          TaskStatus = "CANCELLED"
)

// Terminal reports whether the engine stops advancing for this turn
// once the status is reached.
func (s TaskStatus) Terminal() bool {
	switch s {
	case StatusWaitingUserInput, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Valid reports whether s is one of the nine enumerated statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusIdle, StatusIntentDetected, StatusNeedsClarification,
		StatusWaitingUserInput, StatusReadyToExecute, StatusExecuting,
		StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Turn roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Turn is one role-tagged utterance in the conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// IntentGuess is the structured output of the classifier. It is replaced
// wholesale on every new utterance, never merged across turns.
type IntentGuess struct {
	Intent     string            `json:"intent"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities"`
	Missing    []string          `json:"missing"`
	Reasoning  string            `json:"reasoning"`
}

// Candidate is one possible referent for an ambiguous slot value,
// typically a contact.
type Candidate struct {
	ID          uuid.UUID         `json:"id"`
	DisplayName string            `json:"display_name"`
	Phone       string            `json:"phone,omitempty"`
	Email       string            `json:"email,omitempty"`
	PlatformIDs map[string]string `json:"platform_ids,omitempty"`
}

// DisambiguationOption records a slot whose value could not be resolved
// to exactly one referent, together with the question to ask about it.
type DisambiguationOption struct {
	Entity  string      `json:"entity"`
	Query   string      `json:"query"`
	Matches []Candidate `json:"matches"`
	Message string      `json:"message"`
}

// ActionResult is what a skill returns after executing an intent.
type ActionResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// Session is the full dialogue state threaded through the engine.
// One Session belongs to exactly one conversation and is processed
// one turn at a time.
type Session struct {
	ID     uuid.UUID
	UserID uuid.UUID

	// Conversation history, append-only.
	Turns []Turn

	// Latest normalized input.
	CurrentInput  string
	InputLanguage string

	Intent *IntentGuess
	Status TaskStatus

	// Slot state. Entities holds what the classifier extracted; the
	// resolver never mutates it. Resolved values live only in
	// ResolvedEntities and are merged at dispatch time.
	Entities              map[string]string
	MissingEntities       []string
	UnresolvedEntities    []string
	ResolvedEntities      map[string]string
	NeedsDisambiguation   bool
	DisambiguationOptions []DisambiguationOption

	// Clarification bookkeeping.
	ClarificationCount int
	MaxClarifications  int
	LastClarification  string

	// Last dispatch outcome.
	ActionResult *ActionResult
	ActionError  string

	// Final reply for this turn.
	ResponseText string
	ShouldSpeak  bool

	TurnCount int
}

// DefaultMaxClarifications bounds how many times the assistant asks
// before giving up and cancelling the task.
const DefaultMaxClarifications = 3

// NewSession creates the initial dialogue state for a conversation.
func NewSession(userID, sessionID uuid.UUID) *Session {
	return &Session{
		ID:                sessionID,
		UserID:            userID,
		Status:            StatusIdle,
		Entities:          map[string]string{},
		ResolvedEntities:  map[string]string{},
		MaxClarifications: DefaultMaxClarifications,
		ShouldSpeak:       true,
	}
}

// AppendTurn adds an utterance to the history. The history is append-only;
// callers must never reorder or delete entries.
func (s *Session) AppendTurn(role, content string) {
	s.Turns = append(s.Turns, Turn{Role: role, Content: content})
}

// RecentTurns returns at most the last n turns. Components needing
// conversational context read through this to bound request size.
func (s *Session) RecentTurns(n int) []Turn {
	if len(s.Turns) <= n {
		return s.Turns
	}
	return s.Turns[len(s.Turns)-n:]
}

// PriorTurns returns at most the last n turns preceding the current
// user utterance, so the utterance can be passed to a model separately
// without appearing twice.
func (s *Session) PriorTurns(n int) []Turn {
	turns := s.Turns
	if len(turns) > 0 && turns[len(turns)-1].Role == RoleUser {
		turns = turns[:len(turns)-1]
	}
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}

// LastUserTurn returns the content of the most recent user utterance,
// or "" if there is none.
func (s *Session) LastUserTurn() string {
	for i := len(s.Turns) - 1; i >= 0; i-- {
		if s.Turns[i].Role == RoleUser {
			return s.Turns[i].Content
		}
	}
	return ""
}

// ClearSlotState drops all slot negotiation progress. Used on cancel.
func (s *Session) ClearSlotState() {
	s.Entities = map[string]string{}
	s.MissingEntities = nil
	s.UnresolvedEntities = nil
	s.ResolvedEntities = map[string]string{}
	s.NeedsDisambiguation = false
	s.DisambiguationOptions = nil
	s.ClarificationCount = 0
}

// MergedEntities combines extracted and resolved slot values for
// dispatch. Resolved values win on key collision, so a contact picked by
// the resolver overrides the raw name the user said.
func (s *Session) MergedEntities() map[string]string {
	merged := make(map[string]string, len(s.Entities)+len(s.ResolvedEntities))
	for k, v := range s.Entities {
		merged[k] = v
	}
	for k, v := range s.ResolvedEntities {
		merged[k] = v
	}
	return merged
}
