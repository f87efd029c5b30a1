package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// Skill is the executable capability that performs the real-world action
// for an intent. An error return or a panic is converted to a failure
// result by the dispatcher, never propagated.
type Skill interface {
	Execute(ctx context.Context, ownerID uuid.UUID, slots map[string]string) (*ActionResult, error)
}

// SkillFunc adapts a function to the Skill interface.
type SkillFunc func(ctx context.Context, ownerID uuid.UUID, slots map[string]string) (*ActionResult, error)

func (f SkillFunc) Execute(ctx context.Context, ownerID uuid.UUID, slots map[string]string) (*ActionResult, error) {
	return f(ctx, ownerID, slots)
}

// Registry maps intent names to skills. It is built once at startup and
// read-only afterwards, safe for concurrent lookups.
type Registry struct {
	skills map[string]Skill
}

// NewRegistry creates an empty skill registry.
func NewRegistry() *Registry {
	return &Registry{skills: map[string]Skill{}}
}

// Register binds a skill to an intent name, replacing any previous one.
func (r *Registry) Register(intent string, skill Skill) {
	r.skills[intent] = skill
}

// Lookup returns the skill for an intent, if registered.
func (r *Registry) Lookup(intent string) (Skill, bool) {
	s, ok := r.skills[intent]
	return s, ok
}

// Intents returns the registered intent names.
func (r *Registry) Intents() []string {
	names := make([]string, 0, len(r.skills))
	for name := range r.skills {
		names = append(names, name)
	}
	return names
}

// Dispatcher invokes the registered skill for the session's intent with
// the merged slot values.
type Dispatcher struct {
	registry *Registry
	logger   *log.Logger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry, logger *log.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, logger: logger}
}

// Dispatch executes the current intent. Resolved slot values win over
// raw extracted ones. Every failure mode ends in StatusFailed with the
// error text on ActionError; a skill can never crash a turn.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *Session) {
	intent := IntentUnknown
	if sess.Intent != nil {
		intent = sess.Intent.Intent
	}

	skill, ok := d.registry.Lookup(intent)
	if !ok {
		errText := fmt.Sprintf("no handler for intent: %s", intent)
		sess.ActionResult = &ActionResult{Success: false, Message: errText}
		sess.ActionError = errText
		sess.Status = StatusFailed
		return
	}

	sess.Status = StatusExecuting
	merged := sess.MergedEntities()

	result, err := d.invoke(ctx, skill, sess.UserID, merged)
	if err != nil {
		d.logger.Printf("[DISPATCH] Skill %q failed: %v", intent, err)
		sess.ActionResult = &ActionResult{Success: false, Message: err.Error()}
		sess.ActionError = err.Error()
		sess.Status = StatusFailed
		return
	}

	sess.ActionResult = result
	sess.ActionError = ""
	if result != nil && result.Success {
		sess.Status = StatusCompleted
		return
	}
	sess.Status = StatusFailed
	if result != nil && result.Message != "" {
		sess.ActionError = result.Message
	}
}

// invoke runs a skill and converts panics into errors so a misbehaving
// skill cannot take the engine down with it.
func (d *Dispatcher) invoke(ctx context.Context, skill Skill, ownerID uuid.UUID, slots map[string]string) (result *ActionResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("skill panicked: %v", rec)
		}
	}()
	return skill.Execute(ctx, ownerID, slots)
}
