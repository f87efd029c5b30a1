package skills

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/eneaslivv/livvos/pkg/agent"
)

// Device skills never leave the process; they return an ActionResult the
// client interprets as a local instruction (open an app, load a URL,
// launch a search). The Data payload is the instruction.

func OpenApp() agent.Skill {
	return agent.SkillFunc(func(ctx context.Context, ownerID uuid.UUID, slots map[string]string) (*agent.ActionResult, error) {
		app := slots[agent.SlotAppName]
		if app == "" {
			return nil, fmt.Errorf("no app name provided")
		}
		return &agent.ActionResult{
			Success: true,
			Message: fmt.Sprintf("Abriendo %s.", app),
			Data:    map[string]any{"action": "open_app", "app_name": app},
		}, nil
	})
}

func OpenURL() agent.Skill {
	return agent.SkillFunc(func(ctx context.Context, ownerID uuid.UUID, slots map[string]string) (*agent.ActionResult, error) {
		url := slots[agent.SlotURL]
		return &agent.ActionResult{
			Success: true,
			Message: fmt.Sprintf("Abriendo %s.", url),
			Data:    map[string]any{"action": "open_url", "url": url},
		}, nil
	})
}

func SearchWeb() agent.Skill {
	return agent.SkillFunc(func(ctx context.Context, ownerID uuid.UUID, slots map[string]string) (*agent.ActionResult, error) {
		query := slots[agent.SlotQuery]
		return &agent.ActionResult{
			Success: true,
			Message: fmt.Sprintf("Buscando %s.", query),
			Data:    map[string]any{"action": "search_web", "query": query},
		}, nil
	})
}
