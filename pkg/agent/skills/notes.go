package skills

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/eneaslivv/livvos/pkg/agent"
)

// NewCreateNote builds the create_note skill backed by a NoteWriter.
func NewCreateNote(notes NoteWriter) agent.Skill {
	return agent.SkillFunc(func(ctx context.Context, ownerID uuid.UUID, slots map[string]string) (*agent.ActionResult, error) {
		content := slots[agent.SlotNoteContent]

		if err := notes.CreateNote(ctx, ownerID, content); err != nil {
			return nil, fmt.Errorf("create note: %w", err)
		}

		return &agent.ActionResult{
			Success: true,
			Message: "Listo, anoté eso.",
			Data:    map[string]any{"content": content},
		}, nil
	})
}
