package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/eneaslivv/livvos/internal/constant"

	"github.com/google/uuid"
)

// ContactLookup is the capability the resolver uses to turn an
// ambiguous name into concrete candidates. It may return an empty list.
type ContactLookup interface {
	ResolveCandidates(ctx context.Context, ownerID uuid.UUID, query string) ([]Candidate, error)
}

// EntityResolver narrows ambiguous slot values (contact names) to exactly
// one referent, or collects disambiguation options for the user.
type EntityResolver struct {
	lookup ContactLookup
	logger *log.Logger
}

// NewEntityResolver creates a resolver over the given lookup capability.
func NewEntityResolver(lookup ContactLookup, logger *log.Logger) *EntityResolver {
	return &EntityResolver{lookup: lookup, logger: logger}
}

// Resolve processes every slot in UnresolvedEntities. Exactly one
// candidate resolves silently into ResolvedEntities; zero or several
// candidates produce a disambiguation option and flag the session for a
// user round-trip. Entities is never mutated here.
func (r *EntityResolver) Resolve(ctx context.Context, sess *Session) {
	if len(sess.UnresolvedEntities) == 0 {
		sess.NeedsDisambiguation = false
		return
	}

	var options []DisambiguationOption
	needsDisambiguation := false

	for _, entityName := range sess.UnresolvedEntities {
		query := sess.Entities[entityName]
		if query == "" {
			continue
		}

		candidates, err := r.lookup.ResolveCandidates(ctx, sess.UserID, query)
		if err != nil {
			// A failed lookup is handled like "nothing found": the user
			// gets asked instead of the turn failing.
			r.logger.Printf("[RESOLVE] Lookup failed for %q: %v", query, err)
			candidates = nil
		}

		switch len(candidates) {
		case 0:
			needsDisambiguation = true
			options = append(options, DisambiguationOption{
				Entity:  entityName,
				Query:   query,
				Matches: []Candidate{},
				Message: fmt.Sprintf(constant.PhraseContactNotFound, query),
			})
		case 1:
			sess.ResolvedEntities[entityName] = candidates[0].DisplayName
			r.logger.Printf("[RESOLVE] %s %q -> %q", entityName, query, candidates[0].DisplayName)
		default:
			needsDisambiguation = true
			names := make([]string, len(candidates))
			for i, c := range candidates {
				names[i] = c.DisplayName
			}
			options = append(options, DisambiguationOption{
				Entity:  entityName,
				Query:   query,
				Matches: candidates,
				Message: fmt.Sprintf(constant.PhraseContactAmbiguous, strings.Join(names, ", ")),
			})
		}
	}

	sess.NeedsDisambiguation = needsDisambiguation
	sess.DisambiguationOptions = options
	if !needsDisambiguation {
		// Everything resolved: clear the list so dispatch can proceed.
		sess.UnresolvedEntities = nil
	}
}
