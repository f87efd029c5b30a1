package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSingleMatch(t *testing.T) {
	lookup := &fakeLookup{contacts: map[string][]Candidate{
		"Juan": {{ID: uuid.New(), DisplayName: "Juan Pérez"}},
	}}
	resolver := NewEntityResolver(lookup, testLogger)

	sess := NewSession(uuid.New(), uuid.New())
	sess.Entities = map[string]string{SlotRecipient: "Juan"}
	sess.UnresolvedEntities = []string{SlotRecipient}

	resolver.Resolve(context.Background(), sess)

	assert.False(t, sess.NeedsDisambiguation)
	assert.Empty(t, sess.UnresolvedEntities)
	assert.Equal(t, "Juan Pérez", sess.ResolvedEntities[SlotRecipient])
	assert.Equal(t, "Juan", sess.Entities[SlotRecipient])
}

func TestResolveNoMatch(t *testing.T) {
	resolver := NewEntityResolver(&fakeLookup{}, testLogger)

	sess := NewSession(uuid.New(), uuid.New())
	sess.Entities = map[string]string{SlotRecipient: "Zutano"}
	sess.UnresolvedEntities = []string{SlotRecipient}

	resolver.Resolve(context.Background(), sess)

	assert.True(t, sess.NeedsDisambiguation)
	require.Len(t, sess.DisambiguationOptions, 1)
	opt := sess.DisambiguationOptions[0]
	assert.Equal(t, SlotRecipient, opt.Entity)
	assert.Empty(t, opt.Matches)
	assert.Contains(t, opt.Message, "Zutano")
	// Still pending so the next turn retries resolution.
	assert.Equal(t, []string{SlotRecipient}, sess.UnresolvedEntities)
}

func TestResolveMultipleMatches(t *testing.T) {
	lookup := &fakeLookup{contacts: map[string][]Candidate{
		"Juan": {
			{ID: uuid.New(), DisplayName: "Juan Pérez"},
			{ID: uuid.New(), DisplayName: "Juan López"},
		},
	}}
	resolver := NewEntityResolver(lookup, testLogger)

	sess := NewSession(uuid.New(), uuid.New())
	sess.Entities = map[string]string{SlotRecipient: "Juan"}
	sess.UnresolvedEntities = []string{SlotRecipient}

	resolver.Resolve(context.Background(), sess)

	assert.True(t, sess.NeedsDisambiguation)
	require.Len(t, sess.DisambiguationOptions, 1)
	assert.Len(t, sess.DisambiguationOptions[0].Matches, 2)
	assert.Contains(t, sess.DisambiguationOptions[0].Message, "Juan Pérez, Juan López")
	assert.Empty(t, sess.ResolvedEntities)
}

func TestResolveLookupErrorBehavesAsNotFound(t *testing.T) {
	resolver := NewEntityResolver(&fakeLookup{err: errors.New("db down")}, testLogger)

	sess := NewSession(uuid.New(), uuid.New())
	sess.Entities = map[string]string{SlotRecipient: "Juan"}
	sess.UnresolvedEntities = []string{SlotRecipient}

	resolver.Resolve(context.Background(), sess)

	assert.True(t, sess.NeedsDisambiguation)
	require.Len(t, sess.DisambiguationOptions, 1)
	assert.Contains(t, sess.DisambiguationOptions[0].Message, "Juan")
}

func TestResolveNothingPending(t *testing.T) {
	resolver := NewEntityResolver(&fakeLookup{}, testLogger)

	sess := NewSession(uuid.New(), uuid.New())
	sess.NeedsDisambiguation = true

	resolver.Resolve(context.Background(), sess)

	assert.False(t, sess.NeedsDisambiguation)
}
