package memory

import (
	"sync"
	"testing"

	"github.com/eneaslivv/livvos/pkg/agent"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialogueRepositorySaveGetDelete(t *testing.T) {
	repo := NewDialogueRepository()

	sess := agent.NewSession(uuid.New(), uuid.New())
	repo.Save("sess-1", sess)

	got, found := repo.Get("sess-1")
	require.True(t, found)
	assert.Same(t, sess, got)

	repo.Delete("sess-1")
	_, found = repo.Get("sess-1")
	assert.False(t, found)
}

func TestDialogueRepositoryGetMissing(t *testing.T) {
	repo := NewDialogueRepository()

	_, found := repo.Get("nope")
	assert.False(t, found)
}

func TestDialogueRepositoryTurnLockIsPerSession(t *testing.T) {
	repo := NewDialogueRepository()

	a := repo.TurnLock("sess-a")
	b := repo.TurnLock("sess-b")
	assert.NotSame(t, a, b)

	again := repo.TurnLock("sess-a")
	assert.Same(t, a, again)
}

func TestDialogueRepositoryTurnLockSerializes(t *testing.T) {
	repo := NewDialogueRepository()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := repo.TurnLock("sess-1")
			l.Lock()
			counter++
			l.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}
