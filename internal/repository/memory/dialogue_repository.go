package memory

import (
	"sync"
	"time"

	"github.com/eneaslivv/livvos/pkg/agent"

	"github.com/patrickmn/go-cache"
)

// DialogueRepository keeps warm dialogue state in memory so consecutive
// turns of the same session do not have to rebuild it from the database.
type DialogueRepository struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDialogueRepository() *DialogueRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &DialogueRepository{
		cache: c,
		locks: make(map[string]*sync.Mutex),
	}
}

func (r *DialogueRepository) Save(sessionID string, session *agent.Session) {
	r.cache.Set(sessionID, session, cache.DefaultExpiration)
}

func (r *DialogueRepository) Get(sessionID string) (*agent.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*agent.Session), true
	}
	return nil, false
}

func (r *DialogueRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
	r.mu.Lock()
	delete(r.locks, sessionID)
	r.mu.Unlock()
}

// TurnLock returns the mutex that serializes turns for one session.
// Only one turn may be in flight per session; concurrent callers block
// here instead of interleaving partial state updates.
func (r *DialogueRepository) TurnLock(sessionID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[sessionID] = l
	}
	return l
}
