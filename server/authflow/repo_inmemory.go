package authflow

import (
	"sync"
	"time"
)

// stateTTL bounds how long a sign-in may sit between redirect and
// callback before the state is discarded.
const stateTTL = 10 * time.Minute

type InMemoryRepo struct {
	lock   sync.Mutex
	states map[string]State
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{states: make(map[string]State)}
}

func (r *InMemoryRepo) Put(state string, value State) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if value.CreatedAt.IsZero() {
		value.CreatedAt = time.Now()
	}
	r.prune()
	r.states[state] = value
	return nil
}

func (r *InMemoryRepo) Take(state string) (State, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	value, ok := r.states[state]
	if !ok {
		return State{}, false
	}
	delete(r.states, state)
	if time.Since(value.CreatedAt) > stateTTL {
		return State{}, false
	}
	return value, true
}

// prune drops expired entries, called under the lock.
func (r *InMemoryRepo) prune() {
	for key, value := range r.states {
		if time.Since(value.CreatedAt) > stateTTL {
			delete(r.states, key)
		}
	}
}
