package net

// SessionStore tracks live sessions by ID. Accessed only from the game
// loop goroutine — no locks needed.
type SessionStore struct {
	sessions map[uint64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uint64]*Session)}
}

func (st *SessionStore) Add(s *Session) {
	st.sessions[s.ID] = s
}

func (st *SessionStore) Remove(id uint64) {
	delete(st.sessions, id)
}

func (st *SessionStore) Get(id uint64) *Session {
	return st.sessions[id]
}

func (st *SessionStore) Count() int {
	return len(st.sessions)
}

// Raw exposes the backing map for iteration. Callers must not mutate it
// except through Add/Remove.
func (st *SessionStore) Raw() map[uint64]*Session {
	return st.sessions
}

// ForEach calls fn for every live session.
func (st *SessionStore) ForEach(fn func(*Session)) {
	for _, s := range st.sessions {
		fn(s)
	}
}
