package system

import (
	"time"

	coresys "github.com/emberwild/server/internal/core/system"
	"github.com/emberwild/server/internal/net"
)

// OutputSystem flushes every session's buffered packets to its write
// queue at the end of the tick. Runs in the output phase.
type OutputSystem struct {
	store *net.SessionStore
}

func NewOutputSystem(store *net.SessionStore) *OutputSystem {
	return &OutputSystem{store: store}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	s.store.ForEach(func(sess *net.Session) {
		sess.FlushOutput()
	})
}
