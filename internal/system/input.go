package system

import (
	"time"

	coresys "github.com/emberwild/server/internal/core/system"
	"github.com/emberwild/server/internal/handler"
	"github.com/emberwild/server/internal/net"
	"github.com/emberwild/server/internal/net/packet"
	"github.com/emberwild/server/internal/world"
	"go.uber.org/zap"
)

// InputSystem drains packet queues from all sessions and dispatches them
// through the packet registry. Runs in the input phase.
type InputSystem struct {
	netServer  *net.Server
	registry   *packet.Registry
	store      *net.SessionStore
	maxPerTick int
	deps       *handler.Deps
	world      *world.State
	log        *zap.Logger
}

func NewInputSystem(
	netServer *net.Server,
	registry *packet.Registry,
	store *net.SessionStore,
	maxPerTick int,
	deps *handler.Deps,
	log *zap.Logger,
) *InputSystem {
	return &InputSystem{
		netServer:  netServer,
		registry:   registry,
		store:      store,
		maxPerTick: maxPerTick,
		deps:       deps,
		world:      deps.World,
		log:        log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	// Accept new sessions
	for {
		select {
		case sess := <-s.netServer.NewSessions():
			s.store.Add(sess)
		default:
			goto doneNew
		}
	}
doneNew:

	// Process dead sessions
	for {
		select {
		case id := <-s.netServer.DeadSessions():
			s.store.Remove(id)
		default:
			goto doneDead
		}
	}
doneDead:

	// Drain packets from each session (up to maxPerTick per session)
	for id, sess := range s.store.Raw() {
		if sess.IsClosed() {
			// Drain any remaining packets before cleanup, using the last
			// known state so handlers can still find the player.
			for i := 0; i < s.maxPerTick; i++ {
				select {
				case data := <-sess.InQueue:
					if err := s.registry.Dispatch(sess, sess.State(), data); err != nil {
						s.log.Debug("dispatch error during disconnect",
							zap.Uint64("session", sess.ID),
							zap.Error(err),
						)
					}
				default:
					goto doneClosing
				}
			}
		doneClosing:
			sess.FlushOutput()
			handler.Disconnect(sess, s.deps)
			s.netServer.NotifyDead(id)
			s.store.Remove(id)
			continue
		}

		processed := false
		for i := 0; i < s.maxPerTick; i++ {
			select {
			case data := <-sess.InQueue:
				processed = true
				if err := s.registry.Dispatch(sess, sess.State(), data); err != nil {
					s.log.Debug("dispatch error",
						zap.Uint64("session", sess.ID),
						zap.Error(err),
					)
				}
			default:
				goto nextSession
			}
		}
	nextSession:
		// Mark player dirty if any in-world packets were processed this
		// tick; PersistenceSystem only saves dirty players.
		if processed && sess.State() == packet.StateInWorld {
			if p := s.world.GetBySession(sess.ID); p != nil {
				p.Dirty = true
			}
		}
	}

	// Early flush so input-phase replies hit the wire while the update
	// phases run; OutputSystem flushes the rest at tick end.
	s.store.ForEach(func(sess *net.Session) {
		sess.FlushOutput()
	})
}
