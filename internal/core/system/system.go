package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain session packet queues
	PhaseUpdate                  // 1: survival decay, craft queue advancement
	PhasePostUpdate              // 2: world clock and weather
	PhaseOutput                  // 3: flush buffered packets to writers
	PhasePersist                 // 4: batch save dirty players
	PhaseCleanup                 // 5: expire ground items
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
