package world

import "time"

// MillisPerTick converts recipe durations (ticks) to wall time.
const MillisPerTick = 50

// CraftJob is a single queued craft: a recipe reference, a snapshot of what
// it produces and consumed, and elapsed/paused time accounting. Only the
// queue mutates a job after creation.
type CraftJob struct {
	RecipeID    string
	OwnerID     int32
	Result      ItemStack      // snapshot taken at start; delivery falls back to the catalog if empty
	Ingredients map[string]int // consumed at start, returned on cancel

	total         time.Duration
	startedAt     time.Time
	pausedElapsed time.Duration
	paused        bool
	completed     bool
}

// NewCraftJob creates a running job whose duration is durationTicks ticks.
func NewCraftJob(recipeID string, ownerID int32, result ItemStack, ingredients map[string]int, durationTicks int64, now time.Time) *CraftJob {
	ing := make(map[string]int, len(ingredients))
	for k, v := range ingredients {
		ing[k] = v
	}
	return &CraftJob{
		RecipeID:    recipeID,
		OwnerID:     ownerID,
		Result:      result,
		Ingredients: ing,
		total:       time.Duration(durationTicks) * MillisPerTick * time.Millisecond,
		startedAt:   now,
	}
}

// Pause freezes progress. No-op when already paused.
func (j *CraftJob) Pause(now time.Time) {
	if j.paused {
		return
	}
	j.paused = true
	j.pausedElapsed = now.Sub(j.startedAt)
}

// Resume continues from the frozen elapsed time. No-op when running.
func (j *CraftJob) Resume(now time.Time) {
	if !j.paused {
		return
	}
	j.paused = false
	j.startedAt = now.Add(-j.pausedElapsed)
}

// Paused reports whether the job is frozen.
func (j *CraftJob) Paused() bool {
	return j.paused
}

// Progress returns completion in [0,1].
func (j *CraftJob) Progress(now time.Time) float64 {
	if j.completed {
		return 1.0
	}
	if j.total <= 0 {
		return 1.0
	}
	elapsed := j.pausedElapsed
	if !j.paused {
		elapsed = now.Sub(j.startedAt)
	}
	p := float64(elapsed) / float64(j.total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Completed latches true once a running job's progress reaches 1.
// A paused job never completes.
func (j *CraftJob) Completed(now time.Time) bool {
	if !j.completed && !j.paused {
		j.completed = j.Progress(now) >= 1.0
	}
	return j.completed
}

// Remaining returns the wall time left, zero when done or unknowable.
func (j *CraftJob) Remaining(now time.Time) time.Duration {
	if j.completed {
		return 0
	}
	elapsed := j.pausedElapsed
	if !j.paused {
		elapsed = now.Sub(j.startedAt)
	}
	if elapsed >= j.total {
		return 0
	}
	return j.total - elapsed
}

// CraftQueue is a player's bounded FIFO of craft jobs. Only the head job
// runs; every other job is paused. Insertion order is delivery order.
// Accessed only from the game loop goroutine.
type CraftQueue struct {
	jobs     []*CraftJob
	capacity int
	now      func() time.Time
}

// NewCraftQueue creates an empty queue with the given capacity.
func NewCraftQueue(capacity int) *CraftQueue {
	return &CraftQueue{
		jobs:     make([]*CraftJob, 0, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// SetClock replaces the queue's time source. Tests use this to drive
// progress deterministically.
func (q *CraftQueue) SetClock(now func() time.Time) {
	q.now = now
}

// Now returns the queue's current time. Job construction uses this so a
// job's start time and the queue's progress checks share one clock.
func (q *CraftQueue) Now() time.Time {
	return q.now()
}

// Len returns the number of queued jobs.
func (q *CraftQueue) Len() int {
	return len(q.jobs)
}

// Capacity returns the maximum queue length.
func (q *CraftQueue) Capacity() int {
	return q.capacity
}

// Jobs returns the backing slice for iteration. Callers must not reorder it.
func (q *CraftQueue) Jobs() []*CraftJob {
	return q.jobs
}

// CanEnqueue reports whether a slot is free. Callers check this BEFORE
// consuming materials (see craft start protocol in handler/craft.go).
func (q *CraftQueue) CanEnqueue() bool {
	return len(q.jobs) < q.capacity
}

// Enqueue appends a job. Returns false at capacity with the queue unchanged.
// A job entering a non-empty queue is paused until it becomes head.
func (q *CraftQueue) Enqueue(job *CraftJob) bool {
	if len(q.jobs) >= q.capacity {
		return false
	}
	if len(q.jobs) > 0 {
		job.Pause(q.now())
	}
	q.jobs = append(q.jobs, job)
	return true
}

// TickHead advances the queue one tick: re-resumes a paused head (guard
// against a head left paused after a removal) and, when the head has
// completed, removes it and resumes the next job. Returns the completed job
// for delivery, or nil. At most one job is delivered per tick.
func (q *CraftQueue) TickHead() *CraftJob {
	if len(q.jobs) == 0 {
		return nil
	}
	now := q.now()
	head := q.jobs[0]
	if head.Paused() {
		head.Resume(now)
	}
	if !head.Completed(now) {
		return nil
	}
	q.jobs = q.jobs[1:]
	if len(q.jobs) > 0 {
		q.jobs[0].Resume(now)
	}
	return head
}

// Cancel removes the job at index and returns it, with refundable reporting
// whether its materials should be returned (progress < 1). Canceling the
// head resumes the next job. Out-of-range indices are a no-op.
func (q *CraftQueue) Cancel(index int) (job *CraftJob, refundable bool) {
	if index < 0 || index >= len(q.jobs) {
		return nil, false
	}
	now := q.now()
	job = q.jobs[index]
	refundable = job.Progress(now) < 1.0
	q.jobs = append(q.jobs[:index], q.jobs[index+1:]...)
	if index == 0 && len(q.jobs) > 0 {
		q.jobs[0].Resume(now)
	}
	return job, refundable
}

// Clear empties the queue and returns the jobs whose materials should be
// refunded (progress < 1 at removal time).
func (q *CraftQueue) Clear() []*CraftJob {
	now := q.now()
	var refund []*CraftJob
	for _, job := range q.jobs {
		if job.Progress(now) < 1.0 {
			refund = append(refund, job)
		}
	}
	q.jobs = q.jobs[:0]
	return refund
}
