package sim

// Semaphore is a counting signal with a FIFO wait list of suspended processes.
// Release hands its permit directly to the longest-waiting process, so a
// process resumed by the semaphore already owns the permit it asked for.
type Semaphore struct {
	engine  *Engine
	count   int
	waiters []Process
}

// NewSemaphore creates a semaphore with zero permits.
func NewSemaphore(e *Engine) *Semaphore {
	return &Semaphore{engine: e}
}

// Acquire takes a permit for p. It returns true when a permit was available.
// Otherwise p is queued and false is returned; p will be resumed, holding the
// permit, after a later Release.
func (s *Semaphore) Acquire(p Process) bool {
	if s.count > 0 {
		s.count--
		return true
	}
	s.waiters = append(s.waiters, p)
	return false
}

// Release adds one permit, waking the longest waiter if there is one.
func (s *Semaphore) Release() {
	if len(s.waiters) == 0 {
		s.count++
		return
	}
	next := s.waiters[0]
	s.waiters[0] = nil
	s.waiters = s.waiters[1:]
	s.engine.ScheduleAfter(0, next)
}

// Count returns the number of unclaimed permits.
func (s *Semaphore) Count() int {
	return s.count
}

// Waiting returns the number of suspended processes.
func (s *Semaphore) Waiting() int {
	return len(s.waiters)
}
