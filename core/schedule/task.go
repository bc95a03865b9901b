package schedule

import (
	"context"
	"sync"
	"time"
)

// Task fires a function on a trigger until stopped. Runs happen one after another in the
// task goroutine, so a task never overlaps itself.
type Task struct {
	run func(ctx context.Context)

	mu      sync.Mutex
	trigger Trigger
	parent  context.Context
	cancel  context.CancelFunc
	next    time.Time
	loops   sync.WaitGroup
}

// NewTask creates a stopped task.
func NewTask(trigger Trigger, run func(ctx context.Context)) *Task {
	return &Task{run: run, trigger: trigger}
}

// Start begins the timer loop. Runs receive ctx, so cancelling it also aborts a run in progress.
func (t *Task) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return
	}
	t.parent = ctx
	t.startLocked()
}

func (t *Task) startLocked() {
	loopCtx, cancel := context.WithCancel(t.parent)
	t.cancel = cancel
	trigger := t.trigger
	t.loops.Add(1)
	go t.loop(loopCtx, trigger)
}

func (t *Task) loop(loopCtx context.Context, trigger Trigger) {
	defer t.loops.Done()
	for {
		next := trigger.Next(time.Now())
		t.mu.Lock()
		if loopCtx.Err() == nil {
			t.next = next
		}
		t.mu.Unlock()

		timer := time.NewTimer(time.Until(next))
		select {
		case <-loopCtx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		// The run uses the parent context: rescheduling must not abort it.
		t.run(t.parent)
		if loopCtx.Err() != nil {
			return
		}
	}
}

// Stop cancels the timer. A run already in progress finishes unless its context ends.
func (t *Task) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.next = time.Time{}
}

// Reschedule replaces the trigger and restarts the timer if the task was running.
func (t *Task) Reschedule(trigger Trigger) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.trigger = trigger
	if t.cancel == nil {
		return
	}
	t.cancel()
	t.startLocked()
}

// Trigger returns the current trigger.
func (t *Task) Trigger() Trigger {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.trigger
}

// Next returns the pending fire time, or zero when stopped.
func (t *Task) Next() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.next
}

// Wait blocks until every loop goroutine has exited.
func (t *Task) Wait() {
	t.loops.Wait()
}
