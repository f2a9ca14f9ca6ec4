package sim

import (
	"fmt"
	"log"
	"reflect"
	"sync"
)

// A SerialEngine dispatches events one at a time from a single queue.
//
// Pause and Continue may be called from other goroutines, for example by the
// monitoring server. A paused engine finishes the event it is handling and
// then waits.
type SerialEngine struct {
	*HookableBase

	lock     sync.Mutex
	resumed  *sync.Cond
	paused   bool
	time     VTimeInSec
	handled  uint64
	queue    *EventQueue
	runLock  sync.Mutex
	handlers []SimulationEndHandler
}

// NewSerialEngine creates a SerialEngine
func NewSerialEngine() *SerialEngine {
	e := &SerialEngine{
		HookableBase: NewHookableBase(),
		queue:        NewEventQueue(),
	}
	e.resumed = sync.NewCond(&e.lock)

	return e
}

// Schedule queues an event. Events may not be scheduled before the current
// time.
func (e *SerialEngine) Schedule(evt Event) {
	now := e.CurrentTime()
	if evt.Time() < now {
		log.Panicf(
			"scheduling an event earlier than current time, "+
				"evt %s @ %.10f, now %.10f",
			reflect.TypeOf(evt), evt.Time(), now,
		)
	}

	e.queue.Push(evt)
}

// Run handles events until the queue drains or a handler returns an error.
func (e *SerialEngine) Run() error {
	e.runLock.Lock()
	defer e.runLock.Unlock()

	for e.queue.Len() > 0 {
		e.waitIfPaused()

		evt := e.queue.Pop()
		e.advanceTo(evt)

		hookCtx := HookCtx{
			Domain: e,
			Pos:    HookPosBeforeEvent,
			Item:   evt,
		}
		e.InvokeHook(hookCtx)

		err := evt.Handler().Handle(evt)

		hookCtx.Pos = HookPosAfterEvent
		e.InvokeHook(hookCtx)

		if err != nil {
			return fmt.Errorf("handling %s at %.10f: %w",
				reflect.TypeOf(evt), evt.Time(), err)
		}
	}

	return nil
}

func (e *SerialEngine) waitIfPaused() {
	e.lock.Lock()
	defer e.lock.Unlock()

	for e.paused {
		e.resumed.Wait()
	}
}

func (e *SerialEngine) advanceTo(evt Event) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if evt.Time() < e.time {
		log.Panicf(
			"cannot run event in the past, evt %s @ %.10f, now %.10f",
			reflect.TypeOf(evt), evt.Time(), e.time,
		)
	}

	e.time = evt.Time()
	e.handled++
}

// Pause stops the engine before its next event.
func (e *SerialEngine) Pause() {
	e.lock.Lock()
	e.paused = true
	e.lock.Unlock()
}

// Continue releases a paused engine.
func (e *SerialEngine) Continue() {
	e.lock.Lock()
	e.paused = false
	e.lock.Unlock()

	e.resumed.Broadcast()
}

// CurrentTime returns the time of the event being handled, or of the last
// handled event.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.time
}

// EventCount returns the number of events handled so far.
func (e *SerialEngine) EventCount() uint64 {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.handled
}

// Pending returns the number of queued events.
func (e *SerialEngine) Pending() int {
	return e.queue.Len()
}

// RegisterSimulationEndHandler registers a handler to be called by Finished.
func (e *SerialEngine) RegisterSimulationEndHandler(
	handler SimulationEndHandler,
) {
	e.handlers = append(e.handlers, handler)
}

// Finished calls every registered SimulationEndHandler with the current
// time.
func (e *SerialEngine) Finished() {
	now := e.CurrentTime()
	for _, h := range e.handlers {
		h.Handle(now)
	}
}
