package sim

// TimeTeller reports the current simulated time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler queues events for later handling.
type EventScheduler interface {
	TimeTeller

	Schedule(e Event)
}

// A SimulationEndHandler is told when the simulation ends.
type SimulationEndHandler interface {
	Handle(now VTimeInSec)
}

// An Engine hands events to their handlers in time order.
type Engine interface {
	Hookable
	EventScheduler

	// Run handles events until none is left or a handler fails.
	Run() error

	// Pause holds the engine before its next event. It may be called from
	// any goroutine.
	Pause()

	// Continue releases a paused engine.
	Continue()

	// RegisterSimulationEndHandler adds a handler for Finished to call.
	RegisterSimulationEndHandler(handler SimulationEndHandler)

	// Finished calls every registered SimulationEndHandler.
	Finished()
}
