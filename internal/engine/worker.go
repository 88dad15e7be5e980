package engine

import "sync/atomic"

// Worker runs a Session on its own goroutine behind an asynchronous
// message protocol, so force computation never blocks the caller's
// render loop. All mutable simulation state lives inside the worker
// goroutine; the only things that cross the boundary are commands in,
// and events carrying snapshot copies out.
//
// Commands are processed strictly in arrival order. Stop and Kill
// therefore take effect between steps, never mid-step: a step already
// executing runs to completion before the next command is read.
// Nothing inside the worker drives stepping on a timer; the caller's
// loop decides the cadence.
type Worker struct {
	session *Session
	cmds    chan Command
	events  chan Event
	done    chan struct{}
	phase   atomic.Int32
}

// NewWorker starts a worker in the Idle phase.
func NewWorker() *Worker {
	w := &Worker{
		session: NewSession(),
		cmds:    make(chan Command, 64),
		events:  make(chan Event, 64),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w
}

// Send enqueues a command. It reports false once the worker has been
// killed; commands sent concurrently with a Kill may be silently
// dropped, which is the documented cancellation behavior.
func (w *Worker) Send(cmd Command) bool {
	// Checked separately first: the buffered command channel can still
	// accept sends after death, and the combined select would pick a
	// case at random.
	select {
	case <-w.done:
		return false
	default:
	}
	select {
	case <-w.done:
		return false
	case w.cmds <- cmd:
		return true
	}
}

// Events returns the outbound notification channel. It is closed when
// the worker dies, after any already-emitted events.
func (w *Worker) Events() <-chan Event {
	return w.events
}

// Done is closed when the worker has terminated and released its
// state.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Phase reports the current lifecycle phase. Inherently racy against
// in-flight commands; meant for status displays and tests.
func (w *Worker) Phase() Phase {
	return Phase(w.phase.Load())
}

func (w *Worker) loop() {
	for cmd := range w.cmds {
		switch c := cmd.(type) {
		case Init:
			w.session.Init(c.Positions, c.Velocities, c.Edges, c.Physics, c.Groups)
			w.phase.Store(int32(PhaseInitialized))

		case Step:
			switch Phase(w.phase.Load()) {
			case PhaseInitialized, PhaseRunning, PhaseStopped:
			default:
				continue
			}
			w.phase.Store(int32(PhaseRunning))
			res := w.session.Step(c.Dt)
			w.emit(Positions{
				Positions:    w.session.Positions(),
				Movement:     res.Movement,
				StableFrames: res.StableFrames,
			})
			if res.BecameStable {
				w.emit(Stable{StableFrames: res.StableFrames, Steps: w.session.Steps()})
			}

		case Stop:
			if Phase(w.phase.Load()) == PhaseRunning {
				w.phase.Store(int32(PhaseStopped))
			}

		case UpdatePhysics:
			w.session.UpdatePhysics(c.Physics, c.Groups)

		case Kill:
			w.phase.Store(int32(PhaseKilled))
			w.session.Release()
			close(w.done)
			close(w.events)
			return
		}
	}
}

func (w *Worker) emit(e Event) {
	w.events <- e
}
