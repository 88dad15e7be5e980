// Package engine ties the force accumulator, integrator and stability
// monitor together behind two entry points.
//
// [Session] is the synchronous core: init, step, update, release. It
// is a plain state machine with no concurrency of its own, which keeps
// it independently testable and usable on the caller's thread when no
// worker goroutine is wanted.
//
// [Worker] runs a Session on a dedicated goroutine and speaks the
// asynchronous command/event protocol defined in protocol.go. Several
// workers can run concurrently (a preview layout next to the main
// one); nothing is shared between them or held in package globals.
package engine
