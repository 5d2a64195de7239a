// Package dispatch defines the serialized execution context on which
// call results are delivered.
//
// The [Executor] interface makes the dispatch context an explicit
// parameter: a proxy decodes responses on worker goroutines and then
// posts exactly one delivery per call to its Executor, so callbacks
// never overlap. [Loop] is the default implementation, a single
// goroutine draining a FIFO queue:
//
//	loop := dispatch.NewLoop()
//	defer loop.Close()
//
// Applications with their own main loop supply it instead:
//
//	exec := dispatch.Func(func(fn func()) { mainThread.Invoke(fn) })
package dispatch
