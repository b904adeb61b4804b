package selection

import "runtime/debug"

// PanicHandler is called when a listener panics during a fan-out. It
// receives the event being delivered, the panic value and the stack trace.
type PanicHandler func(event Event, recovered any, stack []byte)

// defaultPanicHandler swallows the panic. The application installs a
// handler that logs through its logger.
func defaultPanicHandler(event Event, recovered any, stack []byte) {}

// engine fans an event out to both listener classes. Immediate listeners
// run on the calling goroutine before dispatch returns; consolidated
// listeners run later on the UI task loop, in dispatch order.
type engine struct {
	reg          *registry
	tasks        TaskQueue
	panicHandler PanicHandler
}

func newEngine(reg *registry, tasks TaskQueue, panicHandler PanicHandler) *engine {
	if panicHandler == nil {
		panicHandler = defaultPanicHandler
	}
	return &engine{
		reg:          reg,
		tasks:        tasks,
		panicHandler: panicHandler,
	}
}

// dispatch delivers the event. The deferred snapshot is taken now, not
// when the posted task runs: listeners added after this call do not see
// the event, listeners removed after this call still do.
func (d *engine) dispatch(evt Event) {
	for _, entry := range d.reg.snapshot(FireImmediate) {
		d.fire(entry, evt)
	}

	snap := d.reg.snapshot(FireUIThreadConsolidated)
	if len(snap) == 0 {
		return
	}
	d.tasks.Post(func() {
		for _, entry := range snap {
			d.fire(entry, evt)
		}
	})
}

// fire invokes a single listener with panic isolation, so one failing
// listener cannot starve the rest of the fan-out.
func (d *engine) fire(entry listenerEntry, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			d.panicHandler(evt, r, debug.Stack())
		}
	}()
	entry.fire(evt)
}
