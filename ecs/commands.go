package ecs

// Commands collects work that must not run while systems are iterating.
// Deferred functions run in queue order once every system of the frame has
// executed.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run at the end of the frame.
func (c *Commands) Defer(fn func()) {
	if fn == nil {
		return
	}
	c.defers = append(c.defers, fn)
}

// Len reports how many deferred calls are pending.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs and clears the queued work. Functions queued by a running
// deferred function are executed in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	c.defers = c.defers[:0]
}
