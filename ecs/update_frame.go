package ecs

// UpdateFrame is handed to every system during a single Scheduler.Once call.
type UpdateFrame struct {
	// DeltaTime is the simulated time covered by this frame, in seconds.
	DeltaTime float64
	// Index counts frames since the scheduler was created, starting at 1.
	Index    uint64
	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(dt float64, index uint64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Index:     index,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
