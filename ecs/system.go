package ecs

// System is one step of a frame. Systems are plain structs: any Query or
// Singleton fields they declare are bound to the scheduler's storage on
// Register, and any other fields keep their values between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
