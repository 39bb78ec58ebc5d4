package core

// Timestep is a frame delta in seconds.
type Timestep float32

func (t Timestep) Seconds() float32      { return float32(t) }
func (t Timestep) Milliseconds() float32 { return float32(t) * 1000 }
