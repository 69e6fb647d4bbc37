package input

// Controller turns per-frame key state into a Controls snapshot.
// Steering and thrust follow the held state; fire is latched on the press
// edge and stays set until the simulation clears it after spawning a shot.
type Controller struct {
	controls  Controls
	prevSpace bool
}

// Apply folds one frame of key state into the controller and returns the
// snapshot to pass to the simulation. The returned pointer is owned by the
// controller; the simulation may clear Fire on it.
func (c *Controller) Apply(in Input) *Controls {
	c.controls.Set(Quit, in.Quit)
	c.controls.Set(Left, in.Left || in.UpLeft)
	c.controls.Set(Right, in.Right || in.UpRight)
	c.controls.Set(Thrust, in.Up || in.UpLeft || in.UpRight)

	if in.Space && !c.prevSpace {
		c.controls.Set(Fire, true)
	}
	c.prevSpace = in.Space

	return &c.controls
}

// Reset drops all latched commands.
func (c *Controller) Reset() {
	c.controls = Controls{}
	c.prevSpace = false
}
