package input

import "strings"

// Command is a named control the simulation reacts to.
type Command int

const (
	Quit Command = iota
	Left
	Right
	Thrust
	Fire

	commandCount
)

var commandNames = [commandCount]string{
	Quit:   "quit",
	Left:   "left",
	Right:  "right",
	Thrust: "thrust",
	Fire:   "fire",
}

// String returns the command's external name.
func (c Command) String() string {
	if c < 0 || c >= commandCount {
		return "unknown"
	}
	return commandNames[c]
}

// ParseCommand looks up a command by its external name (case-insensitive).
func ParseCommand(name string) (Command, bool) {
	name = strings.ToLower(name)
	for c, n := range commandNames {
		if n == name {
			return Command(c), true
		}
	}
	return 0, false
}

// Controls is the per-tick control snapshot handed to the simulation.
// Indexing by Command rules out lookups of misspelled names.
type Controls [commandCount]bool

// Active reports whether cmd is on. Out-of-range commands are never active.
func (c *Controls) Active(cmd Command) bool {
	if cmd < 0 || cmd >= commandCount {
		return false
	}
	return c[cmd]
}

// Set switches cmd on or off. Out-of-range commands are ignored.
func (c *Controls) Set(cmd Command, on bool) {
	if cmd < 0 || cmd >= commandCount {
		return
	}
	c[cmd] = on
}

// Clear switches cmd off. The simulation uses this to consume a fire press.
func (c *Controls) Clear(cmd Command) {
	c.Set(cmd, false)
}

// SetByName switches a command on or off by its external name.
// Returns false if the name is unknown.
func (c *Controls) SetByName(name string, on bool) bool {
	cmd, ok := ParseCommand(name)
	if !ok {
		return false
	}
	c.Set(cmd, on)
	return true
}

// Turn returns +1 for right, -1 for left and 0 when both or neither are held.
func (c *Controls) Turn() int {
	turn := 0
	if c.Active(Right) {
		turn++
	}
	if c.Active(Left) {
		turn--
	}
	return turn
}
