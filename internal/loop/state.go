package loop

import (
	"time"

	"github.com/tomz197/asteroids-classic/internal/world"
)

// GameState is the screen a client is on.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Simulation running
	GameStateOver                      // Game over, waiting for restart
	GameStateShutdown                  // Host is shutting down
)

// State holds the presentation state of one client. The simulation
// itself lives in the world.World the client owns.
type State struct {
	GameState     GameState
	prevGameState GameState
	Frame         world.Frame // Last frame produced by the simulation
	Result        world.Result
	Running       bool

	Debug bool // Hit box overlay

	restartDelay  time.Duration // Game over input lockout
	shutdownTimer time.Duration // Countdown before auto-disconnect on shutdown
	isInactive    bool
	wasInactive   bool
}

// NewState creates the state of a freshly connected client.
func NewState() *State {
	return &State{
		GameState:     GameStateStart,
		prevGameState: GameStateStart,
		Running:       true,
	}
}
