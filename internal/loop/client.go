// Package loop runs the terminal front end of a game session: title screen,
// the simulation at its tick rate, game over and shutdown screens.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/draw"
	"github.com/tomz197/asteroids-classic/internal/input"
	"github.com/tomz197/asteroids-classic/internal/logging"
	"github.com/tomz197/asteroids-classic/internal/session"
	"github.com/tomz197/asteroids-classic/internal/world"
)

// restartDelay keeps a held fire key from skipping the game over screen.
const restartDelay = time.Second

// Host is the session registry a client reports to.
type Host interface {
	Register(username string) (*session.Handle, error)
	Unregister(h *session.Handle)
	Finish(h *session.Handle, res world.Result)
}

// Options configures a client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Logger       *log.Logger
}

// Client runs one player's session on a terminal.
type Client struct {
	host         Host
	handle       *session.Handle
	cfg          config.Config
	logger       *log.Logger
	state        *State
	world        *world.World
	controller   input.Controller
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	now          func() time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
}

// NewClient registers a session with host and prepares the terminal canvas.
func NewClient(host Host, r *bufio.Reader, w io.Writer, cfg config.Config, opts Options) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	username := opts.Username
	if limit := cfg.Client.MaxUsernameLength; limit > 0 && len(username) > limit {
		username = username[:limit]
	}

	handle, err := host.Register(username)
	if err != nil {
		return nil, fmt.Errorf("register session: %w", err)
	}

	rules := cfg.Rules
	termWidth, termHeight, _ := termSizeFunc()
	cols, rows, offsetCol, offsetRow := draw.Fit(termWidth, termHeight, rules.ArenaWidth, rules.ArenaHeight)
	canvas := draw.NewCanvas(cols, rows, rules.ArenaWidth, rules.ArenaHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		host:         host,
		handle:       handle,
		cfg:          cfg,
		logger:       logger.With("user", username),
		state:        NewState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		now:          time.Now,
		username:     username,
		termSizeFunc: termSizeFunc,
	}, nil
}

// Run drives the client at the simulation tick rate. It blocks until the
// player quits, the connection closes, the host shuts down or ctx is done.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	frameTime := c.cfg.Rules.TickDuration()
	defer c.close()

	for c.state.Running {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()

		if err := c.step(input.ReadInput(c.inputStream)); err != nil {
			return err
		}

		if elapsed := time.Since(frameStart); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
	return nil
}

// close records an unfinished game, leaves the host and clears the screen.
func (c *Client) close() {
	if c.world != nil && !c.world.Over() {
		c.finishGame()
	}
	c.host.Unregister(c.handle)
	draw.ClearScreen(c.writer)
}

// step runs one frame: input, host events, layout, state update, drawing.
func (c *Client) step(in input.Input) error {
	c.processInput(in)
	c.processEvents()
	c.updateScreen()

	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState(in)
	case GameStatePlaying:
		c.updatePlayingState(in)
	case GameStateOver:
		c.updateOverState(in)
	case GameStateShutdown:
		c.updateShutdownState()
	}

	return c.drawFrame()
}

// processInput tracks inactivity and disconnects.
func (c *Client) processInput(in input.Input) {
	now := c.now()
	switch {
	case len(in.Pressed) > 0:
		c.lastInput = now
		c.state.isInactive = false
	case now.Sub(c.lastInput) > c.cfg.Client.InactivityDisconnect:
		c.logger.Info("disconnecting inactive session")
		c.state.Running = false
	case now.Sub(c.lastInput) > c.cfg.Client.InactivityWarn:
		c.state.isInactive = true
	}

	if in.Closed || in.Quit {
		c.state.Running = false
	}
	if in.Debug {
		c.state.Debug = !c.state.Debug
	}
}

// processEvents handles messages from the host.
func (c *Client) processEvents() {
	for {
		select {
		case ev, ok := <-c.handle.Events:
			if !ok {
				c.state.Running = false
				return
			}
			if ev.Type == session.EventShutdown && c.state.GameState != GameStateShutdown {
				if c.world != nil && !c.world.Over() {
					c.finishGame()
				}
				c.world = nil
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = c.cfg.Client.ShutdownDisplay
			}
		default:
			return
		}
	}
}

// updateScreen refits the canvas when the terminal size changes and clears
// the terminal so nothing is left outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	rules := c.cfg.Rules
	cols, rows, offsetCol, offsetRow := draw.Fit(termWidth, termHeight, rules.ArenaWidth, rules.ArenaHeight)

	if cols != c.canvas.TerminalWidth() || rows != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString(draw.SeqClearScreen)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(cols, rows)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

func (c *Client) updateStartState(in input.Input) {
	if in.Space || in.Enter {
		c.startGame()
	}
}

func (c *Client) updatePlayingState(in input.Input) {
	ctrl := c.controller.Apply(in)
	c.state.Frame = c.world.Tick(ctrl)

	if c.world.Over() {
		c.finishGame()
		c.state.GameState = GameStateOver
		c.state.restartDelay = restartDelay
	}
}

func (c *Client) updateOverState(in input.Input) {
	if c.state.restartDelay > 0 {
		c.state.restartDelay -= c.cfg.Rules.TickDuration()
		return
	}
	if in.Space || in.Enter {
		c.startGame()
	}
}

func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.cfg.Rules.TickDuration()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// startGame starts a fresh simulation.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)
	c.controller.Reset()

	w, err := world.New(c.cfg.Rules, nil, world.WithLogger(c.logger))
	if err != nil {
		c.logger.Error("start game", "err", err)
		c.state.Running = false
		return
	}
	c.world = w
	c.state.Frame = w.Frame()
	c.state.GameState = GameStatePlaying
	c.logger.Info("game started")
}

// finishGame reports the current game's result to the host.
func (c *Client) finishGame() {
	c.state.Result = c.world.Result()
	c.host.Finish(c.handle, c.state.Result)
}
