package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/asteroids-classic/internal/draw"
	"github.com/tomz197/asteroids-classic/internal/world"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear so UI
	// text from the previous screen doesn't persist.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString(draw.SeqClearScreen)
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	if c.state.GameState == GameStatePlaying || c.state.GameState == GameStateOver {
		c.drawWorld(c.state.Frame)
	}

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawWorld rasterizes a simulation frame onto the canvas.
func (c *Client) drawWorld(f world.Frame) {
	cv := c.canvas

	cv.SetPen(draw.PenWhite)
	for _, s := range f.Asteroids {
		cv.Polygon(s.Points, false)
	}

	cv.SetPen(draw.PenYellow)
	for _, s := range f.Shots {
		cv.Plot(s.Pos)
	}

	cv.SetPen(draw.PenRed)
	for _, p := range f.Particles {
		cv.Plot(p)
	}

	if f.Player != nil {
		cv.SetPen(draw.PenCyan)
		cv.Polygon(f.Player.Points, true)
	}

	if c.state.Debug {
		cv.SetPen(draw.PenDim)
		for _, s := range f.Asteroids {
			cv.Rect(s.Bounds)
		}
		for _, s := range f.Shots {
			cv.Rect(s.Bounds)
		}
		if f.Player != nil {
			cv.Rect(f.Player.Bounds)
		}
	}
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	width := c.canvas.TerminalWidth()
	height := c.canvas.TerminalHeight()
	centerX := width / 2
	centerY := height / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStatePlaying:
		c.drawHUD(width, height, c.state.Frame)
	case GameStateOver:
		c.drawHUD(width, height, c.state.Frame)
		c.drawGameOverScreen(centerX, centerY)
	}
}

// writeCentered writes s centered on col and marks the cells for repaint.
func (c *Client) writeCentered(col, row int, s string) {
	start := max(col-len(s)/2, 1)
	c.chunkWriter.WriteAt(start, row, s)
	c.canvas.MarkTextDirty(start, row, len(s))
}

// drawHUD draws the counters. Fields are fixed width so shrinking values
// don't leave stale characters.
func (c *Client) drawHUD(width, height int, f world.Frame) {
	cw := c.chunkWriter

	level := fmt.Sprintf("LEVEL %-3d", f.HUD.Level)
	cw.WriteAt(2, 1, level)

	score := fmt.Sprintf("SCORE %-8d", f.HUD.Score)
	cw.WriteAt(max((width-len(score))/2, 1), 1, score)

	lives := fmt.Sprintf("LIVES %-2d", f.HUD.Lives)
	cw.WriteAt(max(width-len(lives), 1), 1, lives)

	if c.username != "" {
		cw.WriteAt(2, height, c.username)
	}

	if c.state.Debug {
		dbg := fmt.Sprintf("tick %-7d ast %-3d shots %d particles %-4d %-16s",
			f.Tick, len(f.Asteroids), len(f.Shots), len(f.Particles), f.Phase)
		cw.WriteAt(2, 2, dbg)
		c.canvas.MarkTextDirty(2, 2, len(dbg))
	}
}

var titleArt = []string{
	`    _   ___ _____ ___ ___  ___ ___ ___  ___ `,
	`   /_\ / __|_   _| __| _ \/ _ \_ _|   \/ __|`,
	`  / _ \\__ \ | | | _||   / (_) | || |) \__ \`,
	` /_/ \_\___/ |_| |___|_|_\\___/___|___/|___/`,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawArt writes a block of lines left-aligned around centerX.
func (c *Client) drawArt(centerX, top int, art []string) {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		c.chunkWriter.WriteAt(max(centerX-width/2, 1), top+i, line)
	}
}

func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

func (c *Client) drawStartScreen(centerX, centerY int) {
	top := centerY - 7
	c.drawArt(centerX, top, titleArt)

	c.writeCentered(centerX, top+len(titleArt)+1, "~ Classic Asteroids in your terminal ~")

	controlsY := top + len(titleArt) + 3
	c.writeCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"W / Up  . . . . Thrust",
		"A D / < >  . .  Rotate",
		"SPACE  . . . . . Shoot",
		"B  . . . .  Hit boxes",
		"Q  . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+1+i, line)
	}

	if blinkOn() {
		c.writeCentered(centerX, controlsY+len(controlLines)+2, ">>  Press SPACE to Start  <<")
	}
}

func (c *Client) drawGameOverScreen(centerX, centerY int) {
	top := centerY - 5
	c.drawArt(centerX, top, gameOverArt)

	res := c.state.Result
	c.writeCentered(centerX, top+len(gameOverArt)+1, fmt.Sprintf("Score: %d", res.Score))
	c.writeCentered(centerX, top+len(gameOverArt)+2, fmt.Sprintf("Reached level %d", res.Level))

	if c.state.restartDelay <= 0 && blinkOn() {
		c.writeCentered(centerX, top+len(gameOverArt)+4, ">>  Press SPACE to Restart  <<")
	}
}

func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")

	left := c.cfg.Client.InactivityDisconnect - c.now().Sub(c.lastInput)
	msg := fmt.Sprintf("You will be disconnected in %d seconds.", max(int(left.Seconds()), 0))
	c.writeCentered(centerX, centerY, msg)

	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer.Seconds()) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
