package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/asteroids-classic/internal/physics"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name                   string
		termW, termH           int
		cols, rows, offC, offR int
	}{
		{"height bound", 200, 60, 160, 60, 20, 0},
		{"width bound", 80, 40, 80, 30, 0, 5},
		{"exact", 64, 24, 64, 24, 0, 0},
		{"degenerate", 0, 0, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows, offC, offR := Fit(tt.termW, tt.termH, 1024, 768)
			assert.Equal(t, tt.cols, cols, "cols")
			assert.Equal(t, tt.rows, rows, "rows")
			assert.Equal(t, tt.offC, offC, "offsetCol")
			assert.Equal(t, tt.offR, offR, "offsetRow")
		})
	}
}

func TestChunkWriterWriteAt(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 3)

	cw.WriteAt(1, 1, "hi")
	assert.Empty(t, buf.String(), "nothing is written before Flush")

	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[4;3Hhi", buf.String())

	buf.Reset()
	require.NoError(t, cw.Flush())
	assert.Empty(t, buf.String(), "a flushed frame is not sent twice")

	cw.SetOffset(0, 0)
	cw.WriteString(SeqClearScreen)
	cw.WriteAt(5, 7, "█!")
	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[H\033[2J\033[7;5H█!", buf.String())
}

func TestChunkWriterMatchesCanvasOrigin(t *testing.T) {
	c := NewCanvas(4, 2, 4, 4)
	c.SetOffset(3, 2)
	c.Plot(physics.Vec2{X: 0, Y: 0})

	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 3, 2)
	c.Render(cw)
	cw.WriteAt(1, 1, "x")
	require.NoError(t, cw.Flush())

	assert.True(t, strings.HasPrefix(buf.String(), "\033[3;4H"), buf.String())
	assert.True(t, strings.HasSuffix(buf.String(), "\033[3;4Hx"), buf.String())
}

func TestCursorTo(t *testing.T) {
	assert.Equal(t, "\033[12;3H", cursorTo(3, 12))
}

func TestChunkWriterLargeFrame(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 0, 0)

	frame := strings.Repeat("x", 3*maxChunkSize+17)
	cw.WriteString(frame)
	require.NoError(t, cw.Flush())
	assert.Equal(t, frame, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestChunkWriterFlushError(t *testing.T) {
	cw := NewChunkWriter(failingWriter{}, 0, 0)
	cw.WriteString("frame")
	assert.Error(t, cw.Flush())
}

func TestTerminalSequences(t *testing.T) {
	var buf bytes.Buffer
	ClearScreen(&buf)
	HideCursor(&buf)
	ShowCursor(&buf)
	assert.Equal(t, SeqClearScreen+SeqHideCursor+SeqShowCursor, buf.String())
	assert.Equal(t, "\033[H\033[2J\033[?25l\033[?25h", buf.String())
}
