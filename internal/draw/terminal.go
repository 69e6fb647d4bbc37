package draw

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Whole-screen control sequences.
const (
	SeqClearScreen = "\033[H\033[2J"
	SeqHideCursor  = "\033[?25l"
	SeqShowCursor  = "\033[?25h"
)

// maxChunkSize stays under a typical MTU so frames flow smoothly over SSH.
const maxChunkSize = 1400

// appendCursor appends a cursor position sequence for a 1-based terminal
// position. scratch avoids allocating while formatting the numbers.
func appendCursor(sb *strings.Builder, scratch []byte, col, row int) {
	sb.WriteString("\033[")
	sb.Write(strconv.AppendInt(scratch[:0], int64(row), 10))
	sb.WriteByte(';')
	sb.Write(strconv.AppendInt(scratch[:0], int64(col), 10))
	sb.WriteByte('H')
}

func cursorTo(col, row int) string {
	var sb strings.Builder
	var scratch [20]byte
	appendCursor(&sb, scratch[:], col, row)
	return sb.String()
}

// ChunkWriter collects one frame of terminal output and sends it on Flush.
// Canvas.Render writes into it through io.Writer; screen text goes through
// WriteAt, which positions relative to the canvas origin.
type ChunkWriter struct {
	frame   strings.Builder
	out     *bufio.Writer
	scratch [20]byte
	originX int // 0-based terminal column of canvas column 1
	originY int // 0-based terminal row of canvas row 1
}

var _ io.Writer = (*ChunkWriter)(nil)

// NewChunkWriter creates a ChunkWriter for w with the canvas placed at the
// given 0-based offsets.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:     bufio.NewWriterSize(w, 8192),
		originX: offsetCol,
		originY: offsetRow,
	}
}

// SetOffset moves the canvas origin, e.g. after a terminal resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.originX, cw.originY = offsetCol, offsetRow
}

func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.frame.Write(p)
}

// WriteString queues raw output, typically an escape sequence.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame.WriteString(s)
}

// WriteAt queues s at the 1-based canvas position (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	appendCursor(&cw.frame, cw.scratch[:], col+cw.originX, row+cw.originY)
	cw.frame.WriteString(s)
}

// Flush sends the queued frame in chunks of at most maxChunkSize bytes.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame.String()
	cw.frame.Reset()
	for start := 0; start < len(data); start += maxChunkSize {
		end := min(start+maxChunkSize, len(data))
		if _, err := cw.out.WriteString(data[start:end]); err != nil {
			return err
		}
	}
	return cw.out.Flush()
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the process's own terminal.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, SeqClearScreen)
}

func HideCursor(w io.Writer) {
	io.WriteString(w, SeqHideCursor)
}

func ShowCursor(w io.Writer) {
	io.WriteString(w, SeqShowCursor)
}

// Fit returns the largest canvas with the arena's aspect ratio that fits a
// termWidth x termHeight terminal, and the 0-based offsets that center it.
// A cell is one pixel wide and two half-block pixels tall.
func Fit(termWidth, termHeight int, arenaWidth, arenaHeight float64) (cols, rows, offsetCol, offsetRow int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	aspect := arenaWidth / arenaHeight

	cols = termWidth
	rows = int(math.Round(float64(cols) / aspect / 2))
	if rows > termHeight {
		rows = termHeight
		cols = int(math.Round(float64(rows) * 2 * aspect))
	}
	cols = min(max(cols, 1), termWidth)
	rows = min(max(rows, 1), termHeight)

	return cols, rows, (termWidth - cols) / 2, (termHeight - rows) / 2
}
