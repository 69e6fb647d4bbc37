package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/draw"
	"github.com/tomz197/asteroids-classic/internal/session"
)

// Run plays a single local game on the given terminal streams.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, cfg config.Config, logger *log.Logger) error {
	host, err := session.NewManager(1, logger)
	if err != nil {
		return err
	}

	c, err := NewClient(host, r, w, cfg, Options{
		TermSizeFunc: draw.DefaultTermSizeFunc,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	return c.Run(ctx)
}
