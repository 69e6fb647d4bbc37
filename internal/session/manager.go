// Package session tracks the games being played on a host, so it can cap
// concurrency, announce shutdowns and export per-game metrics.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tomz197/asteroids-classic/internal/logging"
	"github.com/tomz197/asteroids-classic/internal/world"
)

const instrumentationName = "github.com/tomz197/asteroids-classic/internal/session"

var (
	// ErrFull is returned by Register when the session cap is reached.
	ErrFull = errors.New("session limit reached")
	// ErrShuttingDown is returned by Register once Shutdown has started.
	ErrShuttingDown = errors.New("host shutting down")
)

// EventType identifies a host-to-session event.
type EventType int

const (
	EventShutdown EventType = iota // Host is going down; the session should wrap up
)

// Event is sent from the manager to a session.
type Event struct {
	Type EventType
}

// Handle is one registered session.
type Handle struct {
	ID       int
	Username string
	Started  time.Time
	Events   chan Event // Closed on Unregister
}

// Manager keeps the set of live sessions. It is safe for concurrent use.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[int]*Handle
	nextID      int
	maxSessions int // 0 means unlimited
	closing     bool
	logger      *log.Logger

	started  metric.Int64Counter
	active   metric.Int64UpDownCounter
	finished metric.Int64Counter
	scores   metric.Int64Histogram
	ticks    metric.Int64Counter
}

// NewManager creates a manager admitting at most maxSessions concurrent
// sessions (0 for no limit). Metrics go to the global OTel meter provider,
// which is a no-op unless one is configured.
func NewManager(maxSessions int, logger *log.Logger) (*Manager, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	m := &Manager{
		sessions:    make(map[int]*Handle),
		nextID:      1,
		maxSessions: maxSessions,
		logger:      logger,
	}

	meter := otel.Meter(instrumentationName)

	var err error
	m.started, err = meter.Int64Counter(
		"sessions.started",
		metric.WithDescription("Total sessions registered"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating started counter: %w", err)
	}

	m.active, err = meter.Int64UpDownCounter(
		"sessions.active",
		metric.WithDescription("Sessions currently connected"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating active counter: %w", err)
	}

	m.finished, err = meter.Int64Counter(
		"games.finished",
		metric.WithDescription("Games that reached game over"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating finished counter: %w", err)
	}

	m.scores, err = meter.Int64Histogram(
		"games.score",
		metric.WithDescription("Final score of finished games"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating score histogram: %w", err)
	}

	m.ticks, err = meter.Int64Counter(
		"games.ticks",
		metric.WithDescription("Simulation ticks run by finished games"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ticks counter: %w", err)
	}

	return m, nil
}

// Register admits a new session.
func (m *Manager) Register(username string) (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closing {
		return nil, ErrShuttingDown
	}
	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return nil, ErrFull
	}

	h := &Handle{
		ID:       m.nextID,
		Username: username,
		Started:  time.Now(),
		Events:   make(chan Event, 4),
	}
	m.nextID++
	m.sessions[h.ID] = h

	ctx := context.Background()
	m.started.Add(ctx, 1)
	m.active.Add(ctx, 1)
	m.logger.Debug("session registered", "id", h.ID, "user", username, "active", len(m.sessions))
	return h, nil
}

// Unregister removes a session and closes its event channel.
// Unregistering twice is a no-op.
func (m *Manager) Unregister(h *Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[h.ID]; !ok {
		return
	}
	delete(m.sessions, h.ID)
	close(h.Events)

	m.active.Add(context.Background(), -1)
	m.logger.Debug("session unregistered", "id", h.ID, "user", h.Username,
		"duration", time.Since(h.Started).Round(time.Second), "active", len(m.sessions))
}

// Finish records the outcome of a game played in a session.
func (m *Manager) Finish(h *Handle, res world.Result) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.Int("level", res.Level))
	m.finished.Add(ctx, 1, attrs)
	m.scores.Record(ctx, int64(res.Score), attrs)
	m.ticks.Add(ctx, int64(res.Ticks))

	m.logger.Info("game finished", "id", h.ID, "user", h.Username,
		"score", res.Score, "level", res.Level, "ticks", res.Ticks)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown stops admitting sessions, tells every live session to wrap up,
// and waits until they have all unregistered or ctx is done.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.closing = true
	for _, h := range m.sessions {
		select {
		case h.Events <- Event{Type: EventShutdown}:
		default:
		}
	}
	m.mu.Unlock()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if m.Count() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %d sessions: %w", m.Count(), ctx.Err())
		case <-ticker.C:
		}
	}
}
