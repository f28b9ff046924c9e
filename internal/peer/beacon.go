package peer

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/jsgotchi/internal/core"
)

// StatusFunc reports the pet's current level and state.
type StatusFunc func() Status

// Beacon advertises a pet. Every websocket client that connects receives
// one HELLO and is then disconnected.
type Beacon struct {
	id     uuid.UUID
	name   string
	status StatusFunc
	clock  core.Clock
	log    *log.Logger

	upgrader websocket.Upgrader
	served   atomic.Uint64
}

// NewBeacon creates a beacon for the pet with the given identity.
func NewBeacon(id uuid.UUID, name string, status StatusFunc, clock core.Clock, logger *log.Logger) *Beacon {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Beacon{
		id:     id,
		name:   name,
		status: status,
		clock:  clock,
		log:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ID returns the advertised pet ID.
func (b *Beacon) ID() uuid.UUID {
	return b.id
}

// Served returns how many scanners received a HELLO.
func (b *Beacon) Served() uint64 {
	return b.served.Load()
}

// Hello returns the HELLO the beacon currently sends.
func (b *Beacon) Hello() Hello {
	return NewHello(b.id, b.name, b.status(), b.clock.Now())
}

// Handler returns an http.Handler that serves the beacon at /beacon.
func (b *Beacon) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/beacon", b)
	return mux
}

// ServeHTTP upgrades the connection and sends a HELLO.
func (b *Beacon) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	conn, err := b.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		b.log.Debug("beacon upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteJSON(b.Hello()); err != nil {
		b.log.Debug("beacon write failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	b.served.Add(1)
	b.log.Debug("beacon served", "remote", r.RemoteAddr)

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
		time.Now().Add(time.Second))
}

// Serve runs an HTTP server for the beacon until ctx is done.
func (b *Beacon) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           b.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
