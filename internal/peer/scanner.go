package peer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Result is the outcome of one scan window.
type Result struct {
	At     time.Time
	Nearby []Hello
}

// Count returns the number of distinct pets found.
func (r Result) Count() int {
	return len(r.Nearby)
}

// Found reports whether anyone was nearby.
func (r Result) Found() bool {
	return len(r.Nearby) > 0
}

// Scanner looks for nearby pets until ctx is done or every candidate
// has answered.
type Scanner interface {
	Scan(ctx context.Context) (Result, error)
}

// WSScanner dials a fixed list of beacon URLs.
type WSScanner struct {
	Peers       []string
	Name        string    // only beacons advertising this name count
	Self        uuid.UUID // our own beacon is never counted
	DialTimeout time.Duration
	Log         *log.Logger

	dialer *websocket.Dialer
	once   sync.Once
}

// Scan dials every peer concurrently and collects the HELLOs that arrive.
// Unreachable peers are simply absent from the result.
func (s *WSScanner) Scan(ctx context.Context) (Result, error) {
	s.once.Do(func() {
		s.dialer = &websocket.Dialer{HandshakeTimeout: s.dialTimeout()}
		if s.Log == nil {
			s.Log = log.Default()
		}
		if s.Name == "" {
			s.Name = ServiceName
		}
	})

	var (
		mu    sync.Mutex
		found = make(map[uuid.UUID]Hello)
		wg    sync.WaitGroup
	)
	for _, url := range s.Peers {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			h, err := s.probe(ctx, url)
			if err != nil {
				s.Log.Debug("peer unreachable", "url", url, "err", err)
				return
			}
			if h.PetID == s.Self || h.Name != s.Name {
				return
			}
			mu.Lock()
			found[h.PetID] = h
			mu.Unlock()
		}(url)
	}
	wg.Wait()

	res := Result{At: time.Now()}
	for _, h := range found {
		res.Nearby = append(res.Nearby, h)
	}
	sort.Slice(res.Nearby, func(i, j int) bool {
		return res.Nearby[i].PetID.String() < res.Nearby[j].PetID.String()
	})
	return res, ctx.Err()
}

func (s *WSScanner) probe(ctx context.Context, url string) (Hello, error) {
	dialCtx, cancel := context.WithTimeout(ctx, s.dialTimeout())
	defer cancel()

	conn, _, err := s.dialer.DialContext(dialCtx, url, nil)
	if err != nil {
		return Hello{}, err
	}
	defer conn.Close()

	deadline := time.Now().Add(s.dialTimeout())
	if d, ok := dialCtx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetReadDeadline(deadline)

	_, msg, err := conn.ReadMessage()
	if err != nil {
		return Hello{}, fmt.Errorf("peer: read hello: %w", err)
	}
	return DecodeHello(msg)
}

func (s *WSScanner) dialTimeout() time.Duration {
	if s.DialTimeout <= 0 {
		return 2 * time.Second
	}
	return s.DialTimeout
}
