package actuator

import (
	"io"
	"os"
	"sync"
	"time"
)

func init() {
	Register("bell", "terminal bell (BEL)", func(opts Options) (Buzzer, error) {
		out := opts.Out
		if out == nil {
			out = os.Stderr
		}
		return &Bell{out: out}, nil
	})
}

// Bell rings the terminal bell. The duration is ignored.
type Bell struct {
	mu  sync.Mutex
	out io.Writer
}

// Beep writes BEL to the terminal.
func (b *Bell) Beep(time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.out.Write([]byte{'\a'})
	return err
}

// Close does nothing.
func (b *Bell) Close() error { return nil }
