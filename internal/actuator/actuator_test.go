package actuator

import (
	"bytes"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestBuiltinBackendsRegistered(t *testing.T) {
	for _, name := range []string{"none", "bell", "speaker"} {
		if !Exists(name) {
			t.Errorf("backend %q not registered", name)
		}
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].Name > list[i].Name {
			t.Errorf("List() not sorted: %v", list)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("theremin", Options{}); err == nil {
		t.Error("expected error for unknown backend")
	}

	b, err := CreateOrSilent("theremin", Options{})
	if err == nil {
		t.Error("CreateOrSilent should report the failure")
	}
	if _, ok := b.(*Silent); !ok {
		t.Errorf("fallback = %T, expected *Silent", b)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("none", "again", func(Options) (Buzzer, error) { return &Silent{}, nil })
}

func TestSilentRecordsBeeps(t *testing.T) {
	b, err := Create("none", Options{})
	if err != nil {
		t.Fatal(err)
	}
	b.Beep(900 * time.Millisecond)
	b.Beep(100 * time.Millisecond)

	got := b.(*Silent).Beeps()
	if len(got) != 2 || got[0] != 900*time.Millisecond {
		t.Errorf("Beeps() = %v", got)
	}
}

func TestBellWritesBEL(t *testing.T) {
	var buf bytes.Buffer
	b, err := Create("bell", Options{Out: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Beep(time.Second); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\a" {
		t.Errorf("wrote %q, expected BEL", buf.String())
	}
}

func TestMemoryLED(t *testing.T) {
	var led MemoryLED
	if led.On() {
		t.Error("LED should start off")
	}
	led.Set(true)
	if !led.On() {
		t.Error("LED should be on")
	}
}

func TestSquareGenerator(t *testing.T) {
	// 1 kHz at 8 kHz sample rate: 4 samples high, 4 low.
	g := NewSquareGenerator(beep.SampleRate(8000), 1000, 0.5)
	buf := make([][2]float64, 16)

	n, ok := g.Stream(buf)
	if n != 16 || !ok {
		t.Fatalf("Stream() = %d, %v", n, ok)
	}
	want := []float64{0.5, 0.5, 0.5, 0.5, -0.5, -0.5, -0.5, -0.5}
	for i := range buf {
		if buf[i][0] != want[i%8] || buf[i][1] != buf[i][0] {
			t.Errorf("sample %d = %v, expected %v", i, buf[i], want[i%8])
		}
	}
	if g.Err() != nil {
		t.Error("Err() should be nil")
	}
}

func TestTakeLimitsBeepLength(t *testing.T) {
	sr := beep.SampleRate(8000)
	s := beep.Take(sr.N(900*time.Millisecond), NewSquareGenerator(sr, 1000, 1))

	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != 7200 {
		t.Errorf("streamed %d samples, expected 7200", total)
	}
}

// Speaker initialization may fail without an audio device; the buzzer
// must still be safe to use.
func TestSpeakerGracefulDegradation(t *testing.T) {
	s := NewSpeaker(2000, 0.3)
	if err := s.Beep(time.Millisecond); err != nil {
		t.Errorf("Beep() before Initialize = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() before Initialize = %v", err)
	}
}
