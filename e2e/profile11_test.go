package e2e_test

import (
	"testing"

	"github.com/autosar-go/e2e"
)

func newProfile11Nibble(t *testing.T) *e2e.Profile11 {
	t.Helper()
	p, err := e2e.NewProfile11(e2e.Profile11Config{
		Mode:            e2e.Profile11Nibble,
		DataID:          0x00A5,
		CRCOffset:       0,
		CounterOffset:   8,
		NibbleOffset:    12,
		DataLength:      16,
		MaxDeltaCounter: 2,
	})
	if err != nil {
		t.Fatalf("NewProfile11: %v", err)
	}
	return p
}

func TestProfile11NibbleModeRoundTrip(t *testing.T) {
	t.Parallel()

	p := newProfile11Nibble(t)
	buf := make([]byte, 2)

	if err := p.Protect(buf); err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if got := p.Check(buf); got != e2e.StatusOk {
		t.Errorf("Check = %v, want StatusOk", got)
	}
}

func TestProfile11BothModeLeavesNibbleToCaller(t *testing.T) {
	t.Parallel()

	p, err := e2e.NewProfile11(e2e.Profile11Config{
		Mode:            e2e.Profile11Both,
		DataID:          0x00A5,
		CRCOffset:       0,
		CounterOffset:   8,
		DataLength:      16,
		MaxDeltaCounter: 2,
	})
	if err != nil {
		t.Fatalf("NewProfile11: %v", err)
	}

	buf := make([]byte, 2)
	buf[1] = 0x0F // caller-owned nibble payload (low nibble), outside CounterOffset

	if err := p.Protect(buf); err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if got := p.Check(buf); got != e2e.StatusOk {
		t.Errorf("Check = %v, want StatusOk", got)
	}
}

func TestProfile11DataIdNibbleMismatch(t *testing.T) {
	t.Parallel()

	sender := newProfile11Nibble(t)
	buf := make([]byte, 2)
	if err := sender.Protect(buf); err != nil {
		t.Fatalf("Protect: %v", err)
	}

	receiver, err := e2e.NewProfile11(e2e.Profile11Config{
		Mode:            e2e.Profile11Nibble,
		DataID:          0x0015, // different low-byte high nibble (0x1 vs 0xA)
		CRCOffset:       0,
		CounterOffset:   8,
		NibbleOffset:    12,
		DataLength:      16,
		MaxDeltaCounter: 2,
	})
	if err != nil {
		t.Fatalf("NewProfile11: %v", err)
	}

	// The sender's CRC was computed over its own DataID nibble, so a
	// receiver configured with a different DataID sees a CRC mismatch
	// before it would ever compare the nibble field.
	if got := receiver.Check(buf); got != e2e.StatusCrcError {
		t.Errorf("Check with mismatched DataID = %v, want StatusCrcError", got)
	}
}

func TestProfile11RejectsDataLengthAboveMax(t *testing.T) {
	t.Parallel()

	_, err := e2e.NewProfile11(e2e.Profile11Config{
		Mode:            e2e.Profile11Nibble,
		DataID:          1,
		CRCOffset:       0,
		CounterOffset:   8,
		NibbleOffset:    12,
		DataLength:      248,
		MaxDeltaCounter: 2,
	})
	if err == nil {
		t.Error("NewProfile11 with data_length 248 (> 240 max) returned nil error")
	}
}

func TestProfile11RejectsOverlappingFields(t *testing.T) {
	t.Parallel()

	_, err := e2e.NewProfile11(e2e.Profile11Config{
		Mode:            e2e.Profile11Nibble,
		DataID:          1,
		CRCOffset:       0,
		CounterOffset:   4, // overlaps the CRC byte [0,8)
		NibbleOffset:    12,
		DataLength:      16,
		MaxDeltaCounter: 2,
	})
	if err == nil {
		t.Error("NewProfile11 with overlapping counter/CRC fields returned nil error")
	}
}

func TestProfile11ModeString(t *testing.T) {
	t.Parallel()

	if got := e2e.Profile11Nibble.String(); got != "Nibble" {
		t.Errorf("Profile11Nibble.String() = %q, want %q", got, "Nibble")
	}
	if got := e2e.Profile11Both.String(); got != "Both" {
		t.Errorf("Profile11Both.String() = %q, want %q", got, "Both")
	}
}

func TestProfile11CounterWrapsAtNibble(t *testing.T) {
	t.Parallel()

	sender := newProfile11Nibble(t)
	receiver := newProfile11Nibble(t)
	buf := make([]byte, 2)

	// 17 messages: counters 0..15, then the wrap back to 0.
	for i := 0; i < 17; i++ {
		if err := sender.Protect(buf); err != nil {
			t.Fatalf("Protect #%d: %v", i, err)
		}
		if got := receiver.Check(buf); got != e2e.StatusOk {
			t.Fatalf("Check #%d = %v, want StatusOk", i, got)
		}
	}
}
