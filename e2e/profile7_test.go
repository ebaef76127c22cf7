package e2e_test

import (
	"testing"

	"github.com/autosar-go/e2e"
)

func newProfile7(t *testing.T) *e2e.Profile7 {
	t.Helper()
	p, err := e2e.NewProfile7(e2e.Profile7Config{
		DataID:          0xCAFEBABE,
		MinDataLength:   160,
		MaxDataLength:   512,
		Offset:          0,
		MaxDeltaCounter: 10,
	})
	if err != nil {
		t.Fatalf("NewProfile7: %v", err)
	}
	return p
}

func TestProfile7RoundTrip(t *testing.T) {
	t.Parallel()

	p := newProfile7(t)
	buf := make([]byte, 24)

	if err := p.Protect(buf); err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if got := p.Check(buf); got != e2e.StatusOk {
		t.Errorf("Check = %v, want StatusOk", got)
	}
}

func TestProfile7CrcIsEightBytes(t *testing.T) {
	t.Parallel()

	p := newProfile7(t)
	buf := make([]byte, 24)
	if err := p.Protect(buf); err != nil {
		t.Fatalf("Protect: %v", err)
	}

	allZero := true
	for _, b := range buf[:8] {
		if b != 0 {
			allZero = false
		}
	}
	if allZero {
		t.Error("CRC-64 field at buf[0:8] is all zero after Protect, want a computed CRC")
	}
}

func TestProfile7DataIdErrorTakesPrecedenceOverCounter(t *testing.T) {
	t.Parallel()

	sender := newProfile7(t)
	buf := make([]byte, 24)
	if err := sender.Protect(buf); err != nil {
		t.Fatalf("Protect: %v", err)
	}

	receiver, err := e2e.NewProfile7(e2e.Profile7Config{
		DataID:          0x11111111,
		MinDataLength:   160,
		MaxDataLength:   512,
		Offset:          0,
		MaxDeltaCounter: 10,
	})
	if err != nil {
		t.Fatalf("NewProfile7: %v", err)
	}

	// First reception would otherwise be Ok; a DataID mismatch must still
	// surface as StatusDataIdError, not be masked by counter state.
	if got := receiver.Check(buf); got != e2e.StatusDataIdError {
		t.Errorf("Check with mismatched DataID = %v, want StatusDataIdError", got)
	}
}

func TestProfile7CrcIdempotentAcrossRepeatedChecks(t *testing.T) {
	t.Parallel()

	p := newProfile7(t)
	buf := make([]byte, 24)
	if err := p.Protect(buf); err != nil {
		t.Fatalf("Protect: %v", err)
	}

	first := p.Check(buf)
	second := p.Check(buf)
	if first != e2e.StatusOk {
		t.Fatalf("first Check = %v, want StatusOk", first)
	}
	if second != e2e.StatusRepeated {
		t.Errorf("second Check on same buffer = %v, want StatusRepeated", second)
	}
}
