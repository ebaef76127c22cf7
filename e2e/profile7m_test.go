package e2e_test

import (
	"testing"

	"github.com/autosar-go/e2e"
)

func newProfile7M(t *testing.T) *e2e.Profile7M {
	t.Helper()
	p, err := e2e.NewProfile7M(e2e.Profile7MConfig{
		DataID:          0xCAFEBABE,
		SourceID:        0x0102,
		MessageType:     0x0304,
		MinDataLength:   192,
		MaxDataLength:   512,
		Offset:          0,
		MaxDeltaCounter: 10,
	})
	if err != nil {
		t.Fatalf("NewProfile7M: %v", err)
	}
	return p
}

func TestProfile7MRoundTrip(t *testing.T) {
	t.Parallel()

	p := newProfile7M(t)
	buf := make([]byte, 28)

	if err := p.Protect(buf); err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if got := p.Check(buf); got != e2e.StatusOk {
		t.Errorf("Check = %v, want StatusOk", got)
	}
}

func TestProfile7MSourceIdMismatch(t *testing.T) {
	t.Parallel()

	sender := newProfile7M(t)
	buf := make([]byte, 28)
	if err := sender.Protect(buf); err != nil {
		t.Fatalf("Protect: %v", err)
	}

	receiver, err := e2e.NewProfile7M(e2e.Profile7MConfig{
		DataID:          0xCAFEBABE,
		SourceID:        0x9999,
		MessageType:     0x0304,
		MinDataLength:   192,
		MaxDataLength:   512,
		Offset:          0,
		MaxDeltaCounter: 10,
	})
	if err != nil {
		t.Fatalf("NewProfile7M: %v", err)
	}

	if got := receiver.Check(buf); got != e2e.StatusDataIdError {
		t.Errorf("Check with mismatched SourceID = %v, want StatusDataIdError", got)
	}
}

func TestProfile7MHeaderLargerThanProfile7(t *testing.T) {
	t.Parallel()

	// profile7m's header carries the same CRC/Length/Counter/DataID
	// fields as profile7 plus a 4-byte metadata block, so it needs 4
	// more header bytes at the same offset.
	_, err := e2e.NewProfile7M(e2e.Profile7MConfig{
		DataID:          1,
		MinDataLength:   160, // 20 bytes: fits profile7's header but not 7M's 24-byte header
		MaxDataLength:   512,
		Offset:          0,
		MaxDeltaCounter: 1,
	})
	if err == nil {
		t.Error("NewProfile7M with min_data_length sized for profile7's header returned nil error, want ConfigError")
	}
}
