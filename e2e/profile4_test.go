package e2e_test

import (
	"errors"
	"testing"

	"github.com/autosar-go/e2e"
)

func newProfile4(t *testing.T) *e2e.Profile4 {
	t.Helper()
	p, err := e2e.NewProfile4(e2e.Profile4Config{
		DataID:          0x12345678,
		MinDataLength:   96,
		MaxDataLength:   256,
		Offset:          0,
		MaxDeltaCounter: 5,
	})
	if err != nil {
		t.Fatalf("NewProfile4: %v", err)
	}
	return p
}

func TestProfile4RoundTrip(t *testing.T) {
	t.Parallel()

	p := newProfile4(t)
	buf := make([]byte, 16)

	if err := p.Protect(buf); err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if got := p.Check(buf); got != e2e.StatusOk {
		t.Errorf("Check = %v, want StatusOk", got)
	}
}

func TestProfile4CrcErrorOnCorruption(t *testing.T) {
	t.Parallel()

	p := newProfile4(t)
	buf := make([]byte, 16)
	if err := p.Protect(buf); err != nil {
		t.Fatalf("Protect: %v", err)
	}

	buf[15] ^= 0xFF
	if got := p.Check(buf); got != e2e.StatusCrcError {
		t.Errorf("Check after payload corruption = %v, want StatusCrcError", got)
	}
}

func TestProfile4DataIdError(t *testing.T) {
	t.Parallel()

	sender := newProfile4(t)
	buf := make([]byte, 16)
	if err := sender.Protect(buf); err != nil {
		t.Fatalf("Protect: %v", err)
	}

	receiver, err := e2e.NewProfile4(e2e.Profile4Config{
		DataID:          0xAAAAAAAA,
		MinDataLength:   96,
		MaxDataLength:   256,
		Offset:          0,
		MaxDeltaCounter: 5,
	})
	if err != nil {
		t.Fatalf("NewProfile4: %v", err)
	}

	if got := receiver.Check(buf); got != e2e.StatusDataIdError {
		t.Errorf("Check with mismatched DataID = %v, want StatusDataIdError", got)
	}
}

func TestProfile4LengthError(t *testing.T) {
	t.Parallel()

	p := newProfile4(t)
	buf := make([]byte, 4)

	err := p.Protect(buf)
	if err == nil {
		t.Fatal("Protect with too-short buffer returned nil error")
	}
	var lengthErr *e2e.LengthError
	if !errors.As(err, &lengthErr) {
		t.Errorf("Protect error = %v, want *LengthError", err)
	}

	if got := p.Check(buf); got != e2e.StatusDataLengthError {
		t.Errorf("Check with too-short buffer = %v, want StatusDataLengthError", got)
	}
}

func TestProfile4CounterProgression(t *testing.T) {
	t.Parallel()

	sender := newProfile4(t)
	receiver := newProfile4(t)

	buf := make([]byte, 16)
	if err := sender.Protect(buf); err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if got := receiver.Check(buf); got != e2e.StatusOk {
		t.Fatalf("first Check = %v, want StatusOk", got)
	}

	if err := sender.Protect(buf); err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if got := receiver.Check(buf); got != e2e.StatusOk {
		t.Errorf("second Check = %v, want StatusOk", got)
	}

	if got := receiver.Check(buf); got != e2e.StatusRepeated {
		t.Errorf("repeated Check = %v, want StatusRepeated", got)
	}
}

func TestProfile4ConfigRejectsOutOfRangeDelta(t *testing.T) {
	t.Parallel()

	_, err := e2e.NewProfile4(e2e.Profile4Config{
		DataID:          1,
		MinDataLength:   96,
		MaxDataLength:   256,
		Offset:          0,
		MaxDeltaCounter: 0,
	})
	var cfgErr *e2e.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("NewProfile4 with delta 0 error = %v, want *ConfigError", err)
	}
	if cfgErr.Kind != e2e.OutOfRangeMaxDelta {
		t.Errorf("ConfigError.Kind = %v, want OutOfRangeMaxDelta", cfgErr.Kind)
	}
}

func TestProfile4ConfigRejectsMisalignedOffset(t *testing.T) {
	t.Parallel()

	_, err := e2e.NewProfile4(e2e.Profile4Config{
		DataID:          1,
		MinDataLength:   96,
		MaxDataLength:   256,
		Offset:          3,
		MaxDeltaCounter: 5,
	})
	var cfgErr *e2e.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("NewProfile4 with misaligned offset error = %v, want *ConfigError", err)
	}
	if cfgErr.Kind != e2e.MisalignedOffset {
		t.Errorf("ConfigError.Kind = %v, want MisalignedOffset", cfgErr.Kind)
	}
}

func TestProfile4Reset(t *testing.T) {
	t.Parallel()

	sender := newProfile4(t)
	receiver := newProfile4(t)

	buf := make([]byte, 16)
	_ = sender.Protect(buf)
	_ = sender.Protect(buf)
	if got := receiver.Check(buf); got != e2e.StatusOk {
		t.Fatalf("Check = %v, want StatusOk", got)
	}

	receiver.Reset()
	if got := receiver.Check(buf); got != e2e.StatusOk {
		t.Errorf("Check after Reset = %v, want StatusOk (treated as first reception)", got)
	}
}
