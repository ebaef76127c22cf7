package e2e

import (
	"errors"
	"fmt"
)

// ConfigErrorKind classifies why a profile's configuration was rejected
// at construction time.
type ConfigErrorKind uint8

const (
	// InvalidRange means a data-length setting fell outside the values
	// the profile accepts, or a header field does not fit inside it. An
	// out-of-range Δ is reported as OutOfRangeMaxDelta instead.
	InvalidRange ConfigErrorKind = iota

	// MisalignedOffset means a bit offset was not a multiple of the
	// alignment its field requires (8 for byte fields, 4 for nibbles).
	MisalignedOffset

	// FieldOverlap means two configured fields occupy overlapping bit
	// ranges within the buffer.
	FieldOverlap

	// OutOfRangeMaxDelta means Δ (max_delta_counter) fell outside the
	// profile's allowed range.
	OutOfRangeMaxDelta
)

var configErrorKindNames = [...]string{
	"InvalidRange",
	"MisalignedOffset",
	"FieldOverlap",
	"OutOfRangeMaxDelta",
}

// String renders the error kind for logs and CLI output.
func (k ConfigErrorKind) String() string {
	if int(k) < len(configErrorKindNames) {
		return configErrorKindNames[k]
	}
	return "Unknown"
}

// ConfigError reports an invalid profile configuration detected at
// construction time, before any profile instance is created and before
// any buffer can be touched.
type ConfigError struct {
	Kind ConfigErrorKind
	Msg  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("e2e: configuration error (%s): %s", e.Kind, e.Msg)
}

func configErrorf(kind ConfigErrorKind, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// ErrBufferTooShort is the sentinel every LengthError unwraps to,
// whichever way the buffer length misses the profile's data-length
// bounds; a buffer that is too long also matches it.
var ErrBufferTooShort = errors.New("e2e: buffer too short for profile header")

// LengthError is returned by Protect when the supplied buffer's length
// is outside the profile's configured bounds, or does not match a
// previously-agreed fixed length. Protect either succeeds completely or
// returns a LengthError without having written anything; it never
// partially stamps a buffer (spec §7).
//
// Check never returns a LengthError: the equivalent condition on the
// receive side is reported as StatusDataLengthError so that framing
// problems are classified the same way as any other check outcome.
type LengthError struct {
	Got  int
	Want string
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("e2e: buffer length %d bytes, want %s", e.Got, e.Want)
}

func (e *LengthError) Unwrap() error {
	return ErrBufferTooShort
}
