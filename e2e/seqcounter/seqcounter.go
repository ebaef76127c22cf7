// Package seqcounter implements the generic counter-validator used by
// every E2E profile to turn a received sequence counter into one of four
// classifications, parametric in the counter width so profiles never
// duplicate the comparison logic for their 4/8/16/32-bit counters.
package seqcounter

// Classification is the outcome of comparing a newly received counter
// against the previously accepted one.
type Classification uint8

const (
	// Ok means the counter advanced by exactly one (or this is the
	// first accepted counter since construction or Reset).
	Ok Classification = iota
	// OkSomeLost means the counter advanced by more than one but no
	// more than the configured tolerance.
	OkSomeLost
	// Repeated means the counter did not advance at all.
	Repeated
	// WrongSequence means the counter advanced by more than the
	// configured tolerance, or went backwards.
	WrongSequence
)

// String renders the classification the way the rest of the library
// renders its enums.
func (c Classification) String() string {
	switch c {
	case Ok:
		return "Ok"
	case OkSomeLost:
		return "OkSomeLost"
	case Repeated:
		return "Repeated"
	case WrongSequence:
		return "WrongSequence"
	default:
		return "Unknown"
	}
}

// Validator tracks the previously accepted counter value for one
// sender/receiver pairing and classifies each newly received value
// against it. Not safe for concurrent use, matching the single-writer
// discipline of the profile instance that owns it (see package e2e).
type Validator struct {
	modulus     uint64
	delta       uint64
	prev        uint64
	initialized bool
}

// New returns a Validator for a counter of the given bit width (the
// modulus is 2^width) and the given tolerance delta. width is one of 4,
// 8, 16, 32; each profile passes the fixed width of its own counter, and
// New does not check it.
func New(width int, delta uint64) *Validator {
	return &Validator{modulus: uint64(1) << uint(width), delta: delta}
}

// Validate classifies received (already reduced to the counter's native
// width by the caller) against the last accepted value, and advances
// that stored value on Ok and OkSomeLost.
//
// The first call after construction or Reset always returns Ok and
// initializes the stored value to received, regardless of its numeric
// value (spec: initial-reception semantics).
func (v *Validator) Validate(received uint64) Classification {
	r := received % v.modulus
	if !v.initialized {
		v.prev = r
		v.initialized = true
		return Ok
	}

	delta := (r - v.prev + v.modulus) % v.modulus
	switch {
	case delta == 0:
		return Repeated
	case delta == 1:
		v.prev = r
		return Ok
	case delta <= v.delta:
		v.prev = r
		return OkSomeLost
	default:
		return WrongSequence
	}
}

// Reset discards the stored counter, so the next Validate call behaves
// like the first one after construction.
func (v *Validator) Reset() {
	v.initialized = false
	v.prev = 0
}

// Initialized reports whether at least one value has been accepted
// since construction or the last Reset.
func (v *Validator) Initialized() bool {
	return v.initialized
}
