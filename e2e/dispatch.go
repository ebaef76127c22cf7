package e2e

// Profile is the capability trait shared by all nine E2E profiles (spec
// §9's "tagged variant over the nine profile kinds with a dispatch
// surface"). Each concrete ProfileN type already satisfies this
// interface; callers that need to hold "some profile" generically — the
// CLI's profile bank, for instance — use Profile instead of a type
// switch over nine concrete types.
type Profile interface {
	// Protect mutates buf in place, stamping the profile's header
	// fields and advancing the instance's TX counter.
	Protect(buf []byte) error

	// Check validates buf against the instance's configuration and RX
	// counter state, classifying the outcome.
	Check(buf []byte) Status

	// Reset discards the instance's accepted-counter state, so the
	// next Check behaves like the first reception.
	Reset()
}

var (
	_ Profile = (*Profile4)(nil)
	_ Profile = (*Profile4M)(nil)
	_ Profile = (*Profile5)(nil)
	_ Profile = (*Profile6)(nil)
	_ Profile = (*Profile7)(nil)
	_ Profile = (*Profile7M)(nil)
	_ Profile = (*Profile8)(nil)
	_ Profile = (*Profile11)(nil)
	_ Profile = (*Profile22)(nil)
)
