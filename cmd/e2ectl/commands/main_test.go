package commands

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies check-dir's errgroup worker pool leaves no goroutines
// running after its tests complete.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
