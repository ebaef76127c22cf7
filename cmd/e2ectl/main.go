// e2ectl is a CLI for exercising the AUTOSAR E2E protection library:
// stamping and checking buffers against a configured bank of named
// profile instances, printing CRC test vectors, and serving Prometheus
// metrics for a long-running check workload.
package main

import (
	"github.com/autosar-go/e2e/cmd/e2ectl/commands"
)

func main() {
	commands.Execute()
}
