package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autosar-go/e2e/crc"
)

// vectorsCmd prints every CRC engine's published "123456789" check
// value alongside the value this engine actually computes, so a reader
// can confirm the implementation against the public CRC catalogue
// without running the test suite.
func vectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vectors",
		Short: "Print published CRC check values and verify this build's engines against them",
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, nv := range crc.Vectors() {
				got := crc.Compute(nv.Params, []byte("123456789"))
				ok := got == nv.Params.Check
				fmt.Printf("%-20s want=0x%X got=0x%X ok=%v\n", nv.Name, nv.Params.Check, got, ok)
			}
			return nil
		},
	}
}
