package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	var profileName, hexBuf string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Classify a hex-encoded buffer against a named profile",
		RunE: func(_ *cobra.Command, _ []string) error {
			pc, err := findProfileConfig(loadedConfig, profileName)
			if err != nil {
				return err
			}
			profile, err := buildProfile(pc)
			if err != nil {
				return err
			}
			buf, err := decodeBuffer(hexBuf)
			if err != nil {
				return err
			}
			status := profile.Check(buf)
			out, err := formatCheckResult(checkResult{Profile: profileName, Status: status.String(), Buffer: hexBuf}, outputFormat)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "named profile from the configuration bank")
	cmd.Flags().StringVar(&hexBuf, "buffer", "", "hex-encoded buffer to check")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("buffer")

	return cmd
}
