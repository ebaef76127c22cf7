package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func protectCmd() *cobra.Command {
	var profileName, hexBuf string

	cmd := &cobra.Command{
		Use:   "protect",
		Short: "Stamp a hex-encoded buffer with a named profile's header fields",
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
			if err := profile.Protect(buf); err != nil {
				return fmt.Errorf("protect: %w", err)
			}
			out, err := formatProtectResult(protectResult{Profile: profileName, Buffer: encodeBuffer(buf)}, outputFormat)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "named profile from the configuration bank")
	cmd.Flags().StringVar(&hexBuf, "buffer", "", "hex-encoded buffer to protect")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("buffer")

	return cmd
}
