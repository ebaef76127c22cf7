package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// checkDirCmd checks every file in a directory as an independent
// captured buffer against a fresh instance of the named profile. Each
// worker constructs its own e2e.Profile, since instances are single-
// writer (spec §5) and these captures are treated as independent
// receptions rather than one ordered stream.
func checkDirCmd() *cobra.Command {
	var profileName, dir string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "check-dir",
		Short: "Check every captured buffer file in a directory concurrently",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pc, err := findProfileConfig(loadedConfig, profileName)
			if err != nil {
				return err
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("read dir %s: %w", dir, err)
			}
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				if !e.IsDir() {
					names = append(names, e.Name())
				}
			}
			sort.Strings(names)

			results := make([]checkResult, len(names))

			g, _ := errgroup.WithContext(cmd.Context())
			g.SetLimit(concurrency)

			for i, name := range names {
				i, name := i, name
				g.Go(func() error {
					profile, err := buildProfile(pc)
					if err != nil {
						return err
					}
					buf, err := os.ReadFile(filepath.Join(dir, name))
					if err != nil {
						return fmt.Errorf("read %s: %w", name, err)
					}
					status := profile.Check(buf)
					results[i] = checkResult{Profile: name, Status: status.String(), Buffer: encodeBuffer(buf)}
					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return fmt.Errorf("check-dir: %w", err)
			}

			for _, r := range results {
				out, err := formatCheckResult(r, outputFormat)
				if err != nil {
					return err
				}
				fmt.Println(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "named profile from the configuration bank")
	cmd.Flags().StringVar(&dir, "dir", "", "directory of captured buffer files")
	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "maximum concurrent checks")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}
