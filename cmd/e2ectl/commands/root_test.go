package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it. The CLI commands print with fmt.Println
// directly rather than through cmd.OutOrStdout(), so tests that want to
// inspect their output must capture the real stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	_ = w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read captured stdout: %v", err)
	}
	return string(out)
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "e2ectl.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestProtectThenCheckViaCLI(t *testing.T) {
	// Not parallel: mutates process-wide os.Stdout and the package-level
	// rootCmd/loadedConfig state shared by every command invocation.

	cfgPath := writeConfigFile(t, `
profiles:
  - name: "test-p5"
    kind: "5"
    data_id: 4660
    data_length: 64
    max_delta_counter: 3
`)

	protectOut := captureStdout(t, func() {
		rootCmd.SetArgs([]string{
			"--config", cfgPath, "--format", "json",
			"protect", "--profile", "test-p5", "--buffer", "0000000000000000",
		})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("protect: %v", err)
		}
	})

	if !strings.Contains(protectOut, `"profile":"test-p5"`) {
		t.Fatalf("protect output %q missing profile field", protectOut)
	}

	start := strings.Index(protectOut, `"buffer":"`) + len(`"buffer":"`)
	end := strings.Index(protectOut[start:], `"`)
	stampedHex := protectOut[start : start+end]
	if stampedHex == "0000000000000000" {
		t.Fatalf("protect left the buffer unchanged: %q", stampedHex)
	}

	checkOut := captureStdout(t, func() {
		rootCmd.SetArgs([]string{
			"--config", cfgPath, "--format", "json",
			"check", "--profile", "test-p5", "--buffer", stampedHex,
		})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("check: %v", err)
		}
	})

	if !strings.Contains(checkOut, `"status":"Ok"`) {
		t.Errorf("check output %q, want status Ok", checkOut)
	}
}

func TestVectorsCommand(t *testing.T) {
	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"vectors"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("vectors: %v", err)
		}
	})

	for _, want := range []string{"CRC-8/SAE-J1850", "CRC-16/CCITT-FALSE", "CRC-64/ECMA", "ok=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("vectors output missing %q:\n%s", want, out)
		}
	}
}

func TestUnknownProfileNameFails(t *testing.T) {
	cfgPath := writeConfigFile(t, `
profiles:
  - name: "known"
    kind: "5"
    data_length: 64
    max_delta_counter: 1
`)

	rootCmd.SetArgs([]string{
		"--config", cfgPath,
		"check", "--profile", "unknown", "--buffer", "00",
	})
	if err := rootCmd.Execute(); err == nil {
		t.Error("check with unknown profile name returned nil error")
	}
}
