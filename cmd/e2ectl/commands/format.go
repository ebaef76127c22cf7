package commands

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

// errUnsupportedFormat is returned when the requested output format is
// not supported.
var errUnsupportedFormat = errors.New("unsupported output format")

// checkResult is the JSON/table payload for a single `check` invocation.
type checkResult struct {
	Profile string `json:"profile"`
	Status  string `json:"status"`
	Buffer  string `json:"buffer"`
}

func formatCheckResult(r checkResult, format string) (string, error) {
	switch format {
	case formatJSON:
		b, err := json.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("marshal check result: %w", err)
		}
		return string(b), nil
	case formatTable:
		return fmt.Sprintf("profile=%s status=%s buffer=%s", r.Profile, r.Status, r.Buffer), nil
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedFormat, format)
	}
}

// protectResult is the JSON/table payload for a single `protect` invocation.
type protectResult struct {
	Profile string `json:"profile"`
	Buffer  string `json:"buffer"`
}

func formatProtectResult(r protectResult, format string) (string, error) {
	switch format {
	case formatJSON:
		b, err := json.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("marshal protect result: %w", err)
		}
		return string(b), nil
	case formatTable:
		return fmt.Sprintf("profile=%s buffer=%s", r.Profile, r.Buffer), nil
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedFormat, format)
	}
}

func encodeBuffer(buf []byte) string {
	return hex.EncodeToString(buf)
}

func decodeBuffer(s string) ([]byte, error) {
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode hex buffer: %w", err)
	}
	return buf, nil
}
