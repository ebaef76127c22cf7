// Package commands implements the e2ectl CLI commands.
package commands

import (
	"errors"
	"fmt"

	"github.com/autosar-go/e2e"
	"github.com/autosar-go/e2e/internal/config"
)

// errUnknownProfileKind is returned by buildProfile for a kind string
// config.Validate did not already reject (defensive — unreachable once
// the config has been validated).
var errUnknownProfileKind = errors.New("unknown profile kind")

// buildProfile constructs the e2e.Profile named by pc, dispatching on
// pc.Kind to the matching e2e.NewProfileN constructor.
func buildProfile(pc config.ProfileConfig) (e2e.Profile, error) {
	switch pc.Kind {
	case "4":
		return e2e.NewProfile4(e2e.Profile4Config{
			DataID:          pc.DataID,
			MinDataLength:   pc.MinDataLength,
			MaxDataLength:   pc.MaxDataLength,
			Offset:          pc.Offset,
			MaxDeltaCounter: pc.MaxDeltaCounter,
		})
	case "4m":
		return e2e.NewProfile4M(e2e.Profile4MConfig{
			DataID:          pc.DataID,
			SourceID:        pc.SourceID,
			MessageType:     pc.MessageType,
			MinDataLength:   pc.MinDataLength,
			MaxDataLength:   pc.MaxDataLength,
			Offset:          pc.Offset,
			MaxDeltaCounter: pc.MaxDeltaCounter,
		})
	case "5":
		return e2e.NewProfile5(e2e.Profile5Config{
			DataID:          uint16(pc.DataID),
			DataLength:      pc.DataLength,
			Offset:          pc.Offset,
			MaxDeltaCounter: uint8(pc.MaxDeltaCounter),
		})
	case "6":
		return e2e.NewProfile6(e2e.Profile6Config{
			DataID:          uint16(pc.DataID),
			MinDataLength:   pc.MinDataLength,
			MaxDataLength:   pc.MaxDataLength,
			Offset:          pc.Offset,
			MaxDeltaCounter: uint8(pc.MaxDeltaCounter),
		})
	case "7":
		return e2e.NewProfile7(e2e.Profile7Config{
			DataID:          pc.DataID,
			MinDataLength:   pc.MinDataLength,
			MaxDataLength:   pc.MaxDataLength,
			Offset:          pc.Offset,
			MaxDeltaCounter: pc.MaxDeltaCounter,
		})
	case "7m":
		return e2e.NewProfile7M(e2e.Profile7MConfig{
			DataID:          pc.DataID,
			SourceID:        pc.SourceID,
			MessageType:     pc.MessageType,
			MinDataLength:   pc.MinDataLength,
			MaxDataLength:   pc.MaxDataLength,
			Offset:          pc.Offset,
			MaxDeltaCounter: pc.MaxDeltaCounter,
		})
	case "8":
		return e2e.NewProfile8(e2e.Profile8Config{
			DataID:          pc.DataID,
			MinDataLength:   pc.MinDataLength,
			MaxDataLength:   pc.MaxDataLength,
			Offset:          pc.Offset,
			MaxDeltaCounter: pc.MaxDeltaCounter,
		})
	case "11":
		mode := e2e.Profile11Nibble
		if pc.Mode == "both" {
			mode = e2e.Profile11Both
		}
		return e2e.NewProfile11(e2e.Profile11Config{
			Mode:            mode,
			DataID:          uint16(pc.DataID),
			CRCOffset:       pc.CRCOffset,
			CounterOffset:   pc.CounterOffset,
			NibbleOffset:    pc.NibbleOffset,
			DataLength:      pc.DataLength,
			MaxDeltaCounter: uint8(pc.MaxDeltaCounter),
		})
	case "22":
		var list [16]uint8
		copy(list[:], pc.DataIDList)
		return e2e.NewProfile22(e2e.Profile22Config{
			DataIDList:      list,
			Offset:          pc.Offset,
			DataLength:      pc.DataLength,
			MaxDeltaCounter: uint8(pc.MaxDeltaCounter),
		})
	default:
		return nil, fmt.Errorf("profile %q: %w: %q", pc.Name, errUnknownProfileKind, pc.Kind)
	}
}

// findProfileConfig looks up a named profile entry in cfg.
func findProfileConfig(cfg *config.Config, name string) (config.ProfileConfig, error) {
	for _, pc := range cfg.Profiles {
		if pc.Name == name {
			return pc, nil
		}
	}
	return config.ProfileConfig{}, fmt.Errorf("no profile named %q in configuration", name)
}
