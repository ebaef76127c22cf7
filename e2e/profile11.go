package e2e

import (
	"github.com/autosar-go/e2e/bitfield"
	"github.com/autosar-go/e2e/crc"
	"github.com/autosar-go/e2e/seqcounter"
)

const (
	profile11DeltaMin = 1
	profile11DeltaMax = 14
)

const profile11MaxDataLength = 240

// Profile11Mode selects how profile 11's fourth nibble is interpreted.
type Profile11Mode int

const (
	// Profile11Nibble reserves the configured nibble for the high nibble
	// of DataID's low byte, folded into the CRC.
	Profile11Nibble Profile11Mode = iota
	// Profile11Both leaves that nibble to the caller as ordinary
	// payload, outside the protection scope.
	Profile11Both
)

func (m Profile11Mode) String() string {
	switch m {
	case Profile11Nibble:
		return "Nibble"
	case Profile11Both:
		return "Both"
	default:
		return "Unknown"
	}
}

// Profile11Config is the immutable configuration for an E2E profile 11
// instance: a one-byte-CRC, one-nibble-counter variant for the
// tightest-budget buffers (CAN nibble fields and similar).
type Profile11Config struct {
	// Mode selects Nibble or Both; see Profile11Mode.
	Mode Profile11Mode

	// DataID is the 16-bit value signed into the CRC; in Nibble mode
	// its low byte's high nibble is also mirrored into the buffer.
	DataID uint16

	// CRCOffset is the bit offset of the CRC byte, a multiple of 8.
	CRCOffset int

	// CounterOffset is the bit offset of the counter nibble, a multiple
	// of 4.
	CounterOffset int

	// NibbleOffset is the bit offset of the DataID-nibble, a multiple
	// of 4. Required (and validated) only in Nibble mode.
	NibbleOffset int

	// DataLength is the fixed buffer length in bits, a multiple of 8,
	// at most 240.
	DataLength int

	// MaxDeltaCounter (Δ) must be in [1, 14].
	MaxDeltaCounter uint8
}

func (c Profile11Config) validate() error {
	if err := checkByteAligned("crc_offset", c.CRCOffset); err != nil {
		return err
	}
	if err := checkNibbleAligned("counter_offset", c.CounterOffset); err != nil {
		return err
	}
	if c.Mode == Profile11Nibble {
		if err := checkNibbleAligned("nibble_offset", c.NibbleOffset); err != nil {
			return err
		}
	}
	if c.DataLength <= 0 || c.DataLength%8 != 0 || c.DataLength > profile11MaxDataLength {
		return configErrorf(InvalidRange, "data_length %d must be a positive multiple of 8, at most %d", c.DataLength, profile11MaxDataLength)
	}
	fields := []fieldRange{
		{name: "crc", lo: c.CRCOffset, hi: c.CRCOffset + 8},
		{name: "counter", lo: c.CounterOffset, hi: c.CounterOffset + 4},
	}
	if c.Mode == Profile11Nibble {
		fields = append(fields, fieldRange{name: "data_id_nibble", lo: c.NibbleOffset, hi: c.NibbleOffset + 4})
	}
	if err := checkOverlaps(fields...); err != nil {
		return err
	}
	for _, f := range fields {
		if f.hi > c.DataLength {
			return configErrorf(InvalidRange, "field %s at bit %d does not fit in data_length %d", f.name, f.lo, c.DataLength)
		}
	}
	if err := checkDeltaRange(uint64(c.MaxDeltaCounter), profile11DeltaMin, profile11DeltaMax); err != nil {
		return err
	}
	return nil
}

// Profile11 is a constructed, ready-to-use E2E profile 11 instance.
type Profile11 struct {
	cfg       Profile11Config
	txCounter uint8
	rx        *seqcounter.Validator
}

// NewProfile11 validates cfg and returns a Profile11 instance.
func NewProfile11(cfg Profile11Config) (*Profile11, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile11{
		cfg: cfg,
		rx:  seqcounter.New(4, uint64(cfg.MaxDeltaCounter)),
	}, nil
}

func (p *Profile11) crcByteOffset() int { return p.cfg.CRCOffset / 8 }

// dataIDNibble is the high nibble of DataID's low byte, the value
// mirrored into the buffer's data-ID nibble and fed into the CRC virtual
// sequence; both happen in Nibble mode only.
func (p *Profile11) dataIDNibble() uint8 {
	low := uint8(p.cfg.DataID & 0xFF)
	return low >> 4
}

// crcOverBuffer computes CRC-8/8H2F over the virtual sequence: DataID's
// low byte, then either the DataID nibble (Nibble mode) or a zero byte
// (Both mode), then the buffer excluding the CRC byte.
func (p *Profile11) crcOverBuffer(buf []byte) uint8 {
	d := crc.New(crc.AutosarH2F)
	var head [2]byte
	head[0] = uint8(p.cfg.DataID & 0xFF)
	if p.cfg.Mode == Profile11Nibble {
		head[1] = p.dataIDNibble()
	}
	_, _ = d.Write(head[:])
	crcOff := p.crcByteOffset()
	_, _ = d.Write(buf[:crcOff])
	_, _ = d.Write(buf[crcOff+1:])
	return uint8(d.Sum())
}

func (p *Profile11) withinBounds(bufLen int) bool {
	return bufLen*8 == p.cfg.DataLength
}

// Protect stamps the counter nibble (and, in Nibble mode, the DataID
// nibble) and the CRC byte into buf, then advances the TX counter.
func (p *Profile11) Protect(buf []byte) error {
	if !p.withinBounds(len(buf)) {
		return &LengthError{Got: len(buf), Want: exactLengthWant(p.cfg.DataLength / 8)}
	}
	if err := bitfield.WriteNibble(buf, p.cfg.CounterOffset, p.txCounter); err != nil {
		return err
	}
	if p.cfg.Mode == Profile11Nibble {
		if err := bitfield.WriteNibble(buf, p.cfg.NibbleOffset, p.dataIDNibble()); err != nil {
			return err
		}
	}
	sum := p.crcOverBuffer(buf)
	if err := bitfield.WriteUint8(buf, p.crcByteOffset(), sum); err != nil {
		return err
	}
	p.txCounter = (p.txCounter + 1) & 0x0F
	return nil
}

// Check validates buf and classifies the outcome.
func (p *Profile11) Check(buf []byte) Status {
	if !p.withinBounds(len(buf)) {
		return StatusDataLengthError
	}
	gotCRC, err := bitfield.ReadUint8(buf, p.crcByteOffset())
	if err != nil {
		return StatusDataLengthError
	}
	if gotCRC != p.crcOverBuffer(buf) {
		return StatusCrcError
	}
	if p.cfg.Mode == Profile11Nibble {
		gotNibble, err := bitfield.ReadNibble(buf, p.cfg.NibbleOffset)
		if err != nil {
			return StatusDataLengthError
		}
		if gotNibble != p.dataIDNibble() {
			return StatusDataIdError
		}
	}
	counter, err := bitfield.ReadNibble(buf, p.cfg.CounterOffset)
	if err != nil {
		return StatusDataLengthError
	}
	return statusFromClassification(p.rx.Validate(uint64(counter)))
}

// Reset clears the receiver's accepted-counter state.
func (p *Profile11) Reset() { p.rx.Reset() }
