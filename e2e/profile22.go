package e2e

import (
	"github.com/autosar-go/e2e/bitfield"
	"github.com/autosar-go/e2e/crc"
	"github.com/autosar-go/e2e/seqcounter"
)

const (
	profile22DeltaMin = 1
	profile22DeltaMax = 15
)

// profile22TableSize is the fixed size of the Data-ID lookup table: one
// entry per value the 4-bit counter can take.
const profile22TableSize = 16

// Profile22Config is the immutable configuration for an E2E profile 22
// instance: a one-byte-CRC, one-nibble-counter variant that signs each
// message with a per-counter-value entry from a 16-slot Data-ID table
// instead of a single constant Data ID.
type Profile22Config struct {
	// DataIDList holds exactly 16 one-byte Data IDs, indexed by the
	// message's counter value.
	DataIDList [profile22TableSize]uint8

	// Offset is the bit offset of the 2-byte header, a multiple of 8.
	Offset int

	// DataLength is the fixed buffer length in bits, a multiple of 8.
	DataLength int

	// MaxDeltaCounter (Δ) must be in [1, 15].
	MaxDeltaCounter uint8
}

func (c Profile22Config) validate() error {
	if err := checkByteAligned("offset", c.Offset); err != nil {
		return err
	}
	if c.DataLength <= 0 || c.DataLength%8 != 0 {
		return configErrorf(InvalidRange, "data_length %d must be a positive multiple of 8", c.DataLength)
	}
	if c.Offset+2*8 > c.DataLength {
		return configErrorf(InvalidRange, "header at offset %d does not fit in data_length %d", c.Offset, c.DataLength)
	}
	if err := checkDeltaRange(uint64(c.MaxDeltaCounter), profile22DeltaMin, profile22DeltaMax); err != nil {
		return err
	}
	return nil
}

// Profile22 is a constructed, ready-to-use E2E profile 22 instance.
type Profile22 struct {
	cfg       Profile22Config
	txCounter uint8
	rx        *seqcounter.Validator
}

// NewProfile22 validates cfg and returns a Profile22 instance.
func NewProfile22(cfg Profile22Config) (*Profile22, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile22{
		cfg: cfg,
		rx:  seqcounter.New(4, uint64(cfg.MaxDeltaCounter)),
	}, nil
}

func (p *Profile22) byteOffset() int { return p.cfg.Offset / 8 }

func (p *Profile22) withinBounds(bufLen int) bool {
	return bufLen*8 == p.cfg.DataLength
}

// crcOverBuffer computes CRC-8/SAE-J1850 over the virtual sequence:
// DataIDList[counter] prepended to the buffer excluding the CRC byte.
func (p *Profile22) crcOverBuffer(buf []byte, counter uint8) uint8 {
	off := p.byteOffset()
	d := crc.New(crc.SAEJ1850)
	head := [1]byte{p.cfg.DataIDList[counter&0x0F]}
	_, _ = d.Write(head[:])
	_, _ = d.Write(buf[:off])
	_, _ = d.Write(buf[off+1:])
	return uint8(d.Sum())
}

// Protect stamps the counter nibble and CRC byte into buf, then advances
// the TX counter. The high nibble of the counter byte is left untouched
// for caller-owned data.
func (p *Profile22) Protect(buf []byte) error {
	if !p.withinBounds(len(buf)) {
		return &LengthError{Got: len(buf), Want: exactLengthWant(p.cfg.DataLength / 8)}
	}
	off := p.byteOffset()
	if err := bitfield.WriteNibble(buf, off*8+12, p.txCounter); err != nil {
		return err
	}
	sum := p.crcOverBuffer(buf, p.txCounter)
	if err := bitfield.WriteUint8(buf, off, sum); err != nil {
		return err
	}
	p.txCounter = (p.txCounter + 1) & 0x0F
	return nil
}

// Check validates buf and classifies the outcome.
func (p *Profile22) Check(buf []byte) Status {
	if !p.withinBounds(len(buf)) {
		return StatusDataLengthError
	}
	off := p.byteOffset()
	gotCRC, err := bitfield.ReadUint8(buf, off)
	if err != nil {
		return StatusDataLengthError
	}
	counter, err := bitfield.ReadNibble(buf, off*8+12)
	if err != nil {
		return StatusDataLengthError
	}
	if gotCRC != p.crcOverBuffer(buf, counter) {
		return StatusCrcError
	}
	return statusFromClassification(p.rx.Validate(uint64(counter)))
}

// Reset clears the receiver's accepted-counter state.
func (p *Profile22) Reset() { p.rx.Reset() }
