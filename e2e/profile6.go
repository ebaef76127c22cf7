package e2e

import (
	"github.com/autosar-go/e2e/bitfield"
	"github.com/autosar-go/e2e/crc"
	"github.com/autosar-go/e2e/seqcounter"
)

// profile6HeaderSize is the header: CRC(2) + Length(2) + Counter(1).
const profile6HeaderSize = 5

const (
	profile6DeltaMin = 1
	profile6DeltaMax = 0xFE
)

// Profile6Config is the immutable configuration for an E2E profile 6
// instance: profile 5's CRC-16/CCITT-FALSE and 8-bit counter, but with
// a dynamic, Length-field-carrying payload instead of a fixed size.
type Profile6Config struct {
	// DataID is the 16-bit value signed into the CRC.
	DataID uint16

	// MinDataLength and MaxDataLength bound the buffer length, in
	// bits, both multiples of 8.
	MinDataLength int
	MaxDataLength int

	// Offset is the bit offset of the 5-byte header, a multiple of 8.
	Offset int

	// MaxDeltaCounter (Δ) must be in [1, 0xFE].
	MaxDeltaCounter uint8
}

func (c Profile6Config) validate() error {
	if err := checkByteAligned("offset", c.Offset); err != nil {
		return err
	}
	if err := checkMinMaxLength(c.MinDataLength, c.MaxDataLength); err != nil {
		return err
	}
	if c.Offset+profile6HeaderSize*8 > c.MinDataLength {
		return configErrorf(InvalidRange, "header at offset %d does not fit in min_data_length %d", c.Offset, c.MinDataLength)
	}
	if err := checkDeltaRange(uint64(c.MaxDeltaCounter), profile6DeltaMin, profile6DeltaMax); err != nil {
		return err
	}
	return nil
}

// Profile6 is a constructed, ready-to-use E2E profile 6 instance.
type Profile6 struct {
	cfg       Profile6Config
	txCounter uint8
	rx        *seqcounter.Validator
}

// NewProfile6 validates cfg and returns a Profile6 instance.
func NewProfile6(cfg Profile6Config) (*Profile6, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile6{
		cfg: cfg,
		rx:  seqcounter.New(8, uint64(cfg.MaxDeltaCounter)),
	}, nil
}

func (p *Profile6) byteOffset() int { return p.cfg.Offset / 8 }

func (p *Profile6) withinBounds(bufLen int) bool {
	bits := bufLen * 8
	return bits >= p.cfg.MinDataLength && bits <= p.cfg.MaxDataLength
}

func (p *Profile6) crcVirtualSequence(buf []byte) uint32 {
	off := p.byteOffset()
	d := crc.New(crc.CCITTFalse)
	var idBytes [2]byte
	idBytes[0] = byte(p.cfg.DataID >> 8)
	idBytes[1] = byte(p.cfg.DataID)
	_, _ = d.Write(idBytes[:])
	_, _ = d.Write(buf[:off])
	_, _ = d.Write(buf[off+2:])
	return uint32(d.Sum())
}

// Protect stamps Length, Counter, and CRC into buf and advances the TX
// counter. len(buf) must lie within [MinDataLength, MaxDataLength].
func (p *Profile6) Protect(buf []byte) error {
	if !p.withinBounds(len(buf)) {
		return &LengthError{Got: len(buf), Want: boundedLengthWant(p.cfg.MinDataLength, p.cfg.MaxDataLength)}
	}
	off := p.byteOffset()
	if err := bitfield.WriteUint16(buf, off+2, uint16(len(buf))); err != nil {
		return err
	}
	if err := bitfield.WriteUint8(buf, off+4, p.txCounter); err != nil {
		return err
	}
	sum := p.crcVirtualSequence(buf)
	if err := bitfield.WriteUint16(buf, off, uint16(sum)); err != nil {
		return err
	}
	p.txCounter++
	return nil
}

// Check validates buf and classifies the outcome.
func (p *Profile6) Check(buf []byte) Status {
	if !p.withinBounds(len(buf)) {
		return StatusDataLengthError
	}
	off := p.byteOffset()
	gotCRC, err := bitfield.ReadUint16(buf, off)
	if err != nil {
		return StatusDataLengthError
	}
	gotLength, err := bitfield.ReadUint16(buf, off+2)
	if err != nil {
		return StatusDataLengthError
	}
	if int(gotLength) != len(buf) {
		return StatusDataLengthError
	}
	if uint32(gotCRC) != p.crcVirtualSequence(buf) {
		return StatusCrcError
	}
	counter, err := bitfield.ReadUint8(buf, off+4)
	if err != nil {
		return StatusDataLengthError
	}
	return statusFromClassification(p.rx.Validate(uint64(counter)))
}

// Reset clears the receiver's accepted-counter state.
func (p *Profile6) Reset() { p.rx.Reset() }
