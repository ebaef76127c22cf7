package e2e

import (
	"github.com/autosar-go/e2e/bitfield"
	"github.com/autosar-go/e2e/crc"
	"github.com/autosar-go/e2e/seqcounter"
)

// profile7HeaderSize is the header: CRC(8) + Length(4) + Counter(4) + DataID(4).
const profile7HeaderSize = 20

const (
	profile7DeltaMin = 1
	profile7DeltaMax = 0xFFFFFFFE
)

// Profile7Config is the immutable configuration for an E2E profile 7
// instance: a dynamic-length, 32-bit Data ID, 32-bit counter variant
// using CRC-64/ECMA.
type Profile7Config struct {
	DataID uint32

	MinDataLength int
	MaxDataLength int

	// Offset is the bit offset of the 20-byte header, a multiple of 8.
	Offset int

	// MaxDeltaCounter (Δ) must be in [1, 0xFFFFFFFE].
	MaxDeltaCounter uint32
}

func (c Profile7Config) validate() error {
	if err := checkByteAligned("offset", c.Offset); err != nil {
		return err
	}
	if err := checkMinMaxLength(c.MinDataLength, c.MaxDataLength); err != nil {
		return err
	}
	if c.Offset+profile7HeaderSize*8 > c.MinDataLength {
		return configErrorf(InvalidRange, "header at offset %d does not fit in min_data_length %d", c.Offset, c.MinDataLength)
	}
	if err := checkDeltaRange(uint64(c.MaxDeltaCounter), profile7DeltaMin, profile7DeltaMax); err != nil {
		return err
	}
	return nil
}

// Profile7 is a constructed, ready-to-use E2E profile 7 instance.
type Profile7 struct {
	cfg       Profile7Config
	txCounter uint32
	rx        *seqcounter.Validator
}

// NewProfile7 validates cfg and returns a Profile7 instance.
func NewProfile7(cfg Profile7Config) (*Profile7, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile7{
		cfg: cfg,
		rx:  seqcounter.New(32, uint64(cfg.MaxDeltaCounter)),
	}, nil
}

func (p *Profile7) byteOffset() int { return p.cfg.Offset / 8 }

func (p *Profile7) withinBounds(bufLen int) bool {
	bits := bufLen * 8
	return bits >= p.cfg.MinDataLength && bits <= p.cfg.MaxDataLength
}

// crcOverBuffer computes CRC-64/ECMA over the entire buffer excluding
// the 8-byte CRC field at [off, off+8).
func (p *Profile7) crcOverBuffer(buf []byte) uint64 {
	off := p.byteOffset()
	d := crc.New(crc.ECMA64)
	_, _ = d.Write(buf[:off])
	_, _ = d.Write(buf[off+8:])
	return d.Sum()
}

// Protect stamps Length, Counter, DataID, and CRC into buf and advances
// the TX counter.
func (p *Profile7) Protect(buf []byte) error {
	if !p.withinBounds(len(buf)) {
		return &LengthError{Got: len(buf), Want: boundedLengthWant(p.cfg.MinDataLength, p.cfg.MaxDataLength)}
	}
	off := p.byteOffset()
	if err := bitfield.WriteUint32(buf, off+8, uint32(len(buf))); err != nil {
		return err
	}
	if err := bitfield.WriteUint32(buf, off+12, p.txCounter); err != nil {
		return err
	}
	if err := bitfield.WriteUint32(buf, off+16, p.cfg.DataID); err != nil {
		return err
	}
	sum := p.crcOverBuffer(buf)
	if err := bitfield.WriteUint64(buf, off, sum); err != nil {
		return err
	}
	p.txCounter++
	return nil
}

// Check validates buf and classifies the outcome.
func (p *Profile7) Check(buf []byte) Status {
	if !p.withinBounds(len(buf)) {
		return StatusDataLengthError
	}
	off := p.byteOffset()
	gotLength, err := bitfield.ReadUint32(buf, off+8)
	if err != nil {
		return StatusDataLengthError
	}
	if int(gotLength) != len(buf) {
		return StatusDataLengthError
	}
	gotCRC, err := bitfield.ReadUint64(buf, off)
	if err != nil {
		return StatusDataLengthError
	}
	if gotCRC != p.crcOverBuffer(buf) {
		return StatusCrcError
	}
	gotDataID, err := bitfield.ReadUint32(buf, off+16)
	if err != nil {
		return StatusDataLengthError
	}
	if gotDataID != p.cfg.DataID {
		return StatusDataIdError
	}
	counter, err := bitfield.ReadUint32(buf, off+12)
	if err != nil {
		return StatusDataLengthError
	}
	return statusFromClassification(p.rx.Validate(uint64(counter)))
}

// Reset clears the receiver's accepted-counter state.
func (p *Profile7) Reset() { p.rx.Reset() }
