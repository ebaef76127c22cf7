package e2e

import (
	"github.com/autosar-go/e2e/bitfield"
	"github.com/autosar-go/e2e/crc"
	"github.com/autosar-go/e2e/seqcounter"
)

// profile8HeaderSize is the header: CRC(4) + Length(4) + Counter(4) + DataID(4).
const profile8HeaderSize = 16

const (
	profile8DeltaMin = 1
	profile8DeltaMax = 0xFFFFFFFE
)

// Profile8Config is the immutable configuration for an E2E profile 8
// instance: a dynamic-length, 32-bit Data ID, 32-bit counter variant
// using CRC-32/P4, with a 4-byte CRC field placed ahead of the rest of
// the header (profile 7 places its wider, 8-byte CRC in the same leading
// position).
type Profile8Config struct {
	DataID uint32

	MinDataLength int
	MaxDataLength int

	// Offset is the bit offset of the 16-byte header, a multiple of 8.
	Offset int

	// MaxDeltaCounter (Δ) must be in [1, 0xFFFFFFFE].
	MaxDeltaCounter uint32
}

func (c Profile8Config) validate() error {
	if err := checkByteAligned("offset", c.Offset); err != nil {
		return err
	}
	if err := checkMinMaxLength(c.MinDataLength, c.MaxDataLength); err != nil {
		return err
	}
	if c.Offset+profile8HeaderSize*8 > c.MinDataLength {
		return configErrorf(InvalidRange, "header at offset %d does not fit in min_data_length %d", c.Offset, c.MinDataLength)
	}
	if err := checkDeltaRange(uint64(c.MaxDeltaCounter), profile8DeltaMin, profile8DeltaMax); err != nil {
		return err
	}
	return nil
}

// Profile8 is a constructed, ready-to-use E2E profile 8 instance.
type Profile8 struct {
	cfg       Profile8Config
	txCounter uint32
	rx        *seqcounter.Validator
}

// NewProfile8 validates cfg and returns a Profile8 instance.
func NewProfile8(cfg Profile8Config) (*Profile8, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile8{
		cfg: cfg,
		rx:  seqcounter.New(32, uint64(cfg.MaxDeltaCounter)),
	}, nil
}

func (p *Profile8) byteOffset() int { return p.cfg.Offset / 8 }

func (p *Profile8) withinBounds(bufLen int) bool {
	bits := bufLen * 8
	return bits >= p.cfg.MinDataLength && bits <= p.cfg.MaxDataLength
}

// crcOverBuffer computes CRC-32/P4 over the entire buffer excluding the
// 4-byte CRC field at [off, off+4).
func (p *Profile8) crcOverBuffer(buf []byte) uint32 {
	off := p.byteOffset()
	d := crc.New(crc.P4)
	_, _ = d.Write(buf[:off])
	_, _ = d.Write(buf[off+4:])
	return uint32(d.Sum())
}

// Protect stamps Length, Counter, DataID, and CRC into buf and advances
// the TX counter.
func (p *Profile8) Protect(buf []byte) error {
	if !p.withinBounds(len(buf)) {
		return &LengthError{Got: len(buf), Want: boundedLengthWant(p.cfg.MinDataLength, p.cfg.MaxDataLength)}
	}
	off := p.byteOffset()
	if err := bitfield.WriteUint32(buf, off+4, uint32(len(buf))); err != nil {
		return err
	}
	if err := bitfield.WriteUint32(buf, off+8, p.txCounter); err != nil {
		return err
	}
	if err := bitfield.WriteUint32(buf, off+12, p.cfg.DataID); err != nil {
		return err
	}
	sum := p.crcOverBuffer(buf)
	if err := bitfield.WriteUint32(buf, off, sum); err != nil {
		return err
	}
	p.txCounter++
	return nil
}

// Check validates buf and classifies the outcome.
func (p *Profile8) Check(buf []byte) Status {
	if !p.withinBounds(len(buf)) {
		return StatusDataLengthError
	}
	off := p.byteOffset()
	gotLength, err := bitfield.ReadUint32(buf, off+4)
	if err != nil {
		return StatusDataLengthError
	}
	if int(gotLength) != len(buf) {
		return StatusDataLengthError
	}
	gotCRC, err := bitfield.ReadUint32(buf, off)
	if err != nil {
		return StatusDataLengthError
	}
	if gotCRC != p.crcOverBuffer(buf) {
		return StatusCrcError
	}
	gotDataID, err := bitfield.ReadUint32(buf, off+12)
	if err != nil {
		return StatusDataLengthError
	}
	if gotDataID != p.cfg.DataID {
		return StatusDataIdError
	}
	counter, err := bitfield.ReadUint32(buf, off+8)
	if err != nil {
		return StatusDataLengthError
	}
	return statusFromClassification(p.rx.Validate(uint64(counter)))
}

// Reset clears the receiver's accepted-counter state.
func (p *Profile8) Reset() { p.rx.Reset() }
