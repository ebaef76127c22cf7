package e2e

import (
	"github.com/autosar-go/e2e/bitfield"
	"github.com/autosar-go/e2e/crc"
	"github.com/autosar-go/e2e/seqcounter"
)

// profile4HeaderSize is the header: Length(2) + Counter(2) + DataID(4) + CRC(4).
const profile4HeaderSize = 12

const (
	profile4DeltaMin = 1
	profile4DeltaMax = 0xFFFFE
)

// Profile4Config is the immutable configuration for an E2E profile 4
// instance: a dynamic-length, 32-bit Data ID, 16-bit counter variant
// using CRC-32/P4.
type Profile4Config struct {
	// DataID is the 32-bit value echoed into the header and signed
	// into the CRC.
	DataID uint32

	// MinDataLength and MaxDataLength bound the buffer length, in
	// bits, both multiples of 8.
	MinDataLength int
	MaxDataLength int

	// Offset is the bit offset of the 12-byte header, a multiple of 8.
	Offset int

	// MaxDeltaCounter (Δ) must be in [1, 0xFFFFE].
	MaxDeltaCounter uint32
}

func (c Profile4Config) validate() error {
	if err := checkByteAligned("offset", c.Offset); err != nil {
		return err
	}
	if err := checkMinMaxLength(c.MinDataLength, c.MaxDataLength); err != nil {
		return err
	}
	if c.Offset+profile4HeaderSize*8 > c.MinDataLength {
		return configErrorf(InvalidRange, "header at offset %d does not fit in min_data_length %d", c.Offset, c.MinDataLength)
	}
	if err := checkDeltaRange(uint64(c.MaxDeltaCounter), profile4DeltaMin, profile4DeltaMax); err != nil {
		return err
	}
	return nil
}

// Profile4 is a constructed, ready-to-use E2E profile 4 instance.
type Profile4 struct {
	cfg       Profile4Config
	txCounter uint16
	rx        *seqcounter.Validator
}

// NewProfile4 validates cfg and returns a Profile4 instance.
func NewProfile4(cfg Profile4Config) (*Profile4, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile4{
		cfg: cfg,
		rx:  seqcounter.New(16, uint64(cfg.MaxDeltaCounter)),
	}, nil
}

func (p *Profile4) byteOffset() int { return p.cfg.Offset / 8 }

func (p *Profile4) withinBounds(bufLen int) bool {
	bits := bufLen * 8
	return bits >= p.cfg.MinDataLength && bits <= p.cfg.MaxDataLength
}

// crcOverBuffer computes CRC-32/P4 over the entire buffer excluding the
// 4-byte CRC field at [off+8, off+12).
func (p *Profile4) crcOverBuffer(buf []byte) uint32 {
	off := p.byteOffset()
	d := crc.New(crc.P4)
	_, _ = d.Write(buf[:off+8])
	_, _ = d.Write(buf[off+12:])
	return uint32(d.Sum())
}

// Protect stamps Length, Counter, DataID, and CRC into buf and advances
// the TX counter.
func (p *Profile4) Protect(buf []byte) error {
	if !p.withinBounds(len(buf)) {
		return &LengthError{Got: len(buf), Want: boundedLengthWant(p.cfg.MinDataLength, p.cfg.MaxDataLength)}
	}
	off := p.byteOffset()
	if err := bitfield.WriteUint16(buf, off, uint16(len(buf))); err != nil {
		return err
	}
	if err := bitfield.WriteUint16(buf, off+2, p.txCounter); err != nil {
		return err
	}
	if err := bitfield.WriteUint32(buf, off+4, p.cfg.DataID); err != nil {
		return err
	}
	sum := p.crcOverBuffer(buf)
	if err := bitfield.WriteUint32(buf, off+8, sum); err != nil {
		return err
	}
	p.txCounter++
	return nil
}

// Check validates buf and classifies the outcome.
func (p *Profile4) Check(buf []byte) Status {
	if !p.withinBounds(len(buf)) {
		return StatusDataLengthError
	}
	off := p.byteOffset()
	gotLength, err := bitfield.ReadUint16(buf, off)
	if err != nil {
		return StatusDataLengthError
	}
	if int(gotLength) != len(buf) {
		return StatusDataLengthError
	}
	gotCRC, err := bitfield.ReadUint32(buf, off+8)
	if err != nil {
		return StatusDataLengthError
	}
	if gotCRC != p.crcOverBuffer(buf) {
		return StatusCrcError
	}
	gotDataID, err := bitfield.ReadUint32(buf, off+4)
	if err != nil {
		return StatusDataLengthError
	}
	if gotDataID != p.cfg.DataID {
		return StatusDataIdError
	}
	counter, err := bitfield.ReadUint16(buf, off+2)
	if err != nil {
		return StatusDataLengthError
	}
	return statusFromClassification(p.rx.Validate(uint64(counter)))
}

// Reset clears the receiver's accepted-counter state.
func (p *Profile4) Reset() { p.rx.Reset() }
