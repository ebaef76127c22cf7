package e2e

import (
	"github.com/autosar-go/e2e/bitfield"
	"github.com/autosar-go/e2e/crc"
	"github.com/autosar-go/e2e/seqcounter"
)

// profile5HeaderSize is the fixed 3-byte header: CRC(2) + Counter(1).
const profile5HeaderSize = 3

const (
	profile5DeltaMin = 1
	profile5DeltaMax = 0xFE
)

// Profile5Config is the immutable configuration for an E2E profile 5
// instance: a fixed-length, 16-bit Data ID, 8-bit counter variant using
// CRC-16/CCITT-FALSE.
type Profile5Config struct {
	// DataID is the 16-bit value signed into the CRC.
	DataID uint16

	// DataLength is the fixed buffer length, in bits, a multiple of 8.
	DataLength int

	// Offset is the bit offset of the 3-byte header within the
	// buffer, a multiple of 8.
	Offset int

	// MaxDeltaCounter (Δ) is the largest counter gap still classified
	// as OkSomeLost. Must be in [1, 0xFE].
	MaxDeltaCounter uint8
}

func (c Profile5Config) validate() error {
	if err := checkByteAligned("offset", c.Offset); err != nil {
		return err
	}
	if c.DataLength <= 0 || c.DataLength%8 != 0 {
		return configErrorf(InvalidRange, "data_length %d must be a positive multiple of 8", c.DataLength)
	}
	if c.Offset+profile5HeaderSize*8 > c.DataLength {
		return configErrorf(InvalidRange, "header at offset %d does not fit in data_length %d", c.Offset, c.DataLength)
	}
	if err := checkDeltaRange(uint64(c.MaxDeltaCounter), profile5DeltaMin, profile5DeltaMax); err != nil {
		return err
	}
	return nil
}

// Profile5 is a constructed, ready-to-use E2E profile 5 instance.
type Profile5 struct {
	cfg       Profile5Config
	txCounter uint8
	rx        *seqcounter.Validator
}

// NewProfile5 validates cfg and returns a Profile5 instance with a fresh
// TX counter (0) and uninitialized RX state.
func NewProfile5(cfg Profile5Config) (*Profile5, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile5{
		cfg: cfg,
		rx:  seqcounter.New(8, uint64(cfg.MaxDeltaCounter)),
	}, nil
}

func (p *Profile5) byteOffset() int { return p.cfg.Offset / 8 }

func (p *Profile5) crcVirtualSequence(buf []byte) uint32 {
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

// Protect stamps the CRC and sequence counter into buf and advances the
// instance's TX counter. buf's length must equal cfg.DataLength/8
// exactly.
func (p *Profile5) Protect(buf []byte) error {
	wantBytes := p.cfg.DataLength / 8
	if len(buf) != wantBytes {
		return &LengthError{Got: len(buf), Want: exactLengthWant(wantBytes)}
	}
	off := p.byteOffset()
	if err := bitfield.WriteUint8(buf, off+2, p.txCounter); err != nil {
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
func (p *Profile5) Check(buf []byte) Status {
	wantBytes := p.cfg.DataLength / 8
	if len(buf) != wantBytes {
		return StatusDataLengthError
	}
	off := p.byteOffset()
	gotCRC, err := bitfield.ReadUint16(buf, off)
	if err != nil {
		return StatusDataLengthError
	}
	if uint32(gotCRC) != p.crcVirtualSequence(buf) {
		return StatusCrcError
	}
	counter, err := bitfield.ReadUint8(buf, off+2)
	if err != nil {
		return StatusDataLengthError
	}
	return statusFromClassification(p.rx.Validate(uint64(counter)))
}

// Reset clears the receiver's accepted-counter state so the next Check
// call is treated as the first reception.
func (p *Profile5) Reset() { p.rx.Reset() }
