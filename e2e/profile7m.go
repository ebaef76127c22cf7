package e2e

import (
	"github.com/autosar-go/e2e/bitfield"
	"github.com/autosar-go/e2e/crc"
	"github.com/autosar-go/e2e/seqcounter"
)

// profile7mHeaderSize is the header: CRC(8) + Length(4) + Counter(4) +
// DataID(4) + SourceID(2) + MessageType(2). As with 4M, the 4-byte
// metadata block's exact position is left to the implementer by the
// AUTOSAR revision (spec §9, Open Question 1); this implementation
// places it immediately after DataID, and it participates in the CRC
// like every other non-CRC byte in the buffer.
const profile7mHeaderSize = 24

// Profile7MConfig is the immutable configuration for an E2E profile 7M
// instance: profile 7 extended with a source-ID/message-type metadata
// block.
type Profile7MConfig struct {
	DataID      uint32
	SourceID    uint16
	MessageType uint16

	MinDataLength int
	MaxDataLength int

	// Offset is the bit offset of the 24-byte header, a multiple of 8.
	Offset int

	// MaxDeltaCounter (Δ) must be in [1, 0xFFFFFFFE].
	MaxDeltaCounter uint32
}

func (c Profile7MConfig) validate() error {
	if err := checkByteAligned("offset", c.Offset); err != nil {
		return err
	}
	if err := checkMinMaxLength(c.MinDataLength, c.MaxDataLength); err != nil {
		return err
	}
	if c.Offset+profile7mHeaderSize*8 > c.MinDataLength {
		return configErrorf(InvalidRange, "header at offset %d does not fit in min_data_length %d", c.Offset, c.MinDataLength)
	}
	if err := checkDeltaRange(uint64(c.MaxDeltaCounter), profile7DeltaMin, profile7DeltaMax); err != nil {
		return err
	}
	return nil
}

// Profile7M is a constructed, ready-to-use E2E profile 7M instance.
type Profile7M struct {
	cfg       Profile7MConfig
	txCounter uint32
	rx        *seqcounter.Validator
}

// NewProfile7M validates cfg and returns a Profile7M instance.
func NewProfile7M(cfg Profile7MConfig) (*Profile7M, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile7M{
		cfg: cfg,
		rx:  seqcounter.New(32, uint64(cfg.MaxDeltaCounter)),
	}, nil
}

func (p *Profile7M) byteOffset() int { return p.cfg.Offset / 8 }

func (p *Profile7M) withinBounds(bufLen int) bool {
	bits := bufLen * 8
	return bits >= p.cfg.MinDataLength && bits <= p.cfg.MaxDataLength
}

func (p *Profile7M) crcOverBuffer(buf []byte) uint64 {
	off := p.byteOffset()
	d := crc.New(crc.ECMA64)
	_, _ = d.Write(buf[:off])
	_, _ = d.Write(buf[off+8:])
	return d.Sum()
}

// Protect stamps Length, Counter, DataID, SourceID, MessageType, and CRC
// into buf and advances the TX counter.
func (p *Profile7M) Protect(buf []byte) error {
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
	if err := bitfield.WriteUint16(buf, off+20, p.cfg.SourceID); err != nil {
		return err
	}
	if err := bitfield.WriteUint16(buf, off+22, p.cfg.MessageType); err != nil {
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
func (p *Profile7M) Check(buf []byte) Status {
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
	gotSourceID, err := bitfield.ReadUint16(buf, off+20)
	if err != nil {
		return StatusDataLengthError
	}
	gotMessageType, err := bitfield.ReadUint16(buf, off+22)
	if err != nil {
		return StatusDataLengthError
	}
	if gotDataID != p.cfg.DataID || gotSourceID != p.cfg.SourceID || gotMessageType != p.cfg.MessageType {
		return StatusDataIdError
	}
	counter, err := bitfield.ReadUint32(buf, off+12)
	if err != nil {
		return StatusDataLengthError
	}
	return statusFromClassification(p.rx.Validate(uint64(counter)))
}

// Reset clears the receiver's accepted-counter state.
func (p *Profile7M) Reset() { p.rx.Reset() }
