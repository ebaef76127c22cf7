package e2e

import (
	"github.com/autosar-go/e2e/bitfield"
	"github.com/autosar-go/e2e/crc"
	"github.com/autosar-go/e2e/seqcounter"
)

// profile4mHeaderSize is the header: Length(2) + Counter(2) + DataID(4)
// + SourceID(2) + MessageType(2) + CRC(4).
//
// The exact byte layout of the 4M source-identifier/message-type
// metadata is left to the implementer by the AUTOSAR revision in use
// (spec §9, Open Question 1); this implementation places it immediately
// after DataID and before the CRC, as two big-endian u16 fields, and
// includes it in the CRC range on both Protect and Check.
const profile4mHeaderSize = 16

// Profile4MConfig is the immutable configuration for an E2E profile 4M
// instance: profile 4 extended with a source-ID/message-type metadata
// block that also participates in the CRC.
type Profile4MConfig struct {
	// DataID is the 32-bit value echoed into the header and signed
	// into the CRC.
	DataID uint32

	// SourceID and MessageType are the 4M metadata fields, each
	// written and verified as opaque 16-bit values.
	SourceID    uint16
	MessageType uint16

	// MinDataLength and MaxDataLength bound the buffer length, in
	// bits, both multiples of 8.
	MinDataLength int
	MaxDataLength int

	// Offset is the bit offset of the 16-byte header, a multiple of 8.
	Offset int

	// MaxDeltaCounter (Δ) must be in [1, 0xFFFFE].
	MaxDeltaCounter uint32
}

func (c Profile4MConfig) validate() error {
	if err := checkByteAligned("offset", c.Offset); err != nil {
		return err
	}
	if err := checkMinMaxLength(c.MinDataLength, c.MaxDataLength); err != nil {
		return err
	}
	if c.Offset+profile4mHeaderSize*8 > c.MinDataLength {
		return configErrorf(InvalidRange, "header at offset %d does not fit in min_data_length %d", c.Offset, c.MinDataLength)
	}
	if err := checkDeltaRange(uint64(c.MaxDeltaCounter), profile4DeltaMin, profile4DeltaMax); err != nil {
		return err
	}
	return nil
}

// Profile4M is a constructed, ready-to-use E2E profile 4M instance.
type Profile4M struct {
	cfg       Profile4MConfig
	txCounter uint16
	rx        *seqcounter.Validator
}

// NewProfile4M validates cfg and returns a Profile4M instance.
func NewProfile4M(cfg Profile4MConfig) (*Profile4M, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile4M{
		cfg: cfg,
		rx:  seqcounter.New(16, uint64(cfg.MaxDeltaCounter)),
	}, nil
}

func (p *Profile4M) byteOffset() int { return p.cfg.Offset / 8 }

func (p *Profile4M) withinBounds(bufLen int) bool {
	bits := bufLen * 8
	return bits >= p.cfg.MinDataLength && bits <= p.cfg.MaxDataLength
}

// crcOverBuffer computes CRC-32/P4 over the entire buffer excluding the
// 4-byte CRC field at [off+12, off+16).
func (p *Profile4M) crcOverBuffer(buf []byte) uint32 {
	off := p.byteOffset()
	d := crc.New(crc.P4)
	_, _ = d.Write(buf[:off+12])
	_, _ = d.Write(buf[off+16:])
	return uint32(d.Sum())
}

// Protect stamps Length, Counter, DataID, SourceID, MessageType, and CRC
// into buf and advances the TX counter.
func (p *Profile4M) Protect(buf []byte) error {
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
	if err := bitfield.WriteUint16(buf, off+8, p.cfg.SourceID); err != nil {
		return err
	}
	if err := bitfield.WriteUint16(buf, off+10, p.cfg.MessageType); err != nil {
		return err
	}
	sum := p.crcOverBuffer(buf)
	if err := bitfield.WriteUint32(buf, off+12, sum); err != nil {
		return err
	}
	p.txCounter++
	return nil
}

// Check validates buf and classifies the outcome.
func (p *Profile4M) Check(buf []byte) Status {
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
	gotCRC, err := bitfield.ReadUint32(buf, off+12)
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
	gotSourceID, err := bitfield.ReadUint16(buf, off+8)
	if err != nil {
		return StatusDataLengthError
	}
	gotMessageType, err := bitfield.ReadUint16(buf, off+10)
	if err != nil {
		return StatusDataLengthError
	}
	if gotDataID != p.cfg.DataID || gotSourceID != p.cfg.SourceID || gotMessageType != p.cfg.MessageType {
		return StatusDataIdError
	}
	counter, err := bitfield.ReadUint16(buf, off+2)
	if err != nil {
		return StatusDataLengthError
	}
	return statusFromClassification(p.rx.Validate(uint64(counter)))
}

// Reset clears the receiver's accepted-counter state.
func (p *Profile4M) Reset() { p.rx.Reset() }
