// Package bitfield provides the field codecs shared by every E2E profile:
// big-endian unsigned integer accessors at a byte-aligned offset, and
// 4-bit nibble accessors at a nibble-aligned offset. Every accessor
// bounds-checks against the supplied slice before touching it.
package bitfield

import (
	"encoding/binary"
	"fmt"
)

// ErrOutOfRange is wrapped into every bounds-check failure returned by
// this package.
var ErrOutOfRange = fmt.Errorf("bitfield: access out of range")

// errf builds an ErrOutOfRange-wrapped error describing exactly which
// access failed, so callers can log or classify it as a DataLengthError.
func errf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrOutOfRange)...)
}

// ReadUint8 reads a single byte at byteOffset.
func ReadUint8(b []byte, byteOffset int) (uint8, error) {
	if byteOffset < 0 || byteOffset+1 > len(b) {
		return 0, errf("read u8 at %d (len %d)", byteOffset, len(b))
	}
	return b[byteOffset], nil
}

// WriteUint8 writes a single byte at byteOffset.
func WriteUint8(b []byte, byteOffset int, v uint8) error {
	if byteOffset < 0 || byteOffset+1 > len(b) {
		return errf("write u8 at %d (len %d)", byteOffset, len(b))
	}
	b[byteOffset] = v
	return nil
}

// ReadUint16 reads a big-endian u16 at byteOffset.
func ReadUint16(b []byte, byteOffset int) (uint16, error) {
	if byteOffset < 0 || byteOffset+2 > len(b) {
		return 0, errf("read u16 at %d (len %d)", byteOffset, len(b))
	}
	return binary.BigEndian.Uint16(b[byteOffset:]), nil
}

// WriteUint16 writes a big-endian u16 at byteOffset.
func WriteUint16(b []byte, byteOffset int, v uint16) error {
	if byteOffset < 0 || byteOffset+2 > len(b) {
		return errf("write u16 at %d (len %d)", byteOffset, len(b))
	}
	binary.BigEndian.PutUint16(b[byteOffset:], v)
	return nil
}

// ReadUint32 reads a big-endian u32 at byteOffset.
func ReadUint32(b []byte, byteOffset int) (uint32, error) {
	if byteOffset < 0 || byteOffset+4 > len(b) {
		return 0, errf("read u32 at %d (len %d)", byteOffset, len(b))
	}
	return binary.BigEndian.Uint32(b[byteOffset:]), nil
}

// WriteUint32 writes a big-endian u32 at byteOffset.
func WriteUint32(b []byte, byteOffset int, v uint32) error {
	if byteOffset < 0 || byteOffset+4 > len(b) {
		return errf("write u32 at %d (len %d)", byteOffset, len(b))
	}
	binary.BigEndian.PutUint32(b[byteOffset:], v)
	return nil
}

// ReadUint64 reads a big-endian u64 at byteOffset.
func ReadUint64(b []byte, byteOffset int) (uint64, error) {
	if byteOffset < 0 || byteOffset+8 > len(b) {
		return 0, errf("read u64 at %d (len %d)", byteOffset, len(b))
	}
	return binary.BigEndian.Uint64(b[byteOffset:]), nil
}

// WriteUint64 writes a big-endian u64 at byteOffset.
func WriteUint64(b []byte, byteOffset int, v uint64) error {
	if byteOffset < 0 || byteOffset+8 > len(b) {
		return errf("write u64 at %d (len %d)", byteOffset, len(b))
	}
	binary.BigEndian.PutUint64(b[byteOffset:], v)
	return nil
}

// ReadNibble reads the 4-bit field at bitOffset (a multiple of 4): the
// high nibble of byte bitOffset/8 if bitOffset is byte-aligned, the low
// nibble otherwise.
func ReadNibble(b []byte, bitOffset int) (uint8, error) {
	byteOff := bitOffset / 8
	if bitOffset < 0 || byteOff+1 > len(b) {
		return 0, errf("read nibble at bit %d (len %d)", bitOffset, len(b))
	}
	if bitOffset%8 == 0 {
		return b[byteOff] >> 4, nil
	}
	return b[byteOff] & 0x0F, nil
}

// WriteNibble writes a 4-bit value (only the low 4 bits of v are used)
// into the nibble at bitOffset, leaving the other nibble of that byte
// untouched.
func WriteNibble(b []byte, bitOffset int, v uint8) error {
	byteOff := bitOffset / 8
	if bitOffset < 0 || byteOff+1 > len(b) {
		return errf("write nibble at bit %d (len %d)", bitOffset, len(b))
	}
	v &= 0x0F
	if bitOffset%8 == 0 {
		b[byteOff] = (v << 4) | (b[byteOff] & 0x0F)
	} else {
		b[byteOff] = (b[byteOff] & 0xF0) | v
	}
	return nil
}
