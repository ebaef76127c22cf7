// Package e2e implements the AUTOSAR End-to-End (E2E) Protection
// profiles 4, 4M, 5, 6, 7, 7M, 8, 11, and 22.
//
// Each profile is a value type carrying immutable configuration and
// mutable per-instance runtime state (the TX counter on the sender side,
// the last-accepted RX counter on the receiver side). Every profile
// exposes the same two operations on an in-place byte buffer:
//
//   - Protect stamps a CRC, a sequence counter, and the configured Data
//     ID into the buffer's header fields.
//   - Check recomputes the CRC and Data ID, validates the sequence
//     counter against the previously accepted value, and returns a
//     Status classifying the outcome.
//
// A profile instance is owned by exactly one logical sender or
// receiver and must not be used concurrently; independent instances,
// even with identical configuration, require no coordination between
// them (see package seqcounter and package crc for the shared building
// blocks).
package e2e
