// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ocp

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// OpMultiAddr is the multi-address write opcode. The trailer reuses it
	// with a zero address so the chip discards it.
	OpMultiAddr byte = 0x05
	// OpRead requests a single register read.
	OpRead byte = 0x0a

	// Granularity is the byte boundary a burst must end on.
	Granularity = 16
	// MaxPacket is the largest packet length the LL field can carry while
	// staying word aligned.
	MaxPacket = 252
	// MaxWritesPerPacket is the number of address/value pairs fitting in one
	// multi-address packet.
	MaxWritesPerPacket = (MaxPacket - 4) / 8
)

// ErrUnaligned is returned by PadTrailer when the leftover length cannot be
// filled by a trailer packet.
var ErrUnaligned = errors.New("ocp: left length not aligned to 4")

// Header returns the type word of a packet.
func Header(length int, op byte) uint32 {
	return uint32(length&0xff)<<8 | uint32(op)
}

// Write is one register write of a multi-address packet.
type Write struct {
	Addr  uint32
	Value uint32
}

func (w Write) String() string {
	return fmt.Sprintf("0x%08x=0x%08x", w.Addr, w.Value)
}

// Buffer is an in-progress burst. The cursor only moves forward; writes past
// the current capacity grow the backing array.
type Buffer struct {
	b []byte
}

// Offset returns the number of bytes written so far.
func (b *Buffer) Offset() int {
	return len(b.b)
}

// Bytes returns the burst. The slice is valid until the next write.
func (b *Buffer) Bytes() []byte {
	return b.b
}

// Reset empties the buffer, keeping its storage.
func (b *Buffer) Reset() {
	b.b = b.b[:0]
}

// PutUint32 appends v little endian and advances the cursor by 4.
func (b *Buffer) PutUint32(v uint32) {
	b.b = binary.LittleEndian.AppendUint32(b.b, v)
}

// Write appends raw bytes. It implements io.Writer and never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.b = append(b.b, p...)
	return len(p), nil
}

// MultiWrite packs ws into as many multi-address packets as needed.
func (b *Buffer) MultiWrite(ws ...Write) {
	for len(ws) > 0 {
		n := min(len(ws), MaxWritesPerPacket)
		b.PutUint32(Header(4+8*n, OpMultiAddr))
		for _, w := range ws[:n] {
			b.PutUint32(w.Addr)
			b.PutUint32(w.Value)
		}
		ws = ws[n:]
	}
}

// Align pads the burst up to the next Granularity boundary.
func (b *Buffer) Align() error {
	return PadTrailer(b, Leftover(b.Offset()))
}

// Leftover returns how many bytes are missing after n bytes to reach the next
// Granularity boundary.
func Leftover(n int) int {
	return (Granularity - n%Granularity) % Granularity
}

// PadTrailer appends the trailer packet filling leftover bytes.
//
// A leftover of 0 is a no-op. 4, 8 and 12 append a type word, then the zero
// base address and the zero first value as the length requires. Any other
// length leaves the buffer untouched and returns ErrUnaligned.
func PadTrailer(b *Buffer, leftover int) error {
	switch leftover {
	case 0:
	case 4:
		b.PutUint32(Header(4, OpMultiAddr))
	case 8:
		b.PutUint32(Header(8, OpMultiAddr))
		b.PutUint32(0)
	case 12:
		b.PutUint32(Header(12, OpMultiAddr))
		b.PutUint32(0)
		b.PutUint32(0)
	default:
		return fmt.Errorf("%w: %d", ErrUnaligned, leftover)
	}
	return nil
}

// ReadRequest returns the packet asking the chip for the register at addr.
// The chip answers with the 4 byte little endian value.
func ReadRequest(addr uint32) []byte {
	var b Buffer
	b.PutUint32(Header(8, OpRead))
	b.PutUint32(addr)
	return b.Bytes()
}
