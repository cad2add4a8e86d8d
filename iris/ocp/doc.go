// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ocp packs register writes for the Iris on-chip-protocol (OCP) bus.
//
// The chip accepts register bursts over its I²C control tunnel as a stream
// of packets. Every packet starts with a 32 bit type word laid out as
// 0x0000LLOO, where LL is the packet length in bytes (header included) and OO
// the opcode. A burst must end on a Granularity boundary; PadTrailer appends
// the dummy multi-address packet that fills the gap.
//
// All words are little endian. Nothing in this package holds shared state:
// a Buffer is owned by whoever is building the burst.
package ocp
