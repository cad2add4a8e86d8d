// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package iris drives the Pixelworks Iris display-processing bridge.
//
// The Iris sits between the SoC display controller and a MIPI-DSI panel. In
// analog bypass (ABYP) the panel link goes around the chip and panel command
// sets are sent by the DSI host directly. In pass-through (PT) the chip
// processes the video stream (MEMC, PQ) and panel commands are tunnelled
// through its OCP register bus, reached over I²C.
//
// Dev holds the whole chip state. It decides at light-on and light-off time
// which path panel commands take and tears down the dependent feature
// states when the panel goes dark.
//
// # Locking
//
// Dev has three independent locks: one for state transitions, one
// serializing Ioctl against normal operation, and one around register
// reads so that ESD polling never waits behind a light-off. Transports and
// Features are called with the state lock held and must not call back into
// Dev.
package iris
