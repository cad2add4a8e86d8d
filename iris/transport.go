// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package iris

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/iris/iris/ocp"
	"periph.io/x/conn/v3"
)

// Transport sends panel command sets on one of the two paths.
type Transport interface {
	// SendBypass sends cmds on the DSI host link, around the chip.
	SendBypass(p *Panel, cmds *CommandSet) error
	// SendPassThrough tunnels cmds through the chip.
	SendPassThrough(p *Panel, cmds *CommandSet) error
}

// ErrNoLink is returned when a bypass send is attempted without a DSI link.
var ErrNoLink = errors.New("no DSI link for bypass")

// DSI TX window of the chip. A command is a header write followed by the
// payload, one little endian word per write.
const (
	regDSITxHeader  uint32 = 0xf1a00000
	regDSITxPayload uint32 = 0xf1a00004
)

// chipTransport is the Transport used when Opts.Transport is nil.
type chipTransport struct {
	d    *Dev
	link conn.Conn
}

func (t *chipTransport) SendBypass(p *Panel, cmds *CommandSet) error {
	if t.link == nil {
		return ErrNoLink
	}
	for i := range cmds.Len() {
		c := cmds.At(i)
		w := make([]byte, 0, 1+len(c.Payload))
		w = append(w, c.Type)
		w = append(w, c.Payload...)
		if err := t.link.Tx(w, nil); err != nil {
			return fmt.Errorf("bypass %s command #%d: %w", p, i, err)
		}
		wait(c.Wait)
	}
	return nil
}

func (t *chipTransport) SendPassThrough(p *Panel, cmds *CommandSet) error {
	for i := range cmds.Len() {
		c := cmds.At(i)
		if err := t.d.WriteRegisters(dsiTxWrites(c)...); err != nil {
			return fmt.Errorf("pass-through %s command #%d: %w", p, i, err)
		}
		wait(c.Wait)
	}
	return nil
}

func dsiTxWrites(c Command) []ocp.Write {
	ws := make([]ocp.Write, 0, 1+(len(c.Payload)+3)/4)
	ws = append(ws, ocp.Write{Addr: regDSITxHeader, Value: uint32(len(c.Payload))<<8 | uint32(c.Type)})
	for i := 0; i < len(c.Payload); i += 4 {
		var word [4]byte
		copy(word[:], c.Payload[i:])
		ws = append(ws, ocp.Write{Addr: regDSITxPayload, Value: binary.LittleEndian.Uint32(word[:])})
	}
	return ws
}

func wait(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

var _ Transport = &chipTransport{}
