// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package iris

import (
	"encoding/binary"

	"github.com/GermanBionicSystems/iris/iris/ocp"
)

// ReadRegister reads one 32 bit chip register.
//
// Reads have their own lock so that error polling does not wait behind a
// light-on or light-off.
func (d *Dev) ReadRegister(addr uint32) (uint32, error) {
	d.readMu.Lock()
	defer d.readMu.Unlock()
	var r [4]byte
	if err := d.d.Tx(ocp.ReadRequest(addr), r[:]); err != nil {
		return 0, wrap(err)
	}
	return binary.LittleEndian.Uint32(r[:]), nil
}

// WriteRegisters writes ws to the chip, one padded burst per multi-address
// packet.
func (d *Dev) WriteRegisters(ws ...ocp.Write) error {
	var b ocp.Buffer
	for len(ws) > 0 {
		n := min(len(ws), ocp.MaxWritesPerPacket)
		b.Reset()
		b.MultiWrite(ws[:n]...)
		if err := d.flush(&b); err != nil {
			return err
		}
		ws = ws[n:]
	}
	return nil
}

// flush pads b and sends it. A burst that cannot be padded is still sent; the
// chip drops the malformed tail.
func (d *Dev) flush(b *ocp.Buffer) error {
	if err := b.Align(); err != nil {
		d.log.Error("ocp burst not padded", "len", b.Offset(), "err", err)
	}
	return wrap(d.d.Tx(b.Bytes(), nil))
}
