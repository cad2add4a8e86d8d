// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package iris

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
)

// LightOn asserts the control pin and sends on to panel p on the path of the
// effective mode. Secondary and nil panels are ignored.
func (d *Dev) LightOn(p *Panel, on *CommandSet) error {
	d.gs.Lock()
	defer d.gs.Unlock()

	if p == nil || p.Secondary {
		d.log.Debug("no need to light on for secondary panel", "panel", p)
		return nil
	}
	if err := d.setPinLocked(gpio.High); err != nil {
		return wrap(err)
	}
	mode := d.effectiveModeLocked()
	d.log.Info("light on", "panel", p, "mode", mode, "cmds", on.Len())
	if on != nil {
		if err := d.sendLocked(p, on, mode); err != nil {
			return wrap(err)
		}
	}
	if d.readiness >= Prepared {
		d.readiness = LightUp
	}
	return nil
}

// LightOff turns panel p off and tears down the chip feature state.
//
// Before the chip is prepared, off is sent on the bypass path to a primary
// panel and nothing else happens. Otherwise the runtime accumulators are
// cleared; a nil or secondary panel stops there. For the primary panel the
// mode drops to AnalogBypass unless KeepMode is set, off is sent on the path
// of that mode unless abnormal is true, and every teardown step runs in
// order whatever the outcome of the previous ones.
//
// The returned error joins the send and step failures. Teardown never stops
// on it.
func (d *Dev) LightOff(p *Panel, abnormal bool, off *CommandSet) error {
	d.gs.Lock()
	defer d.gs.Unlock()
	opt := d.LightupOption()

	if d.readiness < Prepared {
		if p != nil && !p.Secondary && off != nil {
			return wrap(d.transport.SendBypass(p, off))
		}
		return nil
	}

	d.mipi2Power = false
	d.metadata = 0
	d.dtgCtrlPT = 0

	if p == nil || p.Secondary {
		d.log.Debug("no need to light off for secondary panel", "panel", p)
		return nil
	}

	// The mode is reset before the path is picked, so a PT off sequence is
	// sent on the bypass path unless KeepMode is set.
	// TODO: confirm with the chip vendor whether PT off commands should be
	// sent before the switch to ABYP.
	if opt&KeepMode == 0 {
		d.mode = AnalogBypass
	}
	d.log.Info("light off", "panel", p, "dead", abnormal, "mode", d.mode)

	var sendErr error
	if off != nil && !abnormal {
		sendErr = d.sendLocked(p, off, d.mode)
	}

	t := teardown{log: d.log}
	t.step("disable post processing", d.features.DisablePostProcessing)
	t.step("memc light off", d.features.MEMCLightOff)
	t.step("quality off", d.features.QualityOff)
	t.step("low power off", d.features.LowPowerOff)
	t.step("super resolution reset", func() error {
		d.ptSR = false
		return d.features.SuperResolutionReset()
	})
	t.step("dtg reset", d.features.DTGReset)
	t.step("clear aod", func() error {
		d.aod = false
		return d.features.ClearAOD()
	})
	d.pending = 0
	t.step("control pin", func() error {
		return d.setPinLocked(gpio.Low)
	})

	d.log.Info("light off done", "panel", p)
	return wrap(errors.Join(append([]error{sendErr}, t.errs...)...))
}

func (d *Dev) sendLocked(p *Panel, cmds *CommandSet, m Mode) error {
	if m == PassThrough {
		return d.transport.SendPassThrough(p, cmds)
	}
	return d.transport.SendBypass(p, cmds)
}
