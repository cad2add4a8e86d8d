// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package iris

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestNewDefaults(t *testing.T) {
	d, err := New(&i2ctest.Record{}, addr, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := State{
		Mode:      AnalogBypass,
		Readiness: Unprepared,
		PWILMode:  2,
		N2MRatio:  1,
	}
	if diff := cmp.Diff(d.State(), want); diff != "" {
		t.Errorf("State() difference (-got +want):\n%s", diff)
	}
	if _, ok := d.features.(NopFeatures); !ok {
		t.Errorf("features = %T", d.features)
	}
	if d.String() == "" {
		t.Error("empty String()")
	}
}

func TestAttach(t *testing.T) {
	d, err := New(&i2ctest.Record{}, addr, &Opts{Logger: quiet})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Attach(nil); !errors.Is(err, ErrNoPanel) {
		t.Errorf("Attach(nil) = %v", err)
	}
	if err := d.Prepare(); err != nil {
		t.Fatal(err)
	}
	if err := d.SetMode(PassThrough); err != nil {
		t.Fatal(err)
	}
	d.SetAOD(true)
	d.ReportESD()
	d.ReportFOD()

	// A secondary panel leaves the state alone.
	if err := d.Attach(secondary); err != nil {
		t.Fatal(err)
	}
	s := d.State()
	if s.Mode != PassThrough || !s.AOD || s.ESDCount != 1 || s.Secondary != secondary {
		t.Errorf("secondary attach changed state: %+v", s)
	}

	if err := d.Attach(primary); err != nil {
		t.Fatal(err)
	}
	want := State{
		Mode:      AnalogBypass,
		Readiness: Prepared,
		Primary:   primary,
		Secondary: secondary,
		PWILMode:  2,
		N2MRatio:  1,
	}
	if diff := cmp.Diff(d.State(), want); diff != "" {
		t.Errorf("State() difference (-got +want):\n%s", diff)
	}

	d.Detach()
	s = d.State()
	if s.Primary != nil || s.Secondary != nil || s.Readiness != Unprepared {
		t.Errorf("Detach() left %+v", s)
	}
}

func TestReadiness(t *testing.T) {
	d, err := New(&i2ctest.Record{}, addr, &Opts{Logger: quiet})
	if err != nil {
		t.Fatal(err)
	}
	if got := d.EffectiveMode(); got != AnalogBypass {
		t.Errorf("EffectiveMode() = %s", got)
	}
	if err := d.SetMode(PassThrough); !errors.Is(err, ErrNotPrepared) {
		t.Errorf("SetMode(PT) = %v", err)
	}
	if err := d.SetMode(Mode(9)); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("SetMode(9) = %v", err)
	}
	if err := d.SetReadiness(LightUp); err != nil {
		t.Fatal(err)
	}
	if err := d.Prepare(); err != nil {
		t.Fatal(err)
	}
	if got := d.Readiness(); got != LightUp {
		t.Errorf("Prepare() moved readiness to %s", got)
	}
	if err := d.SetReadiness(Prepared); !errors.Is(err, ErrReadinessRegress) {
		t.Errorf("SetReadiness(Prepared) = %v", err)
	}
	if err := d.SetReadiness(Readiness(5)); !errors.Is(err, ErrInvalidReadiness) {
		t.Errorf("SetReadiness(5) = %v", err)
	}
	if err := d.SetMode(PassThrough); err != nil {
		t.Fatal(err)
	}
	if got := d.EffectiveMode(); got != PassThrough {
		t.Errorf("EffectiveMode() = %s", got)
	}
}

func TestCounters(t *testing.T) {
	d, err := New(&i2ctest.Record{}, addr, &Opts{Logger: quiet})
	if err != nil {
		t.Fatal(err)
	}
	d.ReportESD()
	d.ReportESD()
	d.ReportFOD()
	if d.ESDCount() != 2 || d.FODCount() != 1 {
		t.Errorf("counters = %d, %d", d.ESDCount(), d.FODCount())
	}
	d.ResetCounters()
	if d.ESDCount() != 0 || d.FODCount() != 0 {
		t.Errorf("counters not reset")
	}
}

func TestHalt(t *testing.T) {
	pin := &gpiotest.Pin{N: "IRIS_CTRL", L: gpio.High}
	d, err := New(&i2ctest.Record{}, addr, &Opts{Pin: pin, Logger: quiet})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if pin.Read() != gpio.Low {
		t.Error("control pin still asserted")
	}
}

func TestStrings(t *testing.T) {
	for _, tc := range []struct {
		got  string
		want string
	}{
		{AnalogBypass.String(), "ABYP"},
		{PassThrough.String(), "PT"},
		{Mode(4).String(), "Mode(4)"},
		{Prepared.String(), "Prepared"},
		{Readiness(9).String(), "Readiness(9)"},
		{Pending(0).String(), "none"},
		{(PendingPanel | PendingDTG).String(), "panel|dtg"},
		{(PendingMetadata | 0x40).String(), "metadata|0x40"},
		{primary.String(), "main"},
		{secondary.String(), "mirror(secondary)"},
		{(*Panel)(nil).String(), "<nil>"},
		{IoctlReadRegister.String(), "ReadRegister"},
		{IoctlCmd(42).String(), "IoctlCmd(42)"},
	} {
		if tc.got != tc.want {
			t.Errorf("got %q, want %q", tc.got, tc.want)
		}
	}
}

func TestCommandSetImmutable(t *testing.T) {
	payload := []byte{0x51, 0x00}
	c := NewCommandSet(Command{Type: 0x15, Payload: payload})
	payload[1] = 0xff
	if got := c.At(0).Payload[1]; got != 0x00 {
		t.Errorf("payload aliased: %#x", got)
	}
	cmds := c.Commands()
	cmds[0].Payload[0] = 0
	if got := c.At(0).Payload[0]; got != 0x51 {
		t.Errorf("Commands() aliased: %#x", got)
	}
	var nilSet *CommandSet
	if nilSet.Len() != 0 || nilSet.Commands() != nil {
		t.Error("nil CommandSet not empty")
	}
}
