// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package iris

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

// DefaultAddress is the chip I²C address.
const DefaultAddress uint16 = 0x22

var (
	ErrNoPanel          = errors.New("no panel")
	ErrNotPrepared      = errors.New("chip not prepared")
	ErrReadinessRegress = errors.New("readiness cannot go backwards")
	ErrInvalidMode      = errors.New("invalid mode")
	ErrInvalidReadiness = errors.New("invalid readiness")
)

// Opts configures a Dev. The zero value is usable.
type Opts struct {
	// Transport overrides the built-in one, which sends bypass commands on
	// Link and pass-through commands on the chip's OCP bus.
	Transport Transport
	// Link is the DSI host link used for bypass by the built-in transport.
	Link conn.Conn
	// Features receives the light-off teardown calls. Defaults to
	// NopFeatures.
	Features Features
	// Pin is the chip control pin. Optional.
	Pin gpio.PinOut
	// LightupOption is the initial light-up option mask.
	LightupOption LightupOption
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// State is a snapshot of the chip state.
type State struct {
	Mode               Mode
	Readiness          Readiness
	Primary            *Panel
	Secondary          *Panel
	Pending            Pending
	Metadata           uint32
	DTGControlPoint    uint32
	SecondaryMIPIPower bool
	SuperResolution    bool
	AOD                bool
	PWILMode           uint8
	N2MRatio           uint8
	ControlPin         gpio.Level
	LightupOption      LightupOption
	ESDCount           uint32
	FODCount           uint32
}

// Dev is an Iris chip and the single source of truth for its state.
type Dev struct {
	d         *i2c.Dev
	transport Transport
	features  Features
	pin       gpio.PinOut
	log       *slog.Logger

	gs     sync.Mutex
	ioctl  sync.Mutex
	readMu sync.Mutex

	lightupOpt atomic.Uint32
	esd        atomic.Uint32
	fod        atomic.Uint32

	// Guarded by gs.
	mode       Mode
	readiness  Readiness
	primary    *Panel
	secondary  *Panel
	pending    Pending
	metadata   uint32
	dtgCtrlPT  uint32
	mipi2Power bool
	ptSR       bool
	aod        bool
	pwilMode   uint8
	n2mRatio   uint8
	pinLevel   gpio.Level
}

// New returns a Dev for the chip at addr on bus. No I/O is done until a panel
// is lit.
func New(bus i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	d := &Dev{
		d:        &i2c.Dev{Bus: bus, Addr: addr},
		features: opts.Features,
		pin:      opts.Pin,
		log:      opts.Logger,
	}
	if d.features == nil {
		d.features = NopFeatures{}
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	d.log = d.log.With("dev", "iris")
	d.transport = opts.Transport
	if d.transport == nil {
		d.transport = &chipTransport{d: d, link: opts.Link}
	}
	d.lightupOpt.Store(uint32(opts.LightupOption))
	d.resetLocked()
	return d, nil
}

// resetLocked restores the defaults a primary panel attach starts from.
func (d *Dev) resetLocked() {
	d.mode = AnalogBypass
	d.pending = 0
	d.metadata = 0
	d.dtgCtrlPT = 0
	d.mipi2Power = false
	d.ptSR = false
	d.aod = false
	d.pwilMode = 2
	d.n2mRatio = 1
	d.esd.Store(0)
	d.fod.Store(0)
}

// Attach registers p with the chip. A secondary panel is only recorded; a
// primary panel also resets the chip state to its defaults.
func (d *Dev) Attach(p *Panel) error {
	if p == nil {
		return wrap(ErrNoPanel)
	}
	d.gs.Lock()
	defer d.gs.Unlock()
	d.log.Info("attach", "panel", p)
	if p.Secondary {
		d.secondary = p
		return nil
	}
	d.primary = p
	d.resetLocked()
	return nil
}

// Detach forgets both panels and drops readiness back to Unprepared.
func (d *Dev) Detach() {
	d.gs.Lock()
	defer d.gs.Unlock()
	d.primary = nil
	d.secondary = nil
	d.readiness = Unprepared
	d.mode = AnalogBypass
}

// Readiness returns the current readiness.
func (d *Dev) Readiness() Readiness {
	d.gs.Lock()
	defer d.gs.Unlock()
	return d.readiness
}

// SetReadiness advances the readiness to r.
func (d *Dev) SetReadiness(r Readiness) error {
	if r > LightUp {
		return wrap(fmt.Errorf("%w: %d", ErrInvalidReadiness, r))
	}
	d.gs.Lock()
	defer d.gs.Unlock()
	if r < d.readiness {
		return wrap(fmt.Errorf("%w: %s to %s", ErrReadinessRegress, d.readiness, r))
	}
	d.readiness = r
	return nil
}

// Prepare marks the chip parameters as loaded. It is a no-op past Prepared.
func (d *Dev) Prepare() error {
	d.gs.Lock()
	defer d.gs.Unlock()
	if d.readiness < Prepared {
		d.readiness = Prepared
	}
	return nil
}

// Mode returns the recorded mode.
func (d *Dev) Mode() Mode {
	d.gs.Lock()
	defer d.gs.Unlock()
	return d.mode
}

// EffectiveMode returns the path traffic really takes: AnalogBypass until the
// chip is prepared, the recorded mode afterward.
func (d *Dev) EffectiveMode() Mode {
	d.gs.Lock()
	defer d.gs.Unlock()
	return d.effectiveModeLocked()
}

func (d *Dev) effectiveModeLocked() Mode {
	if d.readiness < Prepared {
		return AnalogBypass
	}
	return d.mode
}

// SetMode records the chip mode. PassThrough requires a prepared chip.
func (d *Dev) SetMode(m Mode) error {
	switch m {
	case AnalogBypass, PassThrough:
	default:
		return wrap(fmt.Errorf("%w: %d", ErrInvalidMode, m))
	}
	d.gs.Lock()
	defer d.gs.Unlock()
	if m == PassThrough && d.readiness < Prepared {
		return wrap(ErrNotPrepared)
	}
	d.mode = m
	return nil
}

// LightupOption returns the light-up option mask.
func (d *Dev) LightupOption() LightupOption {
	return LightupOption(d.lightupOpt.Load())
}

// SetLightupOption replaces the light-up option mask. It may be called
// concurrently with light-off, which reads it once per call.
func (d *Dev) SetLightupOption(o LightupOption) {
	d.lightupOpt.Store(uint32(o))
}

// MarkPending adds p to the outstanding work items.
func (d *Dev) MarkPending(p Pending) {
	d.gs.Lock()
	defer d.gs.Unlock()
	d.pending |= p
}

// Pending returns the outstanding work items.
func (d *Dev) Pending() Pending {
	d.gs.Lock()
	defer d.gs.Unlock()
	return d.pending
}

// AddMetadata accumulates metadata bits for the next frame update.
func (d *Dev) AddMetadata(m uint32) {
	d.gs.Lock()
	defer d.gs.Unlock()
	d.metadata |= m
}

// Metadata returns the accumulated metadata.
func (d *Dev) Metadata() uint32 {
	d.gs.Lock()
	defer d.gs.Unlock()
	return d.metadata
}

func (d *Dev) SetDTGControlPoint(v uint32) {
	d.gs.Lock()
	defer d.gs.Unlock()
	d.dtgCtrlPT = v
}

func (d *Dev) SetSecondaryMIPIPower(on bool) {
	d.gs.Lock()
	defer d.gs.Unlock()
	d.mipi2Power = on
}

func (d *Dev) SetAOD(on bool) {
	d.gs.Lock()
	defer d.gs.Unlock()
	d.aod = on
}

func (d *Dev) SetSuperResolution(on bool) {
	d.gs.Lock()
	defer d.gs.Unlock()
	d.ptSR = on
}

// ReportESD counts one ESD event.
func (d *Dev) ReportESD() {
	d.esd.Add(1)
}

// ESDCount returns the number of ESD events since the last reset.
func (d *Dev) ESDCount() uint32 {
	return d.esd.Load()
}

// ReportFOD counts one fingerprint-on-display event.
func (d *Dev) ReportFOD() {
	d.fod.Add(1)
}

// FODCount returns the number of FOD events since the last reset.
func (d *Dev) FODCount() uint32 {
	return d.fod.Load()
}

// ResetCounters zeroes the ESD and FOD counters.
func (d *Dev) ResetCounters() {
	d.esd.Store(0)
	d.fod.Store(0)
}

// State returns a snapshot of the chip state.
func (d *Dev) State() State {
	d.gs.Lock()
	defer d.gs.Unlock()
	return State{
		Mode:               d.mode,
		Readiness:          d.readiness,
		Primary:            d.primary,
		Secondary:          d.secondary,
		Pending:            d.pending,
		Metadata:           d.metadata,
		DTGControlPoint:    d.dtgCtrlPT,
		SecondaryMIPIPower: d.mipi2Power,
		SuperResolution:    d.ptSR,
		AOD:                d.aod,
		PWILMode:           d.pwilMode,
		N2MRatio:           d.n2mRatio,
		ControlPin:         d.pinLevel,
		LightupOption:      d.LightupOption(),
		ESDCount:           d.ESDCount(),
		FODCount:           d.FODCount(),
	}
}

// Halt implements conn.Resource. It deasserts the control pin.
func (d *Dev) Halt() error {
	d.gs.Lock()
	defer d.gs.Unlock()
	return wrap(d.setPinLocked(gpio.Low))
}

func (d *Dev) String() string {
	return fmt.Sprintf("Iris{%s}", d.d)
}

func (d *Dev) setPinLocked(l gpio.Level) error {
	if d.pin != nil {
		if err := d.pin.Out(l); err != nil {
			return err
		}
	}
	d.pinLevel = l
	return nil
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("iris: %w", err)
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
