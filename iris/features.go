// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package iris

import (
	"fmt"
	"log/slog"
)

// Features are the feature blocks torn down on light-off. Each hook is called
// exactly once per light-off, in method order, while Dev's state lock is
// held.
type Features interface {
	DisablePostProcessing() error
	MEMCLightOff() error
	QualityOff() error
	LowPowerOff() error
	SuperResolutionReset() error
	DTGReset() error
	ClearAOD() error
}

// NopFeatures is a Features doing nothing.
type NopFeatures struct{}

func (NopFeatures) DisablePostProcessing() error { return nil }
func (NopFeatures) MEMCLightOff() error          { return nil }
func (NopFeatures) QualityOff() error            { return nil }
func (NopFeatures) LowPowerOff() error           { return nil }
func (NopFeatures) SuperResolutionReset() error  { return nil }
func (NopFeatures) DTGReset() error              { return nil }
func (NopFeatures) ClearAOD() error              { return nil }

// teardown runs a sequence of steps and keeps going when one fails.
type teardown struct {
	log  *slog.Logger
	errs []error
}

func (t *teardown) step(name string, fn func() error) {
	if err := fn(); err != nil {
		t.log.Warn("light off step failed", "step", name, "err", err)
		t.errs = append(t.errs, fmt.Errorf("%s: %w", name, err))
	}
}

var _ Features = NopFeatures{}
