// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package iris

import (
	"fmt"
	"strings"
	"time"
)

// Mode is the chip forwarding path.
type Mode byte

const (
	// AnalogBypass passes the panel link around the chip. It is the mode the
	// chip is left in after light-off.
	AnalogBypass Mode = iota
	// PassThrough routes video and panel commands through the chip.
	PassThrough
)

func (m Mode) String() string {
	switch m {
	case AnalogBypass:
		return "ABYP"
	case PassThrough:
		return "PT"
	default:
		return fmt.Sprintf("Mode(%d)", byte(m))
	}
}

// Readiness is how far chip bring-up went. Values are ordered.
type Readiness byte

const (
	// Unprepared means the parameters were not loaded yet. Only the bypass
	// path can be used.
	Unprepared Readiness = iota
	// Prepared means the chip parameters are loaded and the mode is
	// meaningful.
	Prepared
	// LightUp means the panel was lit through the chip at least once.
	LightUp
)

func (r Readiness) String() string {
	switch r {
	case Unprepared:
		return "Unprepared"
	case Prepared:
		return "Prepared"
	case LightUp:
		return "LightUp"
	default:
		return fmt.Sprintf("Readiness(%d)", byte(r))
	}
}

// Pending is the set of outstanding work items.
type Pending uint8

const (
	PendingPanel Pending = 1 << iota
	PendingMetadata
	PendingDTG
)

func (p Pending) String() string {
	if p == 0 {
		return "none"
	}
	var s []string
	for _, f := range []struct {
		bit  Pending
		name string
	}{
		{PendingPanel, "panel"},
		{PendingMetadata, "metadata"},
		{PendingDTG, "dtg"},
	} {
		if p&f.bit != 0 {
			s = append(s, f.name)
			p &^= f.bit
		}
	}
	if p != 0 {
		s = append(s, fmt.Sprintf("%#x", uint8(p)))
	}
	return strings.Join(s, "|")
}

// LightupOption is the externally supplied light-up tuning bitmask.
type LightupOption uint32

// KeepMode leaves the chip mode alone on light-off instead of dropping back
// to AnalogBypass.
const KeepMode LightupOption = 0x10

// Panel is a display the chip drives. A secondary panel mirrors the primary
// one and never owns a light-off sequence.
type Panel struct {
	Name      string
	Secondary bool
}

func (p *Panel) String() string {
	if p == nil {
		return "<nil>"
	}
	if p.Secondary {
		return p.Name + "(secondary)"
	}
	return p.Name
}

// Command is one DSI command destined for the panel.
type Command struct {
	// Type is the DSI data type.
	Type    byte
	Payload []byte
	// Wait is slept after the command is sent.
	Wait time.Duration
}

// CommandSet is an ordered, immutable list of panel commands.
//
// A nil *CommandSet means no command set is available.
type CommandSet struct {
	cmds []Command
}

// NewCommandSet copies cmds into a new CommandSet.
func NewCommandSet(cmds ...Command) *CommandSet {
	c := &CommandSet{cmds: make([]Command, len(cmds))}
	for i, cmd := range cmds {
		cmd.Payload = append([]byte(nil), cmd.Payload...)
		c.cmds[i] = cmd
	}
	return c
}

// Len returns the number of commands.
func (c *CommandSet) Len() int {
	if c == nil {
		return 0
	}
	return len(c.cmds)
}

// At returns the i-th command. The payload must not be modified.
func (c *CommandSet) At(i int) Command {
	return c.cmds[i]
}

// Commands returns a copy of the commands.
func (c *CommandSet) Commands() []Command {
	if c == nil {
		return nil
	}
	return NewCommandSet(c.cmds...).cmds
}
