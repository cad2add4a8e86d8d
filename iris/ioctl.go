// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package iris

import (
	"errors"
	"fmt"
)

// IoctlCmd is a debug command.
type IoctlCmd uint32

const (
	IoctlGetMode IoctlCmd = iota + 1
	IoctlSetMode
	IoctlGetReadiness
	IoctlGetLightupOption
	IoctlSetLightupOption
	IoctlReadRegister
	IoctlGetESDCount
)

var ErrUnknownIoctl = errors.New("unknown ioctl")

func (c IoctlCmd) String() string {
	switch c {
	case IoctlGetMode:
		return "GetMode"
	case IoctlSetMode:
		return "SetMode"
	case IoctlGetReadiness:
		return "GetReadiness"
	case IoctlGetLightupOption:
		return "GetLightupOption"
	case IoctlSetLightupOption:
		return "SetLightupOption"
	case IoctlReadRegister:
		return "ReadRegister"
	case IoctlGetESDCount:
		return "GetESDCount"
	default:
		return fmt.Sprintf("IoctlCmd(%d)", uint32(c))
	}
}

// Ioctl runs a debug command. Commands are serialized against each other;
// the ones touching chip state also take the state lock.
func (d *Dev) Ioctl(cmd IoctlCmd, arg uint32) (uint32, error) {
	d.ioctl.Lock()
	defer d.ioctl.Unlock()
	d.log.Debug("ioctl", "cmd", cmd, "arg", arg)
	switch cmd {
	case IoctlGetMode:
		return uint32(d.Mode()), nil
	case IoctlSetMode:
		if arg > uint32(PassThrough) {
			return 0, wrap(fmt.Errorf("%w: %d", ErrInvalidMode, arg))
		}
		return 0, d.SetMode(Mode(arg))
	case IoctlGetReadiness:
		return uint32(d.Readiness()), nil
	case IoctlGetLightupOption:
		return uint32(d.LightupOption()), nil
	case IoctlSetLightupOption:
		d.SetLightupOption(LightupOption(arg))
		return 0, nil
	case IoctlReadRegister:
		return d.ReadRegister(arg)
	case IoctlGetESDCount:
		return d.ESDCount(), nil
	default:
		return 0, wrap(fmt.Errorf("%w: %s", ErrUnknownIoctl, cmd))
	}
}
