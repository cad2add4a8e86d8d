// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/iris/iris"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"
)

// DCS commands used by the light sequences.
var (
	dcsOn = iris.NewCommandSet(
		iris.Command{Type: 0x05, Payload: []byte{0x11}}, // exit sleep
		iris.Command{Type: 0x05, Payload: []byte{0x29}}, // display on
	)
	dcsOff = iris.NewCommandSet(
		iris.Command{Type: 0x05, Payload: []byte{0x28}}, // display off
		iris.Command{Type: 0x05, Payload: []byte{0x10}}, // enter sleep
	)
)

var (
	panelName   string
	passThrough bool
	dead        bool
)

var lightOnCmd = &cobra.Command{
	Use:   "lighton",
	Short: "Light the panel on",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPanel(func(d *iris.Dev, p *iris.Panel) error {
			return d.LightOn(p, dcsOn)
		})
	},
}

var lightOffCmd = &cobra.Command{
	Use:   "lightoff",
	Short: "Light the panel off and reset the chip features",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPanel(func(d *iris.Dev, p *iris.Panel) error {
			return d.LightOff(p, dead, dcsOff)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{lightOnCmd, lightOffCmd} {
		c.Flags().StringVar(&panelName, "panel", "dsi-0", "panel name")
		c.Flags().BoolVar(&passThrough, "pt", false, "chip is in pass-through mode")
		rootCmd.AddCommand(c)
	}
	lightOffCmd.Flags().BoolVar(&dead, "dead", false, "panel is dead, skip the off commands")
}

// withPanel attaches a primary panel to a prepared chip in the requested
// mode, runs fn and prints the resulting state.
func withPanel(fn func(*iris.Dev, *iris.Panel) error) error {
	d, release, err := open()
	if err != nil {
		return err
	}
	defer release()
	p := &iris.Panel{Name: panelName}
	if err := d.Attach(p); err != nil {
		return err
	}
	if err := d.Prepare(); err != nil {
		return err
	}
	if passThrough {
		if err := d.SetMode(iris.PassThrough); err != nil {
			return err
		}
	}
	err = fn(d, p)
	printState(colorable.NewColorableStdout(), d.State())
	return err
}

var modeColors = map[iris.Mode]color.NRGBA{
	iris.AnalogBypass: {R: 0xff, G: 0xa0, A: 0xff},
	iris.PassThrough:  {G: 0xc0, B: 0x40, A: 0xff},
}

func printState(w io.Writer, s iris.State) {
	fmt.Fprintf(w, "%s\033[0m mode=%s readiness=%s panel=%s pin=%s pending=%s esd=%d\n",
		ansi256.Default.Block(modeColors[s.Mode]), s.Mode, s.Readiness, s.Primary, s.ControlPin, s.Pending, s.ESDCount)
}
