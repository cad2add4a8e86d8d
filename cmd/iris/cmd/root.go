// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/GermanBionicSystems/iris/iris"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

var (
	// Global flags
	verbose  bool
	busName  string
	address  uint16
	pinName  string
	linkName string
	linkHz   int64
	option   uint32
)

var rootCmd = &cobra.Command{
	Use:   "iris",
	Short: "Iris display bridge bench tool",
	Long: `Drive a Pixelworks Iris display bridge over I²C.

Examples:
  iris read 0xf0000000                    # Read a register
  iris write 0xf1a00010=0x1               # Write registers in one burst
  iris trailer 12                         # Show the OCP trailer for 12 bytes
  iris lightoff --pt --link SPI0.0        # Light off a PT panel`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&busName, "bus", "b", "", "I²C bus to use")
	rootCmd.PersistentFlags().Uint16VarP(&address, "addr", "a", iris.DefaultAddress, "chip I²C address")
	rootCmd.PersistentFlags().StringVar(&pinName, "pin", "", "control GPIO pin")
	rootCmd.PersistentFlags().StringVar(&linkName, "link", "", "SPI port bridging the DSI host link, for bypass")
	rootCmd.PersistentFlags().Int64Var(&linkHz, "link-hz", 1_000_000, "DSI link bridge clock in Hz")
	rootCmd.PersistentFlags().Uint32Var(&option, "option", 0, "light-up option mask")
}

func logger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// open initializes periph and returns the chip. The returned function
// releases the buses.
func open() (*iris.Dev, func(), error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open I²C: %w", err)
	}
	closers := []func() error{bus.Close}
	release := func() {
		for _, c := range closers {
			_ = c()
		}
	}

	opts := &iris.Opts{
		LightupOption: iris.LightupOption(option),
		Logger:        logger(),
	}
	if pinName != "" {
		p := gpioreg.ByName(pinName)
		if p == nil {
			release()
			return nil, nil, fmt.Errorf("unknown pin %q", pinName)
		}
		opts.Pin = p
	}
	if linkName != "" {
		link, c, err := openLink()
		if err != nil {
			release()
			return nil, nil, err
		}
		closers = append(closers, c)
		opts.Link = link
	}
	d, err := iris.New(bus, address, opts)
	if err != nil {
		release()
		return nil, nil, err
	}
	return d, release, nil
}

func openLink() (conn.Conn, func() error, error) {
	p, err := spireg.Open(linkName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open link: %w", err)
	}
	c, err := p.Connect(physic.Frequency(linkHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		_ = p.Close()
		return nil, nil, err
	}
	return c, p.Close, nil
}
