// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GermanBionicSystems/iris/iris"
	"github.com/GermanBionicSystems/iris/iris/ocp"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read ADDR...",
	Short: "Read chip registers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addrs := make([]uint32, len(args))
		for i, a := range args {
			v, err := parseWord(a)
			if err != nil {
				return err
			}
			addrs[i] = v
		}
		d, release, err := open()
		if err != nil {
			return err
		}
		defer release()
		for _, a := range addrs {
			v, err := d.Ioctl(iris.IoctlReadRegister, a)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "0x%08x: 0x%08x\n", a, v)
		}
		return nil
	},
}

var writeCmd = &cobra.Command{
	Use:   "write ADDR=VALUE...",
	Short: "Write chip registers in multi-address bursts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := parseWrites(args)
		if err != nil {
			return err
		}
		d, release, err := open()
		if err != nil {
			return err
		}
		defer release()
		return d.WriteRegisters(ws...)
	},
}

var trailerCmd = &cobra.Command{
	Use:   "trailer LEN",
	Short: "Print the OCP trailer padding LEN bytes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		var b ocp.Buffer
		if err := ocp.PadTrailer(&b, n); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "% x\n", b.Bytes())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd, writeCmd, trailerCmd)
}

func parseWord(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid word %q: %w", s, err)
	}
	return uint32(v), nil
}

func parseWrites(args []string) ([]ocp.Write, error) {
	ws := make([]ocp.Write, 0, len(args))
	for _, arg := range args {
		a, v, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected ADDR=VALUE, got %q", arg)
		}
		addr, err := parseWord(a)
		if err != nil {
			return nil, err
		}
		val, err := parseWord(v)
		if err != nil {
			return nil, err
		}
		ws = append(ws, ocp.Write{Addr: addr, Value: val})
	}
	return ws, nil
}
