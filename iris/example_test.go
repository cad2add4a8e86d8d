// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package iris_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/iris/iris"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	// Open default I²C bus.
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	dev, err := iris.New(bus, iris.DefaultAddress, &iris.Opts{
		Pin: gpioreg.ByName("GPIO17"),
	})
	if err != nil {
		log.Fatal(err)
	}
	panel := &iris.Panel{Name: "dsi-0"}
	if err := dev.Attach(panel); err != nil {
		log.Fatal(err)
	}
	if err := dev.Prepare(); err != nil {
		log.Fatal(err)
	}
	if err := dev.SetMode(iris.PassThrough); err != nil {
		log.Fatal(err)
	}

	off := iris.NewCommandSet(
		iris.Command{Type: 0x05, Payload: []byte{0x28}}, // display off
		iris.Command{Type: 0x05, Payload: []byte{0x10}}, // enter sleep
	)
	if err := dev.LightOff(panel, false, off); err != nil {
		log.Printf("light off: %v", err)
	}
	fmt.Println(dev.Mode())
}
