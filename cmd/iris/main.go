// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// iris is a bench tool for the Iris display bridge.
package main

import "github.com/GermanBionicSystems/iris/cmd/iris/cmd"

func main() {
	cmd.Execute()
}
