// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package devices is a container for the Iris display bridge packages.
//
// The driver lives in package iris, the OCP burst packer in iris/ocp and the
// bench tool in cmd/iris.
package devices
