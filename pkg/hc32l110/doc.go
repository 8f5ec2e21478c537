// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hc32l110 drives the embedded NOR flash of HDSC HC32L110 series
// microcontrollers through a debug-access transport.
//
// The flash controller offers no batched or queued mode: erase and program
// are triggered by single memory writes after the right operation mode has
// been selected and the affected protection regions unlocked, and the only
// completion signal is the busy bit in the control register. The driver
// therefore works strictly word at a time and polls after every trigger.
//
// The sector-lock register only accepts writes for a short window after a
// magic two-word bypass sequence, and its state is volatile. The driver
// re-asserts the locks at the end of every operation, including on failure
// paths, so an aborted session never leaves the part writable.
//
// All chip variants of the family share this register layout and differ
// only in flash capacity, which Probe reads off the device.
package hc32l110
