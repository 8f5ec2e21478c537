// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package target provides word-granular access to a target device's
// address space, usually through a debug probe or a probe bridge.
package target

// Memory is the access capability the flash driver runs on. Addresses are
// absolute device-memory addresses, not bank-relative. Implementations do
// no retries of their own; a transport failure is returned as-is and the
// caller decides what to do with the operation in flight.
type Memory interface {
	ReadWord(addr uint32) (uint32, error)
	WriteWord(addr uint32, value uint32) error
	Close() error
}
