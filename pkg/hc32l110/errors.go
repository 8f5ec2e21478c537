// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hc32l110

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when the controller's busy bit does not clear
// within the operation's budget. The hardware exposes no separate fault
// bit, so "failed" and "still busy at the deadline" are indistinguishable.
var ErrTimeout = errors.New("timed out waiting for flash controller")

// SizeRangeError reports a size register value outside the capacities this
// family ships with. The bank is unusable until a re-probe succeeds.
type SizeRangeError struct {
	Size uint32
}

func (e *SizeRangeError) Error() string {
	return fmt.Sprintf("reported flash size %d outside valid range [%d, %d]",
		e.Size, minFlashSize, maxFlashSize)
}

// SectorEraseError reports the first sector of a ranged erase that failed.
// Sectors after it were not attempted.
type SectorEraseError struct {
	Sector int
	Addr   uint32
	Err    error
}

func (e *SectorEraseError) Error() string {
	return fmt.Sprintf("failed to erase sector %d at 0x%08x: %v", e.Sector, e.Addr, e.Err)
}

func (e *SectorEraseError) Unwrap() error { return e.Err }

// OperationError reports a failed mass erase or program step. For program
// failures, bytes written before Addr remain written; there is no rollback.
type OperationError struct {
	Op   string
	Addr uint32
	Err  error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed at 0x%08x: %v", e.Op, e.Addr, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }
