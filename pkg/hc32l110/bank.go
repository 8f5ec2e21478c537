// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hc32l110

import (
	"time"

	"github.com/jmhodges/clock"
	"go.uber.org/zap"

	"github.com/hc32tools/hc32prog/pkg/target"
)

// EraseState tracks what we believe about a sector's contents. It is
// best-effort bookkeeping only; BlankCheck gives the real answer.
type EraseState int

const (
	EraseStateUnknown EraseState = iota
	EraseStateErased
	EraseStateNotErased
)

// Sector is one 512 byte erase unit. Sectors are contiguous and cover
// exactly [0, bank size).
type Sector struct {
	Offset    uint32
	Size      uint32
	Erased    EraseState
	Protected bool
}

// Bank is one flash device instance. The HC32L110 maps its flash at
// address zero; Size starts at the family maximum and is corrected by
// Probe. A Bank is not safe for concurrent use: the lock and control
// registers are shared chip state and exactly one erase or program
// sequence may be in flight at a time.
type Bank struct {
	Base    uint32
	Size    uint32
	Sectors []Sector

	mem  target.Memory
	regs RegisterMap
	log  *zap.Logger
	clk  clock.Clock

	pollMin time.Duration
	pollMax time.Duration
}

// Option configures a Bank.
type Option func(*Bank)

// WithLogger attaches a logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bank) { b.log = l }
}

// WithClock substitutes the wall clock, used by tests to run completion
// timeouts without sleeping.
func WithClock(c clock.Clock) Option {
	return func(b *Bank) { b.clk = c }
}

// WithRegisterMap overrides the register layout.
func WithRegisterMap(r RegisterMap) Option {
	return func(b *Bank) { b.regs = r }
}

// WithPollInterval adjusts the completion poll cadence. The poller starts
// at min and backs off towards max; with min == max the cadence is fixed.
func WithPollInterval(min, max time.Duration) Option {
	return func(b *Bank) {
		b.pollMin = min
		if max < min {
			max = min
		}
		b.pollMax = max
	}
}

// NewBank attaches a bank on the given memory access. The sector table is
// empty until Probe runs.
func NewBank(mem target.Memory, opts ...Option) *Bank {
	b := &Bank{
		Base:    0,
		Size:    maxFlashSize,
		mem:     mem,
		regs:    DefaultRegisterMap,
		log:     zap.NewNop(),
		clk:     clock.New(),
		pollMin: time.Millisecond,
		pollMax: time.Millisecond,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NumSectors returns the number of sectors of the probed geometry.
func (b *Bank) NumSectors() int {
	return len(b.Sectors)
}

// setMode selects what the next trigger write does. Vendor code arms the
// bypass before touching the control register as well, and the hardware
// tolerates it, so we keep the sequence identical.
func (b *Bank) setMode(op operationMode) error {
	if err := b.bypass(); err != nil {
		return err
	}
	return b.mem.WriteWord(b.regs.Control, uint32(op))
}
