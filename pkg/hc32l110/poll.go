// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hc32l110

import (
	"time"

	"github.com/jpillora/backoff"
)

// awaitCompletion polls the control register until the busy bit clears or
// the deadline passes. The first read happens immediately; later reads are
// spaced by the configured backoff. There is no separate pass/fail status
// bit on this controller, so busy-clear is the only success signal and a
// hung operation is indistinguishable from a failed one.
func (b *Bank) awaitCompletion(timeout time.Duration) error {
	interval := &backoff.Backoff{
		Min:    b.pollMin,
		Max:    b.pollMax,
		Factor: 2,
	}
	deadline := b.clk.Now().Add(timeout)
	for {
		v, err := b.mem.ReadWord(b.regs.Control)
		if err != nil {
			return err
		}
		if v&controlBusy == 0 {
			return nil
		}
		if !b.clk.Now().Before(deadline) {
			return ErrTimeout
		}
		b.clk.Sleep(interval.Duration())
	}
}
