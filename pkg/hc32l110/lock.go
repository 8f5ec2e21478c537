// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hc32l110

// regionMask computes the lock-register mask for the byte span
// [start, end): bit i is set iff the span intersects the 4 KiB region
// [i*4096, (i+1)*4096).
func regionMask(start, end uint32) uint32 {
	first := start / LockRegionSize
	last := (end + LockRegionSize - 1) / LockRegionSize
	var m uint32
	for i := first; i < last; i++ {
		m |= 1 << i
	}
	return m
}

// bypass writes the magic sequence that arms the lock register for the
// next write. The hardware gives no acknowledgement and the window is
// short, so this must directly precede every lock-register write.
func (b *Bank) bypass() error {
	if err := b.mem.WriteWord(b.regs.Bypass, bypassMagic1); err != nil {
		return err
	}
	return b.mem.WriteWord(b.regs.Bypass, bypassMagic2)
}

// unlock opens the regions covering [start, end) for modification. The
// unlock is volatile: it does not survive a reset and lockAll undoes it.
func (b *Bank) unlock(start, end uint32) error {
	if err := b.bypass(); err != nil {
		return err
	}
	return b.mem.WriteWord(b.regs.Lock, regionMask(start, end))
}

// lockAll leaves every region locked again.
func (b *Bank) lockAll() error {
	if err := b.bypass(); err != nil {
		return err
	}
	return b.mem.WriteWord(b.regs.Lock, 0)
}

// relock is deferred by every erase/program entry point so the part is
// re-locked on all exit paths, not just success. Leaving the unlock
// asserted after a failed erase would let a stray write corrupt flash;
// closing that gap costs one register write. A re-lock failure only
// surfaces when the operation itself succeeded.
func (b *Bank) relock(err *error) {
	if lerr := b.lockAll(); lerr != nil && *err == nil {
		*err = lerr
	}
}
