// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hc32l110

import (
	"fmt"

	"go.uber.org/zap"
)

// Erase erases sectors [first, last). A request for sector zero alone
// (first == last == 0) or for the whole part is upgraded to a chip mass
// erase; mass-erase detection wins over the ranged interpretation.
func (b *Bank) Erase(first, last int) error {
	if first|last == 0 || (first == 0 && last >= len(b.Sectors)) {
		return b.MassErase()
	}
	if first < 0 || first > last || last > len(b.Sectors) {
		return fmt.Errorf("erase range [%d, %d) outside [0, %d)", first, last, len(b.Sectors))
	}
	return b.eraseSectors(first, last)
}

// MassErase erases the entire chip with a single hardware operation. On
// timeout no partial success is assumed: the erased state of every sector
// is unknown.
func (b *Bank) MassErase() (err error) {
	b.log.Debug("performing mass erase")
	defer b.relock(&err)

	if err = b.setMode(opEraseChip); err != nil {
		return err
	}
	// Unlock the full possible address span, not just the probed size;
	// a chip erase always covers everything.
	if err = b.unlock(0, maxFlashSize); err != nil {
		return err
	}
	if err = b.mem.WriteWord(b.Base, 0); err != nil { // trigger
		return err
	}
	if err = b.awaitCompletion(massEraseTimeout); err != nil {
		for i := range b.Sectors {
			b.Sectors[i].Erased = EraseStateUnknown
		}
		return &OperationError{Op: "mass erase", Addr: b.Base, Err: err}
	}
	for i := range b.Sectors {
		b.Sectors[i].Erased = EraseStateErased
	}
	b.log.Debug("mass erase successful")
	return nil
}

// eraseSectors erases sectors [first, last) in ascending order, one
// hardware operation each. The first failure aborts the loop: later
// sectors are left alone and were not attempted.
func (b *Bank) eraseSectors(first, last int) (err error) {
	defer b.relock(&err)

	for x := first; x < last; x++ {
		addr := b.Base + uint32(x)*SectorSize

		if err = b.setMode(opEraseSector); err != nil {
			return err
		}
		if err = b.unlock(addr, addr+SectorSize); err != nil {
			return err
		}
		if err = b.mem.WriteWord(addr, 0); err != nil { // trigger
			return err
		}
		if err = b.awaitCompletion(sectorEraseTimeout); err != nil {
			return &SectorEraseError{Sector: x, Addr: addr, Err: err}
		}

		b.Sectors[x].Erased = EraseStateErased
		b.log.Debug("erased sector", zap.Int("sector", x), zap.Uint32("addr", addr))
	}
	return nil
}
