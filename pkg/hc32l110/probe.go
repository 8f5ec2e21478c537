// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hc32l110

import (
	"fmt"

	"go.uber.org/zap"
)

// Probe reads the device's flash size report and rebuilds the sector
// table. The report is rejected outside the capacities this family ships
// with. Probe is idempotent: a re-probe fully overwrites the previous
// geometry.
func (b *Bank) Probe() error {
	size, err := b.mem.ReadWord(b.regs.SizeReport)
	if err != nil {
		return fmt.Errorf("reading flash size report: %w", err)
	}
	if size < minFlashSize || size > maxFlashSize {
		return &SizeRangeError{Size: size}
	}
	b.log.Info("flash detected", zap.Uint32("kib", size/1024))

	b.Size = size
	b.Sectors = make([]Sector, size/SectorSize)
	for i := range b.Sectors {
		b.Sectors[i] = Sector{
			Offset: uint32(i) * SectorSize,
			Size:   SectorSize,
			Erased: EraseStateUnknown,
		}
	}
	return nil
}
