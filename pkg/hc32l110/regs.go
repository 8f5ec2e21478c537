// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hc32l110

import "time"

// RegisterMap holds the absolute addresses of the flash controller
// registers. The whole HC32L110 family shares one layout; the map is a
// value so a bank can never mutate it behind another bank's back.
type RegisterMap struct {
	// Control selects the operation mode; bit 4 reads back as busy.
	Control uint32
	// Bypass accepts the 0x5a5a/0xa5a5 magic that arms the lock register.
	Bypass uint32
	// Lock is the region lock bitmask, one bit per 4 KiB, 1 = unlocked.
	Lock uint32
	// SizeReport holds the factory-programmed flash capacity in bytes.
	SizeReport uint32
}

// DefaultRegisterMap is the HC32L110 layout.
var DefaultRegisterMap = RegisterMap{
	Control:    0x40020020,
	Bypass:     0x4002002C,
	Lock:       0x40020030,
	SizeReport: 0x00100C70,
}

const (
	controlBusy = 1 << 4

	bypassMagic1 = 0x5a5a
	bypassMagic2 = 0xa5a5

	// SectorSize is the erase granularity.
	SectorSize = 512
	// LockRegionSize is the unlock granularity, 8 sectors per lock bit.
	LockRegionSize = 4096

	// Valid capacities for this family.
	minFlashSize = 4096
	maxFlashSize = 32768
)

// operationMode is written to the control register before the trigger
// write; it decides what a subsequent write to a flash address does.
type operationMode uint32

const (
	opProgram     operationMode = 1
	opEraseSector operationMode = 2
	opEraseChip   operationMode = 3
)

// Per-operation completion budgets. Chip erase is slow; a single word
// program is done within a millisecond or not at all.
const (
	massEraseTimeout   = 3500 * time.Millisecond
	sectorEraseTimeout = 50 * time.Millisecond
	wordProgramTimeout = time.Millisecond
)
