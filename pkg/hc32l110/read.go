// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hc32l110

import "fmt"

// Read copies len(buf) bytes from the given bank-relative offset. On this
// part flash reads are plain memory accesses: no mode, no unlock. Access
// is word granular, so edge bytes are extracted from whole words.
func (b *Bank) Read(buf []byte, offset uint32) error {
	count := len(buf)
	if uint64(offset)+uint64(count) > uint64(b.Size) {
		return fmt.Errorf("read of %d bytes at 0x%x overflows %d byte bank", count, offset, b.Size)
	}

	i := 0
	for i < count {
		pos := b.Base + offset + uint32(i)
		v, err := b.mem.ReadWord(pos &^ 3)
		if err != nil {
			return err
		}
		for j := pos & 3; j < 4 && i < count; j++ {
			buf[i] = byte(v >> (8 * j))
			i++
		}
	}
	return nil
}

// BlankCheck reads every sector and updates its erased flag. A sector is
// blank when every byte reads back as 0xFF.
func (b *Bank) BlankCheck() error {
	buf := make([]byte, SectorSize)
	for i := range b.Sectors {
		if err := b.Read(buf, b.Sectors[i].Offset); err != nil {
			return err
		}
		b.Sectors[i].Erased = EraseStateErased
		for _, c := range buf {
			if c != 0xFF {
				b.Sectors[i].Erased = EraseStateNotErased
				break
			}
		}
	}
	return nil
}
