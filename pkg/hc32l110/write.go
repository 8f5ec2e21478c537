// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hc32l110

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/zap"
)

// gatherWord assembles the 4 bytes programmed at buf[wordStart..wordStart+4).
// wordStart may be negative (leading alignment padding) and the word may
// run past the end of buf; positions outside [0, len(buf)) read as 0xFF,
// the erased-flash value, so neighboring bits are not pulled low.
func gatherWord(buf []byte, wordStart int) [4]byte {
	var w [4]byte
	for i := range w {
		p := wordStart + i
		if p >= 0 && p < len(buf) {
			w[i] = buf[p]
		} else {
			w[i] = 0xFF
		}
	}
	return w
}

// Write programs len(buf) bytes at the given bank-relative byte offset.
// Neither offset nor length has to be word aligned; partial words at the
// edges are padded with 0xFF. The controller only programs whole words and
// only one at a time, so each word is written and then polled to
// completion. The first failure aborts: bytes already programmed stay
// programmed, there is no rollback.
func (b *Bank) Write(buf []byte, offset uint32) (err error) {
	count := len(buf)
	if count == 0 {
		return nil
	}
	if uint64(offset)+uint64(count) > uint64(b.Size) {
		return fmt.Errorf("write of %d bytes at 0x%x overflows %d byte bank", count, offset, b.Size)
	}

	defer b.relock(&err)

	if err = b.setMode(opProgram); err != nil {
		return err
	}
	if err = b.unlock(offset&^3, (offset+uint32(count)+3)&^3); err != nil {
		return err
	}

	// If offset is not word aligned, start one partial word early so the
	// bytes in front of it are programmed as 0xFF.
	negStart := int(offset % 4)
	for x := -negStart; x < count; x += 4 {
		w := gatherWord(buf, x)
		addr := b.Base + uint32(int(offset)+x)

		if err = b.mem.WriteWord(addr, binary.LittleEndian.Uint32(w[:])); err != nil {
			return err
		}
		if err = b.awaitCompletion(wordProgramTimeout); err != nil {
			return &OperationError{Op: "program", Addr: addr, Err: err}
		}
	}

	b.markWritten(offset, uint32(count))
	b.log.Debug("programmed", zap.Int("bytes", count), zap.Uint32("offset", offset))
	return nil
}

// markWritten flags the sectors touched by a successful program as no
// longer blank.
func (b *Bank) markWritten(offset, count uint32) {
	for i := range b.Sectors {
		s := &b.Sectors[i]
		if s.Offset < offset+count && offset < s.Offset+s.Size {
			s.Erased = EraseStateNotErased
		}
	}
}
