// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hc32l110

import (
	"bytes"
	"testing"
)

func TestReadAligned(t *testing.T) {
	b, fm := probedBank(t, 4096)
	fm.FakeRead(0, 0x04030201)
	fm.FakeRead(4, 0x08070605)

	buf := make([]byte, 8)
	if err := b.Read(buf, 0); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	expected := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(buf, expected) {
		t.Errorf("read % x, expected % x", buf, expected)
	}
	fm.Done()
}

func TestReadUnaligned(t *testing.T) {
	b, fm := probedBank(t, 4096)
	fm.FakeRead(0, 0x44332211)
	fm.FakeRead(4, 0x88776655)

	buf := make([]byte, 3)
	if err := b.Read(buf, 2); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	expected := []byte{0x33, 0x44, 0x55}
	if !bytes.Equal(buf, expected) {
		t.Errorf("read % x, expected % x", buf, expected)
	}
	fm.Done()
}

func TestReadOverflowRejected(t *testing.T) {
	b, _ := probedBank(t, 4096)
	if err := b.Read(make([]byte, 8), 4092); err == nil {
		t.Fatal("overflowing read accepted")
	}
}

func TestBlankCheck(t *testing.T) {
	b, fm := probedBank(t, 4096)

	for sector := 0; sector < 8; sector++ {
		for w := 0; w < SectorSize/4; w++ {
			v := uint32(0xffffffff)
			if sector == 3 && w == 17 {
				v = 0xffff00ff // one programmed byte
			}
			fm.FakeRead(uint32(sector*SectorSize+w*4), v)
		}
	}

	if err := b.BlankCheck(); err != nil {
		t.Fatalf("blank check failed: %v", err)
	}
	for i, s := range b.Sectors {
		expected := EraseStateErased
		if i == 3 {
			expected = EraseStateNotErased
		}
		if s.Erased != expected {
			t.Errorf("sector %d erase state %v, expected %v", i, s.Erased, expected)
		}
	}
	fm.Done()
}
