// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hc32l110

import (
	"errors"
	"testing"
)

func TestProbeSizeRange(t *testing.T) {
	cases := []struct {
		size uint32
		ok   bool
	}{
		{0, false},
		{4095, false},
		{32769, false},
		{0xffffffff, false},
		{4096, true},
		{16384, true},
		{32768, true},
	}
	for _, c := range cases {
		b, fm := testBank(t)
		fm.FakeRead(0x00100C70, c.size)
		err := b.Probe()
		if c.ok && err != nil {
			t.Errorf("probe with size %d failed: %v", c.size, err)
		}
		if !c.ok {
			var sre *SizeRangeError
			if !errors.As(err, &sre) {
				t.Errorf("probe with size %d: expected SizeRangeError, got %v", c.size, err)
			}
		}
		fm.Done()
	}
}

func TestProbeBuildsSectorTable(t *testing.T) {
	b, _ := probedBank(t, 16384)

	if b.Size != 16384 {
		t.Errorf("bank size %d, expected 16384", b.Size)
	}
	if b.NumSectors() != 32 {
		t.Fatalf("got %d sectors, expected 32", b.NumSectors())
	}
	for i, s := range b.Sectors {
		if s.Offset != uint32(i)*512 || s.Size != 512 {
			t.Errorf("sector %d = {offset %d, size %d}, expected {%d, 512}", i, s.Offset, s.Size, i*512)
		}
		if s.Erased != EraseStateUnknown || s.Protected {
			t.Errorf("sector %d not initialized as unknown/unprotected", i)
		}
	}
}

func TestReprobeOverwritesGeometry(t *testing.T) {
	b, fm := probedBank(t, 32768)
	b.Sectors[0].Erased = EraseStateErased

	fm.FakeRead(0x00100C70, 4096)
	if err := b.Probe(); err != nil {
		t.Fatalf("re-probe failed: %v", err)
	}
	if b.Size != 4096 || b.NumSectors() != 8 {
		t.Errorf("re-probe left size %d with %d sectors", b.Size, b.NumSectors())
	}
	if b.Sectors[0].Erased != EraseStateUnknown {
		t.Error("re-probe kept stale sector state")
	}
	fm.Done()
}

func TestProbeTransportError(t *testing.T) {
	b, fm := testBank(t)
	broken := errors.New("probe detached")
	fm.FailRead(0x00100C70, broken)
	if err := b.Probe(); !errors.Is(err, broken) {
		t.Fatalf("expected transport error, got %v", err)
	}
	fm.Done()
}
