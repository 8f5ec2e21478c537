// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hc32l110

import (
	"fmt"
	"testing"

	"github.com/jmhodges/clock"
)

type op struct {
	write bool
	addr  uint32
	data  uint32
	err   error
}

// fakeMem scripts the exact sequence of register accesses a test expects,
// in order, and plays back canned read values or injected faults.
type fakeMem struct {
	t   *testing.T
	ops []op
}

func fakeMemory(t *testing.T) *fakeMem {
	return &fakeMem{t: t}
}

func opstr(o *op) string {
	k := "read"
	if o.write {
		k = "write"
	}
	return fmt.Sprintf("{%s @ %08x = %08x}", k, o.addr, o.data)
}

func (m *fakeMem) next(kind string, a uint32) op {
	if len(m.ops) == 0 {
		m.t.Fatalf("unexpected %s on %08x, no operations left", kind, a)
	}
	o := m.ops[0]
	m.ops = m.ops[1:]
	return o
}

func (m *fakeMem) ReadWord(a uint32) (uint32, error) {
	o := m.next("read", a)
	if o.write || o.addr != a {
		m.t.Errorf("expected %s, got read on %08x", opstr(&o), a)
	}
	return o.data, o.err
}

func (m *fakeMem) WriteWord(a uint32, d uint32) error {
	o := m.next("write", a)
	if !o.write || o.addr != a || (o.err == nil && o.data != d) {
		m.t.Errorf("expected %s, got write of %08x on %08x", opstr(&o), d, a)
	}
	return o.err
}

func (m *fakeMem) Close() error {
	return nil
}

func (m *fakeMem) ExpectWrite(a uint32, d uint32) {
	m.ops = append(m.ops, op{write: true, addr: a, data: d})
}

func (m *fakeMem) FakeRead(a uint32, d uint32) {
	m.ops = append(m.ops, op{write: false, addr: a, data: d})
}

func (m *fakeMem) FailWrite(a uint32, err error) {
	m.ops = append(m.ops, op{write: true, addr: a, err: err})
}

func (m *fakeMem) FailRead(a uint32, err error) {
	m.ops = append(m.ops, op{write: false, addr: a, err: err})
}

// Done checks that the script ran to completion. Operations the driver
// never issued are as much a failure as unexpected ones.
func (m *fakeMem) Done() {
	for i := range m.ops {
		m.t.Errorf("scripted operation not performed: %s", opstr(&m.ops[i]))
	}
	m.ops = nil
}

// Scripted sequences shared by the driver tests.

func (m *fakeMem) expectBypass() {
	m.ExpectWrite(0x4002002C, 0x5a5a)
	m.ExpectWrite(0x4002002C, 0xa5a5)
}

func (m *fakeMem) expectMode(op uint32) {
	m.expectBypass()
	m.ExpectWrite(0x40020020, op)
}

func (m *fakeMem) expectUnlock(mask uint32) {
	m.expectBypass()
	m.ExpectWrite(0x40020030, mask)
}

func (m *fakeMem) expectLockAll() {
	m.expectBypass()
	m.ExpectWrite(0x40020030, 0)
}

// expectBusy queues n control reads with the busy bit set.
func (m *fakeMem) expectBusy(n int) {
	for i := 0; i < n; i++ {
		m.FakeRead(0x40020020, 1<<4)
	}
}

func (m *fakeMem) expectIdle() {
	m.FakeRead(0x40020020, 0)
}

// testBank attaches a bank on a fresh script with a fake clock, so poll
// timeouts run without wall-clock sleeps.
func testBank(t *testing.T) (*Bank, *fakeMem) {
	fm := fakeMemory(t)
	b := NewBank(fm, WithClock(clock.NewFake()))
	return b, fm
}

// probedBank additionally scripts and runs a probe of the given size.
func probedBank(t *testing.T, size uint32) (*Bank, *fakeMem) {
	b, fm := testBank(t)
	fm.FakeRead(0x00100C70, size)
	if err := b.Probe(); err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	return b, fm
}
