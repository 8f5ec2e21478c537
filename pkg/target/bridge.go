// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package target

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Wire format of the probe bridge: a 4 byte ASCII opcode followed by
// little-endian operands. Every request gets a 4 byte status back, with
// the read value appended for RD32.
var (
	opcodeRead  = [4]byte{'R', 'D', '3', '2'}
	opcodeWrite = [4]byte{'W', 'R', '3', '2'}
	responseOK  = [4]byte{'O', 'K', 'O', 'K'}
	responseErr = [4]byte{'E', 'R', 'R', '!'}
)

// Bridge is a Memory that forwards single word accesses to a remote debug
// bridge over a byte stream, typically a serial port or a TCP connection.
type Bridge struct {
	rw io.ReadWriter
}

func NewBridge(rw io.ReadWriter) *Bridge {
	return &Bridge{rw: rw}
}

func (b *Bridge) ReadWord(addr uint32) (uint32, error) {
	req := make([]byte, 8)
	copy(req, opcodeRead[:])
	binary.LittleEndian.PutUint32(req[4:], addr)
	if _, err := b.rw.Write(req); err != nil {
		return 0, fmt.Errorf("bridge read 0x%08x: %w", addr, err)
	}

	resp := make([]byte, 8)
	if _, err := io.ReadFull(b.rw, resp); err != nil {
		return 0, fmt.Errorf("bridge read 0x%08x: %w", addr, err)
	}
	if err := checkStatus(resp[:4]); err != nil {
		return 0, fmt.Errorf("bridge read 0x%08x: %w", addr, err)
	}
	return binary.LittleEndian.Uint32(resp[4:]), nil
}

func (b *Bridge) WriteWord(addr uint32, value uint32) error {
	req := make([]byte, 12)
	copy(req, opcodeWrite[:])
	binary.LittleEndian.PutUint32(req[4:], addr)
	binary.LittleEndian.PutUint32(req[8:], value)
	if _, err := b.rw.Write(req); err != nil {
		return fmt.Errorf("bridge write 0x%08x: %w", addr, err)
	}

	resp := make([]byte, 4)
	if _, err := io.ReadFull(b.rw, resp); err != nil {
		return fmt.Errorf("bridge write 0x%08x: %w", addr, err)
	}
	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("bridge write 0x%08x: %w", addr, err)
	}
	return nil
}

func (b *Bridge) Close() error {
	if c, ok := b.rw.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func checkStatus(status []byte) error {
	if bytes.Equal(status, responseOK[:]) {
		return nil
	}
	if bytes.Equal(status, responseErr[:]) {
		return fmt.Errorf("bridge reported access fault")
	}
	return fmt.Errorf("garbled bridge response %q", status)
}
