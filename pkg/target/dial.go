// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package target

import (
	"fmt"
	"net"
	"strings"

	"github.com/tarm/serial"
)

// Dial connects to a probe bridge. A device of the form "tcp:host:port"
// opens a TCP connection (useful against simulators and networked
// bridges); anything else is treated as a serial device path.
func Dial(device string, baud int) (Memory, error) {
	if strings.HasPrefix(device, "tcp:") {
		conn, err := net.Dial("tcp", strings.TrimPrefix(device, "tcp:"))
		if err != nil {
			return nil, fmt.Errorf("dialing bridge: %w", err)
		}
		return NewBridge(conn), nil
	}

	s, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", device, err)
	}
	return NewBridge(s), nil
}
