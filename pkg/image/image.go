// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package image loads raw firmware images for flashing.
package image

import (
	"fmt"

	"github.com/spf13/afero"
)

// Load reads a raw binary image from disk.
func Load(path string) ([]byte, error) {
	return load(afero.NewOsFs(), path)
}

func load(fs afero.Fs, path string) ([]byte, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	return b, nil
}

// Pad extends data with 0xFF, the erased-flash value, up to a multiple of
// align. Chunked programming then never pulls bits low past the image end.
func Pad(data []byte, align uint32) []byte {
	rem := uint32(len(data)) % align
	if rem == 0 {
		return data
	}
	padded := make([]byte, uint32(len(data))+align-rem)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = 0xFF
	}
	return padded
}
