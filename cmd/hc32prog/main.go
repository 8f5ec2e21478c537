// Copyright 2025 the hc32prog Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// hc32prog programs the embedded flash of HC32L110 microcontrollers
// through a word-access probe bridge.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/machinebox/progress"
	"go.uber.org/zap"

	"github.com/hc32tools/hc32prog/pkg/hc32l110"
	"github.com/hc32tools/hc32prog/pkg/image"
	"github.com/hc32tools/hc32prog/pkg/logger"
	"github.com/hc32tools/hc32prog/pkg/target"
)

var (
	device  = flag.String("device", "", "probe bridge serial device, or tcp:host:port")
	baud    = flag.Int("baud", 115200, "baud rate for serial devices")
	verbose = flag.Bool("v", false, "enable debug logging")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s -device DEV [flags] COMMAND

Commands:
  probe                     report flash size and sector layout
  erase [FIRST LAST]        erase sectors [FIRST, LAST), or the whole chip
  write FILE [OFFSET]       program a raw binary image
  verify FILE [OFFSET]      compare flash against an image
  read FILE [OFFSET LEN]    dump flash to a file
  blankcheck                report which sectors are blank

Flags:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	log := logger.New(*verbose)
	defer log.Sync()

	if err := run(log, flag.Args()); err != nil {
		log.Fatal("command failed", zap.Error(err))
	}
}

func run(log *zap.Logger, args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("no command given")
	}
	if *device == "" {
		return fmt.Errorf("-device is required")
	}

	mem, err := target.Dial(*device, *baud)
	if err != nil {
		return err
	}
	defer mem.Close()

	bank := hc32l110.NewBank(mem, hc32l110.WithLogger(log))
	if err := bank.Probe(); err != nil {
		return fmt.Errorf("probe: %w", err)
	}

	switch args[0] {
	case "probe":
		return cmdProbe(bank)
	case "erase":
		return cmdErase(bank, args[1:])
	case "write":
		return cmdWrite(bank, args[1:])
	case "verify":
		return cmdVerify(bank, args[1:])
	case "read":
		return cmdRead(bank, args[1:])
	case "blankcheck":
		return cmdBlankCheck(bank)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func cmdProbe(bank *hc32l110.Bank) error {
	fmt.Printf("flash: %d KiB, %d sectors of %d bytes\n",
		bank.Size/1024, bank.NumSectors(), hc32l110.SectorSize)
	return nil
}

func cmdErase(bank *hc32l110.Bank, args []string) error {
	first, last := 0, 0 // whole chip
	if len(args) == 2 {
		f, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		l, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		first, last = f, l
	} else if len(args) != 0 {
		return fmt.Errorf("erase takes no arguments or FIRST LAST")
	}
	return bank.Erase(first, last)
}

func cmdWrite(bank *hc32l110.Bank, args []string) error {
	data, offset, err := imageArgs(args)
	if err != nil {
		return err
	}
	if uint64(offset)+uint64(len(data)) > uint64(bank.Size) {
		return fmt.Errorf("image of %d bytes does not fit at 0x%x in %d byte flash",
			len(data), offset, bank.Size)
	}

	first := int(offset / hc32l110.SectorSize)
	last := int((offset + uint32(len(data)) + hc32l110.SectorSize - 1) / hc32l110.SectorSize)
	if err := bank.Erase(first, last); err != nil {
		return err
	}

	r := progress.NewReader(bytes.NewReader(data))
	done := make(chan struct{})
	go func() {
		for p := range progress.NewTicker(context.Background(), r, int64(len(data)), 200*time.Millisecond) {
			fmt.Printf("programming: %d %%\r", int(p.Percent()))
		}
		fmt.Printf("programming: complete\n")
		close(done)
	}()

	chunk := make([]byte, hc32l110.SectorSize)
	pos := offset
	for {
		n, rerr := r.Read(chunk)
		if n > 0 {
			if err := bank.Write(chunk[:n], pos); err != nil {
				return err
			}
			pos += uint32(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}
	<-done
	return nil
}

func cmdVerify(bank *hc32l110.Bank, args []string) error {
	data, offset, err := imageArgs(args)
	if err != nil {
		return err
	}

	buf := make([]byte, len(data))
	if err := bank.Read(buf, offset); err != nil {
		return err
	}
	for i := range data {
		if buf[i] != data[i] {
			return fmt.Errorf("mismatch at 0x%x: flash %02x, image %02x",
				offset+uint32(i), buf[i], data[i])
		}
	}
	fmt.Printf("verified %d bytes at 0x%x\n", len(data), offset)
	return nil
}

func cmdRead(bank *hc32l110.Bank, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("read needs a destination file")
	}
	offset := uint32(0)
	length := bank.Size
	if len(args) >= 2 {
		v, err := parseUint32(args[1])
		if err != nil {
			return err
		}
		if v >= bank.Size {
			return fmt.Errorf("offset 0x%x past end of %d byte flash", v, bank.Size)
		}
		offset = v
		length = bank.Size - offset
	}
	if len(args) == 3 {
		v, err := parseUint32(args[2])
		if err != nil {
			return err
		}
		length = v
	}

	buf := make([]byte, length)
	if err := bank.Read(buf, offset); err != nil {
		return err
	}
	return os.WriteFile(args[0], buf, 0644)
}

func cmdBlankCheck(bank *hc32l110.Bank) error {
	if err := bank.BlankCheck(); err != nil {
		return err
	}
	blank := 0
	for _, s := range bank.Sectors {
		if s.Erased == hc32l110.EraseStateErased {
			blank++
		}
	}
	fmt.Printf("%d of %d sectors blank\n", blank, bank.NumSectors())
	return nil
}

// imageArgs loads FILE [OFFSET] and pads the image to word alignment.
func imageArgs(args []string) ([]byte, uint32, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, 0, fmt.Errorf("expected FILE [OFFSET]")
	}
	data, err := image.Load(args[0])
	if err != nil {
		return nil, 0, err
	}
	offset := uint32(0)
	if len(args) == 2 {
		offset, err = parseUint32(args[1])
		if err != nil {
			return nil, 0, err
		}
	}
	return image.Pad(data, 4), offset, nil
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
