// This file is part of palmcore.
//
// palmcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// palmcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with palmcore.  If not, see <https://www.gnu.org/licenses/>.

// Command palmconsole is an interactive terminal front-end for the SD
// card SPI state machine: a developer hand-feeds a command frame or a
// data packet as hex bytes and watches the response FIFO drain byte by
// byte, without needing a host CPU attached. It is the SD card analogue
// of the teacher's debugger REPL - out of scope for correctness (the
// real correctness surface is sdcard.SDCard itself, fully covered by its
// own tests), in scope as a forcing function for that package's bit- and
// byte-level entry points.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/palmcore/logger"
	"github.com/jetsetilly/palmcore/sdcard"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "palmconsole:", err)
		os.Exit(1)
	}
}

func run() error {
	flash := make([]byte, 2*1024*1024)
	for i := range flash {
		flash[i] = byte(i)
	}

	card := sdcard.New(sdcard.CardInfo{
		ManufacturerID: 0x01,
		OEMID:          0x5344,
		ProductName:    [5]byte{'P', 'A', 'L', 'M', '0'},
	}, flash, nil)

	et, err := newEasyTerm(os.Stdin)
	if err != nil {
		// not a real terminal (e.g. piped input in a test harness); fall
		// back to line-buffered canonical mode transparently.
		et = nil
	}
	if et != nil {
		et.RawMode()
		defer et.CanonicalMode()
	}

	fmt.Println("palmconsole: type a 48-bit command as 12 hex digits, or")
	fmt.Println("  'cs0'/'cs1' to toggle chip select, 'bytes <hex...>' to")
	fmt.Println("  push whole bytes, 'quit' to exit.")

	card.SetChipSelect(false)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "quit":
			return nil
		case line == "cs0":
			card.SetChipSelect(false)
		case line == "cs1":
			card.SetChipSelect(true)
		case strings.HasPrefix(line, "bytes "):
			feedBytes(card, strings.Fields(line)[1:])
		default:
			feedHexBits(card, line)
		}
		drainResponse(card)
	}
	return scanner.Err()
}

// feedHexBits clocks a hex string into the card one bit at a time
// (MSB-first per byte), matching the bit-serial entry point SPI hardware
// actually drives.
func feedHexBits(card *sdcard.SDCard, hex string) {
	hex = strings.ReplaceAll(hex, " ", "")
	if len(hex)%2 != 0 {
		hex = "0" + hex
	}
	for i := 0; i < len(hex); i += 2 {
		b, err := strconv.ParseUint(hex[i:i+2], 16, 8)
		if err != nil {
			logger.Logf(logger.Allow, "PALMCONSOLE", "bad hex byte %q: %v", hex[i:i+2], err)
			continue
		}
		for bit := 7; bit >= 0; bit-- {
			card.ExchangeBit(byte(b)>>uint(bit)&1 != 0)
		}
	}
}

// feedBytes uses the batch fast-path entry point instead of per-bit
// clocking, exercising ExchangeXBits the way a real SPI driver's
// byte-oriented transfer call would.
func feedBytes(card *sdcard.SDCard, hexBytes []string) {
	for _, h := range hexBytes {
		v, err := strconv.ParseUint(h, 16, 8)
		if err != nil {
			logger.Logf(logger.Allow, "PALMCONSOLE", "bad hex byte %q: %v", h, err)
			continue
		}
		card.ExchangeXBits(uint32(v), 8)
	}
}

func drainResponse(card *sdcard.SDCard) {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		out := card.ExchangeXBits(0xFF, 8)
		fmt.Fprintf(&sb, "%02x ", out)
	}
	fmt.Println("response:", sb.String())
}
