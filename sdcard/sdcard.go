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

// Package sdcard simulates an SD card's SPI-mode bit-serial protocol: 48 bit
// command framing, CRC7/CRC16 checking, and single/multi block read and
// write, all driven one bit (or one aligned batch of bits) at a time.
package sdcard

import (
	"github.com/jetsetilly/palmcore/logger"
	"github.com/jetsetilly/palmcore/sdcard/bitfifo"
	"github.com/jetsetilly/palmcore/sdcard/crc7"
)

const responseFifoCapacity = BlockSize * 3

// SDCard is the state of a single SD card attached over a SPI bus.
type SDCard struct {
	info  CardInfo
	flash []byte // nil means no card is inserted
	prefs *Preferences

	chipSelect bool

	// 48 bit command frame, shifted in one bit at a time.
	command              uint64
	commandBitsRemaining int
	receivingCommand     bool

	// the command currently occupying a multi-exchange data phase, or 0.
	runningCommand       byte
	runningCommandVars   [3]uint32
	runningCommandPacket [blockDataPacketSize]byte

	responseFifo *bitfifo.FIFO

	commandIsAcmd   bool
	allowInvalidCrc bool
	inIdleState     bool
}

// New returns an SDCard. flash is the backing store the card reads and
// writes; a nil flash models an empty card slot, in which every bit
// exchange returns the SPI bus's idle high level and Reset is a no-op.
func New(info CardInfo, flash []byte, p *Preferences) *SDCard {
	if p == nil {
		p = NewPreferences()
	}
	c := &SDCard{
		info:         info,
		flash:        flash,
		prefs:        p,
		chipSelect:   true, // SPI CS is idle-high; power-on state is deselected
		responseFifo: bitfifo.New(responseFifoCapacity),
	}
	c.resetState()
	return c
}

// resetState restores every field Reset is responsible for, unconditionally.
// New uses it to establish the card's initial state regardless of whether a
// card is present; Reset only applies it when flash is non-nil, matching the
// original firmware's behaviour of leaving a disconnected slot untouched.
func (c *SDCard) resetState() {
	c.command = 0
	c.commandBitsRemaining = 48
	c.receivingCommand = false
	c.runningCommand = 0
	c.runningCommandVars = [3]uint32{}
	c.runningCommandPacket = [blockDataPacketSize]byte{}
	c.responseFifo.Flush()
	c.commandIsAcmd = false
	c.allowInvalidCrc = false
	c.inIdleState = true
}

// Reset restores the card to its power-on state. Chip select (a property of
// the wire, not the card) and CardInfo (the card's physical identity) are
// left untouched.
func (c *SDCard) Reset() {
	if c.flash == nil {
		return
	}
	c.resetState()
}

// cmdStart begins receiving a fresh 48 bit command frame.
func (c *SDCard) cmdStart() {
	c.command = 0
	c.commandBitsRemaining = 48
	c.receivingCommand = true
}

// SetChipSelect updates the chip select line. A high-to-low transition
// (value false) while a card is present starts a new command frame.
func (c *SDCard) SetChipSelect(value bool) {
	if value == c.chipSelect {
		return
	}
	if c.flash != nil && !value {
		c.cmdStart()
	}
	c.chipSelect = value
}

func b2u64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func b2u32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// ExchangeBit clocks one bit onto the card and returns the bit the card
// clocks back. Outside of an active, selected card this is simply the SPI
// bus's pulled-up idle level, true.
func (c *SDCard) ExchangeBit(bit bool) bool {
	if c.flash == nil || c.chipSelect {
		return true
	}

	outputValue := c.responseFifo.ReadBit()

	if c.runningCommand == cmdReadMultipleBlock {
		c.topOffReadBuffer()
	}

	if c.receivingCommand {
		c.receiveCommandBit(bit)
		return outputValue
	}

	return c.receiveDataBit(bit, outputValue)
}

// topOffReadBuffer keeps the response FIFO stocked with the next data block
// of an in-progress READ_MULTIPLE_BLOCK transfer.
func (c *SDCard) topOffReadBuffer() {
	if c.responseFifo.ByteEntries() >= BlockSize {
		return
	}

	c.respondDelay(1)

	addr := c.runningCommandVars[0]
	if int(addr)+BlockSize <= len(c.flash) {
		c.respondDataPacket(dataTokenDefault, c.flash[addr:addr+BlockSize])
		c.runningCommandVars[0] += BlockSize
		return
	}

	c.respondErrorToken(errorTokenOutOfRange)
	c.runningCommand = 0
}

// receiveCommandBit shifts one bit into the 48 bit command frame, validating
// the start and end bits the SPI framing fixes at 0 and 1 respectively, and
// dispatches the command once the frame is complete.
func (c *SDCard) receiveCommandBit(bit bool) {
	bitValid := true
	switch c.commandBitsRemaining - 1 {
	case 47:
		bitValid = !bit
	case 46, 0:
		bitValid = bit
	}

	if bitValid {
		c.command = c.command<<1 | b2u64(bit)
		c.commandBitsRemaining--
	} else {
		c.cmdStart()
	}

	if c.commandBitsRemaining == 0 {
		c.decodeAndDispatch()
	}
}

// decodeAndDispatch splits the completed 48 bit frame into command index,
// argument and CRC7, gates it against the idle-state command whitelist,
// checks its CRC, and dispatches it to the normal or application-specific
// command table.
func (c *SDCard) decodeAndDispatch() {
	cmd := byte(c.command>>40) & 0x3F
	arg := uint32(c.command >> 8)
	crc := byte(c.command>>1) & 0x7F

	commandWantsData := false

	doInIdleState := false
	if c.inIdleState {
		if !c.commandIsAcmd {
			switch cmd {
			case cmdGoIdleState, cmdSendOpCond, cmdAppCmd, cmdReadOCR, cmdCrcOnOff:
				doInIdleState = true
			}
		} else {
			if cmd == acmdAppSendOpCond {
				doInIdleState = true
			}
		}
	}

	switch {
	case c.inIdleState && !doInIdleState:
		logger.Logf(logger.Allow, "SDCARD", "command %d blocked while idle", cmd)
	case c.allowInvalidCrc || c.prefs.AllowInvalidCrcAlways.Get() || crc7.Command(cmd, arg) == crc:
		if !c.commandIsAcmd {
			commandWantsData = c.dispatchNormal(cmd, arg)
		} else {
			c.dispatchAcmd(cmd, arg)
			c.commandIsAcmd = false
		}
	default:
		logger.Logf(logger.Allow, "SDCARD", "command %d CRC invalid", cmd)
		c.respondR1(r1CommandCRCErr | c.idleBit())
	}

	if commandWantsData {
		c.receivingCommand = false
	} else {
		c.cmdStart()
	}
}

func (c *SDCard) dispatchNormal(cmd byte, arg uint32) (commandWantsData bool) {
	switch cmd {
	case cmdGoIdleState:
		c.inIdleState = true
		c.allowInvalidCrc = true
		c.runningCommand = 0
		c.respondR1(c.idleBit())

	case cmdSendOpCond:
		c.inIdleState = false
		c.respondR1(c.idleBit())

	case cmdReadOCR:
		c.respondR3R7(c.idleBit(), c.ocr())

	case cmdSendCSD:
		c.respondR1(c.idleBit())
		c.respondDelay(1)
		c.respondDataPacket(dataTokenDefault, c.csd())

	case cmdSendCID:
		cid := c.cid()
		if !c.allowInvalidCrc {
			signCID(cid)
		}
		c.respondR1(c.idleBit())
		c.respondDelay(1)
		c.respondDataPacket(dataTokenDefault, cid)

	case cmdSendStatus:
		c.respondR2(c.idleBit(), c.info.WriteProtectSwitch)

	case cmdSendWriteProt:
		c.respondR1(c.idleBit())
		c.respondDelay(1)
		c.respondDataPacket(dataTokenDefault, []byte{0, 0, 0, 0})

	case cmdSetBlocklen:
		status := c.idleBit()
		if arg != BlockSize {
			status |= r1ParameterError
		}
		c.respondR1(status)

	case cmdAppCmd:
		c.commandIsAcmd = true
		c.respondR1(c.idleBit())

	case cmdCrcOnOff:
		c.allowInvalidCrc = arg == 0
		c.respondR1(c.idleBit())

	case cmdStopTransmission:
		if c.runningCommand == cmdReadMultipleBlock {
			c.runningCommand = 0
			c.responseFifo.Flush()
			c.respondDelay(1)
			c.respondR1(c.idleBit())
			c.respondBusy(1)
		} else {
			c.respondR1(c.idleBit())
		}

	case cmdReadSingleBlock:
		c.respondR1(c.idleBit())
		c.respondDelay(1)
		if int(arg)+BlockSize <= len(c.flash) {
			c.respondDataPacket(dataTokenDefault, c.flash[arg:arg+BlockSize])
		} else {
			c.respondErrorToken(errorTokenOutOfRange)
		}

	case cmdReadMultipleBlock:
		c.respondR1(c.idleBit())
		c.respondDelay(1)
		if int(arg)+BlockSize <= len(c.flash) {
			c.runningCommand = cmdReadMultipleBlock
			c.runningCommandVars[0] = arg
			c.respondDataPacket(dataTokenDefault, c.flash[arg:arg+BlockSize])
			c.runningCommandVars[0] += BlockSize
		} else {
			c.respondErrorToken(errorTokenOutOfRange)
		}

	case cmdWriteSingleBlock, cmdWriteMultipleBlock:
		c.respondR1(c.idleBit())
		if int(arg)+BlockSize <= len(c.flash) {
			c.runningCommand = cmd
			c.runningCommandVars = [3]uint32{arg, 0, 0}
			c.runningCommandPacket = [blockDataPacketSize]byte{}
			commandWantsData = true
		} else {
			c.respondErrorToken(errorTokenOutOfRange)
		}

	default:
		logger.Logf(logger.Allow, "SDCARD", "unrecognised command %d", cmd)
		c.respondR1(r1IllegalCommand | c.idleBit())
	}

	return commandWantsData
}

func (c *SDCard) dispatchAcmd(cmd byte, arg uint32) {
	switch cmd {
	case acmdAppSendOpCond:
		c.inIdleState = false
		c.respondR1(c.idleBit())

	case acmdSendSCR:
		c.respondR1(c.idleBit())
		c.respondDelay(1)
		c.respondDataPacket(dataTokenDefault, c.scr())

	case acmdSetWrBlockEraseCount:
		// the erase count itself is not modelled; acknowledging is enough
		// for hosts that issue this before a multi-block write.
		c.respondR1(c.idleBit())

	default:
		logger.Logf(logger.Allow, "SDCARD", "unrecognised acmd %d", cmd)
		c.respondR1(r1IllegalCommand | c.idleBit())
	}
}

// receiveDataBit advances an in-progress data-phase transfer by one bit,
// returning the bit the card clocks back (normally outputValue unchanged,
// except for the single bit exchanged at the moment a data response byte is
// queued, which must be read back within the same exchange).
func (c *SDCard) receiveDataBit(bit bool, outputValue bool) bool {
	switch c.runningCommand {
	case cmdWriteSingleBlock, cmdWriteMultipleBlock:
		return c.receiveWriteDataBit(bit, outputValue)
	default:
		logger.Logf(logger.Allow, "SDCARD", "orphan data bit %v", bit)
		return outputValue
	}
}

func (c *SDCard) receiveWriteDataBit(bit bool, outputValue bool) bool {
	if c.runningCommandVars[2] >= blockDataPacketSize*8 {
		c.finishWriteBlock()
		// the data response byte just queued is read back within this same
		// exchange, not the next one.
		outputValue = c.responseFifo.ReadBit()

		if c.runningCommand == cmdWriteSingleBlock {
			c.runningCommand = 0
			c.cmdStart()
		} else {
			c.runningCommandVars[0] += BlockSize
			c.runningCommandVars[1] = 0
			c.runningCommandVars[2] = 0
			c.runningCommandPacket = [blockDataPacketSize]byte{}
		}
		return outputValue
	}

	if c.runningCommandVars[2] > 0 {
		idx := c.runningCommandVars[2] / 8
		bitPos := 7 - c.runningCommandVars[2]%8
		if bit {
			c.runningCommandPacket[idx] |= 1 << bitPos
		}
		c.runningCommandVars[2]++
		return outputValue
	}

	c.runningCommandVars[1] = (c.runningCommandVars[1]<<1 | b2u32(bit)) & 0xFF
	token := byte(c.runningCommandVars[1])

	switch c.runningCommand {
	case cmdWriteSingleBlock:
		if token == dataTokenDefault {
			c.runningCommandPacket[0] = dataTokenDefault
			c.runningCommandVars[2] = 8
		}
	case cmdWriteMultipleBlock:
		switch token {
		case dataTokenCMD25:
			c.runningCommandPacket[0] = dataTokenCMD25
			c.runningCommandVars[2] = 8
		case dataTokenStopTran:
			c.respondDelay(1)
			c.respondBusy(1)
			c.runningCommand = 0
			c.cmdStart()
		}
	}

	return outputValue
}

// finishWriteBlock verifies the CRC16 trailer of a completed write packet
// and either commits it to flash or queues the appropriate failure status.
func (c *SDCard) finishWriteBlock() {
	crcOK := c.allowInvalidCrc || c.prefs.AllowInvalidCrcAlways.Get() || c.checkWriteCRC()

	if !crcOK {
		c.respondDataResponse(dataResponseCRCError)
		return
	}

	addr := c.runningCommandVars[0]
	if int(addr)+BlockSize <= len(c.flash) && !c.info.WriteProtectSwitch {
		copy(c.flash[addr:addr+BlockSize], c.runningCommandPacket[1:1+BlockSize])
		c.respondDataResponse(dataResponseAccepted)
		return
	}

	c.respondDataResponse(dataResponseWriteError)
}
