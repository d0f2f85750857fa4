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

package sdcard

// Normal (non-ACMD) command indices, as they appear in the six MSBs of the
// 48 bit command frame.
const (
	cmdGoIdleState        = 0
	cmdSendOpCond         = 1
	cmdSendCSD            = 9
	cmdSendCID            = 10
	cmdStopTransmission   = 12
	cmdSendStatus         = 13
	cmdSetBlocklen        = 16
	cmdReadSingleBlock    = 17
	cmdReadMultipleBlock  = 18
	cmdWriteSingleBlock   = 24
	cmdWriteMultipleBlock = 25
	cmdSendWriteProt      = 30
	cmdAppCmd             = 55
	cmdReadOCR            = 58
	cmdCrcOnOff           = 59
)

// Application-specific commands, valid only immediately following APP_CMD.
const (
	acmdSetWrBlockEraseCount = 23
	acmdSendSCR              = 51
	acmdAppSendOpCond        = 41
)

// R1 response status bits.
const (
	r1InIdleState    = 0x01
	r1IllegalCommand = 0x04
	r1CommandCRCErr  = 0x08
	r1ParameterError = 0x40
)

// Data tokens that precede or terminate a data block transfer.
const (
	dataTokenDefault = 0xFE // start of a single block, or of CMD17/CMD18 reads
	dataTokenCMD25   = 0xFC // start of a WRITE_MULTIPLE_BLOCK block
	dataTokenStopTran = 0xFD // ends a WRITE_MULTIPLE_BLOCK transfer
)

// Data response token values (the 3 status bits, framed as 0b xxx1 on the
// wire by respondDataResponse).
const (
	dataResponseAccepted   = 0b010
	dataResponseCRCError   = 0b101
	dataResponseWriteError = 0b110
)

// errorTokenOutOfRange is the lone error token this implementation ever
// raises; the SD specification reserves other bits for error conditions
// (erase, ECC, card controller) that a flash-backed card never encounters.
const errorTokenOutOfRange = 0x08

// BlockSize is the only block length SET_BLOCKLEN will accept, and the size
// of every data block this card transfers.
const BlockSize = 512

// blockDataPacketSize is a data token byte, followed by a BlockSize payload,
// followed by a two byte CRC16 trailer.
const blockDataPacketSize = 1 + BlockSize + 2
