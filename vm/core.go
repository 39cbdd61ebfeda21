// This file is part of hackvm - a toolchain for the Hack virtual machine
//
// Copyright 2026 The hackvm Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import "github.com/pkg/errors"

// C-instruction field masks. A Hack instruction word is either an
// A-instruction (top bit clear, the word is a 15-bit constant loaded into A)
// or a C-instruction 111a cccc ccdd djjj.
const (
	cInstrMask = 0xE000 // top three bits of a C-instruction
	compMask   = 0x0FC0 // cccccc
	compShift  = 6
	aBit       = 0x1000 // operand select: 0 = A, 1 = M

	destA = 0x0020
	destD = 0x0010
	destM = 0x0008

	jumpLT = 0x0004 // j1: jump if out < 0
	jumpEQ = 0x0002 // j2: jump if out = 0
	jumpGT = 0x0001 // j3: jump if out > 0
)

// ALU comp field values (cccccc), operand y resolved to A or M by the a bit.
const (
	compZero   = 0x2A // 101010: 0
	compOne    = 0x3F // 111111: 1
	compNegOne = 0x3A // 111010: -1
	compD      = 0x0C // 001100: D
	compY      = 0x30 // 110000: A or M
	compNotD   = 0x0D // 001101: !D
	compNotY   = 0x31 // 110001: !A or !M
	compNegD   = 0x0F // 001111: -D
	compNegY   = 0x33 // 110011: -A or -M
	compDInc   = 0x1F // 011111: D+1
	compYInc   = 0x37 // 110111: A+1 or M+1
	compDDec   = 0x0E // 001110: D-1
	compYDec   = 0x32 // 110010: A-1 or M-1
	compDAddY  = 0x02 // 000010: D+A or D+M
	compDSubY  = 0x13 // 010011: D-A or D-M
	compYSubD  = 0x07 // 000111: A-D or M-D
	compDAndY  = 0x00 // 000000: D&A or D&M
	compDOrY   = 0x15 // 010101: D|A or D|M
)

func (i *Instance) load(addr Cell) (Cell, error) {
	if addr < 0 || int(addr) >= len(i.RAM) {
		return 0, errors.Errorf("memory read out of range: address %d", addr)
	}
	return i.RAM[addr], nil
}

func (i *Instance) store(addr, v Cell) error {
	if addr < 0 || int(addr) >= len(i.RAM) {
		return errors.Errorf("memory write out of range: address %d", addr)
	}
	i.RAM[addr] = v
	return nil
}

// Step executes a single instruction. On a fault (PC or memory address out of
// range, malformed instruction word) the machine state is left at the
// faulting instruction.
func (i *Instance) Step() error {
	if i.PC < 0 || i.PC >= len(i.ROM) {
		return errors.Errorf("PC out of range: %d/%d", i.PC, len(i.ROM))
	}
	w := i.ROM[i.PC]
	i.insCount++

	if w >= 0 {
		// A-instruction
		i.A = w
		i.PC++
		return nil
	}

	u := uint16(w)
	if u&cInstrMask != cInstrMask {
		return errors.Errorf("invalid instruction word %#04x at %d", u, i.PC)
	}

	y := i.A
	if u&aBit != 0 {
		var err error
		if y, err = i.load(i.A); err != nil {
			return errors.Wrapf(err, "pc=%d", i.PC)
		}
	}

	var out Cell
	switch (u & compMask) >> compShift {
	case compZero:
		out = 0
	case compOne:
		out = 1
	case compNegOne:
		out = -1
	case compD:
		out = i.D
	case compY:
		out = y
	case compNotD:
		out = ^i.D
	case compNotY:
		out = ^y
	case compNegD:
		out = -i.D
	case compNegY:
		out = -y
	case compDInc:
		out = i.D + 1
	case compYInc:
		out = y + 1
	case compDDec:
		out = i.D - 1
	case compYDec:
		out = y - 1
	case compDAddY:
		out = i.D + y
	case compDSubY:
		out = i.D - y
	case compYSubD:
		out = y - i.D
	case compDAndY:
		out = i.D & y
	case compDOrY:
		out = i.D | y
	default:
		return errors.Errorf("invalid comp field %#04x at %d", u, i.PC)
	}

	// The memory write and the jump target both use the A register value
	// from before this instruction's own A update.
	addr := i.A
	if u&destM != 0 {
		if err := i.store(addr, out); err != nil {
			return errors.Wrapf(err, "pc=%d", i.PC)
		}
	}
	if u&destA != 0 {
		i.A = out
	}
	if u&destD != 0 {
		i.D = out
	}

	if u&jumpLT != 0 && out < 0 || u&jumpEQ != 0 && out == 0 || u&jumpGT != 0 && out > 0 {
		i.PC = int(addr)
	} else {
		i.PC++
	}
	return nil
}

// Run starts execution of the machine and keeps stepping until the PC walks
// off the end of the ROM, the step limit is reached (ErrStepLimit), or an
// instruction faults. If an error occurs, the PC will point to the
// instruction that triggered the error.
func (i *Instance) Run() error {
	i.insCount = 0
	for i.PC < len(i.ROM) {
		if i.insCount >= i.stepLimit {
			return ErrStepLimit
		}
		if err := i.Step(); err != nil {
			return err
		}
	}
	return nil
}
