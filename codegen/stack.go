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

package codegen

import (
	"fmt"

	"github.com/pkg/errors"
	"hackvm/vm"
	"hackvm/vmcode"
)

// segReg maps the indirect segments to their base register symbol. The other
// segments resolve to fixed addresses: temp to vm.TempBase+i, pointer to
// THIS/THAT, static to a per-unit assembler variable.
var segReg = map[vmcode.Segment]string{
	vmcode.Local:    "LCL",
	vmcode.Argument: "ARG",
	vmcode.This:     "THIS",
	vmcode.That:     "THAT",
}

// binaryALU maps the binary operators to the ALU line combining the popped
// right operand in D with the new top-of-stack in place.
var binaryALU = map[vmcode.Op]string{
	vmcode.Add: "M=D+M",
	vmcode.Sub: "M=M-D",
	vmcode.And: "M=D&M",
	vmcode.Or:  "M=D|M",
}

var compareJump = map[vmcode.Op]string{
	vmcode.Eq: "JEQ",
	vmcode.Gt: "JGT",
	vmcode.Lt: "JLT",
}

// pushD appends the value in D to the stack: *SP = D; SP++.
var pushD = [...]string{"@SP", "A=M", "M=D", "@SP", "M=M+1"}

// popD removes the top stack value into D: SP--; D = *SP.
var popD = [...]string{"@SP", "AM=M-1", "D=M"}

func (cw *Writer) writeArithmetic(op vmcode.Op) error {
	switch op {
	case vmcode.Add, vmcode.Sub, vmcode.And, vmcode.Or:
		cw.emit("@SP", "AM=M-1", "D=M", "A=A-1", binaryALU[op])
	case vmcode.Neg:
		cw.emit("@SP", "A=M-1", "M=-M")
	case vmcode.Not:
		cw.emit("@SP", "A=M-1", "M=!M")
	case vmcode.Eq, vmcode.Gt, vmcode.Lt:
		// Pop both operands, branch on their difference, write -1 (true)
		// or 0 (false) to the new top-of-stack.
		n := cw.nextLabel()
		lblTrue := fmt.Sprintf("$TRUE_%d", n)
		lblEnd := fmt.Sprintf("$END_%d", n)
		cw.emit("@SP", "AM=M-1", "D=M", "A=A-1", "D=M-D")
		cw.emit("@"+lblTrue, "D;"+compareJump[op])
		cw.emit("@SP", "A=M-1", "M=0")
		cw.emit("@"+lblEnd, "0;JMP")
		cw.emit("("+lblTrue+")", "@SP", "A=M-1", "M=-1")
		cw.emit("(" + lblEnd + ")")
	default:
		return errors.Errorf("unknown arithmetic instruction %q", string(op))
	}
	return cw.w.Err
}

func (cw *Writer) writePush(seg vmcode.Segment, index int) error {
	switch seg {
	case vmcode.Constant:
		cw.emit(fmt.Sprintf("@%d", index), "D=A")
	case vmcode.Local, vmcode.Argument, vmcode.This, vmcode.That:
		cw.emit("@"+segReg[seg], "D=M", fmt.Sprintf("@%d", index), "A=D+A", "D=M")
	case vmcode.Temp:
		cw.emit(fmt.Sprintf("@%d", vm.TempBase+index), "D=M")
	case vmcode.Pointer:
		sym, err := pointerSym(index)
		if err != nil {
			return err
		}
		cw.emit("@"+sym, "D=M")
	case vmcode.Static:
		cw.emit(fmt.Sprintf("@%s.%d", cw.unit, index), "D=M")
	default:
		return errors.Errorf("invalid segment %q", string(seg))
	}
	cw.emit(pushD[:]...)
	return cw.w.Err
}

func (cw *Writer) writePop(seg vmcode.Segment, index int) error {
	switch seg {
	case vmcode.Constant:
		return errors.New("cannot pop to constant")
	case vmcode.Local, vmcode.Argument, vmcode.This, vmcode.That:
		// resolve the target address first and park it in R13, the popped
		// value transits through D
		cw.emit("@"+segReg[seg], "D=M", fmt.Sprintf("@%d", index), "D=D+A", "@R13", "M=D")
		cw.emit(popD[:]...)
		cw.emit("@R13", "A=M", "M=D")
	case vmcode.Temp:
		cw.emit(popD[:]...)
		cw.emit(fmt.Sprintf("@%d", vm.TempBase+index), "M=D")
	case vmcode.Pointer:
		sym, err := pointerSym(index)
		if err != nil {
			return err
		}
		cw.emit(popD[:]...)
		cw.emit("@"+sym, "M=D")
	case vmcode.Static:
		cw.emit(popD[:]...)
		cw.emit(fmt.Sprintf("@%s.%d", cw.unit, index), "M=D")
	default:
		return errors.Errorf("invalid segment %q", string(seg))
	}
	return cw.w.Err
}

// pointer is a two-cell alias of the THIS/THAT registers, not a memory bank.
func pointerSym(index int) (string, error) {
	switch index {
	case 0:
		return "THIS", nil
	case 1:
		return "THAT", nil
	}
	return "", errors.Errorf("pointer index %d out of range: must be 0 or 1", index)
}
