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

import "fmt"

// writeFunction emits the entry point of a function with nLocals local
// slots. The caller has already set LCL to the current SP; the locals are
// reserved stack cells, not zeroed, so entry only advances SP past them.
func (cw *Writer) writeFunction(name string, nLocals int) {
	cw.emit("(" + name + ")")
	if nLocals > 0 {
		cw.emit(fmt.Sprintf("@%d", nLocals), "D=A", "@SP", "M=D+M")
	}
}

// writeCall emits a call to name with nArgs arguments already on the stack.
// Exactly 5 cells are pushed before control transfers: the return address
// and the caller's LCL, ARG, THIS and THAT, in that order. ARG then moves
// down to the first argument (SP - nArgs - 5) and LCL to the current SP.
func (cw *Writer) writeCall(name string, nArgs int) {
	ret := fmt.Sprintf("$RET_%d", cw.nextLabel())
	cw.emit("@"+ret, "D=A")
	cw.emit(pushD[:]...)
	for _, reg := range [...]string{"@LCL", "@ARG", "@THIS", "@THAT"} {
		cw.emit(reg, "D=M")
		cw.emit(pushD[:]...)
	}
	cw.emit(fmt.Sprintf("@%d", nArgs+5), "D=A", "@SP", "D=M-D", "@ARG", "M=D")
	cw.emit("@SP", "D=M", "@LCL", "M=D")
	cw.emit("@"+name, "0;JMP")
	cw.emit("(" + ret + ")")
}

// writeReturn pops the current frame. The frame base (LCL) is snapshotted in
// R13 and the return address in R14 before anything is overwritten: the
// return value lands in the caller's ARG slot, SP collapses to just past it,
// then THAT, THIS, ARG and LCL are restored from the saved frame and control
// jumps to the saved return address.
func (cw *Writer) writeReturn() {
	cw.emit("@LCL", "D=M", "@R13", "M=D")
	cw.emit("@5", "A=D-A", "D=M", "@R14", "M=D")
	cw.emit(popD[:]...)
	cw.emit("@ARG", "A=M", "M=D")
	cw.emit("@ARG", "D=M+1", "@SP", "M=D")
	for _, reg := range [...]string{"@THAT", "@THIS", "@ARG", "@LCL"} {
		cw.emit("@R13", "AM=M-1", "D=M", reg, "M=D")
	}
	cw.emit("@R14", "A=M", "0;JMP")
}
