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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"hackvm/internal/hvi"
	"hackvm/vm"
)

// Disassemble returns the assembly text of a single instruction word.
// Malformed words disassemble to "???".
func Disassemble(c vm.Cell) string {
	if c >= 0 {
		return "@" + strconv.Itoa(int(c))
	}
	u := uint16(c)
	if u&0xE000 != 0xE000 {
		return "???"
	}
	comp, ok := compNames[u>>6&0x7F]
	if !ok {
		return "???"
	}
	s := comp
	if d := destNames[u>>3&7]; d != "" {
		s = d + "=" + s
	}
	if j := jumpNames[u&7]; j != "" {
		s = s + ";" + j
	}
	return s
}

// DisassembleAll writes a disassembly of all instructions in the given slice
// to the specified io.Writer. The base argument specifies the real address of
// the first instruction (code[0]). It will return any write error.
func DisassembleAll(code []vm.Cell, base int, w io.Writer) error {
	ew := hvi.NewErrWriter(w)
	for pc, c := range code {
		fmt.Fprintf(ew, "% 6d\t%s\n", base+pc, Disassemble(c))
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
