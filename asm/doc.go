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

// Package asm provides utility functions to assemble and disassemble Hack
// machine code.
//
// The assembler is two-pass. The first pass binds (LABEL) definitions to
// instruction addresses; the second encodes instructions, allocating any
// remaining unknown symbols as variables from address 16 up, in order of
// first use. Predefined symbols: SP, LCL, ARG, THIS, THAT, R0..R15, SCREEN
// and KBD.
//
// Supported instruction forms:
//
//	@constant	A-instruction, constant in 0..32767
//	@symbol		A-instruction, label, variable or predefined symbol
//	dest=comp;jump	C-instruction; dest and ;jump are both optional
//	(SYMBOL)	label definition, emits nothing
//
// comp is one of 0, 1, -1, D, A, M, !D, !A, !M, -D, -A, -M, D+1, A+1, M+1,
// D-1, A-1, M-1, D+A, D+M, D-A, D-M, A-D, M-D, D&A, D&M, D|A and D|M; dest
// is one of M, D, MD, A, AM, AD and AMD; jump is one of JGT, JEQ, JGE, JLT,
// JNE, JLE and JMP.
//
// Comments run from "//" to end of line. Whitespace is insignificant.
//
// Symbols are sequences of letters, digits, '_', '.', '$' and ':' that do
// not begin with a digit.
package asm
