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

import "hackvm/vm"

// comp field values, a bit included (a cccccc).
var compCodes = map[string]uint16{
	"0":   0x2A,
	"1":   0x3F,
	"-1":  0x3A,
	"D":   0x0C,
	"A":   0x30,
	"!D":  0x0D,
	"!A":  0x31,
	"-D":  0x0F,
	"-A":  0x33,
	"D+1": 0x1F,
	"A+1": 0x37,
	"D-1": 0x0E,
	"A-1": 0x32,
	"D+A": 0x02,
	"D-A": 0x13,
	"A-D": 0x07,
	"D&A": 0x00,
	"D|A": 0x15,
	"M":   0x70,
	"!M":  0x71,
	"-M":  0x73,
	"M+1": 0x77,
	"M-1": 0x72,
	"D+M": 0x42,
	"D-M": 0x53,
	"M-D": 0x47,
	"D&M": 0x40,
	"D|M": 0x55,
}

var destCodes = map[string]uint16{
	"":    0,
	"M":   1,
	"D":   2,
	"MD":  3,
	"A":   4,
	"AM":  5,
	"AD":  6,
	"AMD": 7,
}

var jumpCodes = map[string]uint16{
	"":    0,
	"JGT": 1,
	"JEQ": 2,
	"JGE": 3,
	"JLT": 4,
	"JNE": 5,
	"JLE": 6,
	"JMP": 7,
}

var predefined = map[string]vm.Cell{
	"SP":     vm.RegSP,
	"LCL":    vm.RegLCL,
	"ARG":    vm.RegARG,
	"THIS":   vm.RegTHIS,
	"THAT":   vm.RegTHAT,
	"SCREEN": vm.ScreenBase,
	"KBD":    vm.RegKBD,
}

var compNames map[uint16]string
var destNames [8]string
var jumpNames [8]string

func init() {
	compNames = make(map[uint16]string, len(compCodes))
	for s, c := range compCodes {
		compNames[c] = s
	}
	for s, c := range destCodes {
		destNames[c] = s
	}
	for s, c := range jumpCodes {
		jumpNames[c] = s
	}
	for i, n := range []string{
		"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7",
		"R8", "R9", "R10", "R11", "R12", "R13", "R14", "R15",
	} {
		predefined[n] = vm.Cell(i)
	}
}
