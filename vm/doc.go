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

// Package vm implements a reference Hack machine.
//
// The Hack computer is the 16-bit register machine of the nand2tetris course:
// a 32K instruction ROM, a data RAM holding the general purpose registers,
// the stack and the memory-mapped screen/keyboard regions, and two visible
// registers A and D. Instructions are either A-instructions (load a 15-bit
// constant into A) or C-instructions (ALU operation with optional register
// and memory destinations and a conditional jump to the address in A).
//
// The machine is instruction-accurate but makes no attempt at being
// cycle-accurate, and the screen and keyboard regions are modeled as plain
// RAM. Its purpose is executing translated and assembled VM programs so their
// observable effects on the stack and the memory segments can be checked.
//
// Hack programs do not halt; they end in a tight loop. Run therefore stops
// with ErrStepLimit once the configured instruction budget is spent, which
// callers should treat as a normal exit.
package vm
