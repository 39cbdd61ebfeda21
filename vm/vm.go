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

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Cell is the raw type stored in a register or memory location.
type Cell int16

// Well-known RAM addresses of the Hack memory map.
const (
	RegSP      = 0 // stack pointer, one past top-of-stack
	RegLCL     = 1 // local segment base
	RegARG     = 2 // argument segment base
	RegTHIS    = 3 // this segment base (pointer 0)
	RegTHAT    = 4 // that segment base (pointer 1)
	TempBase   = 5 // temp segment, 8 cells (R5..R12)
	RegR13     = 13
	RegR14     = 14
	RegR15     = 15
	VarBase    = 16 // first assembler-allocated variable
	StackBase  = 256
	ScreenBase = 16384
	RegKBD     = 24576

	// MemSize is the default RAM size: 16K general purpose RAM, the
	// memory-mapped screen, and the keyboard word.
	MemSize = RegKBD + 1

	// ROMSize is the maximum instruction memory size.
	ROMSize = 1 << 15
)

// ErrStepLimit is returned by Run when the configured step limit is reached.
// Hack programs end in a tight loop rather than halting, so hitting the limit
// is the normal exit condition in most use cases.
var ErrStepLimit = errors.New("step limit reached")

// Instance represents a Hack machine instance.
type Instance struct {
	PC  int    // Program Counter
	A   Cell   // address register
	D   Cell   // data register
	ROM []Cell // instruction memory
	RAM []Cell // data memory

	insCount  int64
	stepLimit int64
}

// Option interface
type Option func(*Instance) error

// RAMSize sets the data memory size in cells. The default is MemSize. It will
// not erase memory, but data may be lost if set to a smaller size.
func RAMSize(size int) Option {
	return func(i *Instance) error {
		if size < StackBase {
			return errors.Errorf("RAM size %d too small for a stack", size)
		}
		if size <= len(i.RAM) {
			i.RAM = i.RAM[:size]
		} else {
			t := make([]Cell, size)
			copy(t, i.RAM)
			i.RAM = t
		}
		return nil
	}
}

// StepLimit caps the number of instructions a single Run call may execute.
// The default is 1<<24.
func StepLimit(n int64) Option {
	return func(i *Instance) error {
		if n <= 0 {
			return errors.Errorf("invalid step limit %d", n)
		}
		i.stepLimit = n
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Hack machine instance executing the given instruction
// memory. The ROM is used as-is, not copied. Options will be set by calling
// SetOptions.
func New(rom []Cell, opts ...Option) (*Instance, error) {
	if len(rom) > ROMSize {
		return nil, errors.Errorf("program too large: %d instructions, ROM holds %d", len(rom), ROMSize)
	}
	i := &Instance{
		ROM:       rom,
		RAM:       make([]Cell, MemSize),
		stepLimit: 1 << 24,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Stack returns the active stack region RAM[StackBase:SP]. Note that value
// changes will be reflected in the instance's memory, but re-slicing will not
// affect it. Returns nil if SP does not point into the stack region.
func (i *Instance) Stack() []Cell {
	sp := int(i.RAM[RegSP])
	if sp < StackBase || sp > len(i.RAM) {
		return nil
	}
	return i.RAM[StackBase:sp]
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.err = err
	}
	return n, err
}

func (w *errWriter) dumpSlice(a []Cell) error {
	l := len(a) - 1
	if l >= 0 {
		for i := 0; i < l; i++ {
			io.WriteString(w, strconv.Itoa(int(a[i])))
			w.Write([]byte{' '})
		}
		io.WriteString(w, strconv.Itoa(int(a[l])))
	}
	return w.err
}

// Dump dumps the machine registers, segment pointers and active stack to the
// specified io.Writer.
func (i *Instance) Dump(w io.Writer) error {
	ew := &errWriter{w: w}
	fmt.Fprintf(ew, "PC: %d A: %d D: %d\n", i.PC, i.A, i.D)
	fmt.Fprintf(ew, "SP: %d LCL: %d ARG: %d THIS: %d THAT: %d\n",
		i.RAM[RegSP], i.RAM[RegLCL], i.RAM[RegARG], i.RAM[RegTHIS], i.RAM[RegTHAT])
	io.WriteString(ew, "Stack: ")
	ew.dumpSlice(i.Stack())
	ew.Write([]byte{'\n'})
	return ew.err
}
