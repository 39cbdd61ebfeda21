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
	"io"

	"github.com/pkg/errors"
	"hackvm/internal/hvi"
	"hackvm/vm"
	"hackvm/vmcode"
)

// Writer generates Hack assembly from VM commands. Create one with New; the
// zero value is not usable.
type Writer struct {
	w         *hvi.ErrWriter
	labelID   int
	unit      string
	bootstrap bool
}

// Option interface
type Option func(*Writer) error

// NoBootstrap suppresses the program prologue (SP initialization and the
// call to Sys.init). Used for single-unit programs that are executed
// directly, and by tests.
func NoBootstrap() Option {
	return func(cw *Writer) error {
		cw.bootstrap = false
		return nil
	}
}

// Unit sets the initial translation unit name, the namespace for static
// variables. The default is "Static".
func Unit(name string) Option {
	return func(cw *Writer) error {
		if name == "" {
			return errors.New("empty unit name")
		}
		cw.unit = name
		return nil
	}
}

// New returns a Writer emitting assembly to w. Unless the NoBootstrap option
// is given, the bootstrap prologue is written immediately, before any
// command.
func New(w io.Writer, opts ...Option) (*Writer, error) {
	cw := &Writer{
		w:         hvi.NewErrWriter(w),
		unit:      "Static",
		bootstrap: true,
	}
	for _, opt := range opts {
		if err := opt(cw); err != nil {
			return nil, err
		}
	}
	if cw.bootstrap {
		cw.comment("bootstrap")
		cw.emit(fmt.Sprintf("@%d", vm.StackBase), "D=A", "@SP", "M=D")
		cw.writeCall("Sys.init", 0)
	}
	return cw, cw.w.Err
}

// SetUnit switches the static variable namespace, typically between input
// files of a multi-unit program.
func (cw *Writer) SetUnit(name string) {
	cw.unit = name
}

// Err returns the first output write error encountered, if any.
func (cw *Writer) Err() error {
	return cw.w.Err
}

// WriteCommand appends the assembly fragment for cmd to the output stream.
// Translation errors (unknown operation, invalid segment, pop to constant)
// are fatal: the output stream must be considered invalid once WriteCommand
// has returned a non-nil error.
func (cw *Writer) WriteCommand(cmd vmcode.Command) error {
	if cw.w.Err != nil {
		return cw.w.Err
	}
	cw.comment(cmd.String())
	switch cmd.Kind {
	case vmcode.KindArithmetic:
		return cw.writeArithmetic(cmd.Op)
	case vmcode.KindPush:
		return cw.writePush(cmd.Segment, cmd.Index)
	case vmcode.KindPop:
		return cw.writePop(cmd.Segment, cmd.Index)
	case vmcode.KindLabel:
		cw.emit("(" + cmd.Arg + ")")
	case vmcode.KindGoto:
		cw.emit("@"+cmd.Arg, "0;JMP")
	case vmcode.KindIf:
		// the condition is popped on both branch outcomes
		cw.emit("@SP", "AM=M-1", "D=M", "@"+cmd.Arg, "D;JNE")
	case vmcode.KindFunction:
		cw.writeFunction(cmd.Arg, cmd.Index)
	case vmcode.KindCall:
		cw.writeCall(cmd.Arg, cmd.Index)
	case vmcode.KindReturn:
		cw.writeReturn()
	default:
		return errors.Errorf("unknown command kind %d", int(cmd.Kind))
	}
	return cw.w.Err
}

// nextLabel returns the next value of the synthesized label counter. Values
// are never reused within one Writer.
func (cw *Writer) nextLabel() int {
	n := cw.labelID
	cw.labelID++
	return n
}

func (cw *Writer) comment(s string) {
	io.WriteString(cw.w, "// ")
	io.WriteString(cw.w, s)
	cw.w.Write(nl)
}

var nl = []byte{'\n'}

func (cw *Writer) emit(lines ...string) {
	for _, l := range lines {
		io.WriteString(cw.w, l)
		cw.w.Write(nl)
	}
}
