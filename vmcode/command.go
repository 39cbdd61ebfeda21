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

// Package vmcode defines the Hack VM command set and a parser for the
// line-oriented textual VM language.
//
// A command is one line of source: an arithmetic word (add, sub, neg, eq,
// gt, lt, and, or, not), a memory access (push/pop segment index), a control
// transfer (label/goto/if-goto name), or a function protocol command
// (function name nLocals, call name nArgs, return). Comments run from "//"
// to end of line.
package vmcode

import "fmt"

// Kind discriminates the Command variants.
type Kind int

// Command kinds.
const (
	KindArithmetic Kind = iota
	KindPush
	KindPop
	KindLabel
	KindGoto
	KindIf
	KindFunction
	KindCall
	KindReturn
)

var kindNames = [...]string{
	"arithmetic", "push", "pop", "label", "goto", "if-goto",
	"function", "call", "return",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Op is an arithmetic or logical operator.
type Op string

// The nine arithmetic commands. Neg and Not are unary, the rest binary.
const (
	Add Op = "add"
	Sub Op = "sub"
	Neg Op = "neg"
	Eq  Op = "eq"
	Gt  Op = "gt"
	Lt  Op = "lt"
	And Op = "and"
	Or  Op = "or"
	Not Op = "not"
)

// Segment names a virtual memory segment.
type Segment string

// The eight segments. Constant is push-only and not memory backed.
const (
	Argument Segment = "argument"
	Local    Segment = "local"
	Static   Segment = "static"
	Constant Segment = "constant"
	This     Segment = "this"
	That     Segment = "that"
	Pointer  Segment = "pointer"
	Temp     Segment = "temp"
)

// Command is one parsed VM command. Only the fields implied by Kind are
// meaningful: Op for arithmetic, Segment and Index for push/pop, Arg for
// label/goto/if-goto/function/call names, Index for nLocals/nArgs.
type Command struct {
	Kind    Kind
	Op      Op
	Segment Segment
	Arg     string
	Index   int
}

func (c Command) String() string {
	switch c.Kind {
	case KindArithmetic:
		return string(c.Op)
	case KindPush, KindPop:
		return fmt.Sprintf("%s %s %d", c.Kind, c.Segment, c.Index)
	case KindLabel, KindGoto, KindIf:
		return fmt.Sprintf("%s %s", c.Kind, c.Arg)
	case KindFunction, KindCall:
		return fmt.Sprintf("%s %s %d", c.Kind, c.Arg, c.Index)
	case KindReturn:
		return "return"
	}
	return fmt.Sprintf("invalid command (kind %d)", int(c.Kind))
}
