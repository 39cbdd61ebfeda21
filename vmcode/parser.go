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

package vmcode

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var arithmeticOps = map[string]Op{
	"add": Add, "sub": Sub, "neg": Neg,
	"eq": Eq, "gt": Gt, "lt": Lt,
	"and": And, "or": Or, "not": Not,
}

// Parser reads VM commands from a source stream, one command per call to
// Scan, in the manner of bufio.Scanner:
//
//	p := vmcode.NewParser("Main.vm", f)
//	for p.Scan() {
//		cmd := p.Command()
//		...
//	}
//	if err := p.Err(); err != nil { ... }
type Parser struct {
	name string
	s    *bufio.Scanner
	line int
	cmd  Command
	err  error
}

// NewParser returns a Parser reading from r. The name parameter is used in
// error messages to name the source; if r is a file, name should be the file
// name.
func NewParser(name string, r io.Reader) *Parser {
	return &Parser{name: name, s: bufio.NewScanner(r)}
}

// Scan advances the parser to the next command, which will then be available
// through the Command method. It returns false when the input is exhausted or
// a parse error occurs; Err tells those two cases apart.
func (p *Parser) Scan() bool {
	if p.err != nil {
		return false
	}
	for p.s.Scan() {
		p.line++
		line := p.s.Text()
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, err := p.parse(fields)
		if err != nil {
			p.err = errors.Wrapf(err, "%s:%d", p.name, p.line)
			return false
		}
		p.cmd = cmd
		return true
	}
	if err := p.s.Err(); err != nil {
		p.err = errors.Wrapf(err, "%s: read failed", p.name)
	}
	return false
}

// Command returns the command read by the last successful call to Scan.
func (p *Parser) Command() Command {
	return p.cmd
}

// Err returns the first error encountered by the parser, nil at a clean end
// of input.
func (p *Parser) Err() error {
	return p.err
}

func (p *Parser) parse(fields []string) (Command, error) {
	word := fields[0]
	if op, ok := arithmeticOps[word]; ok {
		if len(fields) != 1 {
			return Command{}, errors.Errorf("%s takes no arguments", word)
		}
		return Command{Kind: KindArithmetic, Op: op}, nil
	}
	switch word {
	case "push", "pop":
		if len(fields) != 3 {
			return Command{}, errors.Errorf("%s requires a segment and an index", word)
		}
		index, err := parseIndex(fields[2])
		if err != nil {
			return Command{}, err
		}
		k := KindPush
		if word == "pop" {
			k = KindPop
		}
		return Command{Kind: k, Segment: Segment(fields[1]), Index: index}, nil
	case "label", "goto", "if-goto":
		if len(fields) != 2 {
			return Command{}, errors.Errorf("%s requires a label name", word)
		}
		var k Kind
		switch word {
		case "label":
			k = KindLabel
		case "goto":
			k = KindGoto
		default:
			k = KindIf
		}
		return Command{Kind: k, Arg: fields[1]}, nil
	case "function", "call":
		if len(fields) != 3 {
			return Command{}, errors.Errorf("%s requires a name and a count", word)
		}
		index, err := parseIndex(fields[2])
		if err != nil {
			return Command{}, err
		}
		k := KindFunction
		if word == "call" {
			k = KindCall
		}
		return Command{Kind: k, Arg: fields[1], Index: index}, nil
	case "return":
		if len(fields) != 1 {
			return Command{}, errors.New("return takes no arguments")
		}
		return Command{Kind: KindReturn}, nil
	}
	return Command{}, errors.Errorf("unknown command %q", word)
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.Errorf("invalid index %q: must be a non-negative integer", s)
	}
	return n, nil
}
