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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"hackvm/vm"
)

// Error describes a single assembly error with its source position.
type Error struct {
	File string
	Line int
	Msg  string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// ErrAsm is the error type returned by Assemble: a list holding up to 10
// accumulated assembly errors.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

const maxErrors = 10

type sourceLine struct {
	line int
	text string
}

type parser struct {
	name    string
	symbols map[string]vm.Cell
	nextVar vm.Cell
	errs    ErrAsm
}

func newParser(name string) *parser {
	p := &parser{
		name:    name,
		symbols: make(map[string]vm.Cell, len(predefined)+16),
		nextVar: vm.VarBase,
	}
	for s, v := range predefined {
		p.symbols[s] = v
	}
	return p
}

func (p *parser) errorf(line int, format string, args ...interface{}) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, Error{p.name, line, fmt.Sprintf(format, args...)})
	}
}

// clean strips the comment and all whitespace from a source line.
func clean(s string) string {
	if i := strings.Index(s, "//"); i >= 0 {
		s = s[:i]
	}
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\r' {
			return -1
		}
		return r
	}, s)
}

func validSymbol(s string) bool {
	if s == "" || s[0] >= '0' && s[0] <= '9' {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '.', r == '$', r == ':':
		default:
			return false
		}
	}
	return true
}

// Assemble assembles Hack assembly read from the supplied io.Reader and
// returns the resulting instruction words.
//
// The name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) ([]vm.Cell, error) {
	p := newParser(name)

	var src []sourceLine
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		if t := clean(s.Text()); t != "" {
			src = append(src, sourceLine{n, t})
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "Assemble")
	}

	// first pass: bind labels to instruction addresses
	pc := 0
	for _, l := range src {
		t := l.text
		if t[0] != '(' {
			pc++
			continue
		}
		if t[len(t)-1] != ')' {
			p.errorf(l.line, "malformed label %q", t)
			continue
		}
		n := t[1 : len(t)-1]
		if !validSymbol(n) {
			p.errorf(l.line, "invalid label name %q", n)
			continue
		}
		if _, ok := p.symbols[n]; ok {
			p.errorf(l.line, "label redefinition: %s", n)
			continue
		}
		if pc >= vm.ROMSize {
			p.errorf(l.line, "label %s outside ROM", n)
			continue
		}
		p.symbols[n] = vm.Cell(pc)
	}

	// second pass: encode
	code := make([]vm.Cell, 0, pc)
	for _, l := range src {
		t := l.text
		switch t[0] {
		case '(':
			// label, emits nothing
		case '@':
			code = append(code, p.aInstruction(l))
		default:
			code = append(code, p.cInstruction(l))
		}
	}

	if p.errs != nil {
		return nil, p.errs
	}
	return code, nil
}

func (p *parser) aInstruction(l sourceLine) vm.Cell {
	t := l.text[1:]
	if t == "" {
		p.errorf(l.line, "empty A-instruction")
		return 0
	}
	if t[0] >= '0' && t[0] <= '9' {
		n, err := strconv.ParseUint(t, 10, 16)
		if err != nil || n >= vm.ROMSize {
			p.errorf(l.line, "invalid constant %q: must be 0..32767", t)
			return 0
		}
		return vm.Cell(n)
	}
	if !validSymbol(t) {
		p.errorf(l.line, "invalid symbol %q", t)
		return 0
	}
	v, ok := p.symbols[t]
	if !ok {
		// new variable
		if p.nextVar >= vm.StackBase {
			p.errorf(l.line, "out of variable space at %s", t)
			return 0
		}
		v = p.nextVar
		p.nextVar++
		p.symbols[t] = v
	}
	return v
}

func (p *parser) cInstruction(l sourceLine) vm.Cell {
	t := l.text
	var dest, jump string
	if i := strings.IndexByte(t, '='); i >= 0 {
		dest, t = t[:i], t[i+1:]
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t, jump = t[:i], t[i+1:]
	}
	d, ok := destCodes[dest]
	if !ok {
		p.errorf(l.line, "invalid dest %q", dest)
	}
	c, ok := compCodes[t]
	if !ok {
		p.errorf(l.line, "invalid comp %q", t)
	}
	j, ok := jumpCodes[jump]
	if !ok {
		p.errorf(l.line, "invalid jump %q", jump)
	}
	return vm.Cell(0xE000 | c<<6 | d<<3 | j)
}
