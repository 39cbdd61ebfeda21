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

package vmcode_test

import (
	"strings"
	"testing"

	"hackvm/vmcode"
)

func parseAll(name, src string) ([]vmcode.Command, error) {
	p := vmcode.NewParser(name, strings.NewReader(src))
	var cmds []vmcode.Command
	for p.Scan() {
		cmds = append(cmds, p.Command())
	}
	return cmds, p.Err()
}

func TestParser(t *testing.T) {
	src := `
// a comment line
push constant 17
pop temp 2	// trailing comment

add
neg
label LOOP
if-goto LOOP
goto END
function Main.fibonacci 2
push argument 0
call Main.fibonacci 1
return
label END
`
	want := []vmcode.Command{
		{Kind: vmcode.KindPush, Segment: vmcode.Constant, Index: 17},
		{Kind: vmcode.KindPop, Segment: vmcode.Temp, Index: 2},
		{Kind: vmcode.KindArithmetic, Op: vmcode.Add},
		{Kind: vmcode.KindArithmetic, Op: vmcode.Neg},
		{Kind: vmcode.KindLabel, Arg: "LOOP"},
		{Kind: vmcode.KindIf, Arg: "LOOP"},
		{Kind: vmcode.KindGoto, Arg: "END"},
		{Kind: vmcode.KindFunction, Arg: "Main.fibonacci", Index: 2},
		{Kind: vmcode.KindPush, Segment: vmcode.Argument, Index: 0},
		{Kind: vmcode.KindCall, Arg: "Main.fibonacci", Index: 1},
		{Kind: vmcode.KindReturn},
		{Kind: vmcode.KindLabel, Arg: "END"},
	}
	cmds, err := parseAll("test", src)
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(cmds))
	}
	for i, c := range cmds {
		if c != want[i] {
			t.Errorf("command %d: expected %v, got %v", i, want[i], c)
		}
	}
}

func TestParser_errors(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want string
	}{
		{"frobnicate", `unknown command "frobnicate"`},
		{"push constant", "push requires a segment and an index"},
		{"add 1", "add takes no arguments"},
		{"push constant -1", `invalid index "-1"`},
		{"pop temp x", `invalid index "x"`},
		{"goto", "goto requires a label name"},
		{"return 0", "return takes no arguments"},
		{"call Sys.init", "call requires a name and a count"},
	} {
		_, err := parseAll("test", tc.src)
		if err == nil {
			t.Errorf("%q: expected error, got none", tc.src)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%q: expected error containing %q, got %q", tc.src, tc.want, err)
		}
		if !strings.Contains(err.Error(), "test:1") {
			t.Errorf("%q: error does not carry position: %q", tc.src, err)
		}
	}
}

func TestParser_errorStopsScan(t *testing.T) {
	p := vmcode.NewParser("test", strings.NewReader("bogus\npush constant 1\n"))
	if p.Scan() {
		t.Fatal("Scan succeeded on a bogus command")
	}
	if p.Err() == nil {
		t.Fatal("expected an error")
	}
	if p.Scan() {
		t.Fatal("Scan resumed after an error")
	}
}

func TestCommandString(t *testing.T) {
	for _, tc := range []struct {
		cmd  vmcode.Command
		want string
	}{
		{vmcode.Command{Kind: vmcode.KindArithmetic, Op: vmcode.Lt}, "lt"},
		{vmcode.Command{Kind: vmcode.KindPush, Segment: vmcode.Local, Index: 3}, "push local 3"},
		{vmcode.Command{Kind: vmcode.KindIf, Arg: "X"}, "if-goto X"},
		{vmcode.Command{Kind: vmcode.KindCall, Arg: "f", Index: 2}, "call f 2"},
		{vmcode.Command{Kind: vmcode.KindReturn}, "return"},
	} {
		if got := tc.cmd.String(); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}
