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

package codegen_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"hackvm/asm"
	"hackvm/codegen"
	"hackvm/vm"
	"hackvm/vmcode"
)

// translate translates VM source and returns the generated assembly text.
func translate(t *testing.T, src string, opts ...codegen.Option) string {
	t.Helper()
	var b bytes.Buffer
	cw, err := codegen.New(&b, opts...)
	if err != nil {
		t.Fatal(err)
	}
	p := vmcode.NewParser("test", strings.NewReader(src))
	for p.Scan() {
		if err = cw.WriteCommand(p.Command()); err != nil {
			t.Fatal(err)
		}
	}
	if err = p.Err(); err != nil {
		t.Fatal(err)
	}
	return b.String()
}

// run assembles and executes generated assembly. SP is initialized to the
// stack base; init may set up further machine state before execution.
func run(t *testing.T, asmSrc string, init func(*vm.Instance)) *vm.Instance {
	t.Helper()
	rom, err := asm.Assemble("test", strings.NewReader(asmSrc))
	if err != nil {
		t.Fatal(err)
	}
	i, err := vm.New(rom, vm.StepLimit(10000))
	if err != nil {
		t.Fatal(err)
	}
	i.RAM[vm.RegSP] = vm.StackBase
	if init != nil {
		init(i)
	}
	if err = i.Run(); err != nil && err != vm.ErrStepLimit {
		t.Fatal(err)
	}
	return i
}

func runVM(t *testing.T, src string, init func(*vm.Instance)) *vm.Instance {
	t.Helper()
	return run(t, translate(t, src, codegen.NoBootstrap()), init)
}

func checkStack(i *vm.Instance, want ...vm.Cell) error {
	s := i.Stack()
	if len(s) != len(want) {
		return errors.Errorf("expected stack %v, got %v", want, s)
	}
	for n := range want {
		if s[n] != want[n] {
			return errors.Errorf("expected stack %v, got %v", want, s)
		}
	}
	return nil
}

func TestArithmetic(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want vm.Cell
	}{
		{"push constant 2\npush constant 3\nadd", 5},
		{"push constant 2\npush constant 3\nsub", -1},
		{"push constant 12\npush constant 10\nand", 8},
		{"push constant 12\npush constant 10\nor", 14},
		{"push constant 3\nneg", -3},
		{"push constant 0\nnot", -1},
		{"push constant 5\npush constant 5\neq", -1},
		{"push constant 5\npush constant 6\neq", 0},
		{"push constant 6\npush constant 5\ngt", -1},
		{"push constant 5\npush constant 6\ngt", 0},
		{"push constant 5\npush constant 6\nlt", -1},
		{"push constant 6\npush constant 5\nlt", 0},
		{"push constant 0\npush constant 3\nsub\npush constant 2\nlt", -1},
	} {
		i := runVM(t, tc.src, nil)
		if err := checkStack(i, tc.want); err != nil {
			t.Errorf("%q: %v", tc.src, err)
		}
	}
}

// stack depth deltas: -1 per binary op, 0 per unary, +1 per push, -1 per pop
func TestStackDepth(t *testing.T) {
	for _, tc := range []struct {
		src   string
		depth vm.Cell
	}{
		{"push constant 1", 1},
		{"push constant 1\npush constant 2", 2},
		{"push constant 1\npush constant 2\nadd", 1},
		{"push constant 1\npush constant 2\neq", 1},
		{"push constant 1\nneg", 1},
		{"push constant 1\nnot", 1},
		{"push constant 1\npop temp 0", 0},
	} {
		i := runVM(t, tc.src, nil)
		if sp := i.RAM[vm.RegSP]; sp != vm.StackBase+tc.depth {
			t.Errorf("%q: expected SP %d, got %d", tc.src, vm.StackBase+tc.depth, sp)
		}
	}
}

func TestComparisonLabelsUnique(t *testing.T) {
	const n = 4
	src := strings.Repeat("push constant 1\npush constant 2\neq\npop temp 0\n", n)
	out := translate(t, src, codegen.NoBootstrap())
	seen := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "($") {
			if seen[line] {
				t.Fatalf("duplicate synthesized label %s", line)
			}
			seen[line] = true
		}
	}
	if len(seen) != 2*n {
		t.Errorf("expected %d distinct synthesized labels, got %d", 2*n, len(seen))
	}
}

func TestPushPopTemp(t *testing.T) {
	i := runVM(t, "push constant 17\npop temp 2", nil)
	if i.RAM[vm.TempBase+2] != 17 {
		t.Errorf("expected temp 2 = 17, got %d", i.RAM[vm.TempBase+2])
	}
	if sp := i.RAM[vm.RegSP]; sp != vm.StackBase {
		t.Errorf("expected SP restored to %d, got %d", vm.StackBase, sp)
	}
}

func TestSegments(t *testing.T) {
	bases := func(i *vm.Instance) {
		i.RAM[vm.RegLCL] = 300
		i.RAM[vm.RegARG] = 310
		i.RAM[vm.RegTHIS] = 320
		i.RAM[vm.RegTHAT] = 330
	}

	// double indirection through the segment base registers
	i := runVM(t, "push constant 9\npop local 3", bases)
	if i.RAM[303] != 9 {
		t.Errorf("expected local 3 at RAM[303] = 9, got %d", i.RAM[303])
	}
	i = runVM(t, "push argument 1", func(i *vm.Instance) {
		bases(i)
		i.RAM[311] = 42
	})
	if err := checkStack(i, 42); err != nil {
		t.Error(err)
	}

	// segment bases survive push/pop
	i = runVM(t, "push constant 1\npop that 0\npush this 2", func(i *vm.Instance) {
		bases(i)
		i.RAM[322] = 11
	})
	if err := checkStack(i, 11); err != nil {
		t.Error(err)
	}
	if i.RAM[330] != 1 {
		t.Errorf("expected that 0 at RAM[330] = 1, got %d", i.RAM[330])
	}
	for r, want := range map[int]vm.Cell{vm.RegLCL: 300, vm.RegARG: 310, vm.RegTHIS: 320, vm.RegTHAT: 330} {
		if i.RAM[r] != want {
			t.Errorf("segment base RAM[%d] clobbered: expected %d, got %d", r, want, i.RAM[r])
		}
	}

	// pointer aliases THIS/THAT
	i = runVM(t, "push constant 8\npop pointer 0\npush constant 3\npop pointer 1", nil)
	if i.RAM[vm.RegTHIS] != 8 || i.RAM[vm.RegTHAT] != 3 {
		t.Errorf("expected THIS/THAT = 8/3, got %d/%d", i.RAM[vm.RegTHIS], i.RAM[vm.RegTHAT])
	}

	// temp is a fixed block at TempBase
	i = runVM(t, "push temp 7", func(i *vm.Instance) {
		i.RAM[vm.TempBase+7] = 3
	})
	if err := checkStack(i, 3); err != nil {
		t.Error(err)
	}
}

func TestStaticUnits(t *testing.T) {
	var b bytes.Buffer
	cw, err := codegen.New(&b, codegen.NoBootstrap())
	if err != nil {
		t.Fatal(err)
	}
	write := func(unit, src string) {
		cw.SetUnit(unit)
		p := vmcode.NewParser(unit, strings.NewReader(src))
		for p.Scan() {
			if err := cw.WriteCommand(p.Command()); err != nil {
				t.Fatal(err)
			}
		}
		if err := p.Err(); err != nil {
			t.Fatal(err)
		}
	}
	write("Foo", "push constant 5\npop static 0\n")
	write("Bar", "push constant 9\npop static 0\npush static 0\n")

	out := b.String()
	if !strings.Contains(out, "@Foo.0") || !strings.Contains(out, "@Bar.0") {
		t.Fatalf("statics not namespaced per unit:\n%s", out)
	}

	i := run(t, out, nil)
	// variables allocate in order of first use, from VarBase up
	if i.RAM[vm.VarBase] != 5 {
		t.Errorf("expected Foo.0 = 5, got %d", i.RAM[vm.VarBase])
	}
	if i.RAM[vm.VarBase+1] != 9 {
		t.Errorf("expected Bar.0 = 9, got %d", i.RAM[vm.VarBase+1])
	}
	if err := checkStack(i, 9); err != nil {
		t.Error(err)
	}
}

func TestControlFlow(t *testing.T) {
	i := runVM(t, `
goto SKIP
push constant 1
label SKIP
push constant 2
`, nil)
	if err := checkStack(i, 2); err != nil {
		t.Error(err)
	}

	// if-goto pops its condition on the taken branch...
	i = runVM(t, `
push constant 1
if-goto OUT
push constant 9
label OUT
`, nil)
	if err := checkStack(i); err != nil {
		t.Error(err)
	}
	// ... and on the fall-through too
	i = runVM(t, `
push constant 0
if-goto OUT
push constant 9
label OUT
`, nil)
	if err := checkStack(i, 9); err != nil {
		t.Error(err)
	}
}

func TestFunctionReservesLocals(t *testing.T) {
	i := runVM(t, "function f 2", nil)
	if sp := i.RAM[vm.RegSP]; sp != vm.StackBase+2 {
		t.Errorf("expected SP advanced past 2 locals to %d, got %d", vm.StackBase+2, sp)
	}
}

// Full call/return round trip with the bootstrap prologue: Sys.init calls
// Calc.add with two arguments; the callee works through its argument and
// local segments and returns a single value.
func TestCallReturn(t *testing.T) {
	src := `
function Sys.init 0
push constant 7
push constant 8
call Calc.add 2
label HALT
goto HALT

function Calc.add 1
push argument 0
push argument 1
add
pop local 0
push local 0
return
`
	out := translate(t, src)
	rom, err := asm.Assemble("test", strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	i, err := vm.New(rom, vm.StepLimit(10000))
	if err != nil {
		t.Fatal(err)
	}
	if err = i.Run(); err != vm.ErrStepLimit {
		t.Fatalf("expected the halt loop, got %v", err)
	}

	// bootstrap call frame: 5 cells pushed, so Sys.init runs with
	// LCL=261, ARG=256. After the inner call returns, its whole frame
	// has collapsed to the single return value.
	if sp := i.RAM[vm.RegSP]; sp != 262 {
		t.Errorf("expected SP = 262, got %d", sp)
	}
	if v := i.RAM[261]; v != 15 {
		t.Errorf("expected return value 15 on top of stack, got %d", v)
	}
	if lcl := i.RAM[vm.RegLCL]; lcl != 261 {
		t.Errorf("expected caller LCL restored to 261, got %d", lcl)
	}
	if arg := i.RAM[vm.RegARG]; arg != 256 {
		t.Errorf("expected caller ARG restored to 256, got %d", arg)
	}
}

// call frame geometry, observed from inside the callee
func TestCallFrame(t *testing.T) {
	src := `
function Sys.init 0
push constant 7
push constant 8
call Probe.f 2
label HALT
goto HALT

function Probe.f 1
push argument 0
pop temp 0
label SPIN
goto SPIN
`
	i := run(t, translate(t, src), nil)

	// Sys.init frame: LCL=261; 7 and 8 at 261,262; Probe.f frame pushed
	// at 263..267, its locals start at 268.
	if arg := i.RAM[vm.RegARG]; arg != 261 {
		t.Errorf("expected callee ARG = 261 (first argument), got %d", arg)
	}
	if lcl := i.RAM[vm.RegLCL]; lcl != 268 {
		t.Errorf("expected callee LCL = 268, got %d", lcl)
	}
	if v := i.RAM[vm.TempBase]; v != 7 {
		t.Errorf("expected argument 0 = 7, got %d", v)
	}
	// return address, then saved LCL, ARG, THIS, THAT
	if ra := i.RAM[263]; ra <= 0 || int(ra) >= len(i.ROM) {
		t.Errorf("saved return address %d not a ROM address", ra)
	}
	if saved := i.RAM[264]; saved != 261 {
		t.Errorf("expected saved LCL = 261, got %d", saved)
	}
	if saved := i.RAM[265]; saved != 256 {
		t.Errorf("expected saved ARG = 256, got %d", saved)
	}
}

func TestBootstrap(t *testing.T) {
	out := translate(t, "")
	lines := strings.Split(out, "\n")
	if len(lines) < 5 || lines[0] != "// bootstrap" {
		t.Fatalf("missing bootstrap prologue:\n%s", out)
	}
	for n, want := range []string{"@256", "D=A", "@SP", "M=D"} {
		if lines[n+1] != want {
			t.Errorf("prologue line %d: expected %q, got %q", n+1, want, lines[n+1])
		}
	}
	// the first control transfer goes to Sys.init
	jmp := strings.Index(out, "0;JMP")
	if jmp < 0 || !strings.HasSuffix(out[:jmp], "@Sys.init\n") {
		t.Errorf("expected the first jump to target Sys.init:\n%s", out)
	}

	out = translate(t, "", codegen.NoBootstrap())
	if out != "" {
		t.Errorf("expected empty output with NoBootstrap, got:\n%s", out)
	}
}

func TestErrors(t *testing.T) {
	for _, tc := range []struct {
		cmd  vmcode.Command
		want string
	}{
		{vmcode.Command{Kind: vmcode.KindPop, Segment: vmcode.Constant, Index: 1}, "cannot pop to constant"},
		{vmcode.Command{Kind: vmcode.KindArithmetic, Op: "mul"}, "unknown arithmetic instruction"},
		{vmcode.Command{Kind: vmcode.KindPush, Segment: "heap", Index: 0}, "invalid segment"},
		{vmcode.Command{Kind: vmcode.KindPop, Segment: "heap", Index: 0}, "invalid segment"},
		{vmcode.Command{Kind: vmcode.KindPush, Segment: vmcode.Pointer, Index: 2}, "pointer index"},
		{vmcode.Command{Kind: vmcode.Kind(42)}, "unknown command kind"},
	} {
		var b bytes.Buffer
		cw, err := codegen.New(&b, codegen.NoBootstrap())
		if err != nil {
			t.Fatal(err)
		}
		err = cw.WriteCommand(tc.cmd)
		if err == nil {
			t.Errorf("%v: expected error, got none", tc.cmd)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%v: expected error containing %q, got %q", tc.cmd, tc.want, err)
		}
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteErrorLatches(t *testing.T) {
	if _, err := codegen.New(failWriter{}); err == nil {
		t.Error("expected bootstrap write failure from New")
	}

	cw, err := codegen.New(failWriter{}, codegen.NoBootstrap())
	if err != nil {
		t.Fatal(err)
	}
	cmd := vmcode.Command{Kind: vmcode.KindPush, Segment: vmcode.Constant, Index: 1}
	if err = cw.WriteCommand(cmd); err == nil {
		t.Fatal("expected write error")
	}
	if err2 := cw.WriteCommand(cmd); err2 == nil || err2.Error() != err.Error() {
		t.Errorf("expected the first error again, got %v", err2)
	}
	if cw.Err() == nil {
		t.Error("Err did not report the write error")
	}
}

func TestOptions(t *testing.T) {
	if _, err := codegen.New(&bytes.Buffer{}, codegen.Unit("")); err == nil {
		t.Error("expected error for empty unit name")
	}
}
