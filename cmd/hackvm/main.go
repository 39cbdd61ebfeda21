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

package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"hackvm/asm"
	"hackvm/codegen"
	"hackvm/vm"
	"hackvm/vmcode"
)

var (
	debug       bool
	noBootstrap bool
	outFileName string
	imgFileName string
	runSteps    int64
	interactive bool
)

func atExit(err error) {
	if err == nil {
		return
	}
	if debug {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(1)
}

// vmFiles returns the VM source files for path: the file itself, or all .vm
// files of a directory in name order.
func vmFiles(path string) ([]string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !st.IsDir() {
		if filepath.Ext(path) != ".vm" {
			return nil, errors.Errorf("%s: not a .vm file", path)
		}
		return []string{path}, nil
	}
	ents, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".vm" {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, errors.Errorf("%s: no .vm files", path)
	}
	sort.Strings(files)
	return files, nil
}

// outputName derives the .asm output path: Foo.vm -> Foo.asm for a file,
// dir -> dir/dir.asm for a directory.
func outputName(path string, isDir bool) string {
	if isDir {
		base := filepath.Base(filepath.Clean(path))
		return filepath.Join(path, base+".asm")
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".asm"
}

func translateUnit(cw *codegen.Writer, fileName string) error {
	f, err := os.Open(fileName)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	cw.SetUnit(codegen.UnitName(fileName))
	p := vmcode.NewParser(fileName, f)
	var cmds []vmcode.Command
	for p.Scan() {
		cmd := p.Command()
		if debug {
			cmds = append(cmds, cmd)
		}
		if err = cw.WriteCommand(cmd); err != nil {
			return errors.Wrap(err, fileName)
		}
	}
	if debug {
		fmt.Fprintf(os.Stderr, "%s:\n", fileName)
		spew.Fdump(os.Stderr, cmds)
	}
	return p.Err()
}

func translate(files []string, out *bytes.Buffer) error {
	var opts []codegen.Option
	if noBootstrap {
		opts = append(opts, codegen.NoBootstrap())
	}
	cw, err := codegen.New(out, opts...)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err = translateUnit(cw, f); err != nil {
			return err
		}
	}
	return cw.Err()
}

func execute(name string, src []byte) error {
	if imgFileName == "" && runSteps <= 0 && !interactive {
		return nil
	}
	rom, err := asm.Assemble(name, bytes.NewReader(src))
	if err != nil {
		return err
	}
	if imgFileName != "" {
		if err = vm.Save(imgFileName, rom); err != nil {
			return err
		}
	}
	if runSteps <= 0 && !interactive {
		return nil
	}
	opts := []vm.Option{}
	if runSteps > 0 {
		opts = append(opts, vm.StepLimit(runSteps))
	}
	i, err := vm.New(rom, opts...)
	if err != nil {
		return err
	}
	if interactive {
		return repl(i)
	}
	if err = i.Run(); err != nil && err != vm.ErrStepLimit {
		return err
	}
	return i.Dump(os.Stdout)
}

func main() {
	flag.StringVar(&outFileName, "o", "", "write assembly to `filename` instead of the derived name")
	flag.StringVar(&imgFileName, "img", "", "assemble the output and save the .hack image to `filename`")
	flag.BoolVar(&noBootstrap, "nobootstrap", false, "don't emit the SP init / Sys.init prologue")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics, dump the parsed command stream")
	flag.Int64Var(&runSteps, "run", 0, "assemble the output and run up to `n` machine steps, then dump state")
	flag.BoolVar(&interactive, "i", false, "assemble the output and step it interactively")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file.vm|dir\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	files, err := vmFiles(path)
	if err != nil {
		atExit(err)
	}

	var buf bytes.Buffer
	if err = translate(files, &buf); err != nil {
		atExit(err)
	}

	if outFileName == "" {
		outFileName = outputName(path, len(files) > 1 || files[0] != path)
	}
	if err = os.WriteFile(outFileName, buf.Bytes(), 0666); err != nil {
		atExit(errors.WithStack(err))
	}

	atExit(execute(outFileName, buf.Bytes()))
}
