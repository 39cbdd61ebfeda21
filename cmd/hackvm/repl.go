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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"hackvm/asm"
	"hackvm/vm"
)

const replHelp = `commands:
  s, step [n]    execute n instructions (default 1)
  c, cont        run until the step limit or a fault
  r, regs        print registers, segment pointers and stack
  m, mem a [n]   print n RAM cells starting at address a (default 1)
  l, list [n]    disassemble n instructions at PC (default 8)
  q, quit        leave
`

func step(i *vm.Instance, n int64) {
	for ; n > 0; n-- {
		if err := i.Step(); err != nil {
			fmt.Println(err)
			return
		}
	}
	if i.PC < len(i.ROM) {
		fmt.Printf("% 6d\t%s\n", i.PC, asm.Disassemble(i.ROM[i.PC]))
	} else {
		fmt.Printf("% 6d\t<end of ROM>\n", i.PC)
	}
}

func printMem(i *vm.Instance, args []string) {
	if len(args) == 0 {
		fmt.Println("mem: missing address")
		return
	}
	addr, err := strconv.Atoi(args[0])
	n := 1
	if err == nil && len(args) > 1 {
		n, err = strconv.Atoi(args[1])
	}
	if err != nil || addr < 0 || n < 1 {
		fmt.Println("mem: bad argument")
		return
	}
	for ; n > 0 && addr < len(i.RAM); n, addr = n-1, addr+1 {
		fmt.Printf("% 6d\t%d\n", addr, i.RAM[addr])
	}
}

func list(i *vm.Instance, n int) {
	end := i.PC + n
	if end > len(i.ROM) {
		end = len(i.ROM)
	}
	if i.PC >= end {
		fmt.Println("<end of ROM>")
		return
	}
	asm.DisassembleAll(i.ROM[i.PC:end], i.PC, os.Stdout)
}

// repl steps the machine interactively.
func repl(i *vm.Instance) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	fmt.Printf("%d instructions loaded, 'h' for help\n", len(i.ROM))
	for {
		line, err := ln.Prompt("hackvm> ")
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		ln.AppendHistory(line)

		switch fields[0] {
		case "s", "step":
			n := int64(1)
			if len(fields) > 1 {
				if n, err = strconv.ParseInt(fields[1], 10, 64); err != nil || n < 1 {
					fmt.Println("step: bad count")
					continue
				}
			}
			step(i, n)
		case "c", "cont":
			if err = i.Run(); err != nil {
				fmt.Println(err)
			}
		case "r", "regs":
			i.Dump(os.Stdout)
		case "m", "mem":
			printMem(i, fields[1:])
		case "l", "list":
			n := 8
			if len(fields) > 1 {
				if n, err = strconv.Atoi(fields[1]); err != nil || n < 1 {
					fmt.Println("list: bad count")
					continue
				}
			}
			list(i, n)
		case "q", "quit", "exit":
			return nil
		default:
			fmt.Print(replHelp)
		}
	}
}
