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
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// WriteImage writes instructions in the textual .hack format: one instruction
// per line, 16 '0'/'1' runes, most significant bit first.
func WriteImage(w io.Writer, rom []Cell) error {
	bw := bufio.NewWriter(w)
	var b [17]byte
	b[16] = '\n'
	for _, c := range rom {
		u := uint16(c)
		for i := 0; i < 16; i++ {
			b[i] = '0' + byte(u>>(15-i)&1)
		}
		if _, err := bw.Write(b[:]); err != nil {
			return errors.Wrap(err, "image write failed")
		}
	}
	return errors.Wrap(bw.Flush(), "image write failed")
}

// ReadImage reads a textual .hack image.
func ReadImage(r io.Reader) ([]Cell, error) {
	var rom []Cell
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		t := s.Text()
		if t == "" {
			continue
		}
		n, err := strconv.ParseUint(t, 2, 16)
		if err != nil || len(t) != 16 {
			return nil, errors.Errorf("image line %d: malformed instruction %q", line, t)
		}
		rom = append(rom, Cell(n))
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "image read failed")
	}
	return rom, nil
}

// Save writes a .hack image to file fileName.
func Save(fileName string, rom []Cell) error {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "Save")
	}
	defer f.Close()
	return WriteImage(f, rom)
}

// Load loads a .hack image from file fileName.
func Load(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	return ReadImage(f)
}
