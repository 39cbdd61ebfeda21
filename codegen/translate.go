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
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"hackvm/vmcode"
)

// UnitName derives the translation unit name from a source path: the file
// name with directories and extension stripped ("src/Main.vm" -> "Main").
func UnitName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Translate translates one VM source unit read from r into assembly written
// to w. The unit name is derived from name with UnitName. Translation halts
// on the first parse or translation error; the output written so far must
// then be considered invalid.
func Translate(name string, r io.Reader, w io.Writer, opts ...Option) error {
	opts = append(opts, Unit(UnitName(name)))
	cw, err := New(w, opts...)
	if err != nil {
		return errors.Wrap(err, name)
	}
	p := vmcode.NewParser(name, r)
	for p.Scan() {
		if err = cw.WriteCommand(p.Command()); err != nil {
			return errors.Wrap(err, name)
		}
	}
	return p.Err()
}
