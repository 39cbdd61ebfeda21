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
	"os"
	"strings"

	"hackvm/codegen"
)

func ExampleTranslate() {
	src := `push constant 7
pop temp 0
`
	err := codegen.Translate("Main.vm", strings.NewReader(src), os.Stdout, codegen.NoBootstrap())
	if err != nil {
		panic(err)
	}
	// Output:
	// // push constant 7
	// @7
	// D=A
	// @SP
	// A=M
	// M=D
	// @SP
	// M=M+1
	// // pop temp 0
	// @SP
	// AM=M-1
	// D=M
	// @5
	// M=D
}
