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

// Package codegen translates Hack VM commands into Hack assembly.
//
// A Writer consumes vmcode.Command values one at a time and appends a
// deterministic assembly fragment per command to its output stream. Every
// fragment preserves the machine conventions: SP (RAM[0]) points one past
// top-of-stack, the stack grows upward from address 256, and LCL, ARG, THIS
// and THAT each hold the base address of their segment.
//
// Unless disabled with NoBootstrap, a new Writer first emits the program
// prologue: SP is set to 256 and Sys.init is called with no arguments. The
// translation of a multi-unit program therefore always enters through
// Sys.init regardless of unit order.
//
// Calling is done by hand, the machine has no call stack. A call pushes the
// return address and the caller's LCL, ARG, THIS and THAT, repositions ARG
// below the already-pushed arguments and LCL at the current SP, and jumps; a
// return copies the callee's single result over the first argument, collapses
// the whole frame by setting SP just past the result, restores the four saved
// pointers and jumps to the saved return address.
//
// The generator synthesizes control-flow labels for comparisons and call
// sites from a per-Writer monotonic counter. All synthesized labels begin
// with '$', which no user VM identifier may, so they cannot collide with
// function-qualified user labels.
//
// Static index i of translation unit U is emitted as the assembler symbol
// "U.i"; the assembler's variable allocator then assigns each unit a
// disjoint block, keeping statics unit-private in multi-unit programs.
package codegen
