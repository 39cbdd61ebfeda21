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

// The hackvm command translates Hack VM code into Hack assembly.
//
// Usage:
//
//	hackvm [flags] file.vm|dir
//
// Given a .vm file, the translation goes to the file with its extension
// replaced by .asm. Given a directory, all .vm files in it are translated,
// in name order, into a single dir/dir.asm.
//
//	-o filename
//		  write assembly to filename instead of the derived name
//	-nobootstrap
//		  don't emit the SP init / Sys.init prologue
//	-img filename
//		  assemble the output and save the .hack image to filename
//	-run n
//		  assemble the output and run up to n machine steps, then dump
//		  registers and stack
//	-i
//		  assemble the output and step it interactively
//	-debug
//		  enable debug diagnostics, dump the parsed command stream
//
// -nobootstrap: by default the output starts with SP=256 followed by a call
// to Sys.init, which is what linked multi-unit programs expect. Standalone
// snippets that have no Sys.init run with this flag set.
//
// -debug: also prints a full stacktrace should translation fail.
package main
