// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
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

// The intcode command line tool runs, assembles and disassembles intcode
// programs. It is a showcase for the package github.com/db47h/intcode/vm.
//
// Usage:
//
//	intcode run [flags] image
//	intcode asm [-o filename] source
//	intcode disasm image
//
// Global flags:
//
//	-v, --verbose
//		  increase logging verbosity and print error stack traces
//
// Flags of the run command:
//
//	-i, --input values
//		  comma separated input values; read from stdin if not set
//	    --set addr=value
//		  set a memory cell before running (can be specified multiple times)
//	-a, --ascii
//		  ASCII mode
//	    --raw
//		  switch the terminal to raw IO in ASCII mode
//	    --max-steps n
//		  abort after n instructions (0 means no limit)
//	    --dump
//		  dump registers and memory upon exit
//	    --trace
//		  log every executed instruction
//
// Program images are text files holding comma separated integers, like the
// ones distributed by Advent of Code.
//
// --input: when not set, input values are read from stdin as integers
// separated by commas or white space. If stdin is a terminal, a prompt is
// displayed on stderr whenever the program needs more input. Running out of
// input stops the program without error.
//
// --set: patches memory before running. A typical use is restoring the "1202
// program alarm" state:
//
//	intcode run --set 1=12 --set 2=2 --dump gravity.txt
//
// --ascii: stdin is sent to the program one character at a time. Output values
// in the ASCII range are written to stdout as text and other values are printed
// on a separate line once the program stops.
//
// --raw: in ASCII mode, switch the terminal to raw mode. Input is echoed back
// and CTRL-C or CTRL-D close the program's input.
//
// --dump: once the program stops without error, print the registers followed by
// the memory contents.
//
// --trace: log each instruction before executing it. This implies the most
// verbose log level.
package main
