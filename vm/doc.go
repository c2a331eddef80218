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

// Package vm implements the intcode virtual machine.
//
// An intcode program is a flat sequence of integers that holds both code and
// data. Each instruction is a single word followed by its operands: the two
// least significant decimal digits of the word select the operation, the
// remaining digits select, from right to left, the addressing mode of each
// operand:
//
//	0	position mode: the operand is the address of the value
//	1	immediate mode: the operand is the value itself
//	2	relative mode: the operand is an offset from the relative base
//
// Supported instructions:
//
//	opcode	asm	args	description
//	------	---	----	------------------------------------------------------
//	1	add	a b c	store a + b in c
//	2	mul	a b c	store a * b in c
//	3	in	a	read a value from the input handler and store it in a
//	4	out	a	send a to the output handler
//	5	jt	a b	jump to b if a is not zero
//	6	jf	a b	jump to b if a is zero
//	7	lt	a b c	store 1 in c if a < b, 0 otherwise
//	8	eq	a b c	store 1 in c if a == b, 0 otherwise
//	9	arb	a	add a to the relative base
//	99	hlt		halt
//
// Memory is unbounded: any address past the end of the program reads as 0 and
// can be written to.
//
// The VM talks to the host program only through its I/O handlers: an
// InputFunc called by the "in" instruction and an OutputFunc called by "out".
// Both are called synchronously from Run. For interactive programs, Go starts
// Run on a separate goroutine and connects the handlers to channels, turning
// the VM into a coroutine that blocks on input and yields on output.
package vm
