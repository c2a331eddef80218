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

// Package asm provides utility functions to assemble and disassemble intcode
// programs.
//
// Supported assembler mnemonics:
//
//	Instructions take up to three operands. a and b are input operands, c is
//	the destination address (see vm package documentation for addressing modes).
//
//	opcode	asm	alias	operands	description
//	------	---	-----	--------	------------------------------------------------
//	1	add		a b c		store a + b at c
//	2	mul		a b c		store a * b at c
//	3	in	inp	c		read a value from input and store it at c
//	4	out		a		write a to output
//	5	jt	jnz	a b		jump to b if a != 0
//	6	jf	jz	a b		jump to b if a == 0
//	7	lt	slt	a b c		store 1 at c if a < b, 0 otherwise
//	8	eq	seq	a b c		store 1 at c if a == b, 0 otherwise
//	9	arb	rel	a		add a to the relative base
//	99	hlt	halt			halt
//
// Operands:
//
// Operands are separated by white space and/or a comma. An operand is an integer
// literal, a character literal, a constant or a label. Addressing modes are
// selected with a prefix:
//
//	42	position mode: the operand is the value at address 42
//	#42	immediate mode: the operand is 42 itself
//	%42	relative mode: the operand is the value at address rb+42
//
// The assembler computes the mode digits of the instruction word. For example,
// "add #4, %-1, 7" compiles to "2101,4,-1,7".
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The opening
// parenthesis must start a token and the closing one must end a token:
//
//	( this is a valid comment )
//	(this one too)
//	( this is a
//	  rather long
//	  multiline comment )
//
// Comments cannot be nested.
//
// Literals and label/const identifiers:
//
// Input is split at white space (space, tab or new line) into tokens. The parser
// then does the following:
//
//	- If a token can be converted to a Go integer (see strconv.ParseInt), it will
//	  be converted to an integer literal.
//	- If it is a Go character literal between single quotes, it will be converted
//	  to the corresponding integer literal.
//	- If a token is the name of a defined constant, it will be replaced internally
//	  by the constant's value and can be used anywhere an integer literal is
//	  expected.
//	- Then, if an instruction is expected, the token is looked up in the
//	  assembler mnemonics. If an operand is expected, the token is considered a
//	  label reference. Forward references are allowed.
//
// Where the parser is expecting an instruction, integer literals, character
// literals and constants are compiled as-is, like with the .dat directive.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and evaluate to the
// address of the next compiled cell:
//
//	:loop	in	%1
//		out	%1
//		jt	#1, loop
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal.
//
//	.org <value>
//
// places the next cell at the address specified by the given integer literal or
// named constant. Cells skipped over are set to 0.
//
//	.dat <value>
//
// compiles the specified integer value, named constant, character literal or
// label address as-is. This is primarily used for variables and data
// structures:
//
//	:count	.dat 0
//	:table	.dat 'A' 'B'	( 'B' compiles as data too )
package asm
