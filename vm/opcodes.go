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

package vm

import "strconv"

// Opcode identifies an instruction. It is the value of the two least
// significant decimal digits of an instruction word.
type Opcode int

// Intcode VM Opcodes.
const (
	OpAdd        Opcode = 1
	OpMul        Opcode = 2
	OpIn         Opcode = 3
	OpOut        Opcode = 4
	OpJumpTrue   Opcode = 5
	OpJumpFalse  Opcode = 6
	OpLess       Opcode = 7
	OpEqual      Opcode = 8
	OpAdjustBase Opcode = 9
	OpHalt       Opcode = 99
)

// MaxArity is the highest number of operands of any instruction.
const MaxArity = 3

// Mode is an operand addressing mode.
type Mode uint8

// Addressing modes.
const (
	Position Mode = iota
	Immediate
	Relative
)

var modeNames = [...]string{"position", "immediate", "relative"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// Modes holds the addressing modes of an instruction's operands. Entries past
// the instruction's arity are always Position.
type Modes [MaxArity]Mode

// Instruction describes an operation of the instruction set.
type Instruction struct {
	Opcode Opcode
	Name   string // assembler mnemonic
	Arity  int    // number of operands
	Dest   int    // index of the operand written to, -1 if none
	Jumps  bool   // the instruction may set the instruction pointer
}

func (in Instruction) String() string {
	return in.Name
}

var instructions = [...]Instruction{
	{OpAdd, "add", 3, 2, false},
	{OpMul, "mul", 3, 2, false},
	{OpIn, "in", 1, 0, false},
	{OpOut, "out", 1, -1, false},
	{OpJumpTrue, "jt", 2, -1, true},
	{OpJumpFalse, "jf", 2, -1, true},
	{OpLess, "lt", 3, 2, false},
	{OpEqual, "eq", 3, 2, false},
	{OpAdjustBase, "arb", 1, -1, false},
	{OpHalt, "hlt", 0, -1, false},
}

// opTable maps opcodes to instructions. Read only after init.
var opTable [100]*Instruction

func init() {
	for i := range instructions {
		in := &instructions[i]
		opTable[in.Opcode] = in
	}
}

// Lookup returns the instruction for the given opcode.
func Lookup(op Opcode) (Instruction, bool) {
	if op < 0 || int(op) >= len(opTable) || opTable[op] == nil {
		return Instruction{}, false
	}
	return *opTable[op], true
}

// Instructions returns the instruction set, ordered by opcode.
func Instructions() []Instruction {
	l := make([]Instruction, len(instructions))
	copy(l, instructions[:])
	return l
}

// Decode splits an instruction word into its instruction and operand modes.
// Mode digits past the instruction's arity are ignored.
func Decode(word Cell) (Instruction, Modes, error) {
	var modes Modes
	if word < 0 {
		return Instruction{}, modes, &DecodeError{Word: word, Reason: "negative instruction word"}
	}
	in := opTable[word%100]
	if in == nil {
		return Instruction{}, modes, &DecodeError{Word: word, Reason: "unknown opcode " + strconv.Itoa(int(word%100))}
	}
	m := word / 100
	for n := 0; n < in.Arity; n++ {
		d := Mode(m % 10)
		if d > Relative {
			return Instruction{}, modes, &DecodeError{Word: word, Reason: "invalid mode " + strconv.Itoa(int(d)) + " for operand " + strconv.Itoa(n)}
		}
		modes[n] = d
		m /= 10
	}
	return *in, modes, nil
}

// Encode returns the instruction word for opcode op with the given operand
// modes. Missing modes default to Position.
func Encode(op Opcode, modes ...Mode) Cell {
	w := Cell(op)
	f := Cell(100)
	for _, m := range modes {
		w += Cell(m) * f
		f *= 10
	}
	return w
}
