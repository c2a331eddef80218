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

package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

var aliases = map[string]string{
	"inp":  "in",
	"jnz":  "jt",
	"jz":   "jf",
	"slt":  "lt",
	"seq":  "eq",
	"rel":  "arb",
	"halt": "hlt",
}

var opcodeIndex = make(map[string]vm.Instruction)

func init() {
	for _, in := range vm.Instructions() {
		opcodeIndex[in.Name] = in
	}
	for a, n := range aliases {
		opcodeIndex[a] = opcodeIndex[n]
	}
}

// ErrAsm is the error type returned by Assemble. It holds up to 10 errors.
type ErrAsm []struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsm) Error() string {
	var b strings.Builder
	for n, err := range e {
		if n > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Pos.String())
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	return b.String()
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (img []vm.Cell, err error) {
	p := newParser()
	if err = p.Parse(name, r); err != nil {
		return nil, err
	}
	return p.i[:p.size], nil
}

// Disassemble writes a disassembly of the instruction in the given slice at
// position pc to the specified io.Writer and returns the position of the next
// instruction and any write error. Words that are not valid instructions are
// written as a .dat directive.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := ici.NewErrWriter(w)

	in, modes, e := vm.Decode(mem[pc])
	if e != nil {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(mem[pc]), 10))
		return pc + 1, ew.Err
	}
	io.WriteString(ew, in.Name)
	pc++
	for n := 0; n < in.Arity; n++ {
		ew.Write([]byte{' '})
		if pc >= len(mem) {
			io.WriteString(ew, "???")
			return pc, ew.Err
		}
		switch modes[n] {
		case vm.Immediate:
			ew.Write([]byte{'#'})
		case vm.Relative:
			ew.Write([]byte{'%'})
		}
		io.WriteString(ew, strconv.FormatInt(int64(mem[pc]), 10))
		pc++
	}
	return pc, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (i[0]). It will return any write error.
func DisassembleAll(mem []vm.Cell, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(mem); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(mem, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
