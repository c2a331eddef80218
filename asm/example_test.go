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

package asm_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
)

// Shows off some of the assembler features.
func ExampleAssemble() {
	code := `
		( a constant definition. Does not generate any code on its own )
		.equ FACTOR 3

		in	x		( read x )
		mul	x, #FACTOR, x	( x = x * 3 )
		out	x
		hlt
:x		.dat 0
:msg		'A'		( char literal, compiled as data )
`

	img, err := asm.Assemble("raw_string", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(img)

	out, err := vm.Exec(img, 14)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)

	asm.DisassembleAll(img, 0, os.Stdout)

	// Output:
	// [3 9 1002 9 3 9 4 9 99 0 65]
	// [42]
	//          0	in 9
	//          2	mul 9 #3 9
	//          6	out 9
	//          8	hlt
	//          9	.dat 0
	//         10	.dat 65
}

// Disassemble a relative mode program.
func ExampleDisassemble() {
	img := []vm.Cell{109, 19, 204, -34, 1201}
	for pc := 0; pc < len(img); {
		var err error
		fmt.Printf("% 4d\t", pc)
		pc, err = asm.Disassemble(img, pc, os.Stdout)
		if err != nil {
			panic(err)
		}
		fmt.Println()
	}

	// Output:
	//    0	arb #19
	//    2	out %-34
	//    4	add ???
}
