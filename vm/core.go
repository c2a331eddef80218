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

import "github.com/pkg/errors"

// address returns the address of operand n of the instruction at pc.
func (i *Instance) address(pc, n int, m Mode) int {
	a := pc + 1 + n
	switch m {
	case Immediate:
		return a
	case Relative:
		return i.rb + int(i.mem.Read(a))
	default:
		return int(i.mem.Read(a))
	}
}

func b2c(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

// Run executes the program until it halts or an error occurs.
//
// If an error occurs, the PC will point to the instruction that triggered the
// error and the instance cannot be run again: subsequent calls return
// ErrAborted. Likewise, calling Run on a terminated program returns
// ErrTerminated.
//
// Errors returned by the I/O handlers are returned wrapped. For example, if the
// input handler returns io.EOF, errors.Cause(err) == io.EOF.
func (i *Instance) Run() (err error) {
	if err = i.runnable(); err != nil {
		return err
	}
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "recovered error @pc=%d/%d, rb=%d", i.pc, i.mem.Len(), i.rb)
			default:
				panic(e)
			}
		}
		if err != nil {
			i.state = aborted
		}
	}()

	mem := i.mem
	for {
		pc := i.pc
		if pc < 0 || pc >= mem.Len() {
			return errors.WithStack(&RunawayError{pc, int64(mem.Len()), "instruction pointer out of populated memory"})
		}
		if i.maxSteps > 0 && i.insCount >= i.maxSteps {
			return errors.WithStack(&RunawayError{pc, i.maxSteps, "step limit reached"})
		}
		in, modes, err := Decode(mem.Read(pc))
		if err != nil {
			err.(*DecodeError).PC = pc
			return errors.WithStack(err)
		}
		if i.trace != nil {
			i.trace(i, pc)
		}
		var a [MaxArity]int
		for n := 0; n < in.Arity; n++ {
			a[n] = i.address(pc, n, modes[n])
		}
		next := pc + 1 + in.Arity

		switch in.Opcode {
		case OpAdd:
			mem.Write(a[2], mem.Read(a[0])+mem.Read(a[1]))
		case OpMul:
			mem.Write(a[2], mem.Read(a[0])*mem.Read(a[1]))
		case OpIn:
			if i.in == nil {
				return errors.Wrapf(ErrNoInput, "@pc=%d", pc)
			}
			v, err := i.in()
			if err != nil {
				return errors.Wrapf(err, "input failed @pc=%d", pc)
			}
			mem.Write(a[0], v)
		case OpOut:
			if i.out == nil {
				return errors.Wrapf(ErrNoOutput, "@pc=%d", pc)
			}
			if err = i.out(mem.Read(a[0])); err != nil {
				return errors.Wrapf(err, "output failed @pc=%d", pc)
			}
		case OpJumpTrue:
			if mem.Read(a[0]) != 0 {
				next = int(mem.Read(a[1]))
			}
		case OpJumpFalse:
			if mem.Read(a[0]) == 0 {
				next = int(mem.Read(a[1]))
			}
		case OpLess:
			mem.Write(a[2], b2c(mem.Read(a[0]) < mem.Read(a[1])))
		case OpEqual:
			mem.Write(a[2], b2c(mem.Read(a[0]) == mem.Read(a[1])))
		case OpAdjustBase:
			i.rb += int(mem.Read(a[0]))
		case OpHalt:
			i.insCount++
			i.state = terminated
			return nil
		}
		i.insCount++
		i.pc = next
	}
}
