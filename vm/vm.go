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

import (
	"io"

	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location.
type Cell int64

type state int

const (
	running state = iota
	terminated
	aborted
)

// InputFunc is the function prototype for input handlers. It is called by the
// "in" instruction and must return the next input value. It may block.
// Returning an error aborts the program.
type InputFunc func() (Cell, error)

// OutputFunc is the function prototype for output handlers. It is called by
// the "out" instruction with the output value. Returning an error aborts the
// program. It must not call Run on the same Instance.
type OutputFunc func(v Cell) error

// TraceFunc is the function prototype for trace hooks. It is called before
// each instruction is executed, pc being the address of the instruction.
type TraceFunc func(i *Instance, pc int)

// Instance represents an intcode VM instance.
type Instance struct {
	mem      *Memory
	pc       int
	rb       int
	state    state
	insCount int64
	maxSteps int64
	in       InputFunc
	out      OutputFunc
	trace    TraceFunc
}

// Option interface
type Option func(*Instance) error

// Input sets the input handler.
func Input(fn InputFunc) Option {
	return func(i *Instance) error { i.in = fn; return nil }
}

// Output sets the output handler.
func Output(fn OutputFunc) Option {
	return func(i *Instance) error { i.out = fn; return nil }
}

// Trace sets a trace hook called before each instruction.
func Trace(fn TraceFunc) Option {
	return func(i *Instance) error { i.trace = fn; return nil }
}

// MaxSteps limits the number of instructions executed by Run. Once the limit
// is reached, Run fails with a *RunawayError. The default, 0, means no limit.
func MaxSteps(n int64) Option {
	return func(i *Instance) error {
		if n < 0 {
			return errors.Errorf("invalid step limit %d", n)
		}
		i.maxSteps = n
		return nil
	}
}

// MemLimit sets a limit to memory addresses: writes at addresses greater than
// or equal to cells fail with an *AddressError. The default, 0, means no limit.
func MemLimit(cells int) Option {
	return func(i *Instance) error {
		if i.mem == nil {
			return errors.WithStack(ErrNoImage)
		}
		if cells < 0 || cells > 0 && cells < i.mem.Len() {
			return errors.Errorf("invalid memory limit %d for image size %d", cells, i.mem.Len())
		}
		i.mem.limit = cells
		return nil
	}
}

// SetOptions sets the provided options. It must not be called while Run is
// executing.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new intcode VM instance.
//
// The memory is initialized with a copy of image, so that the same image can
// be used to start several instances. Options will be set by calling
// SetOptions.
func New(image []Cell, opts ...Option) (*Instance, error) {
	i := &Instance{
		mem: NewMemory(image),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// PC returns the instruction pointer. After a failed Run, it points to the
// instruction that triggered the error. After a successful Run, it points to
// the halt instruction.
func (i *Instance) PC() int {
	return i.pc
}

// RelativeBase returns the current value of the relative base register.
func (i *Instance) RelativeBase() int {
	return i.rb
}

// Terminated returns true if the program has executed a halt instruction.
func (i *Instance) Terminated() bool {
	return i.state == terminated
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Memory returns the instance's memory. It must not be modified while Run is
// executing.
func (i *Instance) Memory() *Memory {
	return i.mem
}

// Peek returns the value at address addr. The boolean result reports whether
// addr has been loaded or written. Other addresses read as 0.
func (i *Instance) Peek(addr int) (Cell, bool) {
	if i.mem == nil || !i.mem.populated(addr) {
		return 0, false
	}
	return i.mem.Read(addr), true
}

// Poke stores v at address addr. It is meant to patch a program before
// running it and fails once the instance can no longer run.
func (i *Instance) Poke(addr int, v Cell) error {
	if err := i.runnable(); err != nil {
		return err
	}
	if addr < 0 || i.mem.limit > 0 && addr >= i.mem.limit {
		return errors.WithStack(&AddressError{addr, "out of bounds"})
	}
	i.mem.Write(addr, v)
	return nil
}

func (i *Instance) runnable() error {
	switch {
	case i.mem == nil || i.mem.Len() == 0:
		return errors.WithStack(ErrNoImage)
	case i.state == terminated:
		return errors.WithStack(ErrTerminated)
	case i.state == aborted:
		return errors.WithStack(ErrAborted)
	}
	return nil
}

// Dump writes the memory to w in the format of Memory.WriteTo, followed by a
// new line.
func (i *Instance) Dump(w io.Writer) error {
	if i.mem == nil {
		return errors.WithStack(ErrNoImage)
	}
	if _, err := i.mem.WriteTo(w); err != nil {
		return err
	}
	_, err := w.Write([]byte{'\n'})
	return errors.Wrap(err, "dump failed")
}
