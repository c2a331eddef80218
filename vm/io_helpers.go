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
	"context"
	"io"

	"github.com/pkg/errors"
)

// Values returns an input handler that returns the given values in order,
// then io.EOF.
func Values(vs ...Cell) InputFunc {
	return func() (Cell, error) {
		if len(vs) == 0 {
			return 0, io.EOF
		}
		v := vs[0]
		vs = vs[1:]
		return v, nil
	}
}

// Collect returns an output handler that appends values to *dst.
func Collect(dst *[]Cell) OutputFunc {
	return func(v Cell) error {
		*dst = append(*dst, v)
		return nil
	}
}

// Exec runs a copy of image with the given input values and returns all the
// values it outputs.
func Exec(image []Cell, input ...Cell) ([]Cell, error) {
	var out []Cell
	i, err := New(image, Input(Values(input...)), Output(Collect(&out)))
	if err != nil {
		return nil, err
	}
	return out, i.Run()
}

// Pipe connects a host to an Instance running on its own goroutine. See Go.
type Pipe struct {
	ctx  context.Context
	in   chan Cell
	out  chan Cell
	done chan struct{}
	err  error
}

// Go starts i.Run on a new goroutine, replacing its I/O handlers with
// channel-backed ones. The program blocks on input until the host calls Send
// and on output until the host receives from Out. The size parameter sets the
// buffer size of both channels.
//
// The VM has no notion of cancellation: cancelling ctx makes any pending or
// subsequent input or output request fail, which aborts the program.
func Go(ctx context.Context, i *Instance, size int) (*Pipe, error) {
	if err := i.runnable(); err != nil {
		return nil, err
	}
	p := &Pipe{
		ctx:  ctx,
		in:   make(chan Cell, size),
		out:  make(chan Cell, size),
		done: make(chan struct{}),
	}
	if err := i.SetOptions(Input(p.recv), Output(p.send)); err != nil {
		return nil, err
	}
	go func() {
		p.err = i.Run()
		close(p.out)
		close(p.done)
	}()
	return p, nil
}

func (p *Pipe) recv() (Cell, error) {
	select {
	case v, ok := <-p.in:
		if !ok {
			return 0, io.EOF
		}
		return v, nil
	case <-p.ctx.Done():
		return 0, p.ctx.Err()
	}
}

func (p *Pipe) send(v Cell) error {
	select {
	case p.out <- v:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// Send sends v to the program's input. It blocks until the program reads it or
// there is room in the input buffer. Send returns ErrStopped if the program is
// no longer running once v has been accepted. With a buffered Pipe, values still
// in the buffer when the program stops are discarded.
func (p *Pipe) Send(v Cell) error {
	select {
	case <-p.done:
		return errors.WithStack(ErrStopped)
	default:
	}
	select {
	case p.in <- v:
		if cap(p.in) == 0 {
			return nil
		}
		// v may have been buffered after the program stopped
		select {
		case <-p.done:
			return errors.WithStack(ErrStopped)
		default:
			return nil
		}
	case <-p.done:
		return errors.WithStack(ErrStopped)
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// CloseSend closes the program's input. Once the buffered values are consumed,
// input requests fail with io.EOF. Send must not be called after CloseSend.
func (p *Pipe) CloseSend() {
	close(p.in)
}

// Out returns the channel the program's output values are sent to. It is
// closed when the program stops.
func (p *Pipe) Out() <-chan Cell {
	return p.out
}

// Recv returns the next output value. The boolean result is false once the
// program has stopped and all its output has been received.
func (p *Pipe) Recv() (Cell, bool) {
	v, ok := <-p.out
	return v, ok
}

// Done returns a channel that is closed when the program stops.
func (p *Pipe) Done() <-chan struct{} {
	return p.done
}

// Wait waits for the program to stop and returns the error returned by Run.
// Wait does not drain Out: if the program is blocked on output, Wait blocks
// until the host receives the value or ctx is cancelled.
func (p *Pipe) Wait() error {
	<-p.done
	return p.err
}
