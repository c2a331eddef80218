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

package vm_test

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// echo copies its input to its output until input fails.
const echo = "3,100,4,100,1105,1,0"

func TestRuneIO(t *testing.T) {
	var b bytes.Buffer
	i := setup(t, echo,
		vm.Input(vm.RuneInput(strings.NewReader("hé"), strings.NewReader(""), strings.NewReader("llo\n"))),
		vm.Output(vm.RuneOutput(&b)))
	err := i.Run()
	require.Equal(t, io.EOF, errors.Cause(err))
	require.Equal(t, "héllo\n", b.String())
	require.False(t, i.Terminated())
}

func TestRuneOutput_flush(t *testing.T) {
	var b bytes.Buffer
	w := bufio.NewWriter(&b)
	i := setup(t, echo,
		vm.Input(vm.RuneInput(strings.NewReader("ab\ncd"))),
		vm.Output(vm.RuneOutput(w)))
	require.Equal(t, io.EOF, errors.Cause(i.Run()))
	require.Equal(t, "ab\n", b.String())
	require.NoError(t, w.Flush())
	require.Equal(t, "ab\ncd", b.String())
}

func TestRuneOutput_invalid(t *testing.T) {
	for _, code := range []string{"104,-1,99", "104,1114112,99", "104,55296,99"} {
		var b bytes.Buffer
		i := setup(t, code, vm.Output(vm.RuneOutput(&b)))
		require.Error(t, i.Run(), code)
		require.Zero(t, b.Len())
	}
}

func TestValues(t *testing.T) {
	in := vm.Values(1, 2)
	for _, exp := range []vm.Cell{1, 2} {
		v, err := in()
		require.NoError(t, err)
		require.Equal(t, exp, v)
	}
	_, err := in()
	require.Equal(t, io.EOF, err)
}

func TestPipe(t *testing.T) {
	i := setup(t, "3,11,3,12,1,11,12,13,4,13,99")
	p, err := vm.Go(context.Background(), i, 0)
	require.NoError(t, err)
	require.NoError(t, p.Send(2))
	require.NoError(t, p.Send(3))
	v, ok := p.Recv()
	require.True(t, ok)
	require.Equal(t, vm.Cell(5), v)
	_, ok = p.Recv()
	require.False(t, ok)
	require.NoError(t, p.Wait())
	require.True(t, i.Terminated())
	require.Equal(t, vm.ErrStopped, errors.Cause(p.Send(1)))

	// cannot start a terminated program
	_, err = vm.Go(context.Background(), i, 0)
	require.Equal(t, vm.ErrTerminated, errors.Cause(err))
}

func TestPipe_order(t *testing.T) {
	i := setup(t, echo)
	p, err := vm.Go(context.Background(), i, 4)
	require.NoError(t, err)
	go func() {
		for n := vm.Cell(0); n < 1000; n++ {
			if p.Send(n) != nil {
				return
			}
		}
		p.CloseSend()
	}()
	var n vm.Cell
	for v := range p.Out() {
		require.Equal(t, n, v)
		n++
	}
	require.Equal(t, vm.Cell(1000), n)
	require.Equal(t, io.EOF, errors.Cause(p.Wait()))
}

func TestPipe_cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	i := setup(t, echo)
	p, err := vm.Go(ctx, i, 0)
	require.NoError(t, err)
	require.NoError(t, p.Send(7))
	v, ok := p.Recv()
	require.True(t, ok)
	require.Equal(t, vm.Cell(7), v)
	cancel()
	select {
	case <-p.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("program still running after cancel")
	}
	require.Equal(t, context.Canceled, errors.Cause(p.Wait()))
	require.Equal(t, vm.ErrAborted, errors.Cause(i.Run()))
}

func TestPipe_sendAfterStop(t *testing.T) {
	for n := 0; n < 100; n++ {
		i := setup(t, "3,0,99")
		p, err := vm.Go(context.Background(), i, 4)
		require.NoError(t, err)
		accepted := 0
		for {
			if err = p.Send(vm.Cell(n)); err != nil {
				break
			}
			accepted++
		}
		require.Equal(t, vm.ErrStopped, errors.Cause(err))
		require.LessOrEqual(t, accepted, 5)
		require.NoError(t, p.Wait())
		// free buffer slots do not accept values once stopped
		for k := 0; k < 10; k++ {
			require.Equal(t, vm.ErrStopped, errors.Cause(p.Send(1)))
		}
	}
}

const (
	amp         = "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0"
	ampFeedback = "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5"
)

// amplify chains one program per phase setting in a loop, each program's
// output feeding the next program's input.
func amplify(t *testing.T, code string, phases ...vm.Cell) vm.Cell {
	t.Helper()
	img, err := vm.Parse(code)
	require.NoError(t, err)
	pipes := make([]*vm.Pipe, len(phases))
	for n, ph := range phases {
		i, err := vm.New(img)
		require.NoError(t, err)
		p, err := vm.Go(context.Background(), i, 1)
		require.NoError(t, err)
		require.NoError(t, p.Send(ph))
		pipes[n] = p
	}
	require.NoError(t, pipes[0].Send(0))

	var last vm.Cell
	var eg errgroup.Group
	for n := range pipes {
		src, dst := pipes[n], pipes[(n+1)%len(pipes)]
		isLast := n == len(pipes)-1
		eg.Go(func() error {
			for v := range src.Out() {
				if isLast {
					last = v
				}
				if err := dst.Send(v); err != nil && errors.Cause(err) != vm.ErrStopped {
					return err
				}
			}
			return src.Wait()
		})
	}
	require.NoError(t, eg.Wait())
	return last
}

func TestPipe_amplifiers(t *testing.T) {
	require.Equal(t, vm.Cell(43210), amplify(t, amp, 4, 3, 2, 1, 0))
	require.Equal(t, vm.Cell(139629729), amplify(t, ampFeedback, 9, 8, 7, 6, 5))
}
