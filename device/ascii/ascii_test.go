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

package ascii_test

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/db47h/intcode/device/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	c := ascii.Encode("Go 1.21")
	require.Equal(t, []vm.Cell{'G', 'o', ' ', '1', '.', '2', '1'}, c)

	s, vals := ascii.Decode(append(c, 1<<20, '\n', -1))
	require.Equal(t, "Go 1.21\n", s)
	require.Equal(t, []vm.Cell{1 << 20, -1}, vals)

	s, vals = ascii.Decode(nil)
	require.Empty(t, s)
	require.Nil(t, vals)
}

func TestInput(t *testing.T) {
	in := ascii.Input("NOT A J", "", "WALK")
	var got []byte
	for {
		v, err := in()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, byte(v))
	}
	require.Equal(t, "NOT A J\n\nWALK\n", string(got))

	_, err := ascii.Input()()
	require.Equal(t, io.EOF, err)
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("broken") }

func TestConsole(t *testing.T) {
	var b bytes.Buffer
	c := ascii.NewConsole(&b)
	for _, v := range []vm.Cell{'h', 'i', '\n', 19349722, 128, 'x', -5} {
		require.NoError(t, c.Output(v))
	}
	require.Equal(t, "hi\nx", b.String())
	require.Equal(t, []vm.Cell{19349722, 128, -5}, c.Values)

	b.Reset()
	require.NoError(t, c.WriteValues(&b))
	require.Equal(t, "19349722 128 -5\n", b.String())

	b.Reset()
	require.NoError(t, ascii.NewConsole(&b).WriteValues(&b))
	require.Zero(t, b.Len())

	err := ascii.NewConsole(failWriter{}).Output('a')
	require.Error(t, err)
	require.EqualError(t, errors.Cause(err), "broken")
}

// An intcode program that echoes its input in upper case, then outputs the
// number of converted characters. Echo stops at the first '.'.
var upper = []vm.Cell{
	3, 100, // in [100]
	1008, 100, 46, 101, // eq [100], '.', [101]
	1005, 101, 29, // jt [101], 29
	107, 96, 100, 101, // lt 96, [100], [101]
	1006, 101, 24, // jf [101], 24
	1001, 100, -32, 100, // add [100], -32, [100]
	1001, 102, 1, 102, // add [102], 1, [102]
	4, 100, // out [100]
	1105, 1, 0, // jt 1, 0
	4, 100, // out [100]
	4, 102, // out [102]
	99,
}

func TestConsole_program(t *testing.T) {
	var b bytes.Buffer
	c := ascii.NewConsole(&b)
	i, err := vm.New(upper, vm.Input(ascii.Input("Hello, gophers. ignored")), vm.Output(c.Output))
	require.NoError(t, err)
	require.NoError(t, i.Run())
	// the count, 11, is in the ASCII range
	require.Equal(t, "HELLO, GOPHERS.\v", b.String())
	require.Nil(t, c.Values)
}

func ExampleConsole() {
	// outputs "OK\n" followed by a large number
	prog := []vm.Cell{104, 'O', 104, 'K', 104, '\n', 104, 1 << 40, 99}
	c := ascii.NewConsole(os.Stdout)
	i, err := vm.New(prog, vm.Output(c.Output))
	if err != nil {
		panic(err)
	}
	if err = i.Run(); err != nil {
		panic(err)
	}
	fmt.Println(c.Values)

	// Output:
	// OK
	// [1099511627776]
}
