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

package screen_test

import (
	"bytes"
	"image"
	"os"
	"testing"

	"github.com/db47h/intcode/device/screen"
	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/require"
)

// draw returns a program that outputs the given values and halts.
func draw(vals ...vm.Cell) []vm.Cell {
	var prog []vm.Cell
	for _, v := range vals {
		prog = append(prog, 104, v)
	}
	return append(prog, 99)
}

func run(t *testing.T, s *screen.Screen, vals ...vm.Cell) error {
	t.Helper()
	i, err := vm.New(draw(vals...), vm.Output(s.Output))
	require.NoError(t, err)
	return i.Run()
}

func TestScreen(t *testing.T) {
	var s screen.Screen
	require.Equal(t, screen.Empty, s.Tile(0, 0))
	require.Zero(t, s.Count(screen.Block))

	require.NoError(t, run(t, &s,
		1, 1, screen.Wall,
		2, 1, screen.Block,
		3, 2, screen.Ball,
		2, 2, screen.Paddle,
		-1, 0, 1234,
		5, 1, screen.Block,
		5, 1, screen.Empty, // overwrite
		4, 1, 9,
	))
	require.Equal(t, screen.Wall, s.Tile(1, 1))
	require.Equal(t, screen.Block, s.Tile(2, 1))
	require.Equal(t, screen.Empty, s.Tile(5, 1))
	require.Equal(t, 1, s.Count(screen.Block))
	require.Equal(t, vm.Cell(1234), s.Score())
	require.Equal(t, image.Rect(1, 1, 6, 3), s.Bounds())

	x, y, ok := s.Find(screen.Ball)
	require.True(t, ok)
	require.Equal(t, []int{3, 2}, []int{x, y})
	_, _, ok = s.Find(screen.Wall + 100)
	require.False(t, ok)

	var b bytes.Buffer
	require.NoError(t, s.Render(&b))
	require.Equal(t, "#= ? \n -o  \nScore: 1234\n", b.String())
}

func TestScreen_partial(t *testing.T) {
	var s screen.Screen
	// incomplete triple
	require.NoError(t, run(t, &s, 1, 1, screen.Wall, 2, 2))
	require.Equal(t, 1, s.Count(screen.Wall))
	require.Equal(t, screen.Empty, s.Tile(2, 2))
}

func TestScreen_errors(t *testing.T) {
	var s screen.Screen
	err := run(t, &s, 0, -3, screen.Wall)
	require.Error(t, err)
	require.Contains(t, err.Error(), "screen coordinates out of range: 0,-3")
}

func ExampleScreen() {
	var s screen.Screen
	prog := []vm.Cell{
		104, -1, 104, 0, 104, 7, 99, // set score to 7
	}
	i, _ := vm.New(prog, vm.Output(s.Output))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			t := screen.Wall
			switch {
			case x == 1 && y == 1:
				t = screen.Ball
			case x == 1 && y == 2:
				t = screen.Paddle
			}
			s.Output(vm.Cell(x))
			s.Output(vm.Cell(y))
			s.Output(t)
		}
	}
	if err := i.Run(); err != nil {
		panic(err)
	}
	s.Render(os.Stdout)

	// Output:
	// ###
	// #o#
	// #-#
	// Score: 7
}
