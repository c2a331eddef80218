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

// Package screen implements a tile screen output device.
//
// Programs draw on the screen by outputting (x, y, tile) triples. The special
// triple (-1, 0, v) sets the score display to v.
package screen

import (
	"image"
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Tile ids.
const (
	Empty vm.Cell = iota
	Wall
	Block
	Paddle
	Ball
)

var tileChars = [...]byte{' ', '#', '=', '-', 'o'}

// Screen is a tile screen. The zero value is an empty screen ready to use.
type Screen struct {
	tiles  map[image.Point]vm.Cell
	bounds image.Rectangle
	score  vm.Cell
	buf    [3]vm.Cell
	n      int
}

// Output implements vm.OutputFunc.
func (s *Screen) Output(v vm.Cell) error {
	s.buf[s.n] = v
	s.n++
	if s.n < len(s.buf) {
		return nil
	}
	s.n = 0
	x, y, t := s.buf[0], s.buf[1], s.buf[2]
	if x == -1 && y == 0 {
		s.score = t
		return nil
	}
	if x < 0 || y < 0 {
		return errors.Errorf("screen coordinates out of range: %d,%d", x, y)
	}
	s.set(image.Pt(int(x), int(y)), t)
	return nil
}

func (s *Screen) set(p image.Point, t vm.Cell) {
	if s.tiles == nil {
		s.tiles = make(map[image.Point]vm.Cell)
	}
	r := image.Rectangle{p, p.Add(image.Pt(1, 1))}
	if len(s.tiles) == 0 {
		s.bounds = r
	} else {
		s.bounds = s.bounds.Union(r)
	}
	s.tiles[p] = t
}

// Tile returns the tile at the given position.
func (s *Screen) Tile(x, y int) vm.Cell {
	return s.tiles[image.Pt(x, y)]
}

// Find returns the position of the first tile t found on the screen in
// row-major order.
func (s *Screen) Find(t vm.Cell) (x, y int, ok bool) {
	for y := s.bounds.Min.Y; y < s.bounds.Max.Y; y++ {
		for x := s.bounds.Min.X; x < s.bounds.Max.X; x++ {
			if v, ok := s.tiles[image.Pt(x, y)]; ok && v == t {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// Count returns the number of tiles t on the screen.
func (s *Screen) Count(t vm.Cell) int {
	n := 0
	for _, v := range s.tiles {
		if v == t {
			n++
		}
	}
	return n
}

// Score returns the last score set by the program.
func (s *Screen) Score() vm.Cell {
	return s.score
}

// Bounds returns the smallest rectangle containing all drawn tiles.
func (s *Screen) Bounds() image.Rectangle {
	return s.bounds
}

// Render draws the screen to w, followed by the score on its own line. Tiles
// with no known representation are drawn as '?'.
func (s *Screen) Render(w io.Writer) error {
	ew := ici.NewErrWriter(w)
	line := make([]byte, 0, s.bounds.Dx()+1)
	for y := s.bounds.Min.Y; y < s.bounds.Max.Y; y++ {
		line = line[:0]
		for x := s.bounds.Min.X; x < s.bounds.Max.X; x++ {
			t := s.tiles[image.Pt(x, y)]
			c := byte('?')
			if t >= 0 && int(t) < len(tileChars) {
				c = tileChars[t]
			}
			line = append(line, c)
		}
		line = append(line, '\n')
		ew.Write(line)
	}
	ew.WriteString("Score: " + strconv.FormatInt(int64(s.score), 10) + "\n")
	return ew.Err
}
