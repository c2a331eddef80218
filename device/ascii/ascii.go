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

// Package ascii provides utility functions and devices for intcode programs
// that talk ASCII: text is exchanged one character per value, and values
// outside of the ASCII range carry numeric answers.
package ascii

import (
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// MaxChar is the highest value considered to be an ASCII character.
const MaxChar = 127

// IsChar returns true if v is an ASCII character.
func IsChar(v vm.Cell) bool {
	return v >= 0 && v <= MaxChar
}

// Encode returns the ASCII codes of the bytes in s.
func Encode(s string) []vm.Cell {
	c := make([]vm.Cell, len(s))
	for i := 0; i < len(s); i++ {
		c[i] = vm.Cell(s[i])
	}
	return c
}

// Decode splits v into ASCII text and the values outside of the ASCII range.
// The order of values in each part is preserved.
func Decode(v []vm.Cell) (string, []vm.Cell) {
	var (
		str  []byte
		vals []vm.Cell
	)
	for _, c := range v {
		if IsChar(c) {
			str = append(str, byte(c))
		} else {
			vals = append(vals, c)
		}
	}
	return string(str), vals
}

// Input returns an input function that returns the given lines of text, each
// one terminated by a new line. Once all lines are read, it returns io.EOF.
func Input(lines ...string) vm.InputFunc {
	var (
		line int
		pos  int
	)
	return func() (vm.Cell, error) {
		for line < len(lines) {
			s := lines[line]
			if pos < len(s) {
				pos++
				return vm.Cell(s[pos-1]), nil
			}
			line++
			pos = 0
			return '\n', nil
		}
		return 0, io.EOF
	}
}

// Console is an output device that writes ASCII characters to an io.Writer.
// Other values are kept in Values.
type Console struct {
	w      io.Writer
	Values []vm.Cell
}

// NewConsole returns a new Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Output implements vm.OutputFunc.
func (c *Console) Output(v vm.Cell) error {
	if !IsChar(v) {
		c.Values = append(c.Values, v)
		return nil
	}
	if _, err := c.w.Write([]byte{byte(v)}); err != nil {
		return errors.Wrap(err, "console write failed")
	}
	return nil
}

// WriteValues writes the non-ASCII values received so far to w, space
// separated and terminated with a new line. It does nothing if no such value
// has been received.
func (c *Console) WriteValues(w io.Writer) error {
	if len(c.Values) == 0 {
		return nil
	}
	ew := ici.NewErrWriter(w)
	b := make([]byte, 0, 24)
	for i, v := range c.Values {
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		ew.Write(b)
		b = b[:0]
	}
	ew.Write([]byte{'\n'})
	return ew.Err
}
