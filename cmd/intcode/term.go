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

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// isTerminal returns true if f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// setRawIO attempts to set stdin to raw IO and returns a function to restore
// IO settings as they were before.
func setRawIO() (func(), error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}
	st, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "MakeRaw failed")
	}
	return func() {
		term.Restore(fd, st)
	}, nil
}

// rawTranslate translates a key read from a raw terminal. It returns the byte
// to send to the program and the bytes to echo back. ok is false if the key
// terminates input.
func rawTranslate(c byte) (v byte, echo []byte, ok bool) {
	switch c {
	case 3, 4: // CTRL-C, CTRL-D
		return 0, []byte("\r\n"), false
	case '\r', '\n':
		return '\n', []byte("\r\n"), true
	case 127:
		// backspace
		return 8, []byte{8, ' ', 8}, true
	default:
		return c, []byte{c}, true
	}
}

// crlfWriter converts line feeds to CR-LF sequences for output to a raw
// terminal.
type crlfWriter struct {
	w io.Writer
}

func (w crlfWriter) Write(p []byte) (n int, err error) {
	start := 0
	for i, c := range p {
		if c != '\n' {
			continue
		}
		if _, err = w.w.Write(p[start:i]); err != nil {
			return n, err
		}
		n += i - start
		if _, err = w.w.Write([]byte("\r\n")); err != nil {
			return n, err
		}
		n++
		start = i + 1
	}
	m, err := w.w.Write(p[start:])
	return n + m, err
}
