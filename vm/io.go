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
	"unicode/utf8"

	"github.com/pkg/errors"
)

type flusher interface {
	Flush() error
}

type runeWriter interface {
	WriteRune(r rune) (size int, err error)
}

type runeWriterWrapper struct {
	io.Writer
}

func (w *runeWriterWrapper) WriteRune(r rune) (size int, err error) {
	b := [utf8.UTFMax]byte{}
	l := utf8.EncodeRune(b[:], r)
	return w.Writer.Write(b[0:l])
}

// newRuneWriter returns either w if it implements runeWriter or wraps it up
// into a runeWriterWrapper
func newRuneWriter(w io.Writer) runeWriter {
	switch ww := w.(type) {
	case runeWriter:
		return ww
	default:
		return &runeWriterWrapper{w}
	}
}

// runeReaderWrapper wraps a basic reader into a io.RuneReader and io.Closer
type runeReaderWrapper struct {
	io.Reader
}

func (r *runeReaderWrapper) ReadRune() (ret rune, size int, err error) {
	var (
		b = [utf8.UTFMax]byte{}
		i = 0
	)
	for i < utf8.UTFMax && err == nil && !utf8.FullRune(b[:i]) {
		var n int
		n, err = r.Reader.Read(b[i : i+1])
		i += n
	}
	if i == 0 {
		return 0, 0, err
	}
	ret, size = rune(b[0]), 1
	if ret >= utf8.RuneSelf {
		ret, size = utf8.DecodeRune(b[:i])
	}
	return ret, size, err
}

func (r *runeReaderWrapper) Close() error {
	if c, ok := r.Reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func newRuneReader(r io.Reader) io.RuneReader {
	switch rr := r.(type) {
	case io.RuneReader:
		return rr
	default:
		return &runeReaderWrapper{r}
	}
}

type multiRuneReader struct {
	readers []io.RuneReader
}

func (mr *multiRuneReader) ReadRune() (r rune, size int, err error) {
	for len(mr.readers) > 0 {
		r, size, err = mr.readers[0].ReadRune()
		if size > 0 || err != io.EOF {
			if err == io.EOF {
				err = nil
			}
			return
		}
		// discard the reader and optionally close it
		if cl, ok := mr.readers[0].(io.Closer); ok {
			cl.Close()
		}
		mr.readers = mr.readers[1:]
	}
	return 0, 0, io.EOF
}

// RuneInput returns an input handler that reads runes from the given readers
// in sequence and returns their code point. When a reader reaches EOF it is
// closed if it implements io.Closer and the next one is used. Once all readers
// are exhausted, the handler returns io.EOF.
func RuneInput(readers ...io.Reader) InputFunc {
	mr := &multiRuneReader{}
	for _, r := range readers {
		mr.readers = append(mr.readers, newRuneReader(r))
	}
	return func() (Cell, error) {
		r, size, err := mr.ReadRune()
		if size == 0 {
			if err == nil {
				err = io.EOF
			}
			return 0, err
		}
		return Cell(r), nil
	}
}

// RuneOutput returns an output handler that writes values as UTF-8 encoded
// runes to w. If w has a Flush method, it is called after each new line.
// Values that are not valid code points make the handler fail.
func RuneOutput(w io.Writer) OutputFunc {
	rw := newRuneWriter(w)
	return func(v Cell) error {
		if v < 0 || v > utf8.MaxRune || !utf8.ValidRune(rune(v)) {
			return errors.Errorf("value %d is not a valid rune", v)
		}
		if _, err := rw.WriteRune(rune(v)); err != nil {
			return errors.Wrap(err, "write failed")
		}
		if v == '\n' {
			if f, ok := w.(flusher); ok {
				return errors.Wrap(f.Flush(), "flush failed")
			}
		}
		return nil
	}
}
