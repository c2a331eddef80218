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
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

// Parse parses a program in its text form: a comma separated list of base 10
// integers. White space around values is ignored, as is a trailing comma.
func Parse(s string) ([]Cell, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty program")
	}
	f := strings.Split(s, ",")
	if strings.TrimSpace(f[len(f)-1]) == "" {
		f = f[:len(f)-1]
	}
	return ParseFields(f)
}

// ParseFields parses a program already split into individual numbers.
func ParseFields(fields []string) ([]Cell, error) {
	img := make([]Cell, len(fields))
	for n, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "value #%d", n)
		}
		img[n] = Cell(v)
	}
	return img, nil
}

// ReadImage reads a program in text form from r.
func ReadImage(r io.Reader) ([]Cell, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return Parse(string(b))
}

// Load loads a program in text form from file fileName.
func Load(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := ReadImage(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return img, nil
}

// WriteImage writes the text form of a program to w, followed by a new line.
func WriteImage(w io.Writer, img []Cell) error {
	ew := ici.NewErrWriter(w)
	b := make([]byte, 0, 32)
	for n, v := range img {
		b = b[:0]
		if n > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		ew.Write(b)
	}
	ew.Write([]byte{'\n'})
	return ew.Err
}

// Save saves a program in text form to file fileName. The file is removed if
// an error occurs.
func Save(fileName string, img []Cell) error {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	if err = writeAndClose(f, img); err != nil {
		os.Remove(fileName)
	}
	return err
}

// writeAndClose writes img to wc and closes it.
func writeAndClose(wc io.WriteCloser, img []Cell) (err error) {
	defer func() {
		if e := wc.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "close failed")
		}
	}()
	w := bufio.NewWriter(wc)
	if err = WriteImage(w, img); err != nil {
		return errors.Wrap(err, "save failed")
	}
	return errors.Wrap(w.Flush(), "flush failed")
}
