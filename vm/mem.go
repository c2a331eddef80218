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
	"bytes"
	"io"
	"slices"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
)

// denseGap is how far past the end of the dense part of a Memory a write may
// land and still grow it. Writes further away are kept in a sparse map.
const denseGap = 1 << 16

// Memory encapsulates a VM's memory. Addresses that have never been written to
// read as 0 and writes at any non-negative address succeed. The program image
// and nearby addresses are kept in a dense slice, far away cells in a map.
//
// Accessing a negative address, or writing past the optional limit set with
// the MemLimit option, panics with an *AddressError. Instance.Run recovers
// from such panics and returns the error.
type Memory struct {
	cells  []Cell
	sparse map[int]Cell
	limit  int // 0 means no limit
}

// NewMemory returns a new Memory initialized with a copy of image.
func NewMemory(image []Cell) *Memory {
	m := &Memory{
		cells: make([]Cell, len(image)),
	}
	copy(m.cells, image)
	return m
}

// Len returns the size of the dense part of the memory, that is one past the
// highest address loaded or written in it. Cells stored in the sparse part are
// not counted.
func (m *Memory) Len() int {
	return len(m.cells)
}

// Read returns the value at address addr.
func (m *Memory) Read(addr int) Cell {
	if addr < len(m.cells) {
		if addr < 0 {
			panic(&AddressError{addr, "negative address"})
		}
		return m.cells[addr]
	}
	return m.sparse[addr]
}

// Write stores v at address addr.
func (m *Memory) Write(addr int, v Cell) {
	if addr < len(m.cells) {
		if addr < 0 {
			panic(&AddressError{addr, "negative address"})
		}
		m.cells[addr] = v
		return
	}
	if m.limit > 0 && addr >= m.limit {
		panic(&AddressError{addr, "memory limit of " + strconv.Itoa(m.limit) + " cells exceeded"})
	}
	if addr-len(m.cells) < denseGap {
		m.grow(addr + 1)
		m.cells[addr] = v
		return
	}
	if m.sparse == nil {
		m.sparse = make(map[int]Cell)
	}
	m.sparse[addr] = v
}

// populated returns true if addr has been loaded or written.
func (m *Memory) populated(addr int) bool {
	if addr >= 0 && addr < len(m.cells) {
		return true
	}
	_, ok := m.sparse[addr]
	return ok
}

func (m *Memory) grow(size int) {
	if size <= cap(m.cells) {
		m.cells = m.cells[:size]
	} else {
		c := 2 * cap(m.cells)
		if c < size {
			c = size
		}
		t := make([]Cell, size, c)
		copy(t, m.cells)
		m.cells = t
	}
	// move sparse cells now covered by the dense part
	for addr, v := range m.sparse {
		if addr < size {
			m.cells[addr] = v
			delete(m.sparse, addr)
		}
	}
}

// Sparse returns the sorted addresses of the cells held outside of the dense
// part of the memory.
func (m *Memory) Sparse() []int {
	if len(m.sparse) == 0 {
		return nil
	}
	addrs := make([]int, 0, len(m.sparse))
	for addr := range m.sparse {
		addrs = append(addrs, addr)
	}
	slices.Sort(addrs)
	return addrs
}

// Cells returns the dense part of the memory. The returned slice is only
// valid until the next Write and must not be modified.
func (m *Memory) Cells() []Cell {
	return m.cells
}

// WriteTo writes the dense part of the memory as a comma separated list of
// integers to w. If there are sparse cells, they follow on a new line as a
// comma separated list of addr:value pairs.
func (m *Memory) WriteTo(w io.Writer) (int64, error) {
	ew := ici.NewErrWriter(w)
	var b []byte
	for i, v := range m.cells {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		if len(b) >= 4096 {
			ew.Write(b)
			b = b[:0]
		}
	}
	ew.Write(b)
	for n, addr := range m.Sparse() {
		b = b[:0]
		if n == 0 {
			b = append(b, '\n')
		} else {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(addr), 10)
		b = append(b, ':')
		b = strconv.AppendInt(b, int64(m.sparse[addr]), 10)
		ew.Write(b)
	}
	return ew.N, ew.Err
}

// String returns the same text as WriteTo.
func (m *Memory) String() string {
	var b bytes.Buffer
	m.WriteTo(&b)
	return b.String()
}
