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
	"strconv"

	"github.com/pkg/errors"
)

// Errors returned by Run. Use errors.Cause to test for them.
var (
	ErrNoImage    = errors.New("no memory image")
	ErrTerminated = errors.New("program already terminated")
	ErrAborted    = errors.New("program aborted by a previous error")
	ErrNoInput    = errors.New("input requested with no input handler")
	ErrNoOutput   = errors.New("output with no output handler")
	ErrStopped    = errors.New("program stopped")
)

// DecodeError is returned when an instruction word cannot be decoded.
type DecodeError struct {
	PC     int
	Word   Cell
	Reason string
}

func (e *DecodeError) Error() string {
	return "bad instruction " + strconv.FormatInt(int64(e.Word), 10) + " @pc=" + strconv.Itoa(e.PC) + ": " + e.Reason
}

// RunawayError is returned when the instruction pointer leaves the populated
// memory or when the step limit is reached.
type RunawayError struct {
	PC     int
	Bound  int64
	Reason string
}

func (e *RunawayError) Error() string {
	return "runaway program @pc=" + strconv.Itoa(e.PC) + ": " + e.Reason + " (" + strconv.FormatInt(e.Bound, 10) + ")"
}

// AddressError is raised by Memory on invalid accesses.
type AddressError struct {
	Addr   int
	Reason string
}

func (e *AddressError) Error() string {
	return "bad address " + strconv.Itoa(e.Addr) + ": " + e.Reason
}
