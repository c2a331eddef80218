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
	"bufio"
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/device/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] image",
	Short: "Run an intcode program.",
	Long: `Run loads an intcode program image and runs it.

In numeric mode (the default), input values are taken from the --input flag
or read from stdin, and output values are written to stdout, one per line.

In ASCII mode, stdin is sent to the program one character at a time and output
values in the ASCII range are written to stdout as text. Other output values are
printed once the program stops.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImage(cmd, args[0])
	},
}

func init() {
	f := runCmd.Flags()
	f.Int64SliceP("input", "i", nil, "comma separated input `values`; read from stdin if not set")
	f.StringArray("set", nil, "set a memory cell before running, as `addr=value` (can be specified multiple times)")
	f.BoolP("ascii", "a", false, "ASCII mode")
	f.Bool("raw", false, "switch the terminal to raw IO in ASCII mode")
	f.Int64("max-steps", 0, "abort after `n` instructions (0 means no limit)")
	f.Bool("dump", false, "dump registers and memory upon exit")
	f.Bool("trace", false, "log every executed instruction")
	rootCmd.AddCommand(runCmd)
}

func runImage(cmd *cobra.Command, fileName string) (err error) {
	img, err := vm.Load(fileName)
	if err != nil {
		return err
	}
	opts := []vm.Option{vm.MaxSteps(getInt64(cmd, "max-steps"))}
	if getFlag(cmd, "trace") {
		log.SetLevel(log.TraceLevel)
		opts = append(opts, vm.Trace(traceInstruction))
	}
	i, err := vm.New(img, opts...)
	if err != nil {
		return err
	}
	for _, s := range getStringArray(cmd, "set") {
		addr, v, err := parsePatch(s)
		if err != nil {
			return err
		}
		if err = i.Poke(addr, v); err != nil {
			return err
		}
		log.WithFields(log.Fields{"addr": addr, "value": v}).Debug("memory patched")
	}

	out := bufio.NewWriter(os.Stdout)
	// flush output, dump VM if requested
	defer func() {
		if err == nil && getFlag(cmd, "dump") {
			err = dumpVM(i, out)
		}
		if e := out.Flush(); err == nil {
			err = errors.Wrap(e, "flush failed")
		}
	}()

	log.WithFields(log.Fields{"image": fileName, "cells": len(img)}).Debug("starting")
	if getFlag(cmd, "ascii") {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		err = runASCII(ctx, i, out, getFlag(cmd, "raw"))
	} else {
		err = runNumeric(cmd, i, out)
	}
	log.WithFields(log.Fields{
		"steps":      i.InstructionCount(),
		"pc":         i.PC(),
		"rb":         i.RelativeBase(),
		"terminated": i.Terminated(),
	}).Debug("stopped")
	if errors.Cause(err) == io.EOF {
		log.Debug("end of input")
		err = nil
	}
	return err
}

func traceInstruction(i *vm.Instance, pc int) {
	var b strings.Builder
	asm.Disassemble(i.Memory().Cells(), pc, &b)
	log.WithFields(log.Fields{"pc": pc, "rb": i.RelativeBase()}).Trace(b.String())
}

// parsePatch parses a memory patch of the form addr=value.
func parsePatch(s string) (addr int, v vm.Cell, err error) {
	a, val, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, errors.Errorf("invalid memory patch %q: expected addr=value", s)
	}
	addr, err = strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid memory patch %q", s)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(val), 0, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid memory patch %q", s)
	}
	return addr, vm.Cell(n), nil
}

func runNumeric(cmd *cobra.Command, i *vm.Instance, out *bufio.Writer) error {
	var in vm.InputFunc
	if cmd.Flags().Changed("input") {
		vals := getInt64Slice(cmd, "input")
		cells := make([]vm.Cell, len(vals))
		for n, v := range vals {
			cells[n] = vm.Cell(v)
		}
		in = vm.Values(cells...)
	} else {
		var prompt io.Writer
		if isTerminal(os.Stdin) {
			prompt = os.Stderr
		}
		in = readValues(os.Stdin, prompt, out)
	}
	if err := i.SetOptions(vm.Input(in), vm.Output(writeValues(out))); err != nil {
		return err
	}
	return i.Run()
}

// writeValues returns an output handler writing values to w, one per line.
func writeValues(w io.Writer) vm.OutputFunc {
	b := make([]byte, 0, 24)
	return func(v vm.Cell) error {
		b = strconv.AppendInt(b[:0], int64(v), 10)
		b = append(b, '\n')
		_, err := w.Write(b)
		return errors.Wrap(err, "write failed")
	}
}

// readValues returns an input handler reading integers separated by commas or
// white space from r. If prompt is not nil, out is flushed and a prompt
// written to prompt before reading a new line.
func readValues(r io.Reader, prompt io.Writer, out *bufio.Writer) vm.InputFunc {
	s := bufio.NewScanner(r)
	var pending []string
	return func() (vm.Cell, error) {
		for len(pending) == 0 {
			if prompt != nil {
				out.Flush()
				io.WriteString(prompt, "input> ")
			}
			if !s.Scan() {
				if err := s.Err(); err != nil {
					return 0, errors.Wrap(err, "read failed")
				}
				return 0, io.EOF
			}
			pending = strings.FieldsFunc(s.Text(), func(r rune) bool {
				return r == ',' || unicode.IsSpace(r)
			})
		}
		f := pending[0]
		pending = pending[1:]
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return 0, errors.Wrap(err, "invalid input value")
		}
		return vm.Cell(n), nil
	}
}

func runASCII(ctx context.Context, i *vm.Instance, out *bufio.Writer, raw bool) error {
	var w io.Writer = out
	if raw {
		restore, err := setRawIO()
		if err != nil {
			log.WithError(err).Warn("raw terminal IO unavailable")
			raw = false
		} else {
			defer restore()
			w = crlfWriter{out}
		}
	}
	con := ascii.NewConsole(w)

	g, ctx := errgroup.WithContext(ctx)
	p, err := vm.Go(ctx, i, 64)
	if err != nil {
		return err
	}
	g.Go(func() error {
		for v := range p.Out() {
			if err := con.Output(v); err != nil {
				return err
			}
			if len(p.Out()) == 0 {
				if err := out.Flush(); err != nil {
					return errors.Wrap(err, "flush failed")
				}
			}
		}
		return nil
	})
	g.Go(p.Wait)
	// Reads from stdin cannot be interrupted, the feeder is left out of the
	// group.
	go feed(p, os.Stdin, raw)

	err = g.Wait()
	if e := con.WriteValues(w); err == nil {
		err = e
	}
	return err
}

// feed sends bytes read from r to the program until r is exhausted or the
// program stops. In raw mode, input is echoed to stdout and CTRL-C or CTRL-D
// close the program's input.
func feed(p *vm.Pipe, r io.Reader, raw bool) {
	defer p.CloseSend()
	br := bufio.NewReader(r)
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err != io.EOF {
				log.WithError(err).Error("stdin read failed")
			}
			return
		}
		if raw {
			var (
				echo []byte
				ok   bool
			)
			c, echo, ok = rawTranslate(c)
			os.Stdout.Write(echo)
			if !ok {
				return
			}
		}
		if err = p.Send(vm.Cell(c)); err != nil {
			return
		}
	}
}
