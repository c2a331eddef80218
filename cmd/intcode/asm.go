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
	"os"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var asmCmd = &cobra.Command{
	Use:   "asm [flags] source",
	Short: "Assemble an intcode program.",
	Long: `Asm assembles the given source file and writes the resulting program image
to the file specified with -o, or to stdout.

See the documentation of package github.com/db47h/intcode/asm for the syntax.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.WithStack(err)
		}
		defer f.Close()
		img, err := asm.Assemble(args[0], f)
		if err != nil {
			return err
		}
		log.WithField("cells", len(img)).Debug("assembled")
		if o := getString(cmd, "output"); o != "" {
			return vm.Save(o, img)
		}
		return vm.WriteImage(os.Stdout, img)
	},
}

var disasmCmd = &cobra.Command{
	Use:   "disasm image",
	Short: "Disassemble an intcode program.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := vm.Load(args[0])
		if err != nil {
			return err
		}
		w := bufio.NewWriter(os.Stdout)
		err = asm.DisassembleAll(img, 0, w)
		if e := w.Flush(); err == nil {
			err = errors.Wrap(e, "flush failed")
		}
		return err
	},
}

func init() {
	asmCmd.Flags().StringP("output", "o", "", "write program image to `filename`")
	rootCmd.AddCommand(asmCmd, disasmCmd)
}
