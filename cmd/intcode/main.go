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
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "intcode",
	Short: "An intcode virtual machine.",
	Long: `intcode runs, assembles and disassembles intcode programs.

Program images are text files holding comma separated integers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	log.SetOutput(os.Stderr)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity and print error stack traces")
}

func getFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		flagError(cmd, err)
	}
	return v
}

func getInt64(cmd *cobra.Command, name string) int64 {
	v, err := cmd.Flags().GetInt64(name)
	if err != nil {
		flagError(cmd, err)
	}
	return v
}

func getInt64Slice(cmd *cobra.Command, name string) []int64 {
	v, err := cmd.Flags().GetInt64Slice(name)
	if err != nil {
		flagError(cmd, err)
	}
	return v
}

func getString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		flagError(cmd, err)
	}
	return v
}

func getStringArray(cmd *cobra.Command, name string) []string {
	v, err := cmd.Flags().GetStringArray(name)
	if err != nil {
		flagError(cmd, err)
	}
	return v
}

func flagError(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", cmd.Name(), err)
	os.Exit(2)
}

func atExit(err error) {
	if err == nil {
		return
	}
	if log.IsLevelEnabled(log.DebugLevel) {
		fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	} else {
		log.Error(err)
	}
	os.Exit(1)
}

func main() {
	atExit(rootCmd.Execute())
}
