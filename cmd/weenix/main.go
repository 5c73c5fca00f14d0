// Copyright 2024 The Weenix Authors.
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

// Binary weenix is weenixctl, an interactive shell over an in-process
// simulation of the Weenix process-management core: PID allocation,
// process creation, thread-exit coordination, cleanup/zombification,
// and the wait/kill family.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/munshihimali/weenix/pkg/kernel"
	"github.com/munshihimali/weenix/shell"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config overriding the compiled-in kernel defaults")
	flag.Parse()

	cfg := kernel.DefaultConfig()
	if *configPath != "" {
		loaded, err := kernel.LoadConfig(*configPath)
		if err != nil {
			logrus.WithError(err).Fatal("loading config")
		}
		cfg = loaded
	}

	fmt.Fprintln(os.Stdout, "weenixctl — type \"help\" for commands, \"quit\" to exit")
	shell.New(cfg).Run(os.Stdin, os.Stdout)
}
