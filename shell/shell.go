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

// Package shell is the entrypoint for weenixctl, a small interactive
// front end over pkg/kernel. It gives every entry point spec.md §6
// exposes (spawn, exit, kill, killall, wait, ps) a human-operable
// surface, the way runsc/cli gives pkg/sentry/kernel one, and is built
// with the same github.com/google/subcommands framework.
package shell

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/subcommands"
	"github.com/munshihimali/weenix/pkg/kernel"
	weenixcmd "github.com/munshihimali/weenix/shell/cmd"
	"github.com/munshihimali/weenix/shell/shellctx"
)

// Shell owns a kernel instance and the process acting as "current" for
// the commands the operator types. Each line of input gets its own
// subcommands.Commander, since a Commander's dispatch args are the
// positional arguments left on the *flag.FlagSet it was built with, and
// that FlagSet can only be parsed once.
type Shell struct {
	k       *kernel.Kernel
	current *kernel.Process
}

// New boots a fresh kernel (idle then init), with init as the acting
// "current" process — matching a real kernel's init-spawns-a-shell boot
// sequence.
func New(cfg kernel.Config) *Shell {
	k := kernel.New(cfg)
	idle := k.CreateProcess(context.Background(), "idle")
	idleCtx := kernel.WithCurrent(context.Background(), idle)
	init := k.CreateProcess(idleCtx, "init")
	return &Shell{k: k, current: init}
}

// commander builds a fresh subcommands.Commander with every weenix
// command registered, parsed against args.
func commander(name string, args []string, w io.Writer) (*subcommands.Commander, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	cdr := subcommands.NewCommander(fs, name)
	cdr.Register(cdr.HelpCommand(), "")
	cdr.Register(&weenixcmd.Spawn{}, "")
	cdr.Register(&weenixcmd.Exit{}, "")
	cdr.Register(&weenixcmd.Kill{}, "")
	cdr.Register(&weenixcmd.KillAll{}, "")
	cdr.Register(&weenixcmd.Wait{}, "")
	cdr.Register(&weenixcmd.PS{}, "")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cdr, nil
}

// Run reads one command per line from r until EOF, dispatching each
// through a subcommands.Commander, and writes output to w.
func (s *Shell) Run(r io.Reader, w io.Writer) {
	ctx := shellctx.WithKernel(context.Background(), s.k)
	ctx = shellctx.WithWriter(ctx, w)
	ctx = kernel.WithCurrent(ctx, s.current)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit-shell" || line == "quit" {
			return
		}
		args := strings.Fields(line)
		cdr, err := commander("weenix", args, w)
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		cdr.Execute(ctx)
	}
}
