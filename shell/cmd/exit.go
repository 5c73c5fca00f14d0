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

package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"
	"github.com/munshihimali/weenix/pkg/kernel"
	"github.com/munshihimali/weenix/shell/shellctx"
)

// Exit implements "exit <status>": tears down every thread of the
// current process, the shell's stand-in for do_exit.
type Exit struct{}

func (*Exit) Name() string     { return "exit" }
func (*Exit) Synopsis() string { return "exit the current process" }
func (*Exit) Usage() string {
	return "exit <status> - terminate the current process with the given status\n"
}
func (*Exit) SetFlags(*flag.FlagSet) {}

func (*Exit) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w := shellctx.Writer(ctx)
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	status, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		fmt.Fprintf(w, "bad status: %v\n", err)
		return subcommands.ExitUsageError
	}
	p := kernel.CurrentFromContext(ctx)
	k := shellctx.Kernel(ctx)
	k.DoExit(ctx, status)
	fmt.Fprintf(w, "pid %d exiting with status %d\n", p.PID, status)
	return subcommands.ExitSuccess
}
