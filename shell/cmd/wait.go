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
	"github.com/munshihimali/weenix/shell/shellctx"
)

// Wait implements "wait [pid]": waits for the given child, or any
// child when no pid is given, the shell's stand-in for do_waitpid.
type Wait struct{}

func (*Wait) Name() string     { return "wait" }
func (*Wait) Synopsis() string { return "wait for a child to exit" }
func (*Wait) Usage() string {
	return "wait [pid] - wait for the given child, or any child if pid is omitted\n"
}
func (*Wait) SetFlags(*flag.FlagSet) {}

func (*Wait) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w := shellctx.Writer(ctx)
	target := -1
	if f.NArg() == 1 {
		pid, err := strconv.Atoi(f.Arg(0))
		if err != nil {
			fmt.Fprintf(w, "bad pid: %v\n", err)
			return subcommands.ExitUsageError
		}
		target = pid
	} else if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	k := shellctx.Kernel(ctx)
	pid, status, err := k.DoWaitpid(ctx, target, 0)
	if err != nil {
		fmt.Fprintf(w, "wait failed: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(w, "reaped pid %d, status %d\n", pid, status)
	return subcommands.ExitSuccess
}
