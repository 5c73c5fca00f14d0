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

// Kill implements "kill <pid> <status>".
type Kill struct{}

func (*Kill) Name() string     { return "kill" }
func (*Kill) Synopsis() string { return "terminate a process by pid" }
func (*Kill) Usage() string {
	return "kill <pid> <status> - terminate the given process with the given status\n"
}
func (*Kill) SetFlags(*flag.FlagSet) {}

func (*Kill) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w := shellctx.Writer(ctx)
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	pid, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		fmt.Fprintf(w, "bad pid: %v\n", err)
		return subcommands.ExitUsageError
	}
	status, err := strconv.Atoi(f.Arg(1))
	if err != nil {
		fmt.Fprintf(w, "bad status: %v\n", err)
		return subcommands.ExitUsageError
	}
	k := shellctx.Kernel(ctx)
	target := k.Lookup(kernel.PID(pid))
	if target == nil {
		fmt.Fprintf(w, "no such pid %d\n", pid)
		return subcommands.ExitFailure
	}
	k.Kill(ctx, target, status)
	fmt.Fprintf(w, "sent kill to pid %d\n", pid)
	return subcommands.ExitSuccess
}
