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

	"github.com/google/subcommands"
	"github.com/munshihimali/weenix/pkg/kthread"
	"github.com/munshihimali/weenix/shell/shellctx"
)

// sleeperBody blocks until the owning thread is cancelled, returning
// the cancellation payload as its exit status — the shell's stand-in
// for a freshly spawned process blocked in its own run loop.
func sleeperBody(ctx context.Context, self *kthread.Thread) int {
	<-ctx.Done()
	return self.Payload()
}

// Spawn implements "spawn <name>": creates a child of the current
// process and gives it a single sleeper thread.
type Spawn struct{}

func (*Spawn) Name() string     { return "spawn" }
func (*Spawn) Synopsis() string { return "create a child process" }
func (*Spawn) Usage() string {
	return "spawn <name> - create a child of the current process\n"
}
func (*Spawn) SetFlags(*flag.FlagSet) {}

func (*Spawn) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w := shellctx.Writer(ctx)
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	k := shellctx.Kernel(ctx)
	p := k.CreateProcess(ctx, f.Arg(0))
	k.SpawnThread(context.Background(), p, sleeperBody)
	fmt.Fprintf(w, "spawned pid %d (%s)\n", p.PID, p.Comm)
	return subcommands.ExitSuccess
}
