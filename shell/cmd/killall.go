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
	"github.com/munshihimali/weenix/shell/shellctx"
)

// KillAll implements "killall": terminate every process except idle,
// init, the daemon, and (deferred to last) the caller itself.
type KillAll struct{}

func (*KillAll) Name() string     { return "killall" }
func (*KillAll) Synopsis() string { return "terminate every unprotected process" }
func (*KillAll) Usage() string {
	return "killall - terminate every process except idle, init, daemon, and (last) the caller\n"
}
func (*KillAll) SetFlags(*flag.FlagSet) {}

func (*KillAll) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w := shellctx.Writer(ctx)
	k := shellctx.Kernel(ctx)
	k.KillAll(ctx)
	fmt.Fprintln(w, "killall issued")
	return subcommands.ExitSuccess
}
