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
	"github.com/munshihimali/weenix/pkg/kernel"
	"github.com/munshihimali/weenix/shell/shellctx"
)

// PS implements "ps": lists every live process in tabular form.
type PS struct{}

func (*PS) Name() string     { return "ps" }
func (*PS) Synopsis() string { return "list live processes" }
func (*PS) Usage() string    { return "ps - list every process currently in the table\n" }
func (*PS) SetFlags(*flag.FlagSet) {}

func (*PS) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w := shellctx.Writer(ctx)
	k := shellctx.Kernel(ctx)
	fmt.Fprint(w, kernel.FormatTable(k))
	return subcommands.ExitSuccess
}
