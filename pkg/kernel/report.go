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

package kernel

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// FormatProcess renders a single process for human inspection — the Go
// analogue of proc_info in original_source/vfs-submit/kernel/proc/proc.c,
// with the same field set: pid, name, parent, children, status, state,
// and (when available) cwd and break pointers.
func FormatProcess(p *Process) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "pid:          %d\n", p.PID)
	fmt.Fprintf(&buf, "name:         %s\n", p.Comm)
	if p.Parent != nil {
		fmt.Fprintf(&buf, "parent:       %d (%s)\n", p.Parent.PID, p.Parent.Comm)
	} else {
		fmt.Fprintf(&buf, "parent:       -\n")
	}
	if len(p.Threads) > 0 {
		fmt.Fprintf(&buf, "threads:      %d\n", len(p.Threads))
	}
	if len(p.Children) == 0 {
		fmt.Fprintf(&buf, "children:     -\n")
	} else {
		fmt.Fprintf(&buf, "children:\n")
		for _, c := range p.Children {
			fmt.Fprintf(&buf, "     %d (%s)\n", c.PID, c.Comm)
		}
	}
	fmt.Fprintf(&buf, "status:       %d\n", p.Status)
	fmt.Fprintf(&buf, "state:        %s\n", p.State)
	if p.Cwd != nil {
		fmt.Fprintf(&buf, "cwd:          %s\n", p.Cwd.Path())
	} else {
		fmt.Fprintf(&buf, "cwd:          -\n")
	}
	if p.StartBrk != 0 || p.Brk != 0 {
		fmt.Fprintf(&buf, "start brk:    %#x\n", p.StartBrk)
		fmt.Fprintf(&buf, "brk:          %#x\n", p.Brk)
	}
	return buf.String()
}

// FormatTable renders the full process table as a ps-style table — the
// Go analogue of proc_list_info, using tablewriter instead of
// fixed-width iprintf formatting.
func FormatTable(k *Kernel) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"PID", "NAME", "STATE", "PARENT", "CWD"})

	for _, p := range k.List() {
		parent := "-"
		if p.Parent != nil {
			parent = fmt.Sprintf("%d (%s)", p.Parent.PID, p.Parent.Comm)
		}
		cwd := "-"
		if p.Cwd != nil {
			cwd = p.Cwd.Path()
		}
		table.Append([]string{
			strconv.Itoa(int(p.PID)),
			p.Comm,
			p.State.String(),
			parent,
			cwd,
		})
	}

	table.Render()
	return buf.String()
}
