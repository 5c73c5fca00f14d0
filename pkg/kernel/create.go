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
	"context"

	"github.com/munshihimali/weenix/pkg/pagetable"
	"github.com/munshihimali/weenix/pkg/sched"
	"github.com/munshihimali/weenix/pkg/vfs"
)

// CreateProcess allocates and fully links a new process, per spec.md
// §4.D. The current process is read from ctx (nil only when creating the
// idle process). Creation is best-effort: PID exhaustion is fatal in
// this teaching kernel (spec.md §7), via assert.
//
// Either a fully-linked process is returned, or CreateProcess panics;
// there is no partially-constructed state left behind in the table.
func (k *Kernel) CreateProcess(ctx context.Context, name string) *Process {
	parent := CurrentFromContext(ctx)

	k.mu.Lock()
	defer k.mu.Unlock()

	pid, ok := k.nextID()
	assert(ok, "proc: PID namespace exhausted")

	// pid can only be PIDIdle if this is the first process (invariant 5).
	assert(pid != PIDIdle || len(k.table) == 0,
		"proc: PIDIdle assigned to non-bootstrap process")
	// pid can only be PIDInit when creating from the idle process
	// (invariant 6).
	assert(pid != PIDInit || (parent != nil && parent.PID == PIDIdle),
		"proc: PIDInit created by non-idle parent")

	p := &Process{
		PID:           pid,
		Comm:          truncateName(name, k.cfg.ProcNameLen),
		State:         StateRunning,
		Status:        0,
		Parent:        parent,
		PageDirectory: pagetable.Create(),
		Files:         make([]*vfs.File, k.cfg.NFiles),
		Cwd:           vfs.RootVnode().Ref(),
	}
	p.WaitQueue = sched.NewWaitQueue(&k.mu)

	k.register(p)
	if parent != nil {
		parent.Children = append(parent.Children, p)
	}
	if pid == PIDInit {
		k.InitProcess = p
	}

	log.WithFields(map[string]interface{}{
		"pid": p.PID, "comm": p.Comm,
	}).Debug("process created")
	return p
}

// truncateName copies name, truncating to maxLen-1 runes so the result
// always fits in a maxLen-sized NUL-terminated buffer in the original C
// kernel's terms (Go strings carry no NUL, but the budget is preserved).
func truncateName(name string, maxLen int) string {
	r := []rune(name)
	if len(r) > maxLen-1 {
		r = r[:maxLen-1]
	}
	return string(r)
}
