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

// Package kernel is the process management core: the process table, PID
// allocation, process creation and destruction, thread-exit
// coordination, reparenting, and the wait/reap rendezvous. It is the
// in-memory analogue of a teaching kernel's proc.c, modeled on
// original_source/vfs-submit/kernel/proc/proc.c.
package kernel

import (
	"context"
	"sync"

	"github.com/munshihimali/weenix/pkg/kthread"
	"github.com/munshihimali/weenix/pkg/pagetable"
	"github.com/munshihimali/weenix/pkg/sched"
	"github.com/munshihimali/weenix/pkg/vfs"
)

// State is a process's lifecycle state.
type State int

const (
	// StateRunning is the initial state of every created process.
	StateRunning State = iota
	// StateDead is entered exactly once, inside cleanup, and persists
	// until the process is reaped.
	StateDead
)

func (s State) String() string {
	if s == StateDead {
		return "DEAD"
	}
	return "RUNNING"
}

// Process is a single process's state, relationships, and resource
// handles — the fields of spec.md §3.
type Process struct {
	PID  PID
	Comm string

	State  State
	Status int

	// Parent is a weak back-reference; nil only for the idle process.
	Parent *Process
	// Children is the ordered, owning sequence of this process's
	// children. Every non-idle process appears in exactly one such
	// sequence (spec.md invariant 2).
	Children []*Process
	// Threads is the ordered, owning sequence of kernel threads
	// belonging to this process.
	Threads []*kthread.Thread

	WaitQueue *sched.WaitQueue

	// PageDirectory must remain valid until the process is reaped; it is
	// destroyed by the reaper, never by the process itself.
	PageDirectory *pagetable.PageDirectory

	// Files maps file descriptor to open-file handle, nil where unused.
	Files []*vfs.File
	// Cwd is held with a VFS reference, released in cleanup.
	Cwd *vfs.Vnode

	// StartBrk, Brk are opaque to this subsystem; populated by a user
	// program loader that is out of scope here.
	StartBrk, Brk uintptr
}

// Kernel is the process management core's global state: the process
// table, the PID allocator cursor, the init process, and the big lock
// that serializes every table/process-graph mutation (spec.md §5).
type Kernel struct {
	mu sync.Mutex

	cfg Config

	table   []*Process
	nextPID PID

	// InitProcess is captured at the creation of PIDInit and used as the
	// reparenting target.
	InitProcess *Process
}

// New constructs a fresh kernel with no processes. Call CreateProcess
// with a nil current process (spec.md §4.D step 2) to create the idle
// process.
func New(cfg Config) *Kernel {
	log.WithFields(logrusFields(cfg)).Debug("kernel initialized")
	return &Kernel{cfg: cfg}
}

// Config returns the kernel's active configuration.
func (k *Kernel) Config() Config {
	return k.cfg
}

type currentKey struct{}

// WithCurrent attaches p as the current process of ctx. SpawnThread uses
// it to give each thread body its process; the shell and the tests use it
// to act on behalf of a given process. The kernel entry points only read
// current, never write it (spec.md §9).
func WithCurrent(ctx context.Context, p *Process) context.Context {
	return context.WithValue(ctx, currentKey{}, p)
}

// CurrentFromContext returns the process associated with ctx by
// WithCurrent, or nil if none was attached (the bootstrap context before
// the idle process exists).
func CurrentFromContext(ctx context.Context) *Process {
	p, _ := ctx.Value(currentKey{}).(*Process)
	return p
}

func logrusFields(cfg Config) map[string]interface{} {
	return map[string]interface{}{
		"proc_max_count": cfg.ProcMaxCount,
		"proc_name_len":  cfg.ProcNameLen,
		"nfiles":         cfg.NFiles,
	}
}
