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

	"github.com/munshihimali/weenix/pkg/kthread"
)

// DoExit cancels every thread of the current process with payload
// status (spec.md §4.H). Because kernel threads here are goroutines
// rather than a single flow of control the scheduler can freeze, the
// calling goroutine is itself one of the cancelled threads: it should
// return promptly after calling DoExit and let its body observe
// ctx.Done() at its next cancellation point, which will drive
// ThreadExited and ultimately cleanup — DoExit never calls cleanup
// directly.
func (k *Kernel) DoExit(ctx context.Context, status int) {
	p := CurrentFromContext(ctx)
	assert(p != nil, "proc: DoExit called with no current process")
	k.cancelThreads(p, status)
}

// Kill cancels every thread of p with payload status, or delegates to
// DoExit if p is the current process (spec.md §4.H). This has nothing
// to do with POSIX signals: it is purely "cancel this process's
// threads".
func (k *Kernel) Kill(ctx context.Context, p *Process, status int) {
	if cur := CurrentFromContext(ctx); cur != nil && cur.PID == p.PID {
		k.DoExit(ctx, status)
		return
	}
	k.cancelThreads(p, status)
}

// KillAll cancels every process in the table except PIDIdle, PIDInit,
// PIDDaemon, and the current process, then finally kills the current
// process itself unless it is one of those three (spec.md §4.H). It
// never returns to its caller on the current thread if the current
// process is killed, for the same reason DoExit does not.
//
// spec.md §9 flags a bug in the original: it re-reads a stale loop
// variable to decide whether to kill "self" at the end, rather than
// using curproc directly. This implementation captures the current
// process once, up front, and uses that value throughout — never the
// range variable from the kill loop.
func (k *Kernel) KillAll(ctx context.Context) {
	current := CurrentFromContext(ctx)
	assert(current != nil, "proc: KillAll called with no current process")

	protected := map[PID]bool{
		PIDIdle:   true,
		PIDInit:   true,
		PIDDaemon: true,
	}

	for _, p := range k.List() {
		if p.PID == current.PID || protected[p.PID] {
			continue
		}
		k.Kill(ctx, p, p.Status)
	}

	if !protected[current.PID] {
		k.Kill(ctx, current, current.Status)
	}
}

// cancelThreads requests cancellation of every thread in p, with
// payload. It takes a snapshot of p.Threads under the lock and cancels
// each thread after releasing it, so no Cancel call happens while k.mu
// is held.
func (k *Kernel) cancelThreads(p *Process, status int) {
	k.mu.Lock()
	threads := make([]*kthread.Thread, len(p.Threads))
	copy(threads, p.Threads)
	k.mu.Unlock()

	for _, t := range threads {
		t.Cancel(status)
	}
}
