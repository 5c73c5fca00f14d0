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

// SpawnThread starts a new kernel thread belonging to p and registers it
// in p.Threads. body runs with p attached to its context as the current
// process, so any kernel entry point it calls (DoExit, DoWaitpid, ...)
// observes CurrentFromContext(ctx) == p.
//
// A process may only own more than one thread when the kernel was
// configured with MultiThreaded (spec.md §1 Non-goals), standing in for
// the original's __MTP__ build flag.
func (k *Kernel) SpawnThread(ctx context.Context, p *Process, body kthread.Body) *kthread.Thread {
	t := kthread.New()

	k.mu.Lock()
	if len(p.Threads) > 0 && !k.cfg.MultiThreaded {
		k.mu.Unlock()
		assert(false, "proc: multi-threaded process creation requires MultiThreaded config")
	}
	p.Threads = append(p.Threads, t)
	k.mu.Unlock()

	t.Start(WithCurrent(ctx, p), body, k.threadExitHook)
	return t
}

// threadExitHook is wired in as every spawned thread's kthread.ExitHook,
// implementing proc_thread_exited (spec.md §4.E): it is the sole bridge
// from a thread terminating to process cleanup.
func (k *Kernel) threadExitHook(ctx context.Context, _ *kthread.Thread, retval int) {
	k.ThreadExited(ctx, retval)
}

// ThreadExited is invoked by the threading layer when any thread of the
// current process terminates (spec.md §4.E). If any other thread of the
// current process has not yet reached Exited, it returns without further
// action — more threads must drain first. Otherwise it drives cleanup
// with retval reinterpreted as the exit status, making the
// single-threaded case equivalent to "thread exit implies process
// cleanup" without special-casing.
func (k *Kernel) ThreadExited(ctx context.Context, retval int) {
	p := CurrentFromContext(ctx)
	assert(p != nil, "proc: ThreadExited called with no current process")

	k.mu.Lock()
	for _, t := range p.Threads {
		if t.State() != kthread.Exited {
			k.mu.Unlock()
			return
		}
	}
	k.mu.Unlock()

	k.cleanup(ctx, p, retval)
}
