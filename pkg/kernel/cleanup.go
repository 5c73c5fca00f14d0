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

import "context"

// Cleanup is proc_cleanup(status) from spec.md §6, exposed for
// collaborators that need to drive zombification directly rather than
// through ThreadExited (spec.md §4.E is the only caller in normal
// operation; this wrapper exists because spec.md §6 lists proc_cleanup
// itself as an exposed entry point).
func (k *Kernel) Cleanup(ctx context.Context, status int) {
	p := CurrentFromContext(ctx)
	assert(p != nil, "proc: Cleanup called with no current process")
	k.cleanup(ctx, p, status)
}

// cleanup transitions p from RUNNING to DEAD exactly once (spec.md
// §4.F): it records the exit status, reparents p's children to init,
// wakes p's parent if it is waiting, and releases every
// self-releasable resource (cwd, open files). The page directory and
// thread objects remain owned by p; they are destroyed by the reaping
// parent (spec.md §4.G) because the dying thread still needs them to
// unwind.
func (k *Kernel) cleanup(_ context.Context, p *Process, status int) {
	k.mu.Lock()
	defer k.mu.Unlock()

	assert(k.InitProcess != nil, "proc: cleanup with no init process")
	assert(p.PID >= PIDInit, "proc: cleanup of the idle process")
	assert(p.Parent != nil, "proc: cleanup of a process with no parent")
	assert(p.State == StateRunning, "proc: cleanup of an already-dead process")

	p.Status = status
	p.State = StateDead

	// Reparent every child to init, then drop them all from p.Children
	// at once, so the sequence is never spliced while it is walked.
	for _, c := range p.Children {
		c.Parent = k.InitProcess
		k.InitProcess.Children = append(k.InitProcess.Children, c)
	}
	p.Children = nil

	if !p.Parent.WaitQueue.Empty() {
		p.Parent.WaitQueue.BroadcastOn()
	}

	p.Cwd.Unref()
	p.Cwd = nil

	for fd, f := range p.Files {
		if f != nil && f.RefCount() > 0 {
			f.Close()
			p.Files[fd] = nil
		}
	}

	log.WithFields(map[string]interface{}{
		"pid": p.PID, "status": status,
	}).Debug("process cleaned up")
}
