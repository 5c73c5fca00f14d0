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

// DoWaitpid is do_waitpid(pid, options, &status) from spec.md §4.G.
// target is -1 for "any child" or a positive PID for a specific child;
// options must be 0 (spec.md §9 resolves the "options != 0" open
// question by rejecting it outright).
//
// It blocks the calling goroutine (by sleeping on the current process's
// wait queue) until a matching child is DEAD, then reaps it and returns
// its PID and exit status. It returns ErrNoChild immediately if the
// current process has no children, or if target names a PID that is not
// one of them.
func (k *Kernel) DoWaitpid(ctx context.Context, target int, options int) (PID, int, error) {
	if options != 0 {
		return 0, 0, ErrInvalidOptions
	}

	p := CurrentFromContext(ctx)
	assert(p != nil, "proc: DoWaitpid called with no current process")
	assert(target == -1 || target > 0, "proc: DoWaitpid target must be -1 or positive, got %d", target)

	k.mu.Lock()
	defer k.mu.Unlock()

	if len(p.Children) == 0 {
		return 0, 0, ErrNoChild
	}

	if target == -1 {
		for {
			for _, c := range p.Children {
				if c.State == StateDead {
					return k.reapLocked(p, c)
				}
			}
			p.WaitQueue.SleepOn()
		}
	}

	var child *Process
	for _, c := range p.Children {
		if int(c.PID) == target {
			child = c
			break
		}
	}
	if child == nil {
		return 0, 0, ErrNoChild
	}

	// Corrected per spec.md §9: sleep only while the matched child is
	// still running. The original C source slept unconditionally here,
	// which would hang forever on a child that was already DEAD by the
	// time waitpid was called for it.
	for child.State != StateDead {
		p.WaitQueue.SleepOn()
	}
	return k.reapLocked(p, child)
}

// reapLocked destroys a DEAD child's threads and page directory, and
// removes it from its parent's children and from the process table
// (spec.md §4.G). The caller must hold k.mu.
func (k *Kernel) reapLocked(parent, c *Process) (PID, int, error) {
	status := c.Status
	pid := c.PID

	assert(c.PageDirectory != nil, "proc: reap of a child with no page directory")
	for _, t := range c.Threads {
		assert(t.State() == kthread.Exited, "proc: reap of a child with a non-exited thread")
		kthread.Destroy(t)
	}
	c.PageDirectory.Destroy()

	removeChild(parent, c)
	k.unregister(c)

	log.WithFields(map[string]interface{}{
		"pid": pid, "status": status, "parent": parent.PID,
	}).Debug("process reaped")
	return pid, status, nil
}

// removeChild detaches c from parent.Children.
func removeChild(parent, c *Process) {
	for i, child := range parent.Children {
		if child == c {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return
		}
	}
}
