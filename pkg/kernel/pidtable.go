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

// nextID scans the process table for a collision with a
// monotonically-increasing candidate modulo ProcMaxCount, advancing on
// collision, per spec.md §4.A. The caller must hold k.mu. ok is false
// only once every PID in the namespace is in use.
//
// Complexity is amortized O(n) when PIDs have never wrapped and O(n^2)
// worst case, same as the original _proc_getid in
// original_source/vfs-submit/kernel/proc/proc.c.
func (k *Kernel) nextID() (pid PID, ok bool) {
	candidate := k.nextPID
	for {
		if k.lookupLocked(candidate) == nil {
			k.nextPID = (candidate + 1) % PID(k.cfg.ProcMaxCount)
			return candidate, true
		}
		candidate = (candidate + 1) % PID(k.cfg.ProcMaxCount)
		if candidate == k.nextPID {
			return 0, false
		}
	}
}

// register appends p to the process table. The caller must hold k.mu.
func (k *Kernel) register(p *Process) {
	k.table = append(k.table, p)
}

// unregister detaches p from the process table. The caller must hold
// k.mu.
func (k *Kernel) unregister(p *Process) {
	for i, q := range k.table {
		if q == p {
			k.table = append(k.table[:i], k.table[i+1:]...)
			return
		}
	}
}

// lookupLocked returns the process with the given pid, or nil. The
// caller must hold k.mu.
func (k *Kernel) lookupLocked(pid PID) *Process {
	for _, p := range k.table {
		if p.PID == pid {
			return p
		}
	}
	return nil
}

// Lookup returns the process with the given pid, or nil if none is
// registered — proc_lookup(pid) from spec.md §6.
func (k *Kernel) Lookup(pid PID) *Process {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.lookupLocked(pid)
}

// List returns a snapshot of every registered process, in table order —
// proc_list() from spec.md §6, used for administrative enumeration and
// reporting.
func (k *Kernel) List() []*Process {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]*Process, len(k.table))
	copy(out, k.table)
	return out
}
