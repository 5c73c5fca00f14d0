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

// Package pagetable stands in for the virtual-memory layer's page
// directory. The process management core treats it as an opaque handle:
// it is created at process creation and destroyed only by the reaping
// parent, never by the dying process itself.
package pagetable

import "sync/atomic"

var nextID uint64

// PageDirectory is an opaque handle to a process's page directory. The
// real VM layer would back this with hardware page tables; here it is
// just an identity token that can be created and destroyed exactly once.
type PageDirectory struct {
	id        uint64
	destroyed atomic.Bool
}

// Create allocates a fresh page directory, standing in for
// pagetable_create() in spec.md §6.
func Create() *PageDirectory {
	return &PageDirectory{id: atomic.AddUint64(&nextID, 1)}
}

// ID returns the handle's identity, useful only for logging/reporting.
func (pd *PageDirectory) ID() uint64 {
	return pd.id
}

// Destroy releases the page directory. It must be called exactly once,
// by the reaping parent (spec.md §4.G), never by the owning process.
func (pd *PageDirectory) Destroy() {
	if !pd.destroyed.CompareAndSwap(false, true) {
		panic("pagetable: double destroy")
	}
}

// Destroyed reports whether Destroy has already run.
func (pd *PageDirectory) Destroyed() bool {
	return pd.destroyed.Load()
}
