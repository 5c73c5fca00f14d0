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

// Package vfs is a minimal stand-in for the filesystem layer: just enough
// of vref/vput/close and a root vnode for the process management core to
// hold a cwd reference and a per-process file-descriptor table. It is not
// a filesystem; it models only the reference-counting contract that
// process cleanup and reaping rely on.
package vfs

import "sync/atomic"

// Vnode is a reference-counted filesystem node. The process core only
// ever touches the root vnode (as cwd) through Ref/Unref/Path.
type Vnode struct {
	path string
	refs atomic.Int32
}

var root = &Vnode{path: "/"}

// RootVnode returns the VFS root, used to initialize a new process's cwd.
func RootVnode() *Vnode {
	return root
}

// Ref increments the vnode's reference count (vref).
func (v *Vnode) Ref() *Vnode {
	v.refs.Add(1)
	return v
}

// Unref drops a reference (vput). It is a programming error to drop more
// references than were taken.
func (v *Vnode) Unref() {
	if v.refs.Add(-1) < 0 {
		panic("vfs: vnode reference count went negative")
	}
}

// Path renders the vnode's path for human-facing reporting (spec.md's
// __GETCWD__ field in proc_info / proc_list_info).
func (v *Vnode) Path() string {
	return v.path
}

// File is an open-file handle, refcounted so that closing it from two
// file descriptors (dup) only releases the underlying resource once.
type File struct {
	refs atomic.Int32
}

// NewFile opens a fresh file handle with one reference.
func NewFile() *File {
	f := &File{}
	f.refs.Store(1)
	return f
}

// RefCount reports the current reference count.
func (f *File) RefCount() int32 {
	return f.refs.Load()
}

// Close drops a reference to the file (do_close(fd) in spec.md §4.F).
func (f *File) Close() {
	f.refs.Add(-1)
}
