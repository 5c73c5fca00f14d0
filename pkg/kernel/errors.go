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

import "golang.org/x/sys/unix"

// ErrNoChild is returned by DoWaitpid when the current process has no
// children, or the requested PID is not one of them (spec.md §7's
// "no reapable child"). unix.Errno already implements error, so no
// wrapper type is introduced.
var ErrNoChild = unix.ECHILD

// ErrInvalidOptions is returned by DoWaitpid for any options value other
// than 0, per spec.md §9's resolution of the "options != 0" open
// question.
var ErrInvalidOptions = unix.EINVAL
