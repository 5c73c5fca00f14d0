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

import "github.com/sirupsen/logrus"

// log is the process core's structured logger, standing in for the
// "Debug/print: formatted assertion logger" collaborator of spec.md §6.
// The original kernel's dbg(DBG_PRINT, ...) call sites become
// log.WithFields(...).Debug(...) here.
var log = logrus.WithField("subsystem", "proc")

// assert panics with a labelled message if cond is false, the Go
// rendering of the original's KASSERT macro. spec.md §7 classifies
// invariant violations as fatal in the teaching kernel; logrus's Panic
// level both logs the labelled message and panics, matching that.
func assert(cond bool, format string, args ...interface{}) {
	if !cond {
		log.Panicf(format, args...)
	}
}
