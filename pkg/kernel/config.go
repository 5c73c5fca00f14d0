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

import "github.com/BurntSushi/toml"

// PID identifies a process, in [0, Config.ProcMaxCount).
type PID int

// Distinguished process identifiers, per spec.md §3.
const (
	// PIDIdle is the bootstrap process. It never exits and may create
	// only PIDInit.
	PIDIdle PID = 0
	// PIDInit adopts orphaned children and may not itself be reaped.
	PIDInit PID = 1
	// PIDDaemon is reserved by kill_all policy (spec.md §4.H).
	PIDDaemon PID = 2
)

// Config holds the compile-time constants of spec.md §6. They are
// expressed here as a struct, loadable from an optional TOML file,
// rather than as Go consts, because the Weenix course kernel's own
// config.h is itself a tunable the grader overrides per-assignment; TOML
// is the Go analogue of that override point.
type Config struct {
	// ProcMaxCount bounds the PID namespace: PIDs live in
	// [0, ProcMaxCount).
	ProcMaxCount int `toml:"proc_max_count"`
	// ProcNameLen bounds Process.Comm, NUL-budget included.
	ProcNameLen int `toml:"proc_name_len"`
	// NFiles is the size of a process's file-descriptor table.
	NFiles int `toml:"nfiles"`
	// MultiThreaded gates whether a process may own more than one
	// thread, standing in for the original's __MTP__ compile flag
	// (spec.md §1 Non-goals: "multi-threaded processes are optional").
	MultiThreaded bool `toml:"multi_threaded"`
}

// DefaultConfig returns the built-in constants used when no TOML
// override file is supplied.
func DefaultConfig() Config {
	return Config{
		ProcMaxCount:  256,
		ProcNameLen:   32,
		NFiles:        32,
		MultiThreaded: false,
	}
}

// LoadConfig reads a TOML file at path and overlays it onto
// DefaultConfig, returning the merged configuration. An empty path
// returns DefaultConfig unchanged; a file that cannot be read or parsed
// is an error. A partially-specified file is not an error: unset fields
// keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
