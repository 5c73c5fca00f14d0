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
	"testing"
	"time"

	"github.com/munshihimali/weenix/pkg/kthread"
	"github.com/stretchr/testify/require"
)

// Property: no two processes in the table ever share a PID.
func TestPIDUniqueness(t *testing.T) {
	k, _, init := bootstrap(t)
	initCtx := WithCurrent(context.Background(), init)
	for i := 0; i < 20; i++ {
		k.CreateProcess(initCtx, "c")
	}

	seen := map[PID]bool{}
	for _, p := range k.List() {
		require.False(t, seen[p.PID], "duplicate pid %d", p.PID)
		seen[p.PID] = true
	}
}

// Property: every process with a non-nil parent appears in that
// parent's Children exactly once.
func TestChildParentSymmetry(t *testing.T) {
	k, _, init := bootstrap(t)
	initCtx := WithCurrent(context.Background(), init)
	for i := 0; i < 5; i++ {
		k.CreateProcess(initCtx, "c")
	}

	for _, p := range k.List() {
		if p.Parent == nil {
			continue
		}
		count := 0
		for _, c := range p.Parent.Children {
			if c == p {
				count++
			}
		}
		require.Equal(t, 1, count, "pid %d not exactly once in parent's children", p.PID)
	}
}

// Property: cleanup runs at most once per process; State transitions
// RUNNING -> DEAD at most once. Calling Cleanup a second time on an
// already-dead process must panic rather than silently re-run.
func TestSingleCleanup(t *testing.T) {
	k, _, init := bootstrap(t)
	initCtx := WithCurrent(context.Background(), init)
	a := k.CreateProcess(initCtx, "A")
	aCtx := WithCurrent(context.Background(), a)
	k.SpawnThread(context.Background(), a, exitBody(k, 0))

	require.Eventually(t, func() bool {
		k.mu.Lock()
		defer k.mu.Unlock()
		return a.State == StateDead
	}, time.Second, time.Millisecond)

	require.Panics(t, func() {
		k.Cleanup(aCtx, 1)
	})
}

// Property ("reap ordering"): after waitpid returns a PID, that process
// is no longer in the process table and its threads have been
// destroyed (observably EXITED, and no longer reachable via the
// process's own Threads slice holding a live reference needed for
// further use).
func TestReapOrdering(t *testing.T) {
	k, _, init := bootstrap(t)
	initCtx := WithCurrent(context.Background(), init)
	a := k.CreateProcess(initCtx, "A")
	k.SpawnThread(context.Background(), a, exitBody(k, 3))

	r := requireResult(t, waitpidAsync(k, initCtx, -1, 0))
	require.Equal(t, a.PID, r.pid)

	require.Nil(t, k.Lookup(a.PID))
	for _, p := range k.List() {
		require.NotEqual(t, a.PID, p.PID)
	}
	for _, th := range a.Threads {
		require.Equal(t, kthread.Exited, th.State())
	}
}

// -ECHILD discipline: waitpid returns ECHILD iff the target has no
// matching child (either no children at all for -1, or no child with
// the given PID).
func TestECHILDDiscipline(t *testing.T) {
	k, _, init := bootstrap(t)
	initCtx := WithCurrent(context.Background(), init)

	_, _, err := k.DoWaitpid(initCtx, -1, 0)
	require.ErrorIs(t, err, ErrNoChild)

	a := k.CreateProcess(initCtx, "A")
	_, _, err = k.DoWaitpid(initCtx, int(a.PID)+50, 0)
	require.ErrorIs(t, err, ErrNoChild)
}

func TestWaitpidRejectsNonZeroOptions(t *testing.T) {
	k, _, init := bootstrap(t)
	initCtx := WithCurrent(context.Background(), init)
	k.CreateProcess(initCtx, "A")

	_, _, err := k.DoWaitpid(initCtx, -1, 1)
	require.ErrorIs(t, err, ErrInvalidOptions)
}
