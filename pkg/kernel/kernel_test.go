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

	"github.com/munshihimali/weenix/pkg/kthread"
	"github.com/stretchr/testify/require"
)

// sleeperBody blocks until cancelled and returns the cancellation
// payload — the body used for every process in these tests that is
// meant to be woken by Kill/KillAll rather than exit on its own.
func sleeperBody(ctx context.Context, self *kthread.Thread) int {
	<-ctx.Done()
	return self.Payload()
}

// exitBody calls DoExit(status) on its own process and returns status,
// simulating a process that voluntarily exits.
func exitBody(k *Kernel, status int) kthread.Body {
	return func(ctx context.Context, self *kthread.Thread) int {
		k.DoExit(ctx, status)
		return status
	}
}

// bootstrap creates a fresh kernel along with a running idle and init
// process, each with a single sleeper thread, matching the boot sequence
// implied throughout spec.md (idle creates init, PID 1).
func bootstrap(t *testing.T) (k *Kernel, idle, init *Process) {
	t.Helper()
	k = New(DefaultConfig())

	idle = k.CreateProcess(context.Background(), "idle")
	require.Equal(t, PIDIdle, idle.PID)
	k.SpawnThread(context.Background(), idle, sleeperBody)

	idleCtx := WithCurrent(context.Background(), idle)
	init = k.CreateProcess(idleCtx, "init")
	require.Equal(t, PIDInit, init.PID)
	require.Same(t, init, k.InitProcess)
	k.SpawnThread(idleCtx, init, sleeperBody)

	return k, idle, init
}

// spawnChild creates a process as a child of parent and gives it one
// sleeper thread, returning the process and a context with it attached
// as current (for callers that need to act as that process, e.g. to
// create grandchildren or call DoExit on themselves).
func spawnChild(k *Kernel, parentCtx context.Context, name string) (*Process, context.Context) {
	p := k.CreateProcess(parentCtx, name)
	ctx := WithCurrent(context.Background(), p)
	k.SpawnThread(context.Background(), p, sleeperBody)
	return p, ctx
}

func TestBootstrapInvariants(t *testing.T) {
	k, idle, init := bootstrap(t)
	require.Nil(t, idle.Parent)
	require.Same(t, idle, init.Parent)
	require.Contains(t, init.Parent.Children, init)
	require.Equal(t, []*Process{idle, init}, k.List())
}

func TestCreateProcessTruncatesName(t *testing.T) {
	k, _, init := bootstrap(t)
	initCtx := WithCurrent(context.Background(), init)
	long := "a-name-that-is-much-longer-than-the-configured-limit"
	p := k.CreateProcess(initCtx, long)
	require.Less(t, len(p.Comm), k.Config().ProcNameLen)
	require.Equal(t, long[:k.Config().ProcNameLen-1], p.Comm)
}

func TestCreateProcessRejectsBadPIDInvariants(t *testing.T) {
	// A second "idle" process, created once the table is non-empty,
	// must not be able to reuse PIDIdle (invariant 5). We cannot
	// observe this directly without controlling PID allocation, but we
	// can assert the first-ever process is always idle and the second
	// is always init when created from idle, which is what CreateProcess
	// enforces via assert().
	_, idle, init := bootstrap(t)
	require.Equal(t, PIDIdle, idle.PID)
	require.Equal(t, PIDInit, init.PID)

	// Invariant 6 is observable: once idle exists, a process created with
	// no current process would get PIDInit without an idle parent, and
	// CreateProcess must panic.
	k2 := New(DefaultConfig())
	k2.CreateProcess(context.Background(), "idle")
	require.Panics(t, func() {
		k2.CreateProcess(context.Background(), "orphan")
	})
}
