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

	"github.com/stretchr/testify/require"
)

type waitResult struct {
	pid    PID
	status int
	err    error
}

// waitpidAsync runs DoWaitpid in a goroutine and returns a channel for
// its result, so tests can exercise the blocking any-child/specific-PID
// paths without deadlocking the test goroutine itself.
func waitpidAsync(k *Kernel, ctx context.Context, target, options int) <-chan waitResult {
	ch := make(chan waitResult, 1)
	go func() {
		pid, status, err := k.DoWaitpid(ctx, target, options)
		ch <- waitResult{pid, status, err}
	}()
	return ch
}

func requireResult(t *testing.T, ch <-chan waitResult) waitResult {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("DoWaitpid did not return in time")
		return waitResult{}
	}
}

// S1: idle creates init; init creates A; A exits with status 7; init's
// waitpid(-1) reaps A and the table is left with exactly {idle, init}.
func TestS1SimpleReap(t *testing.T) {
	k, idle, init := bootstrap(t)
	initCtx := WithCurrent(context.Background(), init)

	a := k.CreateProcess(initCtx, "A")
	k.SpawnThread(context.Background(), a, exitBody(k, 7))

	r := requireResult(t, waitpidAsync(k, initCtx, -1, 0))
	require.NoError(t, r.err)
	require.Equal(t, a.PID, r.pid)
	require.Equal(t, 7, r.status)
	require.Equal(t, []*Process{idle, init}, k.List())
}

// S2: init creates A and B. B exits with status 9 first. init calls
// waitpid(A.PID) and must block until A exits with status 4; a
// subsequent waitpid(-1) then returns B.
func TestS2SpecificPID(t *testing.T) {
	k, _, init := bootstrap(t)
	initCtx := WithCurrent(context.Background(), init)

	a := k.CreateProcess(initCtx, "A")
	k.SpawnThread(context.Background(), a, sleeperBody)
	b := k.CreateProcess(initCtx, "B")
	k.SpawnThread(context.Background(), b, exitBody(k, 9))

	// Give B a moment to actually exit before we wait on A, so the
	// specific-PID wait genuinely has to block rather than happening to
	// race past a trivial win.
	require.Eventually(t, func() bool {
		k.mu.Lock()
		defer k.mu.Unlock()
		return b.State == StateDead
	}, time.Second, time.Millisecond)

	ch := waitpidAsync(k, initCtx, int(a.PID), 0)
	select {
	case <-ch:
		t.Fatal("waitpid(A) returned before A exited")
	case <-time.After(50 * time.Millisecond):
	}

	k.Kill(initCtx, a, 4)
	r := requireResult(t, ch)
	require.NoError(t, r.err)
	require.Equal(t, a.PID, r.pid)
	require.Equal(t, 4, r.status)

	r2 := requireResult(t, waitpidAsync(k, initCtx, -1, 0))
	require.NoError(t, r2.err)
	require.Equal(t, b.PID, r2.pid)
	require.Equal(t, 9, r2.status)
}

// S3: init has no children; waitpid(-1) returns ECHILD immediately.
func TestS3NoChildren(t *testing.T) {
	k, _, init := bootstrap(t)
	initCtx := WithCurrent(context.Background(), init)

	_, _, err := k.DoWaitpid(initCtx, -1, 0)
	require.ErrorIs(t, err, ErrNoChild)
}

// S4: init has child A, but waits for PID 99, which is not a child.
func TestS4NotAChild(t *testing.T) {
	k, _, init := bootstrap(t)
	initCtx := WithCurrent(context.Background(), init)
	k.CreateProcess(initCtx, "A")

	_, _, err := k.DoWaitpid(initCtx, 99, 0)
	require.ErrorIs(t, err, ErrNoChild)
}

// S5: init creates A; A creates B; A exits before B. After A's cleanup,
// B must be reparented to init, and A stays in init's children as a
// zombie until it is reaped. waitpid(-1) from init first reaps A,
// then (once B exits) reaps B.
func TestS5Reparenting(t *testing.T) {
	k, _, init := bootstrap(t)
	initCtx := WithCurrent(context.Background(), init)

	a := k.CreateProcess(initCtx, "A")
	aCtx := WithCurrent(context.Background(), a)
	b := k.CreateProcess(aCtx, "B")
	k.SpawnThread(context.Background(), b, sleeperBody)
	k.SpawnThread(context.Background(), a, exitBody(k, 1))

	require.Eventually(t, func() bool {
		k.mu.Lock()
		defer k.mu.Unlock()
		return a.State == StateDead
	}, time.Second, time.Millisecond)

	k.mu.Lock()
	require.Same(t, init, b.Parent)
	require.Contains(t, init.Children, b)
	require.Contains(t, init.Children, a)
	k.mu.Unlock()

	r := requireResult(t, waitpidAsync(k, initCtx, -1, 0))
	require.Equal(t, a.PID, r.pid)

	k.Kill(initCtx, b, 0)
	r2 := requireResult(t, waitpidAsync(k, initCtx, -1, 0))
	require.Equal(t, b.PID, r2.pid)
}

// Property: a parent sleeping in waitpid(-1) resumes once any child
// completes cleanup, and reaps some dead child.
func TestWaitWakesAfterDeath(t *testing.T) {
	k, _, init := bootstrap(t)
	initCtx := WithCurrent(context.Background(), init)
	k.CreateProcess(initCtx, "A")

	ch := waitpidAsync(k, initCtx, -1, 0)
	select {
	case <-ch:
		t.Fatal("waitpid returned with no dead children")
	case <-time.After(30 * time.Millisecond):
	}

	a := k.Lookup(2)
	require.NotNil(t, a)
	k.SpawnThread(context.Background(), a, exitBody(k, 0))

	r := requireResult(t, ch)
	require.NoError(t, r.err)
	require.Equal(t, PID(2), r.pid)
}
