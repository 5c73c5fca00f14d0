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

// Package shellctx carries the kernel instance and output writer through
// a subcommands.Commander's context, so individual command
// implementations in shell/cmd can reach them without importing the
// shell package itself (which imports shell/cmd to register them).
package shellctx

import (
	"context"
	"io"

	"github.com/munshihimali/weenix/pkg/kernel"
)

type kernelKey struct{}
type writerKey struct{}

// WithKernel attaches k to ctx.
func WithKernel(ctx context.Context, k *kernel.Kernel) context.Context {
	return context.WithValue(ctx, kernelKey{}, k)
}

// Kernel recovers the kernel attached by WithKernel.
func Kernel(ctx context.Context) *kernel.Kernel {
	k, _ := ctx.Value(kernelKey{}).(*kernel.Kernel)
	return k
}

// WithWriter attaches w to ctx as the destination for command output.
func WithWriter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, writerKey{}, w)
}

// Writer recovers the writer attached by WithWriter, defaulting to
// io.Discard if none was attached.
func Writer(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(writerKey{}).(io.Writer); ok {
		return w
	}
	return io.Discard
}
