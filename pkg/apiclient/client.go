// Copyright 2024 The GratefulSet Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package apiclient wraps a controller-runtime client.Client with the
// per-call deadline spec.md §5 requires, so that reconcile decision logic
// never has to reason about suspension directly: every Get, List, Create,
// Patch and Delete either returns or times out within callTimeout. Status()
// returns the wrapped client's status writer unchanged, so status writes
// carry no deadline of their own.
package apiclient

import (
	"context"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/client"
)

// callTimeout bounds every individual API call issued through an ApiClient,
// per spec.md §5 ("a per-call timeout of 30s is sufficient").
const callTimeout = 30 * time.Second

// ApiClient is the narrow surface both reconcilers use to read observed
// state and apply mutations. It exists so decision logic can be tested
// against a fake without reconcilers reaching for client.Client directly.
type ApiClient interface {
	Get(ctx context.Context, key client.ObjectKey, obj client.Object) error
	List(ctx context.Context, list client.ObjectList, opts ...client.ListOption) error
	Create(ctx context.Context, obj client.Object) error
	Patch(ctx context.Context, obj client.Object, patch client.Patch, opts ...client.PatchOption) error
	Delete(ctx context.Context, obj client.Object, opts ...client.DeleteOption) error
	Status() client.SubResourceWriter
}

type apiClient struct {
	c client.Client
}

// New wraps c, the manager's shared cache-backed client, as an ApiClient.
func New(c client.Client) ApiClient {
	return &apiClient{c: c}
}

func (a *apiClient) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, callTimeout)
}

func (a *apiClient) Get(ctx context.Context, key client.ObjectKey, obj client.Object) error {
	ctx, cancel := a.withDeadline(ctx)
	defer cancel()
	return a.c.Get(ctx, key, obj)
}

func (a *apiClient) List(ctx context.Context, list client.ObjectList, opts ...client.ListOption) error {
	ctx, cancel := a.withDeadline(ctx)
	defer cancel()
	return a.c.List(ctx, list, opts...)
}

func (a *apiClient) Create(ctx context.Context, obj client.Object) error {
	ctx, cancel := a.withDeadline(ctx)
	defer cancel()
	return a.c.Create(ctx, obj)
}

func (a *apiClient) Patch(ctx context.Context, obj client.Object, patch client.Patch, opts ...client.PatchOption) error {
	ctx, cancel := a.withDeadline(ctx)
	defer cancel()
	return a.c.Patch(ctx, obj, patch, opts...)
}

func (a *apiClient) Delete(ctx context.Context, obj client.Object, opts ...client.DeleteOption) error {
	ctx, cancel := a.withDeadline(ctx)
	defer cancel()
	return a.c.Delete(ctx, obj, opts...)
}

func (a *apiClient) Status() client.SubResourceWriter {
	return a.c.Status()
}
