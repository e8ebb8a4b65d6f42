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

package operator

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-logr/logr"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/owen-d/gratefulset/pkg/apiclient"
	"github.com/owen-d/gratefulset/pkg/apis/gratefulset/v1alpha1"
)

// PoolReconciler converges a single GratefulSetPool toward its declared spec
// by driving an underlying StatefulSet and sibling lease ConfigMap, per
// spec.md §4.2.
type PoolReconciler struct {
	client apiclient.ApiClient

	// onScaleDown is the designed extension point for a future scale-down
	// hook (HTTP callback, WAL flush). It is never set or invoked anywhere
	// in this repository; the non-goal it represents is the hook's
	// behavior, not this seam. See spec.md §9.
	onScaleDown func(ctx context.Context, pool *v1alpha1.GratefulSetPool, ordinal int32) error
}

func newPoolReconciler(c apiclient.ApiClient) *PoolReconciler {
	return &PoolReconciler{client: c}
}

func setupPoolController(op *Operator) error {
	return ctrl.NewControllerManagedBy(op.manager).
		Named("gratefulsetpool").
		For(&v1alpha1.GratefulSetPool{}).
		Owns(&appsv1.StatefulSet{}).
		Owns(&corev1.ConfigMap{}).
		Complete(newPoolReconciler(op.client))
}

func (r *PoolReconciler) Reconcile(ctx context.Context, req reconcile.Request) (reconcile.Result, error) {
	logger, _ := logr.FromContext(ctx)
	logger.WithValues("pool", req.NamespacedName).Info("reconciling gratefulsetpool")

	var pool v1alpha1.GratefulSetPool
	if err := r.client.Get(ctx, req.NamespacedName, &pool); apierrors.IsNotFound(err) {
		return settled()
	} else if err != nil {
		return requeueResult(fmt.Errorf("get gratefulsetpool: %w", err))
	}

	cmName := leaseConfigMapName(pool.Name)
	desired := withLockSpec(pool.Spec.Template, cmName)

	var sts appsv1.StatefulSet
	key := client.ObjectKey{Namespace: pool.Namespace, Name: pool.Name}
	err := r.client.Get(ctx, key, &sts)
	switch {
	case apierrors.IsNotFound(err):
		if err := r.applyStatefulSet(ctx, &pool, desired); err != nil {
			return requeueResult(fmt.Errorf("create statefulset: %w", err))
		}
		return requeueNow()
	case err != nil:
		return requeueResult(fmt.Errorf("get statefulset: %w", err))
	}

	if err := r.updateStatus(ctx, &pool, sts.Status); err != nil {
		return requeueResult(fmt.Errorf("update pool status: %w", err))
	}

	action := decidePool(desired, true, sts.Spec, sts.Status)
	switch action.kind {
	case poolNoop, poolWaitForRollout:
		return settled()

	case poolPatchTemplate:
		if err := r.applyStatefulSet(ctx, &pool, action.spec); err != nil {
			return requeueResult(fmt.Errorf("patch statefulset template: %w", err))
		}
		return settled()

	case poolScaleUp:
		if err := upsertLease(ctx, r.client, &pool, desiredLeaseKeys(action.replicas)); err != nil {
			return requeueResult(fmt.Errorf("upsert lease: %w", err))
		}
		scaled := desired
		scaled.Replicas = &action.replicas
		if err := r.applyStatefulSet(ctx, &pool, scaled); err != nil {
			return requeueResult(fmt.Errorf("scale up statefulset: %w", err))
		}
		return settled()

	case poolScaleDown:
		if err := revokeOrdinal(ctx, r.client, &pool, action.revokeOrdinal); err != nil {
			return requeueResult(fmt.Errorf("revoke lease: %w", err))
		}
		if !action.readyToPatch {
			return settled()
		}
		scaled := desired
		scaled.Replicas = &action.replicas
		if err := r.applyStatefulSet(ctx, &pool, scaled); err != nil {
			return requeueResult(fmt.Errorf("scale down statefulset: %w", err))
		}
		return settled()

	default:
		return settled()
	}
}

// applyStatefulSet server-side-applies spec as the StatefulSet owned by
// pool, using the same name and namespace as pool.
func (r *PoolReconciler) applyStatefulSet(ctx context.Context, pool *v1alpha1.GratefulSetPool, spec appsv1.StatefulSetSpec) error {
	sts := &appsv1.StatefulSet{
		TypeMeta: metav1.TypeMeta{APIVersion: "apps/v1", Kind: "StatefulSet"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      pool.Name,
			Namespace: pool.Namespace,
			OwnerReferences: []metav1.OwnerReference{
				*metav1.NewControllerRef(pool, gratefulSetPoolKind),
			},
		},
		Spec: spec,
	}
	return r.client.Patch(ctx, sts, client.Apply, client.FieldOwner(FieldManagerPool), client.ForceOwnership)
}

// updateStatus reflects stsStatus (the owned StatefulSet's status) onto
// pool, per spec.md §3 ("Status: reflected status of the underlying
// StatefulSet"). A noop when nothing changed.
func (r *PoolReconciler) updateStatus(ctx context.Context, pool *v1alpha1.GratefulSetPool, stsStatus appsv1.StatefulSetStatus) error {
	newStatus := v1alpha1.GratefulSetPoolStatus{
		ObservedGeneration: pool.Generation,
		StatefulSetStatus:  stsStatus,
	}
	if reflect.DeepEqual(pool.Status, newStatus) {
		return nil
	}
	pool.Status = newStatus
	return r.client.Status().Update(ctx, pool)
}
