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
	"sort"

	"github.com/go-logr/logr"
	appsv1 "k8s.io/api/apps/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/owen-d/gratefulset/pkg/apiclient"
	"github.com/owen-d/gratefulset/pkg/apis/gratefulset/v1alpha1"
	"github.com/owen-d/gratefulset/pkg/hash"
)

// SetReconciler converges a single GratefulSet toward having exactly one
// current Pool at the desired replica count, per spec.md §4.3.
type SetReconciler struct {
	client apiclient.ApiClient
}

func newSetReconciler(c apiclient.ApiClient) *SetReconciler {
	return &SetReconciler{client: c}
}

func setupSetController(op *Operator) error {
	return ctrl.NewControllerManagedBy(op.manager).
		Named("gratefulset").
		For(&v1alpha1.GratefulSet{}).
		Owns(&v1alpha1.GratefulSetPool{}).
		Complete(newSetReconciler(op.client))
}

func (r *SetReconciler) Reconcile(ctx context.Context, req reconcile.Request) (reconcile.Result, error) {
	logger, _ := logr.FromContext(ctx)
	logger.WithValues("gratefulset", req.NamespacedName).Info("reconciling gratefulset")

	var gs v1alpha1.GratefulSet
	if err := r.client.Get(ctx, req.NamespacedName, &gs); apierrors.IsNotFound(err) {
		return settled()
	} else if err != nil {
		return requeueResult(fmt.Errorf("get gratefulset: %w", err))
	}

	var pools v1alpha1.GratefulSetPoolList
	sel := labels.SelectorFromSet(ownerLabels(gs.Name))
	if err := r.client.List(ctx, &pools, client.InNamespace(gs.Namespace), client.MatchingLabelsSelector{Selector: sel}); err != nil {
		return requeueResult(fmt.Errorf("list gratefulsetpools: %w", err))
	}

	desiredHash := hash.Revision(&gs.Spec.Template)

	poolsByName := make(map[string]*v1alpha1.GratefulSetPool, len(pools.Items))
	var cur *v1alpha1.GratefulSetPool
	var old []observedPool
	var readyTotal int32
	for i := range pools.Items {
		p := &pools.Items[i]
		poolsByName[p.Name] = p
		readyTotal += p.Status.ReadyReplicas
		if hash.Revision(&p.Spec.Template) == desiredHash {
			cur = p
			continue
		}
		old = append(old, observedPool{name: p.Name, replicas: p.Spec.Replicas(), readyReplicas: p.Status.ReadyReplicas})
	}

	curName := poolName(gs.Name, hash.Hex(&gs.Spec.Template))
	curExists := cur != nil
	curSpec := gs.Spec.Template
	var curReplicas int32
	if curExists {
		curName = cur.Name
		curSpec = cur.Spec.Template
		curReplicas = cur.Spec.Replicas()
	}

	if err := r.updateStatus(ctx, &gs, curName, curExists, old, readyTotal); err != nil {
		return requeueResult(fmt.Errorf("update gratefulset status: %w", err))
	}

	action := decideSet(gs.Spec.Template, gs.Spec.Replicas(), curName, curExists, curSpec, curReplicas, old, readyTotal)

	switch action.kind {
	case setDeleteOld:
		for _, name := range action.toDelete {
			p, ok := poolsByName[name]
			if !ok {
				continue
			}
			if err := r.client.Delete(ctx, p); client.IgnoreNotFound(err) != nil {
				return requeueResult(fmt.Errorf("delete old pool %s: %w", name, err))
			}
		}
		return settled()

	case setCreateCurrent:
		if err := r.applyPool(ctx, &gs, action.currentName, action.spec); err != nil {
			return requeueResult(fmt.Errorf("create current pool: %w", err))
		}
		return requeueNow()

	case setPatchTemplate:
		if err := r.applyPool(ctx, &gs, action.currentName, action.spec); err != nil {
			return requeueResult(fmt.Errorf("patch current pool template: %w", err))
		}
		return settled()

	case setScaleUp, setScaleDown:
		spec := gs.Spec.Template
		if target, ok := poolsByName[action.target]; ok {
			spec = target.Spec.Template
		}
		replicas := action.replicas
		spec.Replicas = &replicas
		if err := r.applyPool(ctx, &gs, action.target, spec); err != nil {
			return requeueResult(fmt.Errorf("scale pool %s: %w", action.target, err))
		}
		return settled()

	default:
		return settled()
	}
}

// applyPool server-side-applies a GratefulSetPool named name, owned by gs,
// with the given StatefulSet spec.
func (r *SetReconciler) applyPool(ctx context.Context, gs *v1alpha1.GratefulSet, name string, spec appsv1.StatefulSetSpec) error {
	pool := &v1alpha1.GratefulSetPool{
		TypeMeta: metav1.TypeMeta{APIVersion: v1alpha1.SchemeGroupVersion.String(), Kind: "GratefulSetPool"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: gs.Namespace,
			Labels:    ownerLabels(gs.Name),
			OwnerReferences: []metav1.OwnerReference{
				*metav1.NewControllerRef(gs, gratefulSetKind),
			},
		},
		Spec: v1alpha1.GratefulSetPoolSpec{Template: spec},
	}
	return r.client.Patch(ctx, pool, client.Apply, client.FieldOwner(FieldManagerSet), client.ForceOwnership)
}

// updateStatus mirrors the replica counts of the union of managed Pools
// onto gs, per spec.md §3 and §7 ("the GratefulSet's status reflects the
// sum of its Pools' observed replica counts"). A noop when nothing changed.
func (r *SetReconciler) updateStatus(ctx context.Context, gs *v1alpha1.GratefulSet, curName string, curExists bool, old []observedPool, readyTotal int32) error {
	var oldNames []string
	for _, p := range old {
		oldNames = append(oldNames, p.name)
	}
	sort.Strings(oldNames)

	newStatus := v1alpha1.GratefulSetStatus{
		ObservedGeneration: gs.Generation,
		Replicas:           readyTotal,
		OldPools:           oldNames,
	}
	if curExists {
		newStatus.CurrentPool = curName
	}
	if reflect.DeepEqual(gs.Status, newStatus) {
		return nil
	}
	gs.Status = newStatus
	return r.client.Status().Update(ctx, gs)
}
