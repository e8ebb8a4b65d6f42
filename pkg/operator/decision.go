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
	"reflect"

	appsv1 "k8s.io/api/apps/v1"
)

// poolKind tags the decision a reconcile of a GratefulSetPool must apply.
// Computed by decidePool, a pure function of observed and desired state;
// applied by (*PoolReconciler).Reconcile. See spec.md §9.
type poolKind int

const (
	poolNoop poolKind = iota
	poolCreate
	poolPatchTemplate
	poolWaitForRollout
	poolScaleUp
	poolScaleDown
)

// poolAction is the result of decidePool: a tag plus whatever data the apply
// stage needs to carry the action out.
type poolAction struct {
	kind poolKind
	// spec is the StatefulSetSpec to create or patch with, valid for
	// poolCreate and poolPatchTemplate.
	spec appsv1.StatefulSetSpec
	// replicas is the new spec.replicas value, valid for poolScaleUp and
	// poolScaleDown.
	replicas int32

	// revokeOrdinal and readyToPatch carry spec.md §4.2 state 6's two-phase
	// protocol for poolScaleDown: the ordinal to revoke (always, before any
	// replica reduction) and whether the drained replica has dropped out of
	// readiness yet, in which case replicas is also patched down.
	revokeOrdinal int32
	readyToPatch  bool
}

// decidePool implements spec.md §4.2's numbered state table. desired is the
// Pool's lease-injected StatefulSet spec (D); observedExists reports whether
// the underlying StatefulSet exists yet; observed and observedStatus are its
// spec and status when it does.
func decidePool(desired appsv1.StatefulSetSpec, observedExists bool, observed appsv1.StatefulSetSpec, observedStatus appsv1.StatefulSetStatus) poolAction {
	if !observedExists {
		return poolAction{kind: poolCreate, spec: desired}
	}

	d, o := desired, observed
	dPrime, oPrime := d, o
	dPrime.Replicas, oPrime.Replicas = nil, nil

	if reflect.DeepEqual(d, o) {
		return poolAction{kind: poolNoop}
	}

	if !reflect.DeepEqual(dPrime, oPrime) {
		patched := dPrime
		patched.Replicas = o.Replicas
		return poolAction{kind: poolPatchTemplate, spec: patched}
	}

	observedReplicas := int32(0)
	if o.Replicas != nil {
		observedReplicas = *o.Replicas
	}
	if observedReplicas != observedStatus.CurrentReplicas {
		return poolAction{kind: poolWaitForRollout}
	}

	desiredReplicas := int32(0)
	if d.Replicas != nil {
		desiredReplicas = *d.Replicas
	}

	switch {
	case desiredReplicas > observedReplicas:
		return poolAction{kind: poolScaleUp, replicas: desiredReplicas}
	case desiredReplicas < observedReplicas:
		return poolAction{
			kind:          poolScaleDown,
			revokeOrdinal: observedReplicas - 1,
			readyToPatch:  observedStatus.ReadyReplicas <= observedReplicas-1,
			replicas:      observedReplicas - 1,
		}
	default:
		return poolAction{kind: poolNoop}
	}
}
