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
	"sort"

	appsv1 "k8s.io/api/apps/v1"
)

// setKind tags the decision a reconcile of a GratefulSet must apply.
// Computed by decideSet, a pure function; applied by
// (*SetReconciler).Reconcile. See spec.md §9.
type setKind int

const (
	setNoop setKind = iota
	setCreateCurrent
	setPatchTemplate
	setScaleUp
	setScaleDown
	setDeleteOld
)

// observedPool is the minimal view of a GratefulSetPool decideSet needs:
// enough to pick a scale-down target and drive replica math without
// depending on the API type directly, so it can be constructed from either
// a real list or a synthetic not-yet-created current Pool.
type observedPool struct {
	name          string
	replicas      int32
	readyReplicas int32
}

// setAction is the result of decideSet.
type setAction struct {
	kind setKind

	// spec is the StatefulSetSpec to create/patch the current Pool with,
	// valid for setCreateCurrent and setPatchTemplate.
	spec appsv1.StatefulSetSpec
	// currentName is the name of the current Pool to create or patch,
	// valid for setCreateCurrent and setPatchTemplate.
	currentName string

	// target and replicas describe a replica-count mutation, valid for
	// setScaleUp and setScaleDown.
	target   string
	replicas int32

	// toDelete lists Pool names to delete, valid for setDeleteOld.
	toDelete []string
}

// decideSet implements spec.md §4.3's convergence decision table. gsTemplate
// is the GratefulSet's desired StatefulSet spec; curName/curTemplate/curReplicas
// describe the current Pool (curExists false for the synthetic not-yet-created
// case); old lists every old Pool; readyTotal sums status.readyReplicas over
// every Pool (current and old) owned by the GratefulSet.
func decideSet(gsTemplate appsv1.StatefulSetSpec, desiredReplicas int32, curName string, curExists bool, curTemplate appsv1.StatefulSetSpec, curReplicas int32, old []observedPool, readyTotal int32) setAction {
	if curExists {
		_, draining := oldestDraining(old)
		if !mutableDiff(curTemplate, gsTemplate) && curReplicas == desiredReplicas && !draining {
			names := make([]string, 0, len(old))
			for _, p := range old {
				names = append(names, p.name)
			}
			sort.Strings(names)
			return setAction{kind: setDeleteOld, toDelete: names}
		}

		if mutableDiff(curTemplate, gsTemplate) && curReplicas > 0 {
			patched := gsTemplate
			patched.Replicas = &curReplicas
			return setAction{kind: setPatchTemplate, spec: patched, currentName: curName}
		}
	} else {
		zero := int32(0)
		created := gsTemplate
		created.Replicas = &zero
		return setAction{kind: setCreateCurrent, spec: created, currentName: curName}
	}

	if readyTotal >= desiredReplicas {
		if target, ok := oldestDraining(old); ok {
			return setAction{kind: setScaleDown, target: target.name, replicas: target.replicas - 1}
		}
		next := curReplicas - 1
		if next < 0 {
			next = 0
		}
		return setAction{kind: setScaleDown, target: curName, replicas: next}
	}

	return setAction{kind: setScaleUp, target: curName, replicas: curReplicas + 1}
}

// mutableDiff reports whether a and b differ anywhere but Replicas. Since
// callers only compare Pools already classified as sharing the current
// revision hash, any difference found here is confined to the mutable
// dimensions the RevisionHasher excludes (pod template, update strategy).
func mutableDiff(a, b appsv1.StatefulSetSpec) bool {
	a.Replicas, b.Replicas = nil, nil
	return !reflect.DeepEqual(a, b)
}

// oldestDraining picks the old Pool with positive replicas, breaking ties by
// lexicographically smallest name per spec.md §4.3.
func oldestDraining(old []observedPool) (observedPool, bool) {
	var best observedPool
	found := false
	for _, p := range old {
		if p.replicas <= 0 {
			continue
		}
		if !found || p.name < best.name {
			best = p
			found = true
		}
	}
	return best, found
}
