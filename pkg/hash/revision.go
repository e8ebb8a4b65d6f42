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

// Package hash computes the stable 16-bit revision identifier that names a
// GratefulSetPool, over the immutable subset of a StatefulSet specification.
package hash

import (
	"fmt"
	"hash"
	"hash/fnv"
	"sort"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Revision returns the stable 16-bit identifier for the immutable subset of
// spec, as defined in spec.md §4.1. Equal hashes mean in-place update of the
// underlying StatefulSet is safe; unequal hashes mean a new Pool is needed.
//
// Replicas, Template (pod template), UpdateStrategy, and status are
// deliberately excluded: they are mutable dimensions managed independently
// of revision identity.
func Revision(spec *appsv1.StatefulSetSpec) uint16 {
	h := fnv.New64a()
	writeSpec(h, spec)
	return uint16(h.Sum64())
}

// Hex renders a revision hash as 4 lowercase hex digits, for use in Pool
// names.
func Hex(spec *appsv1.StatefulSetSpec) string {
	return fmt.Sprintf("%04x", Revision(spec))
}

func writeSpec(h hash.Hash, spec *appsv1.StatefulSetSpec) {
	writeString(h, string(spec.PodManagementPolicy))
	if spec.RevisionHistoryLimit != nil {
		writeString(h, fmt.Sprintf("%d", *spec.RevisionHistoryLimit))
	}
	writeSelector(h, spec.Selector)
	writeString(h, spec.ServiceName)

	for _, vct := range spec.VolumeClaimTemplates {
		writeVolumeClaimTemplate(h, vct)
	}
}

func writeSelector(h hash.Hash, sel *metav1.LabelSelector) {
	if sel == nil {
		return
	}
	for _, expr := range sel.MatchExpressions {
		writeString(h, expr.Key)
		writeString(h, string(expr.Operator))
		for _, v := range expr.Values {
			writeString(h, v)
		}
	}
	writeSortedMap(h, sel.MatchLabels)
}

func writeVolumeClaimTemplate(h hash.Hash, vct corev1.PersistentVolumeClaim) {
	md := vct.ObjectMeta
	writeSortedMap(h, md.Annotations)
	writeString(h, md.ClusterName)
	if md.DeletionGracePeriodSeconds != nil {
		writeString(h, fmt.Sprintf("%d", *md.DeletionGracePeriodSeconds))
	}
	for _, f := range md.Finalizers {
		writeString(h, f)
	}
	writeString(h, md.GenerateName)
	writeSortedMap(h, md.Labels)
	writeString(h, md.Name)
	writeString(h, md.Namespace)

	spec := vct.Spec
	for _, am := range spec.AccessModes {
		writeString(h, string(am))
	}
	writeSortedQuantities(h, spec.Resources.Limits)
	writeSortedQuantities(h, spec.Resources.Requests)
	writeSelector(h, spec.Selector)
	if spec.StorageClassName != nil {
		writeString(h, *spec.StorageClassName)
	}
	if spec.VolumeMode != nil {
		writeString(h, string(*spec.VolumeMode))
	}
	writeString(h, spec.VolumeName)
}

func writeSortedMap(h hash.Hash, m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeString(h, k)
		writeString(h, m[k])
	}
}

func writeSortedQuantities(h hash.Hash, m corev1.ResourceList) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		q := m[corev1.ResourceName(k)]
		writeString(h, k)
		writeString(h, (&q).String())
	}
}

func writeString(h hash.Hash, s string) {
	h.Write([]byte{0xff}) //nolint:errcheck // hash.Hash.Write never errors
	h.Write([]byte(s))
}
