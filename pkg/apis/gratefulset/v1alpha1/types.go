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

// Package v1alpha1 contains the GratefulSet and GratefulSetPool API types.
package v1alpha1

import (
	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// OwnerLabel is set on every GratefulSetPool to the name of its parent
// GratefulSet, and used by the SetReconciler to discover owned pools.
const OwnerLabel = "owner.pikach.us"

// GratefulSet describes a user's desired stateful workload. The controller
// converges the observed set of GratefulSetPools toward a single current
// Pool carrying this spec's StatefulSet template, migrating replicas from
// any old Pools one at a time.
//
// +genclient
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object
// +kubebuilder:subresource:status
// +kubebuilder:subresource:scale:specpath=.spec.template.replicas,statuspath=.status.replicas
type GratefulSet struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   GratefulSetSpec   `json:"spec"`
	Status GratefulSetStatus `json:"status,omitempty"`
}

// GratefulSetSpec is the desired state of a GratefulSet. Template is a full
// StatefulSet specification, including Replicas; the immutable subset of it
// (per the RevisionHasher field list) determines which Pool is "current".
type GratefulSetSpec struct {
	// Template is the desired StatefulSet specification for the current
	// Pool. Replicas here is the total desired replica count across all
	// Pools of this GratefulSet.
	Template appsv1.StatefulSetSpec `json:"template"`
}

// Replicas returns the desired total replica count, defaulting to 1 when
// unset (mirroring appsv1.StatefulSet's own default).
func (s GratefulSetSpec) Replicas() int32 {
	if s.Template.Replicas == nil {
		return 1
	}
	return *s.Template.Replicas
}

// GratefulSetStatus mirrors the replica counts of the union of managed
// Pools, giving operators a live view of migration progress.
type GratefulSetStatus struct {
	// ObservedGeneration is the GratefulSet generation last acted on by
	// the controller.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
	// Replicas is the sum of ready replicas across all owned Pools.
	Replicas int32 `json:"replicas"`
	// CurrentPool is the name of the Pool whose revision hash matches the
	// desired hash, if one has been created yet.
	// +optional
	CurrentPool string `json:"currentPool,omitempty"`
	// OldPools lists the names of Pools still draining toward deletion.
	// +optional
	OldPools []string `json:"oldPools,omitempty"`
}

// GratefulSetList is a list of GratefulSets.
//
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object
type GratefulSetList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`

	Items []GratefulSet `json:"items"`
}

// GratefulSetPool is one concrete revision of a GratefulSet's stateful
// workload: a StatefulSet plus a lease ConfigMap, keyed by the hash of its
// immutable fields. Its name is always `<parent>-<hex16-revision-hash>`.
//
// +genclient
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object
// +kubebuilder:subresource:status
// +kubebuilder:subresource:scale:specpath=.spec.template.replicas,statuspath=.status.replicas
type GratefulSetPool struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   GratefulSetPoolSpec   `json:"spec"`
	Status GratefulSetPoolStatus `json:"status,omitempty"`
}

// GratefulSetPoolSpec is the desired state of a GratefulSetPool: a
// StatefulSet specification, including a lease-injected pod template once
// realized onto the underlying StatefulSet by the PoolReconciler.
type GratefulSetPoolSpec struct {
	Template appsv1.StatefulSetSpec `json:"template"`
}

// Replicas returns the desired replica count for this Pool, defaulting to 0
// (a newly-created Pool always starts at zero replicas).
func (s GratefulSetPoolSpec) Replicas() int32 {
	if s.Template.Replicas == nil {
		return 0
	}
	return *s.Template.Replicas
}

// GratefulSetPoolStatus reflects the status of the underlying StatefulSet.
type GratefulSetPoolStatus struct {
	// ObservedGeneration is the GratefulSetPool generation last acted on
	// by the controller.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
	// StatefulSetStatus is copied verbatim from the owned StatefulSet.
	appsv1.StatefulSetStatus `json:",inline"`
}

// GratefulSetPoolList is a list of GratefulSetPools.
//
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object
type GratefulSetPoolList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`

	Items []GratefulSetPool `json:"items"`
}
