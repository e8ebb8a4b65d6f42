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
	"fmt"

	"github.com/owen-d/gratefulset/pkg/apis/gratefulset/v1alpha1"
)

var (
	gratefulSetKind     = v1alpha1.SchemeGroupVersion.WithKind("GratefulSet")
	gratefulSetPoolKind = v1alpha1.SchemeGroupVersion.WithKind("GratefulSetPool")
)

const (
	// FieldManagerSet is the server-side-apply field manager used by the
	// SetReconciler (spec.md §6).
	FieldManagerSet = "gratefulset-mgr"
	// FieldManagerPool is the server-side-apply field manager used by the
	// PoolReconciler (spec.md §6).
	FieldManagerPool = "gratefulsetpool-mgr"

	// LeaseVolumeName is the fixed name of the volume mounting a Pool's
	// lease ConfigMap into its pods.
	LeaseVolumeName = "pikach.us-locks"
	// LeaseMountPath is the fixed mount path for the lease volume.
	LeaseMountPath = "/locks"
	// UnlockerContainerName is the name of the injected init container
	// that gates pod start-up on the presence of its ordinal's lease.
	UnlockerContainerName = "gsp-unlocker"
	// UnlockerImage is a minimal shell image sufficient to read a file and
	// exit 0/1. It never talks to the Kubernetes API.
	UnlockerImage = "busybox:stable"

	// crdGroup is the API group used to build the CRD resource names
	// checked at startup.
	crdGroup = v1alpha1.GroupName
)

// poolName derives the name of the Pool of setName with the given revision
// hash hex string, per spec.md §6: "<GratefulSet-name>-<hex16-of-revision-hash>".
func poolName(setName, hashHex string) string {
	return fmt.Sprintf("%s-%s", setName, hashHex)
}

// leaseConfigMapName derives the name of a Pool's lease ConfigMap, per
// spec.md §6: "<Pool-name>-lock".
func leaseConfigMapName(poolName string) string {
	return poolName + "-lock"
}

// ownerLabels returns the labels a Pool owned by setName must carry.
func ownerLabels(setName string) map[string]string {
	return map[string]string{v1alpha1.OwnerLabel: setName}
}
