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

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/owen-d/gratefulset/pkg/apiclient"
)

// leaseSentinel is the value stored at each lease key; its content is
// irrelevant, only key presence is meaningful (spec.md §3).
const leaseSentinel = "granted"

// desiredLeaseKeys returns the decimal-string ordinal keys
// {"0", ..., replicas-1} that a lease ConfigMap must carry at steady state.
func desiredLeaseKeys(replicas int32) map[string]string {
	data := make(map[string]string, replicas)
	for i := int32(0); i < replicas; i++ {
		data[fmt.Sprintf("%d", i)] = leaseSentinel
	}
	return data
}

// upsertLease server-side-applies the lease ConfigMap for pool so that its
// data is exactly keys. It is always safe to call blindly (spec.md §9's last
// Open Question): no read-modify-write is needed because the desired set is
// always computed fresh from the Pool's current replica count.
func upsertLease(ctx context.Context, c apiclient.ApiClient, pool metav1.Object, keys map[string]string) error {
	cm := &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      leaseConfigMapName(pool.GetName()),
			Namespace: pool.GetNamespace(),
			OwnerReferences: []metav1.OwnerReference{
				*metav1.NewControllerRef(pool, gratefulSetPoolKind),
			},
		},
		Data: keys,
	}
	return c.Patch(ctx, cm, client.Apply, client.FieldOwner(FieldManagerPool), client.ForceOwnership)
}

// revokeOrdinal removes ordinal's lease key from pool's ConfigMap, per
// spec.md §4.2 state 6a. It is a noop if the ConfigMap or key is already
// absent.
func revokeOrdinal(ctx context.Context, c apiclient.ApiClient, pool metav1.Object, ordinal int32) error {
	cm := &corev1.ConfigMap{}
	key := client.ObjectKey{Namespace: pool.GetNamespace(), Name: leaseConfigMapName(pool.GetName())}
	if err := c.Get(ctx, key, cm); err != nil {
		return client.IgnoreNotFound(err)
	}
	delete(cm.Data, fmt.Sprintf("%d", ordinal))
	return c.Patch(ctx, cm, client.Apply, client.FieldOwner(FieldManagerPool), client.ForceOwnership)
}
