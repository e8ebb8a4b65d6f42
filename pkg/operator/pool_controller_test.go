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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/owen-d/gratefulset/pkg/apiclient"
	"github.com/owen-d/gratefulset/pkg/apis/gratefulset/v1alpha1"
)

func newFakeClient(t *testing.T, objs ...client.Object) client.Client {
	t.Helper()
	sc := runtime.NewScheme()
	require.NoError(t, appsv1.AddToScheme(sc))
	require.NoError(t, corev1.AddToScheme(sc))
	require.NoError(t, v1alpha1.AddToScheme(sc))
	return fake.NewClientBuilder().
		WithScheme(sc).
		WithStatusSubresource(&v1alpha1.GratefulSetPool{}, &v1alpha1.GratefulSet{}).
		WithObjects(objs...).
		Build()
}

func TestPoolReconcileCreatesStatefulSet(t *testing.T) {
	pool := &v1alpha1.GratefulSetPool{
		ObjectMeta: metav1.ObjectMeta{Name: "db-h0", Namespace: "ns"},
		Spec:       v1alpha1.GratefulSetPoolSpec{Template: specWithReplicas(0)},
	}
	c := newFakeClient(t, pool)
	r := newPoolReconciler(apiclient.New(c))

	res, err := r.Reconcile(context.Background(), reconcile.Request{NamespacedName: client.ObjectKeyFromObject(pool)})
	require.NoError(t, err)
	assert.True(t, res.Requeue)

	var sts appsv1.StatefulSet
	require.NoError(t, c.Get(context.Background(), client.ObjectKeyFromObject(pool), &sts))
	assert.Len(t, sts.Spec.Template.Spec.InitContainers, 1)
	assert.Equal(t, UnlockerContainerName, sts.Spec.Template.Spec.InitContainers[0].Name)
}

func TestPoolReconcileScaleUpUpsertsLeaseThenPatches(t *testing.T) {
	pool := &v1alpha1.GratefulSetPool{
		ObjectMeta: metav1.ObjectMeta{Name: "db-h0", Namespace: "ns"},
		Spec:       v1alpha1.GratefulSetPoolSpec{Template: specWithReplicas(3)},
	}
	existing := withLockSpec(specWithReplicas(1), leaseConfigMapName("db-h0"))
	sts := &appsv1.StatefulSet{
		ObjectMeta: metav1.ObjectMeta{Name: "db-h0", Namespace: "ns"},
		Spec:       existing,
		Status:     appsv1.StatefulSetStatus{Replicas: 1, CurrentReplicas: 1, ReadyReplicas: 1},
	}
	c := newFakeClient(t, pool, sts)
	r := newPoolReconciler(apiclient.New(c))

	_, err := r.Reconcile(context.Background(), reconcile.Request{NamespacedName: client.ObjectKeyFromObject(pool)})
	require.NoError(t, err)

	var cm corev1.ConfigMap
	require.NoError(t, c.Get(context.Background(), client.ObjectKey{Namespace: "ns", Name: "db-h0-lock"}, &cm))
	assert.Len(t, cm.Data, 3)
	assert.Contains(t, cm.Data, "2")

	var got appsv1.StatefulSet
	require.NoError(t, c.Get(context.Background(), client.ObjectKeyFromObject(pool), &got))
	require.NotNil(t, got.Spec.Replicas)
	assert.Equal(t, int32(3), *got.Spec.Replicas)
}

func TestPoolReconcileScaleDownRevokesBeforePatching(t *testing.T) {
	pool := &v1alpha1.GratefulSetPool{
		ObjectMeta: metav1.ObjectMeta{Name: "db-h0", Namespace: "ns"},
		Spec:       v1alpha1.GratefulSetPoolSpec{Template: specWithReplicas(2)},
	}
	existing := withLockSpec(specWithReplicas(4), leaseConfigMapName("db-h0"))
	sts := &appsv1.StatefulSet{
		ObjectMeta: metav1.ObjectMeta{Name: "db-h0", Namespace: "ns"},
		Spec:       existing,
		Status:     appsv1.StatefulSetStatus{Replicas: 4, CurrentReplicas: 4, ReadyReplicas: 4},
	}
	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "db-h0-lock", Namespace: "ns"},
		Data:       desiredLeaseKeys(4),
	}
	c := newFakeClient(t, pool, sts, cm)
	r := newPoolReconciler(apiclient.New(c))

	_, err := r.Reconcile(context.Background(), reconcile.Request{NamespacedName: client.ObjectKeyFromObject(pool)})
	require.NoError(t, err)

	var gotCM corev1.ConfigMap
	require.NoError(t, c.Get(context.Background(), client.ObjectKey{Namespace: "ns", Name: "db-h0-lock"}, &gotCM))
	assert.NotContains(t, gotCM.Data, "3", "highest ordinal lease must be revoked before any replica reduction")

	var gotSTS appsv1.StatefulSet
	require.NoError(t, c.Get(context.Background(), client.ObjectKeyFromObject(pool), &gotSTS))
	assert.Equal(t, int32(4), *gotSTS.Spec.Replicas, "replicas must not drop until the drained pod is observed not-ready")
}

func specReplicas(p int32) *int32 { return ptr.To(p) }
