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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	appsv1 "k8s.io/api/apps/v1"
	"k8s.io/utils/ptr"
)

func specWithReplicas(r int32) appsv1.StatefulSetSpec {
	return appsv1.StatefulSetSpec{
		ServiceName: "db",
		Replicas:    ptr.To(r),
	}
}

func TestDecidePoolCreate(t *testing.T) {
	desired := specWithReplicas(0)
	got := decidePool(desired, false, appsv1.StatefulSetSpec{}, appsv1.StatefulSetStatus{})
	assert.Equal(t, poolCreate, got.kind)
}

func TestDecidePoolNoop(t *testing.T) {
	spec := specWithReplicas(3)
	got := decidePool(spec, true, spec, appsv1.StatefulSetStatus{CurrentReplicas: 3, ReadyReplicas: 3})
	assert.Equal(t, poolNoop, got.kind)
}

func TestDecidePoolPatchTemplate(t *testing.T) {
	desired := specWithReplicas(3)
	desired.ServiceName = "other"
	observed := specWithReplicas(3)
	got := decidePool(desired, true, observed, appsv1.StatefulSetStatus{CurrentReplicas: 3})
	if assert.Equal(t, poolPatchTemplate, got.kind) {
		want := specWithReplicas(3)
		want.ServiceName = "other"
		if diff := cmp.Diff(want, got.spec); diff != "" {
			t.Errorf("patched spec mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, int32(3), *got.spec.Replicas, "patch must preserve observed replicas")
	}
}

func TestDecidePoolWaitForRollout(t *testing.T) {
	desired := specWithReplicas(4)
	observed := specWithReplicas(3)
	got := decidePool(desired, true, observed, appsv1.StatefulSetStatus{CurrentReplicas: 2})
	assert.Equal(t, poolWaitForRollout, got.kind)
}

func TestDecidePoolScaleUp(t *testing.T) {
	desired := specWithReplicas(5)
	observed := specWithReplicas(3)
	got := decidePool(desired, true, observed, appsv1.StatefulSetStatus{CurrentReplicas: 3, ReadyReplicas: 3})
	if assert.Equal(t, poolScaleUp, got.kind) {
		assert.Equal(t, int32(5), got.replicas)
	}
}

func TestDecidePoolScaleDownWaits(t *testing.T) {
	desired := specWithReplicas(2)
	observed := specWithReplicas(4)
	got := decidePool(desired, true, observed, appsv1.StatefulSetStatus{CurrentReplicas: 4, ReadyReplicas: 4})
	if assert.Equal(t, poolScaleDown, got.kind) {
		assert.Equal(t, int32(3), got.revokeOrdinal)
		assert.False(t, got.readyToPatch, "must not patch replicas until the drained pod drops ready")
	}
}

func TestDecidePoolScaleDownPatchesOnceDrained(t *testing.T) {
	desired := specWithReplicas(2)
	observed := specWithReplicas(4)
	got := decidePool(desired, true, observed, appsv1.StatefulSetStatus{CurrentReplicas: 4, ReadyReplicas: 3})
	if assert.Equal(t, poolScaleDown, got.kind) {
		assert.True(t, got.readyToPatch)
		assert.Equal(t, int32(3), got.replicas)
	}
}
