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

	"github.com/stretchr/testify/assert"
	appsv1 "k8s.io/api/apps/v1"
)

func gsTemplate() appsv1.StatefulSetSpec {
	return appsv1.StatefulSetSpec{ServiceName: "db"}
}

func TestDecideSetCreateCurrent(t *testing.T) {
	got := decideSet(gsTemplate(), 3, "db-h0", false, appsv1.StatefulSetSpec{}, 0, nil, 0)
	if assert.Equal(t, setCreateCurrent, got.kind) {
		assert.Equal(t, int32(0), *got.spec.Replicas)
	}
}

func TestDecideSetScaleUp(t *testing.T) {
	got := decideSet(gsTemplate(), 3, "db-h0", true, gsTemplate(), 1, nil, 1)
	if assert.Equal(t, setScaleUp, got.kind) {
		assert.Equal(t, "db-h0", got.target)
		assert.Equal(t, int32(2), got.replicas)
	}
}

func TestDecideSetScaleDownPrefersOldestDraining(t *testing.T) {
	old := []observedPool{
		{name: "db-hb", replicas: 2, readyReplicas: 2},
		{name: "db-ha", replicas: 1, readyReplicas: 1},
	}
	got := decideSet(gsTemplate(), 2, "db-h0", true, gsTemplate(), 2, old, 5)
	if assert.Equal(t, setScaleDown, got.kind) {
		assert.Equal(t, "db-ha", got.target, "lexicographically smallest old Pool name must win the tiebreak")
		assert.Equal(t, int32(0), got.replicas)
	}
}

func TestDecideSetScaleDownFallsBackToCurrent(t *testing.T) {
	got := decideSet(gsTemplate(), 1, "db-h0", true, gsTemplate(), 2, nil, 2)
	if assert.Equal(t, setScaleDown, got.kind) {
		assert.Equal(t, "db-h0", got.target)
		assert.Equal(t, int32(1), got.replicas)
	}
}

func TestDecideSetScaleDownNeverBelowZero(t *testing.T) {
	got := decideSet(gsTemplate(), 2, "db-h0", true, gsTemplate(), 0, nil, 2)
	if assert.Equal(t, setScaleDown, got.kind) {
		assert.Equal(t, int32(0), got.replicas)
	}
}

func TestDecideSetPatchTemplateOnMutableDrift(t *testing.T) {
	cur := gsTemplate()
	cur.ServiceName = "stale"
	got := decideSet(gsTemplate(), 3, "db-h0", true, cur, 3, nil, 3)
	if assert.Equal(t, setPatchTemplate, got.kind) {
		assert.Equal(t, "db", got.spec.ServiceName)
		assert.Equal(t, int32(3), *got.spec.Replicas, "patch must preserve the current Pool's replica count")
	}
}

func TestDecideSetDeleteOldOnConvergence(t *testing.T) {
	old := []observedPool{{name: "db-hx", replicas: 0}}
	got := decideSet(gsTemplate(), 3, "db-h0", true, gsTemplate(), 3, old, 3)
	if assert.Equal(t, setDeleteOld, got.kind) {
		assert.Equal(t, []string{"db-hx"}, got.toDelete)
	}
}

func TestDecideSetNoopWhenConvergedWithNoOldPools(t *testing.T) {
	got := decideSet(gsTemplate(), 3, "db-h0", true, gsTemplate(), 3, nil, 3)
	assert.Equal(t, setDeleteOld, got.kind)
	assert.Empty(t, got.toDelete)
}
