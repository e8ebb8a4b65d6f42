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

package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/utils/ptr"
)

func baseSpec() *appsv1.StatefulSetSpec {
	return &appsv1.StatefulSetSpec{
		PodManagementPolicy:  appsv1.OrderedReadyPodManagement,
		RevisionHistoryLimit: ptr.To[int32](10),
		ServiceName:          "db",
		Selector: &metav1.LabelSelector{
			MatchLabels: map[string]string{"app": "db"},
		},
		VolumeClaimTemplates: []corev1.PersistentVolumeClaim{
			{
				ObjectMeta: metav1.ObjectMeta{Name: "data"},
				Spec: corev1.PersistentVolumeClaimSpec{
					AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
					Resources: corev1.VolumeResourceRequirements{
						Requests: corev1.ResourceList{
							corev1.ResourceStorage: resource.MustParse("10Gi"),
						},
					},
				},
			},
		},
		Replicas: ptr.To[int32](3),
	}
}

func TestRevisionStable(t *testing.T) {
	a := baseSpec()
	b := baseSpec()
	assert.Equal(t, Revision(a), Revision(b))
	assert.Equal(t, Hex(a), Hex(b))
	assert.Len(t, Hex(a), 4)
}

func TestRevisionInsensitiveToMutableFields(t *testing.T) {
	a := baseSpec()
	b := baseSpec()
	b.Replicas = ptr.To[int32](7)
	b.Template = corev1.PodTemplateSpec{Spec: corev1.PodSpec{ServiceAccountName: "changed"}}
	b.UpdateStrategy = appsv1.StatefulSetUpdateStrategy{Type: appsv1.OnDeleteStatefulSetStrategyType}

	assert.Equal(t, Revision(a), Revision(b), "replicas/template/updateStrategy must not affect revision hash")
}

func TestRevisionSensitiveToImmutableFields(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*appsv1.StatefulSetSpec)
	}{
		{"pod management policy", func(s *appsv1.StatefulSetSpec) { s.PodManagementPolicy = appsv1.ParallelPodManagement }},
		{"revision history limit", func(s *appsv1.StatefulSetSpec) { s.RevisionHistoryLimit = ptr.To[int32](3) }},
		{"service name", func(s *appsv1.StatefulSetSpec) { s.ServiceName = "other" }},
		{"selector match label", func(s *appsv1.StatefulSetSpec) { s.Selector.MatchLabels["app"] = "other" }},
		{"selector match expression", func(s *appsv1.StatefulSetSpec) {
			s.Selector.MatchExpressions = append(s.Selector.MatchExpressions, metav1.LabelSelectorRequirement{
				Key: "tier", Operator: metav1.LabelSelectorOpIn, Values: []string{"hot"},
			})
		}},
		{"vct name", func(s *appsv1.StatefulSetSpec) { s.VolumeClaimTemplates[0].Name = "other" }},
		{"vct storage class", func(s *appsv1.StatefulSetSpec) {
			s.VolumeClaimTemplates[0].Spec.StorageClassName = ptr.To("fast")
		}},
		{"vct request size", func(s *appsv1.StatefulSetSpec) {
			s.VolumeClaimTemplates[0].Spec.Resources.Requests[corev1.ResourceStorage] = resource.MustParse("20Gi")
		}},
		{"vct access mode", func(s *appsv1.StatefulSetSpec) {
			s.VolumeClaimTemplates[0].Spec.AccessModes = []corev1.PersistentVolumeAccessMode{corev1.ReadWriteMany}
		}},
	}

	base := Revision(baseSpec())
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := baseSpec()
			c.mutate(s)
			assert.NotEqual(t, base, Revision(s), "mutating %s should change the revision hash", c.name)
		})
	}
}
