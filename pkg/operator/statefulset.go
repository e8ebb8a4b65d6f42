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
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/utils/ptr"
)

// unlockerCommand extracts the ordinal suffix from $HOSTNAME and exits 0 iff
// /locks/<ordinal> exists, 1 otherwise. A missing ordinal suffix is an
// operator misconfiguration and is left to fail loudly rather than be
// swallowed.
const unlockerCommand = `set -e
ordinal="${HOSTNAME##*-}"
case "$HOSTNAME" in
  *-[0-9]*) ;;
  *) echo "gsp-unlocker: $HOSTNAME has no ordinal suffix" >&2; exit 1 ;;
esac
test -f "/locks/${ordinal}"
`

// withLock returns a copy of template with the lease-gating init container
// and ConfigMap volume injected, per spec.md §4.2. cmName is the name of the
// Pool's lease ConfigMap.
func withLock(template corev1.PodTemplateSpec, cmName string) corev1.PodTemplateSpec {
	out := *template.DeepCopy()

	out.Spec.Volumes = append(out.Spec.Volumes, corev1.Volume{
		Name: LeaseVolumeName,
		VolumeSource: corev1.VolumeSource{
			ConfigMap: &corev1.ConfigMapVolumeSource{
				LocalObjectReference: corev1.LocalObjectReference{Name: cmName},
				Optional:             ptr.To(true),
			},
		},
	})

	unlocker := corev1.Container{
		Name:    UnlockerContainerName,
		Image:   UnlockerImage,
		Command: []string{"sh", "-c", unlockerCommand},
		VolumeMounts: []corev1.VolumeMount{
			{Name: LeaseVolumeName, MountPath: LeaseMountPath, ReadOnly: true},
		},
	}
	out.Spec.InitContainers = append([]corev1.Container{unlocker}, out.Spec.InitContainers...)

	return out
}

// withLockSpec applies withLock to spec.Template, returning a new
// StatefulSetSpec. replicas is taken from spec verbatim; callers that need a
// different replica count patch the result.
func withLockSpec(spec appsv1.StatefulSetSpec, cmName string) appsv1.StatefulSetSpec {
	out := *spec.DeepCopy()
	out.Template = withLock(spec.Template, cmName)
	return out
}
