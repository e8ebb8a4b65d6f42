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

	"github.com/pkg/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	apiextensionsclientset "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset"
)

// requiredCRDs are the CRDs spec.md §6 requires to be pre-installed; the
// controller refuses to start without them (class-3 fatal error of §7).
var requiredCRDs = []string{
	"gratefulsets." + crdGroup,
	"gratefulsetpools." + crdGroup,
}

// checkCRDs lists the required CustomResourceDefinitions and returns an
// error naming every one that is missing. A missing CRD is fatal;
// main.go exits non-zero on this error rather than starting the manager.
func checkCRDs(ctx context.Context, c apiextensionsclientset.Interface) error {
	var missing []string
	for _, name := range requiredCRDs {
		if _, err := c.ApiextensionsV1().CustomResourceDefinitions().Get(ctx, name, metav1.GetOptions{}); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.Errorf("required CRDs not installed: %s", fmt.Sprint(missing))
	}
	return nil
}
