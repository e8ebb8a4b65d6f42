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
	"time"

	"sigs.k8s.io/controller-runtime/pkg/reconcile"
)

const (
	// errorRequeueInterval is the RequeueAfter carried with an error result
	// (spec.md §7 classes 1, 4 and 5); see requeueResult.
	errorRequeueInterval = 60 * time.Second
	// idleRequeueInterval is spec.md §7's safety-net requeue delay for a
	// settled, no-op reconcile.
	idleRequeueInterval = 5 * time.Minute
)

// requeueResult centralizes spec.md §7's propagation policy so both
// reconcilers return through a single chokepoint: err is returned as-is
// together with errorRequeueInterval, and a nil err settles on
// idleRequeueInterval as a safety net against missed watch events.
// controller-runtime ignores the Result whenever err is non-nil and requeues
// through its rate limiter's exponential backoff instead, so the delay after
// an error is that backoff, not errorRequeueInterval.
func requeueResult(err error) (reconcile.Result, error) {
	if err != nil {
		return reconcile.Result{RequeueAfter: errorRequeueInterval}, err
	}
	return reconcile.Result{RequeueAfter: idleRequeueInterval}, nil
}

// requeueNow requests an immediate re-reconcile with no error, used after an
// action that changes state the caller wants to observe right away (e.g.
// creating the underlying StatefulSet).
func requeueNow() (reconcile.Result, error) {
	return reconcile.Result{Requeue: true}, nil
}

// settled reports a reconcile that found nothing to do and does not need the
// immediate-requeue treatment, but still wants the idle safety net.
func settled() (reconcile.Result, error) {
	return reconcile.Result{RequeueAfter: idleRequeueInterval}, nil
}
