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

// Package operator wires a controller-runtime manager together with the
// GratefulSet/GratefulSetPool reconcilers.
package operator

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	apiextensionsclientset "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/manager"

	"github.com/owen-d/gratefulset/pkg/apiclient"
	"github.com/owen-d/gratefulset/pkg/apis/gratefulset/v1alpha1"
)

// DefaultOperatorNamespace is the namespace the operator's own resources,
// if any, would be installed into. GratefulSets and Pools themselves are
// namespaced wherever the user creates them.
const DefaultOperatorNamespace = "gratefulset-system"

// Options configures an Operator.
type Options struct {
	// OperatorNamespace is the namespace the operator itself runs in.
	OperatorNamespace string
	// ResyncPeriod is the manager cache's full resync interval.
	ResyncPeriod time.Duration
}

func (o *Options) defaultAndValidate() {
	if o.OperatorNamespace == "" {
		o.OperatorNamespace = DefaultOperatorNamespace
	}
	if o.ResyncPeriod == 0 {
		o.ResyncPeriod = 5 * time.Minute
	}
}

// Operator owns the controller-runtime manager and the typed clients used
// for preflight checks and reconciliation.
type Operator struct {
	logger       log.Logger
	opts         Options
	manager      manager.Manager
	kubeClient   kubernetes.Interface
	apiextClient apiextensionsclientset.Interface
	client       apiclient.ApiClient
}

// New builds an Operator against clientConfig, registering the GratefulSet
// and GratefulSetPool controllers on a fresh controller-runtime manager.
func New(logger log.Logger, clientConfig *rest.Config, opts Options) (*Operator, error) {
	opts.defaultAndValidate()

	ctrl.SetLogger(logr.New(newLogSink(logger)))

	sc := runtime.NewScheme()
	if err := scheme.AddToScheme(sc); err != nil {
		return nil, errors.Wrap(err, "add Kubernetes core scheme")
	}
	if err := v1alpha1.AddToScheme(sc); err != nil {
		return nil, errors.Wrap(err, "add gratefulset v1alpha1 scheme")
	}

	mgr, err := ctrl.NewManager(clientConfig, manager.Options{
		Scheme: sc,
		// The controller exposes no metrics server of its own; see
		// spec.md §1's Non-goals.
		MetricsBindAddress: "0",
		SyncPeriod:         &opts.ResyncPeriod,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create controller manager")
	}

	kubeClient, err := kubernetes.NewForConfig(clientConfig)
	if err != nil {
		return nil, errors.Wrap(err, "build Kubernetes clientset")
	}
	apiextClient, err := apiextensionsclientset.NewForConfig(clientConfig)
	if err != nil {
		return nil, errors.Wrap(err, "build apiextensions clientset")
	}

	op := &Operator{
		logger:       logger,
		opts:         opts,
		manager:      mgr,
		kubeClient:   kubeClient,
		apiextClient: apiextClient,
		client:       apiclient.New(mgr.GetClient()),
	}

	if err := setupPoolController(op); err != nil {
		return nil, errors.Wrap(err, "setup gratefulsetpool controller")
	}
	if err := setupSetController(op); err != nil {
		return nil, errors.Wrap(err, "setup gratefulset controller")
	}

	return op, nil
}

// Run checks that the required CRDs are installed and then blocks running
// the manager until ctx is cancelled.
func (o *Operator) Run(ctx context.Context) error {
	if err := checkCRDs(ctx, o.apiextClient); err != nil {
		return errors.Wrap(err, "preflight CRD check")
	}

	level.Info(o.logger).Log("msg", "starting gratefulset operator")
	return o.manager.Start(ctx)
}
