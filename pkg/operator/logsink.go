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
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-logr/logr"
)

// logSink adapts a go-kit/log.Logger to logr.LogSink, so that every log
// line emitted by controller-runtime (threaded through context by the
// manager) lands on the same logfmt writer as main's own logging.
type logSink struct {
	logger log.Logger
	name   string
	kvs    []interface{}
}

// newLogSink wraps logger for use with ctrl.SetLogger.
func newLogSink(logger log.Logger) logr.LogSink {
	return &logSink{logger: logger}
}

func (s *logSink) Init(info logr.RuntimeInfo) {}

func (s *logSink) Enabled(int) bool { return true }

func (s *logSink) Info(_ int, msg string, keysAndValues ...interface{}) {
	kvs := append([]interface{}{"msg", msg}, s.kvs...)
	kvs = append(kvs, keysAndValues...)
	if s.name != "" {
		kvs = append(kvs, "logger", s.name)
	}
	level.Info(s.logger).Log(kvs...)
}

func (s *logSink) Error(err error, msg string, keysAndValues ...interface{}) {
	kvs := append([]interface{}{"msg", msg, "err", err}, s.kvs...)
	kvs = append(kvs, keysAndValues...)
	if s.name != "" {
		kvs = append(kvs, "logger", s.name)
	}
	level.Error(s.logger).Log(kvs...)
}

func (s *logSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	return &logSink{
		logger: s.logger,
		name:   s.name,
		kvs:    append(append([]interface{}{}, s.kvs...), keysAndValues...),
	}
}

func (s *logSink) WithName(name string) logr.LogSink {
	newName := name
	if s.name != "" {
		newName = s.name + "." + name
	}
	return &logSink{logger: s.logger, name: newName, kvs: s.kvs}
}
