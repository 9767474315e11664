// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

import (
	"fmt"

	"go.uber.org/zap"
)

// warningLog accumulates the recoverable anomalies found during one parse. It is shared by the
// byteStream and every DataSet produced by that parse.
type warningLog struct {
	entries []string
	logger  *zap.SugaredLogger
	mirror  bool
}

func newWarningLog(logger *zap.SugaredLogger, mirror bool) *warningLog {
	return &warningLog{logger: logger, mirror: mirror}
}

func (w *warningLog) add(offset uint32, format string, args ...interface{}) {
	if w == nil {
		return
	}
	msg := fmt.Sprintf("%s at offset %d", fmt.Sprintf(format, args...), offset)
	w.entries = append(w.entries, msg)
	if w.mirror && w.logger != nil {
		w.logger.Warnw(msg, "offset", offset)
	}
}

func (w *warningLog) list() []string {
	if w == nil {
		return nil
	}
	out := make([]string, len(w.entries))
	copy(out, w.entries)
	return out
}
