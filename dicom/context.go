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

import "go.uber.org/zap"

// parseContext is the state of one in-flight parse. It is created by the top level driver and
// passed by pointer through every recursive call, so that nested data sets observe and advance
// the same cursor and append to the same warnings. A parseContext must not be shared between
// goroutines.
type parseContext struct {
	bs       *byteStream
	syntax   transferSyntax
	config   *parseConfig
	warnings *warningLog
	logger   *zap.SugaredLogger

	// scope is the data set currently being filled; nested data sets record it as their parent
	scope *DataSet
	depth int

	// stopped is set once the UntilTag element has been read
	stopped bool
}

// enter starts a new data set scope nested in the current one
func (pc *parseContext) enter() *DataSet {
	ds := &DataSet{
		Elements:  map[DataElementTag]*Element{},
		byteArray: pc.bs.buf,
		order:     pc.bs.order,
		parent:    pc.scope,
		warnings:  pc.warnings,
	}
	pc.scope = ds
	pc.depth++
	return ds
}

func (pc *parseContext) leave(ds *DataSet) {
	pc.scope = ds.parent
	pc.depth--
}

func (pc *parseContext) atTopLevel() bool {
	return pc.depth == 1
}

// add stores element in ds after applying the configured transforms. A later element with the
// same tag replaces an earlier one.
func (pc *parseContext) add(ds *DataSet, element *Element) error {
	element, err := pc.config.applyTransforms(element)
	if err != nil {
		return err
	}
	if element != nil { // nil check to test if a transform wants to filter out element
		ds.Elements[element.Tag] = element
	}
	return nil
}
