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

import "sync"

var legacyNotice sync.Once

// ReadEncapsulatedPixelData returns the bytes of one frame of encapsulated pixel data. If the
// basic offset table of element is empty, all fragments are returned as a single frame and
// frame is not used.
//
// Deprecated: ReadEncapsulatedPixelData cannot locate frames of multi-frame data without a basic
// offset table. Use ReadEncapsulatedImageFrame, ReadEncapsulatedImageFrameWithOffsets together
// with CreateJPEGBasicOffsetTable, or ReadEncapsulatedPixelDataFromFragments.
func ReadEncapsulatedPixelData(ds *DataSet, element *Element, frame int) ([]byte, error) {
	legacyNotice.Do(func() {
		packageLogger().Warn("ReadEncapsulatedPixelData is deprecated; use ReadEncapsulatedImageFrame or ReadEncapsulatedPixelDataFromFragments")
	})

	if err := validatePixelDataElement("ReadEncapsulatedPixelData", ds, element); err != nil {
		return nil, err
	}
	if frame < 0 {
		return nil, &FrameIndexError{Index: frame, Frames: len(element.BasicOffsetTable)}
	}

	if len(element.BasicOffsetTable) != 0 {
		return ReadEncapsulatedImageFrame(ds, element, frame)
	}
	return readFragments(ds, element.Fragments, 0, len(element.Fragments))
}
