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

// isEndOfImageFragment reports whether fragment ends with the JPEG end of image marker FFD9. The
// marker may be followed by one padding byte since fragments have even length.
func isEndOfImageFragment(buf []byte, f Fragment) bool {
	end := int(f.Position) + int(f.Length)
	for _, pos := range []int{end - 2, end - 3} {
		if pos >= int(f.Position) && pos+1 < len(buf) && buf[pos] == 0xFF && buf[pos+1] == 0xD9 {
			return true
		}
	}
	return false
}

func findLastImageFrameFragmentIndex(buf []byte, fragments []Fragment, start int) (int, bool) {
	for i := start; i < len(fragments); i++ {
		if isEndOfImageFragment(buf, fragments[i]) {
			return i, true
		}
	}
	return 0, false
}

// CreateJPEGBasicOffsetTable builds a basic offset table for JPEG pixel data whose element has
// an empty one, by assuming that a frame ends with the first fragment carrying an end of image
// marker. A nil fragment list selects the fragments of element. The result can be passed to
// ReadEncapsulatedImageFrameWithOffsets.
func CreateJPEGBasicOffsetTable(ds *DataSet, element *Element, fragments []Fragment) ([]uint32, error) {
	if err := validatePixelDataElement("CreateJPEGBasicOffsetTable", ds, element); err != nil {
		return nil, err
	}
	if fragments == nil {
		fragments = element.Fragments
	}
	if len(fragments) == 0 {
		return nil, &PixelDataError{Tag: element.Tag, Reason: "no fragments"}
	}

	table := []uint32{fragments[0].Offset}
	start := 0
	for {
		last, ok := findLastImageFrameFragmentIndex(ds.byteArray, fragments, start)
		if !ok || last == len(fragments)-1 {
			return table, nil
		}
		start = last + 1
		table = append(table, fragments[start].Offset)
	}
}
