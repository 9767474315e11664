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

// validatePixelDataElement checks that element is pixel data in the encapsulated format with a
// non-empty fragment list
func validatePixelDataElement(fn string, ds *DataSet, element *Element) error {
	if ds == nil {
		return &ArgumentError{Func: fn, Param: "ds"}
	}
	if element == nil {
		return &ArgumentError{Func: fn, Param: "element"}
	}
	if element.Tag != PixelDataTag {
		return &PixelDataError{Tag: element.Tag, Reason: "tag is not " + PixelDataTag.GroupElementString()}
	}
	if !element.EncapsulatedPixelData {
		return &PixelDataError{Tag: element.Tag, Reason: "pixel data is not in the encapsulated format"}
	}
	if !element.HadUndefinedLength {
		return &PixelDataError{Tag: element.Tag, Reason: "encapsulated pixel data must have undefined length"}
	}
	if len(element.Fragments) == 0 {
		return &PixelDataError{Tag: element.Tag, Reason: "no fragments"}
	}
	return nil
}

// LocateFrame returns the span [start, start+count) of fragments holding the frame with the
// given index. Every basic offset table entry other than the last must equal the Offset of
// exactly one fragment; the last frame extends to the final fragment.
func LocateFrame(offsetTable []uint32, fragments []Fragment, frameIndex int) (start, count int, err error) {
	if frameIndex < 0 || frameIndex >= len(offsetTable) {
		return 0, 0, &FrameIndexError{Index: frameIndex, Frames: len(offsetTable)}
	}

	start, ok := findFragmentIndexWithOffset(fragments, 0, offsetTable[frameIndex])
	if !ok {
		return 0, 0, &OffsetTableError{FrameIndex: frameIndex, Offset: offsetTable[frameIndex]}
	}

	if frameIndex == len(offsetTable)-1 {
		return start, len(fragments) - start, nil
	}

	next, ok := findFragmentIndexWithOffset(fragments, start+1, offsetTable[frameIndex+1])
	if !ok {
		return 0, 0, &OffsetTableError{FrameIndex: frameIndex + 1, Offset: offsetTable[frameIndex+1]}
	}
	return start, next - start, nil
}

func findFragmentIndexWithOffset(fragments []Fragment, from int, offset uint32) (int, bool) {
	for i := from; i < len(fragments); i++ {
		if fragments[i].Offset == offset {
			return i, true
		}
	}
	return 0, false
}

// ReadEncapsulatedImageFrame returns the bytes of one frame of encapsulated pixel data, located
// using the basic offset table of element. Fragments of a single-fragment frame share memory
// with the buffer of ds.
func ReadEncapsulatedImageFrame(ds *DataSet, element *Element, frameIndex int) ([]byte, error) {
	return readEncapsulatedImageFrame("ReadEncapsulatedImageFrame", ds, element, frameIndex, nil, nil)
}

// ReadEncapsulatedImageFrameWithOffsets is like ReadEncapsulatedImageFrame but locates the frame
// using the given basic offset table and fragments, as returned for example by
// CreateJPEGBasicOffsetTable. A nil table or fragment list selects the one of element.
func ReadEncapsulatedImageFrameWithOffsets(ds *DataSet, element *Element, frameIndex int, offsetTable []uint32, fragments []Fragment) ([]byte, error) {
	return readEncapsulatedImageFrame("ReadEncapsulatedImageFrameWithOffsets", ds, element, frameIndex, offsetTable, fragments)
}

func readEncapsulatedImageFrame(fn string, ds *DataSet, element *Element, frameIndex int, offsetTable []uint32, fragments []Fragment) ([]byte, error) {
	if err := validatePixelDataElement(fn, ds, element); err != nil {
		return nil, err
	}
	if offsetTable == nil {
		offsetTable = element.BasicOffsetTable
	}
	if fragments == nil {
		fragments = element.Fragments
	}
	if len(fragments) == 0 {
		return nil, &PixelDataError{Tag: element.Tag, Reason: "no fragments"}
	}
	if len(offsetTable) == 0 {
		return nil, &PixelDataError{Tag: element.Tag, Reason: "basic offset table has zero entries"}
	}
	if frameIndex < 0 || frameIndex >= len(offsetTable) {
		return nil, &FrameIndexError{Index: frameIndex, Frames: len(offsetTable)}
	}

	start, count, err := LocateFrame(offsetTable, fragments, frameIndex)
	if err != nil {
		return nil, err
	}
	return readFragments(ds, fragments, start, count)
}

// ReadEncapsulatedPixelDataFromFragments returns the concatenated bytes of count fragments of
// element starting at fragment start. A nil fragment list selects the fragments of element.
func ReadEncapsulatedPixelDataFromFragments(ds *DataSet, element *Element, start, count int, fragments []Fragment) ([]byte, error) {
	if err := validatePixelDataElement("ReadEncapsulatedPixelDataFromFragments", ds, element); err != nil {
		return nil, err
	}
	if fragments == nil {
		fragments = element.Fragments
	}
	return readFragments(ds, fragments, start, count)
}

// readFragments assembles the payloads of fragments [start, start+count) into one contiguous
// slice. A single fragment is returned as a sub-slice of the buffer of ds.
func readFragments(ds *DataSet, fragments []Fragment, start, count int) ([]byte, error) {
	if start < 0 || start >= len(fragments) || count < 1 || start+count > len(fragments) {
		return nil, &FragmentRangeError{Start: start, Count: count, Fragments: len(fragments)}
	}

	buf := ds.byteArray
	total := 0
	for _, f := range fragments[start : start+count] {
		if uint64(f.Position)+uint64(f.Length) > uint64(len(buf)) {
			return nil, &BufferOverreadError{Position: f.Position, Requested: f.Length, Length: uint32(len(buf))}
		}
		total += int(f.Length)
	}

	if count == 1 {
		f := fragments[start]
		return buf[f.Position : f.Position+f.Length], nil
	}

	frame := make([]byte, 0, total)
	for _, f := range fragments[start : start+count] {
		frame = append(frame, buf[f.Position:f.Position+f.Length]...)
	}
	return frame, nil
}
