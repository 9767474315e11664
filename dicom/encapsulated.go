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
)

// readEncapsulatedPixelData records the basic offset table and the fragments of pixel data in
// the encapsulated format and advances the cursor past its sequence delimitation item.
//
// Fragment offsets are relative to the first byte after the basic offset table item, which is
// how basic offset table entries are expressed:
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
func readEncapsulatedPixelData(pc *parseContext, element *Element) error {
	bs := pc.bs
	element.EncapsulatedPixelData = true
	element.BasicOffsetTable = []uint32{}
	element.Fragments = []Fragment{}

	start := bs.Position()
	tag, err := bs.Tag()
	if err != nil {
		return fmt.Errorf("reading basic offset table tag: %w", err)
	}
	tableLength, err := bs.UInt32()
	if err != nil {
		return fmt.Errorf("reading basic offset table length: %w", err)
	}
	if tag != ItemTag {
		return &MalformedItemError{Tag: tag, Offset: start}
	}

	for i := uint32(0); i < tableLength/4; i++ {
		offset, err := bs.UInt32()
		if err != nil {
			return fmt.Errorf("reading basic offset table: %w", err)
		}
		element.BasicOffsetTable = append(element.BasicOffsetTable, offset)
	}
	if rem := tableLength % 4; rem != 0 {
		pc.warnings.add(bs.Position(), "basic offset table length %d is not a multiple of 4", tableLength)
		if err := bs.Skip(int64(rem)); err != nil {
			return err
		}
	}

	baseOffset := bs.Position()
	for uint64(bs.Position())+delimiterSize <= uint64(bs.Len()) {
		headerPosition := bs.Position()
		tag, err := bs.Tag()
		if err != nil {
			return err
		}
		length, err := bs.UInt32()
		if err != nil {
			return err
		}

		if tag == SequenceDelimitationItemTag {
			if length != 0 {
				pc.warnings.add(headerPosition, "sequence delimitation item of pixel data has non-zero length %d", length)
			}
			element.Length = bs.Position() - element.DataOffset
			return nil
		}
		if tag != ItemTag {
			pc.warnings.add(headerPosition, "unexpected tag %v while searching for end of pixel data element with undefined length", tag)
		}
		if remaining := bs.Len() - bs.Position(); length > remaining {
			pc.warnings.add(headerPosition, "fragment length %d exceeds the %d bytes remaining in buffer", length, remaining)
			length = remaining
		}

		element.Fragments = append(element.Fragments, Fragment{
			Offset:   headerPosition - baseOffset,
			Position: bs.Position(),
			Length:   length,
		})
		if err := bs.Skip(int64(length)); err != nil {
			return err
		}
	}

	pc.warnings.add(bs.Position(), "pixel data element %v missing sequence delimiter tag", element.Tag)
	element.Length = bs.Len() - element.DataOffset
	bs.SeekToEnd()
	return nil
}
