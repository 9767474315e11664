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

// readDataElement reads the header of the next element and, unless the element is the UntilTag
// element, positions the cursor after its value field. The same decoder serves both VR
// encodings; what differs between them is supplied by pc.syntax.
func readDataElement(pc *parseContext) (*Element, error) {
	bs := pc.bs
	tag, err := bs.Tag()
	if err != nil {
		return nil, fmt.Errorf("getting tag: %w", err)
	}

	if tag.GroupNumber() == delimiterGroup {
		return readDelimiter(pc, tag)
	}

	vr, err := pc.syntax.readVR(pc, tag)
	if err != nil {
		return nil, fmt.Errorf("getting vr of %v: %w", tag, err)
	}

	wireLength, err := pc.syntax.readValueLength(bs, vr)
	if err != nil {
		return nil, fmt.Errorf("getting length of %v: %w", tag, err)
	}

	length := lengthFromWire(wireLength)
	element := &Element{
		Tag:                tag,
		VR:                 vr,
		Length:             wireLength,
		DataOffset:         bs.Position(),
		HadUndefinedLength: length.IsUndefined(),
	}

	if pc.config.untilTag != nil && *pc.config.untilTag == tag && pc.atTopLevel() {
		pc.stopped = true
		return element, nil
	}

	if err := readValue(pc, element, length); err != nil {
		return nil, err
	}
	return element, nil
}

// readValue advances the cursor past the value field of element
func readValue(pc *parseContext, element *Element, length ValueLength) error {
	if pc.syntax.isSequence(pc, element, length) {
		return readSequenceItems(pc, element, length)
	}

	if n, ok := length.Bytes(); ok {
		return pc.bs.Skip(int64(n))
	}

	switch {
	case element.Tag == PixelDataTag:
		// Specified in http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
		// (7FE0,0010) and undefined length means pixel data in encapsulated (compressed) format
		return readEncapsulatedPixelData(pc, element)
	case element.VR == UNVR:
		return findAndSetUNElementLength(pc, element)
	default:
		return findItemDelimitationItemAndSetElementLength(pc, element)
	}
}

// readDelimiter reads an element of the delimiter group (FFFE,xxxx). Delimiters carry no VR in
// either encoding and are followed by a 32 bit length.
func readDelimiter(pc *parseContext, tag DataElementTag) (*Element, error) {
	lengthOffset := pc.bs.Position()
	length, err := pc.bs.UInt32()
	if err != nil {
		return nil, fmt.Errorf("reading 32 bit length of %v: %w", tag, err)
	}

	element := &Element{Tag: tag, DataOffset: pc.bs.Position()}
	switch tag {
	case ItemDelimitationItemTag:
		// handles the case when we are parsing a nested data set within an item of undefined
		// length
		if length != 0 {
			pc.warnings.add(lengthOffset, "item delimitation item has non-zero length %d", length)
		}
	default:
		pc.warnings.add(lengthOffset, "unexpected %v found in data set", tag)
		if l := lengthFromWire(length); !l.IsUndefined() {
			element.Length = length
			if err := pc.bs.Skip(int64(length)); err != nil {
				return nil, err
			}
		}
	}
	return element, nil
}
