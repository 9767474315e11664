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

// findAndSetUNElementLength scans forward for the sequence delimitation item closing an element
// of VR UN with undefined length, as described in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2.2
func findAndSetUNElementLength(pc *parseContext, element *Element) error {
	return findDelimiterAndSetElementLength(pc, element, sequenceDelimitationElement)
}

// findItemDelimitationItemAndSetElementLength scans forward for the item delimitation item
// closing a non sequence element of undefined length
func findItemDelimitationItemAndSetElementLength(pc *parseContext, element *Element) error {
	return findDelimiterAndSetElementLength(pc, element, itemDelimitationElement)
}

// findDelimiterAndSetElementLength advances the cursor two bytes at a time until it finds the
// delimiter tag (FFFE,delimiter) and sets the length of element to the number of bytes consumed,
// delimiter included. If the buffer ends first, the remainder of the buffer is taken as the
// value and a single warning is recorded.
func findDelimiterAndSetElementLength(pc *parseContext, element *Element, delimiter uint16) error {
	bs := pc.bs
	if bs.Len() >= delimiterSize {
		maxPosition := bs.Len() - delimiterSize
		for bs.Position() <= maxPosition {
			group, err := bs.UInt16()
			if err != nil {
				return err
			}
			if group != delimiterGroup {
				continue
			}
			elementNumber, err := bs.UInt16()
			if err != nil {
				return err
			}
			if elementNumber != delimiter {
				continue
			}

			lengthOffset := bs.Position()
			length, err := bs.UInt32()
			if err != nil {
				return err
			}
			if length != 0 {
				pc.warnings.add(lengthOffset, "encountered non-zero length %d following delimiter while reading element %v of undefined length", length, element.Tag)
			}
			element.Length = bs.Position() - element.DataOffset
			return nil
		}
	}

	pc.warnings.add(bs.Position(), "eof encountered before finding delimiter (%04X,%04X) for element %v of undefined length",
		delimiterGroup, delimiter, element.Tag)
	element.Length = bs.Len() - element.DataOffset
	bs.SeekToEnd()
	return nil
}
