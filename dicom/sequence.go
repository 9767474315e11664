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

const delimiterSize = 8 // tag and 32 bit length

// readSequenceItem reads the header of a sequence item: the item tag followed by a 32 bit
// length. The returned item has DataOffset set to the first byte after the header.
func readSequenceItem(bs *byteStream) (*SequenceItem, error) {
	start := bs.Position()
	tag, err := bs.Tag()
	if err != nil {
		return nil, fmt.Errorf("reading item tag: %w", err)
	}
	length, err := bs.UInt32()
	if err != nil {
		return nil, fmt.Errorf("reading item length: %w", err)
	}
	if tag != ItemTag {
		return nil, &MalformedItemError{Tag: tag, Offset: start}
	}

	return &SequenceItem{Tag: tag, Length: length, DataOffset: bs.Position()}, nil
}

// readSequenceItems parses the items of the sequence element whose header has just been read
func readSequenceItems(pc *parseContext, element *Element, length ValueLength) error {
	element.Items = []*SequenceItem{}
	if n, ok := length.Bytes(); ok {
		return readSQElementKnownLength(pc, element, n)
	}
	return readSQElementUndefinedLength(pc, element)
}

func readSQElementUndefinedLength(pc *parseContext, element *Element) error {
	bs := pc.bs
	for uint64(bs.Position())+tagSize <= uint64(bs.Len()) {
		next, err := bs.PeekTag()
		if err != nil {
			return err
		}
		if next == SequenceDelimitationItemTag {
			element.Length = bs.Position() - element.DataOffset
			return terminateSequence(pc, element)
		}

		item, err := readSequenceItemContent(pc)
		if err != nil {
			return err
		}
		element.Items = append(element.Items, item)
	}

	pc.warnings.add(bs.Position(), "eof encountered before finding sequence delimitation tag while reading sequence %v of undefined length", element.Tag)
	element.Length = bs.Len() - element.DataOffset
	bs.SeekToEnd()
	return nil
}

// terminateSequence consumes the sequence delimitation item found at the cursor
func terminateSequence(pc *parseContext, element *Element) error {
	bs := pc.bs
	if uint64(bs.Position())+delimiterSize > uint64(bs.Len()) {
		pc.warnings.add(bs.Position(), "sequence delimitation item of %v truncated by end of buffer", element.Tag)
		bs.SeekToEnd()
		return nil
	}
	if err := bs.Skip(tagSize); err != nil {
		return err
	}
	lengthOffset := bs.Position()
	length, err := bs.UInt32()
	if err != nil {
		return err
	}
	if length != 0 {
		pc.warnings.add(lengthOffset, "sequence delimitation item of %v has non-zero length %d", element.Tag, length)
	}
	return nil
}

func readSQElementKnownLength(pc *parseContext, element *Element, length uint32) error {
	end := uint64(element.DataOffset) + uint64(length)
	for uint64(pc.bs.Position()) < end {
		item, err := readSequenceItemContent(pc)
		if err != nil {
			return err
		}
		element.Items = append(element.Items, item)
	}

	if uint64(pc.bs.Position()) > end {
		pc.warnings.add(pc.bs.Position(), "items of sequence %v overran its declared length of %d", element.Tag, length)
	}
	return nil
}

// readSequenceItemContent reads an item header and parses the data set it contains
func readSequenceItemContent(pc *parseContext) (*SequenceItem, error) {
	item, err := readSequenceItem(pc.bs)
	if err != nil {
		return nil, err
	}

	length := lengthFromWire(item.Length)
	if length.IsUndefined() {
		item.HadUndefinedLength = true
		ds, err := parseDataSetUndefinedLength(pc)
		if err != nil {
			return nil, err
		}
		item.DataSet = ds
		item.Length = pc.bs.Position() - item.DataOffset
		return item, nil
	}

	ds, err := parseDataSet(pc, uint64(item.DataOffset)+uint64(item.Length))
	if err != nil {
		return nil, err
	}
	item.DataSet = ds
	return item, nil
}

// parseDataSetUndefinedLength parses the elements of an item of undefined length up to and
// including its item delimitation item. The delimiter itself is not stored in the data set.
func parseDataSetUndefinedLength(pc *parseContext) (*DataSet, error) {
	ds := pc.enter()
	defer pc.leave(ds)

	bs := pc.bs
	for !bs.AtEnd() {
		if uint64(bs.Position())+tagSize <= uint64(bs.Len()) {
			if next, err := bs.PeekTag(); err == nil && next == SequenceDelimitationItemTag {
				// leave the delimiter for the enclosing sequence
				pc.warnings.add(bs.Position(), "sequence delimitation item found before item delimitation item")
				return ds, nil
			}
		}

		element, err := readDataElement(pc)
		if err != nil {
			return nil, err
		}
		if element.Tag == ItemDelimitationItemTag {
			return ds, nil
		}
		if err := pc.add(ds, element); err != nil {
			return nil, err
		}
	}

	pc.warnings.add(bs.Position(), "eof encountered before finding item delimitation tag while reading sequence item of undefined length")
	return ds, nil
}
