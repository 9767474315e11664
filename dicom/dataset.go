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
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DataElementTag is a unique identifier for a Data Element composed of an unordered pair
// of numbers called the group number and the element number as specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10.
//
// The least significant 16 bits is the element number. The most significant 16 bits is the group
// number.
type DataElementTag uint32

// GroupNumber returns the group number component of the DataElementTag
func (t DataElementTag) GroupNumber() uint16 {
	return uint16(t >> 16)
}

// ElementNumber returns the element number component of the DataElementTag
func (t DataElementTag) ElementNumber() uint16 {
	return uint16(t & 0xFFFF)
}

// IsPrivate is true if and only if the tag belongs to a private data element, whose group
// number is odd
func (t DataElementTag) IsPrivate() bool {
	return t.GroupNumber()%2 == 1
}

// IsMetaElement is true if and only if the Data Element is a file meta element
func (t DataElementTag) IsMetaElement() bool {
	return t.GroupNumber() == uint16(0x0002)
}

// String returns the canonical 8 hex digit form of the tag, e.g. 7FE00010
func (t DataElementTag) String() string {
	return fmt.Sprintf("%08X", uint32(t))
}

// GroupElementString returns the tag in the (gggg,eeee) notation used by the standard
func (t DataElementTag) GroupElementString() string {
	return fmt.Sprintf("(%04X,%04X)", t.GroupNumber(), t.ElementNumber())
}

// Element models a DICOM Data Element as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
//
// Element does not hold its value. DataOffset and Length locate the value field within the
// buffer of the DataSet the element belongs to.
type Element struct {
	Tag DataElementTag

	// VR is nil for elements of the implicit VR syntax when no VR lookup was configured
	VR *VR

	// Length is the length of the value field in bytes. Elements declared with an undefined
	// length have Length rewritten to the number of bytes actually consumed.
	Length uint32

	// DataOffset is the absolute offset of the value field within the buffer
	DataOffset uint32

	// HadUndefinedLength is true if the length was declared as 0xFFFFFFFF
	HadUndefinedLength bool

	// Items holds the items of a sequence. It is non-nil if and only if the element was parsed
	// as a sequence.
	Items []*SequenceItem

	// EncapsulatedPixelData, BasicOffsetTable and Fragments describe pixel data (7FE0,0010)
	// stored in the encapsulated format:
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
	EncapsulatedPixelData bool
	BasicOffsetTable      []uint32
	Fragments             []Fragment
}

// IsSequence is true if the element was parsed as a sequence of items
func (e *Element) IsSequence() bool {
	return e.Items != nil
}

// SequenceItem is an item of a DICOM sequence. Its DataSet holds the nested elements.
type SequenceItem struct {
	Tag                DataElementTag
	Length             uint32
	DataOffset         uint32
	DataSet            *DataSet
	HadUndefinedLength bool
}

// Fragment locates one fragment of encapsulated pixel data
type Fragment struct {
	// Offset is relative to the item tag of the first fragment following the basic offset table,
	// the reference point used by basic offset table entries
	Offset uint32

	// Position is the absolute offset of the fragment's bytes in the buffer
	Position uint32

	// Length is the number of bytes in the fragment
	Length uint32
}

// DataSet models a DICOM Data Set as defined
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
type DataSet struct {
	// Elements is a map of DataElement tags to *Element
	Elements map[DataElementTag]*Element

	byteArray []byte
	order     binary.ByteOrder
	parent    *DataSet
	meta      *DataSet
	warnings  *warningLog
}

// NewDataSet builds a DataSet over buf whose values are encoded in the given byte order
func NewDataSet(buf []byte, order binary.ByteOrder, elements map[DataElementTag]*Element) *DataSet {
	if elements == nil {
		elements = map[DataElementTag]*Element{}
	}
	return &DataSet{Elements: elements, byteArray: buf, order: order}
}

// ByteArray returns the buffer holding the values of the elements
func (ds *DataSet) ByteArray() []byte {
	return ds.byteArray
}

// ByteOrder returns the byte order of binary values in the DataSet
func (ds *DataSet) ByteOrder() binary.ByteOrder {
	return ds.order
}

// Warnings returns the anomalies encountered while parsing the buffer this DataSet was read
// from, in the order they were found. Nested DataSets share the log of the top level DataSet.
func (ds *DataSet) Warnings() []string {
	return ds.warnings.list()
}

// FileMeta returns the file meta information group (0002,xxxx) of a part 10 file, or nil if the
// buffer had no part 10 header. The meta elements are also present in the top level DataSet,
// whose accessors decode them as little endian like the meta group itself.
func (ds *DataSet) FileMeta() *DataSet {
	return ds.meta
}

// Element returns the element with the given tag
func (ds *DataSet) Element(tag DataElementTag) (*Element, bool) {
	e, ok := ds.Elements[tag]
	return e, ok
}

// SortedTags returns the tags of the DataSet in ascending order
func (ds *DataSet) SortedTags() []DataElementTag {
	tags := make([]DataElementTag, 0, len(ds.Elements))
	for tag := range ds.Elements {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

func (ds *DataSet) String() string {
	return ds.string(0)
}

func (ds *DataSet) string(indentLvl int) string {
	lines := make([]string, 0, len(ds.Elements))
	for _, tag := range ds.SortedTags() {
		lines = append(lines, ds.elementString(ds.Elements[tag], indentLvl))
	}
	return strings.Join(lines, "\n")
}

func (ds *DataSet) elementString(e *Element, indentLvl int) string {
	s := fmt.Sprintf("%s%s %v #%d", strings.Repeat(">", indentLvl), e.Tag.GroupElementString(), e.VR, e.Length)
	if e.IsSequence() {
		for _, item := range e.Items {
			if nested := item.DataSet.string(indentLvl + 1); nested != "" {
				s += "\n" + nested
			}
		}
		return s
	}
	if values, ok := ds.displayValues(e); ok {
		s += fmt.Sprintf(" [%s]", strings.Join(values, "\\"))
	}
	return s
}

// maxDisplayLength is the longest value field printed by String
const maxDisplayLength = 64

// displayValues decodes the value field of e according to the kind of its VR. Bulk data and
// values longer than maxDisplayLength are not decoded.
func (ds *DataSet) displayValues(e *Element) ([]string, bool) {
	if e.VR == nil || e.Length > maxDisplayLength {
		return nil, false
	}
	switch e.VR.kind {
	case textVR, uniqueIdentifierVR:
		return ds.Strings(e.Tag)
	case tagVR:
		at, ok := ds.AttributeTag(e.Tag)
		if !ok {
			return nil, false
		}
		return []string{at.GroupElementString()}, true
	case numberBinaryVR:
		return ds.numberStrings(e)
	}
	return nil, false
}

func (ds *DataSet) numberStrings(e *Element) ([]string, bool) {
	var size int
	var format func(i int) (string, bool)
	switch e.VR {
	case USVR:
		size, format = 2, func(i int) (string, bool) {
			v, ok := ds.Uint16(e.Tag, i)
			return strconv.FormatUint(uint64(v), 10), ok
		}
	case SSVR:
		size, format = 2, func(i int) (string, bool) {
			v, ok := ds.Int16(e.Tag, i)
			return strconv.FormatInt(int64(v), 10), ok
		}
	case ULVR:
		size, format = 4, func(i int) (string, bool) {
			v, ok := ds.Uint32(e.Tag, i)
			return strconv.FormatUint(uint64(v), 10), ok
		}
	case SLVR:
		size, format = 4, func(i int) (string, bool) {
			v, ok := ds.Int32(e.Tag, i)
			return strconv.FormatInt(int64(v), 10), ok
		}
	case FLVR:
		size, format = 4, func(i int) (string, bool) {
			v, ok := ds.Float32(e.Tag, i)
			return strconv.FormatFloat(float64(v), 'g', -1, 32), ok
		}
	case FDVR:
		size, format = 8, func(i int) (string, bool) {
			v, ok := ds.Float64(e.Tag, i)
			return strconv.FormatFloat(v, 'g', -1, 64), ok
		}
	case UVVR:
		size, format = 8, func(i int) (string, bool) {
			v, ok := ds.Uint64(e.Tag, i)
			return strconv.FormatUint(v, 10), ok
		}
	case SVVR:
		size, format = 8, func(i int) (string, bool) {
			v, ok := ds.Int64(e.Tag, i)
			return strconv.FormatInt(v, 10), ok
		}
	default:
		return nil, false
	}

	n := int(e.Length) / size
	if n == 0 {
		return nil, false
	}
	values := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v, ok := format(i)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}
