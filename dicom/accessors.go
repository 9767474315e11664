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
	"bytes"
	"encoding/binary"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// trimNull cuts b at its first NUL byte
func trimNull(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

func (ds *DataSet) valueBytes(e *Element) ([]byte, bool) {
	end := uint64(e.DataOffset) + uint64(e.Length)
	if end > uint64(len(ds.byteArray)) {
		return nil, false
	}
	return ds.byteArray[e.DataOffset:end], true
}

// owner returns the DataSet whose encoding applies to the element with the given tag. File meta
// elements merged into the top level DataSet stay little endian whatever the transfer syntax.
func (ds *DataSet) owner(tag DataElementTag) (*DataSet, *Element, bool) {
	e, ok := ds.Elements[tag]
	if !ok {
		return nil, nil, false
	}
	if ds.meta != nil && ds.meta.Elements[tag] == e {
		return ds.meta, e, true
	}
	return ds, e, true
}

// Bytes returns the value field of the element with the given tag. The returned slice shares
// memory with the buffer of the DataSet.
func (ds *DataSet) Bytes(tag DataElementTag) ([]byte, bool) {
	owner, e, ok := ds.owner(tag)
	if !ok {
		return nil, false
	}
	return owner.valueBytes(e)
}

// binaryValue returns the size bytes of the value at index together with the byte order they
// are encoded in
func (ds *DataSet) binaryValue(tag DataElementTag, index int, size int) ([]byte, binary.ByteOrder, bool) {
	owner, e, ok := ds.owner(tag)
	if !ok {
		return nil, nil, false
	}
	b, ok := owner.valueBytes(e)
	if !ok || index < 0 || (index+1)*size > len(b) {
		return nil, nil, false
	}
	return b[index*size : (index+1)*size], owner.order, true
}

// Uint16 returns the value at index of a US element
func (ds *DataSet) Uint16(tag DataElementTag, index int) (uint16, bool) {
	b, order, ok := ds.binaryValue(tag, index, 2)
	if !ok {
		return 0, false
	}
	return order.Uint16(b), true
}

// Int16 returns the value at index of an SS element
func (ds *DataSet) Int16(tag DataElementTag, index int) (int16, bool) {
	v, ok := ds.Uint16(tag, index)
	return int16(v), ok
}

// Uint32 returns the value at index of a UL element
func (ds *DataSet) Uint32(tag DataElementTag, index int) (uint32, bool) {
	b, order, ok := ds.binaryValue(tag, index, 4)
	if !ok {
		return 0, false
	}
	return order.Uint32(b), true
}

// Int32 returns the value at index of an SL element
func (ds *DataSet) Int32(tag DataElementTag, index int) (int32, bool) {
	v, ok := ds.Uint32(tag, index)
	return int32(v), ok
}

// Uint64 returns the value at index of a UV element
func (ds *DataSet) Uint64(tag DataElementTag, index int) (uint64, bool) {
	b, order, ok := ds.binaryValue(tag, index, 8)
	if !ok {
		return 0, false
	}
	return order.Uint64(b), true
}

// Int64 returns the value at index of an SV element
func (ds *DataSet) Int64(tag DataElementTag, index int) (int64, bool) {
	v, ok := ds.Uint64(tag, index)
	return int64(v), ok
}

// Float32 returns the value at index of an FL element
func (ds *DataSet) Float32(tag DataElementTag, index int) (float32, bool) {
	v, ok := ds.Uint32(tag, index)
	return math.Float32frombits(v), ok
}

// Float64 returns the value at index of an FD element
func (ds *DataSet) Float64(tag DataElementTag, index int) (float64, bool) {
	v, ok := ds.Uint64(tag, index)
	return math.Float64frombits(v), ok
}

// AttributeTag returns the value of an AT element
func (ds *DataSet) AttributeTag(tag DataElementTag) (DataElementTag, bool) {
	b, order, ok := ds.binaryValue(tag, 0, 4)
	if !ok {
		return 0, false
	}
	group, element := order.Uint16(b[0:2]), order.Uint16(b[2:4])
	return DataElementTag(uint32(group)<<16 | uint32(element)), true
}

func (ds *DataSet) text(tag DataElementTag) (string, bool) {
	b, ok := ds.Bytes(tag)
	if !ok {
		return "", false
	}
	return ds.decodeText(trimNull(b)), true
}

// NumStringValues returns the number of backslash separated values of a string element
func (ds *DataSet) NumStringValues(tag DataElementTag) (int, bool) {
	s, ok := ds.text(tag)
	if !ok {
		return 0, false
	}
	return strings.Count(s, "\\") + 1, true
}

// Strings returns the values of a string element with leading and trailing spaces removed
func (ds *DataSet) Strings(tag DataElementTag) ([]string, bool) {
	s, ok := ds.text(tag)
	if !ok {
		return nil, false
	}
	values := strings.Split(s, "\\")
	for i, v := range values {
		values[i] = strings.TrimFunc(v, unicode.IsSpace)
	}
	return values, true
}

// StringAt returns the value at index of a string element with leading and trailing spaces removed
func (ds *DataSet) StringAt(tag DataElementTag, index int) (string, bool) {
	values, ok := ds.Strings(tag)
	if !ok || index < 0 || index >= len(values) {
		return "", false
	}
	return values[index], true
}

// Text returns the value of a text element (ST, LT, UT) with trailing spaces removed. Leading
// spaces are significant for these VRs and backslashes are not delimiters.
func (ds *DataSet) Text(tag DataElementTag) (string, bool) {
	s, ok := ds.text(tag)
	if !ok {
		return "", false
	}
	return strings.TrimRightFunc(s, unicode.IsSpace), true
}

// FloatString returns the value at index of a DS element
func (ds *DataSet) FloatString(tag DataElementTag, index int) (float64, bool) {
	s, ok := ds.StringAt(tag, index)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IntString returns the value at index of an IS element
func (ds *DataSet) IntString(tag DataElementTag, index int) (int, bool) {
	s, ok := ds.StringAt(tag, index)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return i, true
}
