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

import "fmt"

// undefinedLengthMarker is the value of a 32-bit length field meaning "undefined length"
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
const undefinedLengthMarker uint32 = 0xFFFFFFFF

// ValueLength is the length of a value field as declared in the file: either a known number of
// bytes or undefined, in which case the end of the value is marked by a delimitation item.
type ValueLength struct {
	n       uint32
	defined bool
}

// UndefinedLength is the ValueLength of values terminated by a delimitation item
var UndefinedLength = ValueLength{}

// KnownLength returns the ValueLength of a value field of n bytes
func KnownLength(n uint32) ValueLength {
	return ValueLength{n, true}
}

func lengthFromWire(v uint32) ValueLength {
	if v == undefinedLengthMarker {
		return UndefinedLength
	}
	return KnownLength(v)
}

// IsUndefined is true if the length is undefined
func (l ValueLength) IsUndefined() bool {
	return !l.defined
}

// Bytes returns the number of bytes of a known length. ok is false for an undefined length.
func (l ValueLength) Bytes() (n uint32, ok bool) {
	return l.n, l.defined
}

func (l ValueLength) String() string {
	if !l.defined {
		return "undefined"
	}
	return fmt.Sprintf("%d", l.n)
}
