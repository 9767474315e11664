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
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched (errors.Is) by errors caused by invalid input to an API call:
	// missing arguments, a frame index out of range, or a pixel data element lacking the fields
	// needed for frame extraction.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIntegrity is matched by errors reporting that the basic offset table and the fragment
	// list of an encapsulated pixel data element are mutually inconsistent.
	ErrIntegrity = errors.New("data integrity violation")

	// ErrMalformed is matched by errors reporting input that cannot be parsed at all, such as a
	// sequence item without the item tag or a read past the end of the buffer.
	ErrMalformed = errors.New("malformed input")
)

// ArgumentError reports a missing required argument
type ArgumentError struct {
	Func  string
	Param string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: missing required parameter %q", e.Func, e.Param)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// MalformedItemError reports a sequence item whose tag is not the item tag (FFFE,E000)
type MalformedItemError struct {
	Tag DataElementTag

	// Offset is the byte offset of the offending tag
	Offset uint32
}

func (e *MalformedItemError) Error() string {
	return fmt.Sprintf("item tag %v not found at offset %d: got %v", ItemTag, e.Offset, e.Tag)
}

func (e *MalformedItemError) Is(target error) bool {
	return target == ErrMalformed
}

// BufferOverreadError reports an attempt to read or seek outside of the buffer being parsed
type BufferOverreadError struct {
	Position  uint32
	Requested uint32
	Length    uint32
	before    bool
}

func (e *BufferOverreadError) Error() string {
	if e.before {
		return fmt.Sprintf("attempt to seek before start of buffer at position %d", e.Position)
	}
	return fmt.Sprintf("attempt to read %d bytes past end of buffer at position %d (buffer length %d)",
		e.Requested, e.Position, e.Length)
}

func (e *BufferOverreadError) Is(target error) bool {
	return target == ErrMalformed
}

// PixelDataError reports a pixel data element that cannot be used for frame extraction
type PixelDataError struct {
	Tag    DataElementTag
	Reason string
}

func (e *PixelDataError) Error() string {
	return fmt.Sprintf("pixel data element %v: %s", e.Tag, e.Reason)
}

func (e *PixelDataError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// FrameIndexError reports a frame index outside of [0, Frames)
type FrameIndexError struct {
	Index  int
	Frames int
}

func (e *FrameIndexError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("frame index must be >= 0: got %d", e.Index)
	}
	return fmt.Sprintf("frame index must be < %d (basic offset table length): got %d", e.Frames, e.Index)
}

func (e *FrameIndexError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// FragmentRangeError reports a fragment span that does not fit the fragment list
type FragmentRangeError struct {
	Start     int
	Count     int
	Fragments int
}

func (e *FragmentRangeError) Error() string {
	return fmt.Sprintf("fragments [%d, %d) out of range for %d fragments", e.Start, e.Start+e.Count, e.Fragments)
}

func (e *FragmentRangeError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// OffsetTableError reports a basic offset table entry that matches no fragment offset
type OffsetTableError struct {
	FrameIndex int
	Offset     uint32
}

func (e *OffsetTableError) Error() string {
	return fmt.Sprintf("could not find fragment with offset %d matching basic offset table entry for frame %d",
		e.Offset, e.FrameIndex)
}

func (e *OffsetTableError) Is(target error) bool {
	return target == ErrIntegrity
}
