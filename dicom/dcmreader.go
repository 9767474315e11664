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
	"math"
)

// byteStream is a cursor over the in-memory bytes of one DICOM buffer, providing convenience
// methods for reading tags and numbers. One byteStream is shared by every recursive call of a
// parse: nested data sets and their siblings advance the same position.
type byteStream struct {
	buf      []byte
	position uint32
	order    binary.ByteOrder
	warnings *warningLog
}

func newByteStream(buf []byte, order binary.ByteOrder, warnings *warningLog) *byteStream {
	return &byteStream{buf: buf, order: order, warnings: warnings}
}

// Len returns the total size of the underlying buffer
func (bs *byteStream) Len() uint32 {
	return uint32(len(bs.buf))
}

// Position returns the current offset of the cursor
func (bs *byteStream) Position() uint32 {
	return bs.position
}

// AtEnd is true once the cursor has reached or passed the end of the buffer
func (bs *byteStream) AtEnd() bool {
	return bs.position >= bs.Len()
}

func (bs *byteStream) ensure(n uint32) error {
	if uint64(bs.position)+uint64(n) > uint64(len(bs.buf)) {
		return &BufferOverreadError{Position: bs.position, Requested: n, Length: bs.Len()}
	}
	return nil
}

// UInt16 returns a uint16 from the stream in the byte order of the stream
func (bs *byteStream) UInt16() (uint16, error) {
	if err := bs.ensure(2); err != nil {
		return 0, err
	}
	v := bs.order.Uint16(bs.buf[bs.position:])
	bs.position += 2
	return v, nil
}

// UInt32 returns a uint32 from the stream in the byte order of the stream
func (bs *byteStream) UInt32() (uint32, error) {
	if err := bs.ensure(4); err != nil {
		return 0, err
	}
	v := bs.order.Uint32(bs.buf[bs.position:])
	bs.position += 4
	return v, nil
}

func (bs *byteStream) Tag() (DataElementTag, error) {
	group, err := bs.UInt16()
	if err != nil {
		return 0, err
	}
	element, err := bs.UInt16()
	if err != nil {
		return 0, err
	}

	return DataElementTag(uint32(group)<<16 | uint32(element)), nil
}

// PeekTag returns the next tag without advancing the stream
func (bs *byteStream) PeekTag() (DataElementTag, error) {
	start := bs.position
	tag, err := bs.Tag()
	bs.position = start
	return tag, err
}

// Bytes returns the next n bytes of the stream. The returned slice shares memory with the
// underlying buffer.
func (bs *byteStream) Bytes(n uint32) ([]byte, error) {
	if err := bs.ensure(n); err != nil {
		return nil, err
	}
	b := bs.buf[bs.position : bs.position+n]
	bs.position += n
	return b, nil
}

// String returns a string of length n from the stream
func (bs *byteStream) String(n uint32) (string, error) {
	b, err := bs.Bytes(n)
	return string(b), err
}

// Skip moves the cursor by delta bytes. Moving past the end of the buffer is allowed (the next
// read fails), moving before the start is not.
func (bs *byteStream) Skip(delta int64) error {
	next := int64(bs.position) + delta
	if next < 0 {
		return &BufferOverreadError{Position: bs.position, Length: bs.Len(), before: true}
	}
	if next > math.MaxUint32 {
		return &BufferOverreadError{Position: bs.position, Requested: uint32(delta), Length: bs.Len()}
	}
	bs.position = uint32(next)
	return nil
}

// SeekToEnd forces the cursor to the end of the buffer
func (bs *byteStream) SeekToEnd() {
	bs.position = bs.Len()
}
