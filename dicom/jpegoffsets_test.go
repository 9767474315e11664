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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJPEGBasicOffsetTable(t *testing.T) {
	tests := []struct {
		name      string
		fragments [][]byte
		want      []uint32
	}{
		{
			"single frame in one fragment",
			[][]byte{{0xFF, 0xD8, 0xFF, 0xD9}},
			[]uint32{0},
		},
		{
			"two frames, the first split over two fragments",
			[][]byte{{0xFF, 0xD8, 0x00, 0x01}, {0x02, 0x03, 0xFF, 0xD9}, {0xFF, 0xD8, 0x00, 0xFF, 0xD9, 0x00}},
			[]uint32{0, 24},
		},
		{
			"three single fragment frames",
			[][]byte{{0xFF, 0xD9}, {0xFF, 0xD9}, {0xFF, 0xD9}},
			[]uint32{0, 10, 20},
		},
		{
			"no end of image marker",
			[][]byte{{0xFF, 0xD8, 0x00, 0x00}, {0x00, 0x00}},
			[]uint32{0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dw := newDcmWriter(binary.LittleEndian)
			writeEncapsulatedPixelData(dw, nil, tc.fragments...)
			ds := mustParseRaw(t, ExplicitVRLittleEndianUID, dw.Data())
			e := mustElement(t, ds, PixelDataTag)

			got, err := CreateJPEGBasicOffsetTable(ds, e, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCreateJPEGBasicOffsetTable_readsFrames(t *testing.T) {
	first := []byte{0xFF, 0xD8, 0x01, 0x02, 0xFF, 0xD9}
	second := []byte{0xFF, 0xD8, 0x03, 0xFF, 0xD9, 0x00}

	dw := newDcmWriter(binary.LittleEndian)
	writeEncapsulatedPixelData(dw, nil, first[:2], first[2:], second)
	ds := mustParseRaw(t, ExplicitVRLittleEndianUID, dw.Data())
	e := mustElement(t, ds, PixelDataTag)

	table, err := CreateJPEGBasicOffsetTable(ds, e, nil)
	require.NoError(t, err)
	require.Len(t, table, 2)

	frame, err := ReadEncapsulatedImageFrameWithOffsets(ds, e, 0, table, nil)
	require.NoError(t, err)
	assert.Equal(t, first, frame)

	frame, err = ReadEncapsulatedImageFrameWithOffsets(ds, e, 1, table, nil)
	require.NoError(t, err)
	assert.Equal(t, second, frame)
}

func TestCreateJPEGBasicOffsetTable_validation(t *testing.T) {
	ds, e := twoFrameDataSet(t, nil)

	_, err := CreateJPEGBasicOffsetTable(nil, e, nil)
	assert.IsType(t, &ArgumentError{}, err)

	notPixelData := *e
	notPixelData.Tag = modalityTag
	_, err = CreateJPEGBasicOffsetTable(ds, &notPixelData, nil)
	assert.IsType(t, &PixelDataError{}, err)
}
