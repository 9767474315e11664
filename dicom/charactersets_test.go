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

func TestCharacterSet(t *testing.T) {
	tests := []struct {
		name    string
		charset string
		value   []byte
		want    string
	}{
		{"default repertoire", "", []byte("DOE^JOHN"), "DOE^JOHN"},
		{"latin 1", "ISO_IR 100", []byte{'M', 0xDC, 'L', 'L', 'E', 'R'}, "MÜLLER"},
		{"utf-8", "ISO_IR 192", []byte("MÜLLER"), "MÜLLER"},
		{"first non-empty term of a code extension", "\\ISO_IR 100", []byte{0xC9, 'L', 'I', 'E'}, "ÉLIE"},
		{"unsupported term falls back to default", "ISO_IR 999", []byte("DOE"), "DOE"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dw := newDcmWriter(binary.LittleEndian)
			if tc.charset != "" {
				dw.ExplicitText(SpecificCharacterSetTag, "CS", tc.charset)
			}
			dw.Explicit(patientNameTag, "PN", uint32(len(tc.value))).Bytes(tc.value)

			ds := mustParseRaw(t, ExplicitVRLittleEndianUID, dw.Data())
			got, ok := ds.StringAt(patientNameTag, 0)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCharacterSet_inheritedByItems(t *testing.T) {
	value := []byte{'M', 0xDC, 'L', 'L', 'E', 'R'}

	dw := newDcmWriter(binary.LittleEndian)
	dw.ExplicitText(SpecificCharacterSetTag, "CS", "ISO_IR 100")
	dw.Explicit(referencedStudySequenceTag, "SQ", undefinedLengthMarker)
	dw.Item(8 + uint32(len(value)))
	dw.Explicit(patientNameTag, "PN", uint32(len(value))).Bytes(value)
	dw.Delimiter(SequenceDelimitationItemTag)

	ds := mustParseRaw(t, ExplicitVRLittleEndianUID, dw.Data())
	sq := mustElement(t, ds, referencedStudySequenceTag)
	require.Len(t, sq.Items, 1)

	got, ok := sq.Items[0].DataSet.StringAt(patientNameTag, 0)
	require.True(t, ok)
	assert.Equal(t, "MÜLLER", got)
}
