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
)

type arithmeticSeq struct {
	start uint32
	end   uint32
	inc   uint32
}

func TestIsBulkData(t *testing.T) {
	tests := []struct {
		name string
		in   arithmeticSeq
		want bool
	}{
		{
			"Curve Data (50xx,3000) is bulk data",
			arithmeticSeq{0x50003000, 0x50FF3000, 0x00010000},
			true,
		},
		{
			"Overlay Data (60xx,3000) is bulk data",
			arithmeticSeq{0x60003000, 0x60FF3000, 0x00010000},
			true,
		},
		{
			"Pixel data is bulk data (7FE0,0010) is bulk data",
			arithmeticSeq{uint32(PixelDataTag), uint32(PixelDataTag), 1},
			true,
		},
		{
			"Source Image IDs (0x0020,31xx) is not bulk data",
			arithmeticSeq{0x00203100, 0x002031FF, 1},
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for tag := tc.in.start; tag <= tc.in.end; tag += tc.in.inc {
				got := DefaultBulkDataDefinition(&Element{Tag: DataElementTag(tag)})
				if got != tc.want {
					t.Fatalf("DefaultBulkDataDefinition(0x%08X) => %v, want %v", tag, got, tc.want)
				}
			}
		})
	}
}

func TestDropGroupLengths(t *testing.T) {
	dw := newDcmWriter(binary.LittleEndian)
	dw.Explicit(0x00080000, "UL", 4).UInt32(10)
	dw.ExplicitText(modalityTag, "CS", "MR")
	dw.Explicit(0x00090000, "UL", 4).UInt32(0)

	ds, err := ParseBytes(dw.Data(), WithTransferSyntax(ExplicitVRLittleEndianUID), DropGroupLengths)
	if err != nil {
		t.Fatalf("unexpected error parsing data set: %v", err)
	}
	if got := ds.SortedTags(); len(got) != 1 || got[0] != modalityTag {
		t.Fatalf("got %v, want %v", got, []DataElementTag{modalityTag})
	}
}

func TestDropBulkData(t *testing.T) {
	dw := newDcmWriter(binary.LittleEndian)
	dw.ExplicitText(modalityTag, "CS", "MR")
	writeEncapsulatedPixelData(dw, nil, []byte{1, 2})

	ds, err := ParseBytes(dw.Data(), WithTransferSyntax(ExplicitVRLittleEndianUID), DropBulkData(DefaultBulkDataDefinition))
	if err != nil {
		t.Fatalf("unexpected error parsing data set: %v", err)
	}
	if _, ok := ds.Element(PixelDataTag); ok {
		t.Fatalf("expected pixel data to be dropped")
	}
	if _, ok := ds.Element(modalityTag); !ok {
		t.Fatalf("expected %v to be kept", modalityTag)
	}
}

func TestTransformsAppliedInOrder(t *testing.T) {
	var calls []string
	first := WithTransform(func(e *Element) (*Element, error) {
		calls = append(calls, "first")
		return e, nil
	})
	second := WithTransform(func(e *Element) (*Element, error) {
		calls = append(calls, "second")
		return nil, nil
	})
	third := WithTransform(func(e *Element) (*Element, error) {
		calls = append(calls, "third")
		return e, nil
	})

	cfg := newParseConfig(first, second, third)
	got, err := cfg.applyTransforms(&Element{Tag: modalityTag})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("got %v, want nil", got)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("got calls %v, want [first second]", calls)
	}
}
