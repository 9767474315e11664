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

// delimiterGroup is the group number reserved for items and delimitation items
const delimiterGroup uint16 = 0xFFFE

const (
	// FileMetaInformationGroupLengthTag (0002,0000) stores the byte length of the file meta elements
	FileMetaInformationGroupLengthTag DataElementTag = 0x00020000
	// TransferSyntaxUIDTag (0002,0010) identifies the encoding of the data set
	TransferSyntaxUIDTag DataElementTag = 0x00020010
	// SpecificCharacterSetTag (0008,0005) names the character repertoire of text values
	SpecificCharacterSetTag DataElementTag = 0x00080005
	// NumberOfFramesTag (0028,0008)
	NumberOfFramesTag DataElementTag = 0x00280008
	// PixelDataTag (7FE0,0010)
	PixelDataTag DataElementTag = 0x7FE00010

	// ItemTag (FFFE,E000) starts a sequence item or a pixel data fragment
	ItemTag DataElementTag = 0xFFFEE000
	// ItemDelimitationItemTag (FFFE,E00D) ends a sequence item of undefined length
	ItemDelimitationItemTag DataElementTag = 0xFFFEE00D
	// SequenceDelimitationItemTag (FFFE,E0DD) ends a sequence or pixel data of undefined length
	SequenceDelimitationItemTag DataElementTag = 0xFFFEE0DD
)

// element numbers of the delimitation items within delimiterGroup
const (
	itemDelimitationElement     uint16 = 0xE00D
	sequenceDelimitationElement uint16 = 0xE0DD
)

// Tags of elements that hold bulk data. Tags of repeating groups, such as (50xx,3000), are
// stored with the x's set to 0.
const (
	PixelDataProviderURLTag DataElementTag = 0x00287FE0
	EncapsulatedDocumentTag DataElementTag = 0x00420011
	AudioSampleDataTag      DataElementTag = 0x5000200C
	CurveDataTag            DataElementTag = 0x50003000
	WaveformDataTag         DataElementTag = 0x54001010
	SpectroscopyDataTag     DataElementTag = 0x56000020
	OverlayDataTag          DataElementTag = 0x60003000
	FloatPixelDataTag       DataElementTag = 0x7FE00008
	DoubleFloatPixelDataTag DataElementTag = 0x7FE00009
)
