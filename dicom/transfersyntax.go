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
)

const (
	// ImplicitVRLittleEndianUID is the Implicit VR Little Endian UID
	ImplicitVRLittleEndianUID = "1.2.840.10008.1.2"
	// ExplicitVRLittleEndianUID is the Explicit VR Little Endian UID
	ExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1"
	// ExplicitVRBigEndianUID is the Explicit VR Big Endian UID
	ExplicitVRBigEndianUID = "1.2.840.10008.1.2.2"
	// DeflatedExplicitVRLittleEndianUID is the Deflated Explicit VR Little Endian UID
	DeflatedExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1.99"
	// JPEGBaselineUID is the JPEG Baseline (Process 1) transfer syntax UID
	JPEGBaselineUID = "1.2.840.10008.1.2.4.50"
)

func lookupTransferSyntax(uid string) transferSyntax {
	if uid == ExplicitVRLittleEndianUID {
		return explicitVRLittleEndian
	}
	if uid == ImplicitVRLittleEndianUID {
		return implicitVRLittleEndian
	}
	if uid == ExplicitVRBigEndianUID {
		return explicitVRBigEndian
	}
	if uid == DeflatedExplicitVRLittleEndianUID {
		return deflatedExplicitVRLittleEndian
	}

	// any other syntax should be explicit VR little endian according to PS3.5 A.4
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
	return explicitVRLittleEndian
}

const (
	vrSize  = 2
	tagSize = 4
)

// transferSyntax is the set of capabilities that differ between the implicit and explicit VR
// encodings. It is selected once per parse; the element decoder and the sequence engine are
// written once against it.
type transferSyntax interface {
	byteOrder() binary.ByteOrder
	isDeflated() bool
	readVR(pc *parseContext, tag DataElementTag) (*VR, error)
	readValueLength(bs *byteStream, vr *VR) (uint32, error)

	// isSequence reports whether the value field of element, whose header has just been read,
	// holds sequence items
	isSequence(pc *parseContext, element *Element, length ValueLength) bool
}

type implicitSyntax struct{}

func (implicitSyntax) byteOrder() binary.ByteOrder {
	return binary.LittleEndian
}

func (implicitSyntax) isDeflated() bool {
	return false
}

func (implicitSyntax) readVR(pc *parseContext, tag DataElementTag) (*VR, error) {
	if pc.config.vrLookup == nil {
		return nil, nil
	}
	name := pc.config.vrLookup(tag)
	if name == "" {
		return nil, nil
	}
	return lookupVRByName(name), nil
}

func (implicitSyntax) readValueLength(bs *byteStream, vr *VR) (uint32, error) {
	return bs.UInt32()
}

func (implicitSyntax) isSequence(pc *parseContext, element *Element, length ValueLength) bool {
	if element.VR != nil {
		return element.VR.kind == sequenceVR
	}
	if element.Tag == PixelDataTag {
		// encapsulated pixel data also starts with an item tag
		return false
	}
	if n, ok := length.Bytes(); ok && n < delimiterSize {
		// too short to hold an item header
		return false
	}

	// Without a data dictionary, a sequence is recognised by its first item or by the sequence
	// delimiter of an empty sequence of undefined length.
	bs := pc.bs
	if uint64(bs.Position())+tagSize > uint64(bs.Len()) {
		pc.warnings.add(bs.Position(), "eof encountered before finding sequence item tag or sequence delimiter tag in peeking to determine VR of %v", element.Tag)
		return false
	}
	next, err := bs.PeekTag()
	if err != nil {
		return false
	}
	return next == ItemTag || next == SequenceDelimitationItemTag
}

type explicitSyntax struct {
	order    binary.ByteOrder
	deflated bool
}

func (s explicitSyntax) byteOrder() binary.ByteOrder {
	return s.order
}

func (s explicitSyntax) isDeflated() bool {
	return s.deflated
}

func (s explicitSyntax) readVR(pc *parseContext, tag DataElementTag) (*VR, error) {
	vrString, err := pc.bs.String(vrSize)
	if err != nil {
		return nil, err
	}

	return lookupVRByName(vrString), nil
}

func (s explicitSyntax) readValueLength(bs *byteStream, vr *VR) (uint32, error) {
	if s.has32BitLength(vr) {
		if _, err := bs.UInt16(); err != nil {
			return 0, err
		}
		return bs.UInt32()
	}

	length, err := bs.UInt16()
	if err != nil {
		return 0, err
	}
	return uint32(length), nil
}

func (s explicitSyntax) isSequence(pc *parseContext, element *Element, length ValueLength) bool {
	return element.VR.kind == sequenceVR
}

func (s explicitSyntax) has32BitLength(vr *VR) bool {
	// For explicit VR, lengths can be stored in a 32 bit field or a 16 bit field
	// depending on the VR type. The 2 cases are defined at the link:
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
	switch vr {
	case OBVR, ODVR, OFVR, OLVR, OVVR, OWVR, SQVR, SVVR, UCVR, URVR, UTVR, UNVR, UVVR:
		return true
	default:
		return false
	}
}

var (
	explicitVRLittleEndian         = explicitSyntax{binary.LittleEndian, false}
	deflatedExplicitVRLittleEndian = explicitSyntax{binary.LittleEndian, true}
	implicitVRLittleEndian         = implicitSyntax{}
	explicitVRBigEndian            = explicitSyntax{binary.BigEndian, false}
)
