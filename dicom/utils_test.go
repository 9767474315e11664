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
	"testing"

	"github.com/stretchr/testify/require"
)

// dcmWriter builds DICOM byte fixtures. Writes to a bytes.Buffer never fail, so methods return
// the writer for chaining.
type dcmWriter struct {
	buf   bytes.Buffer
	order binary.ByteOrder
}

func newDcmWriter(order binary.ByteOrder) *dcmWriter {
	return &dcmWriter{order: order}
}

func (dw *dcmWriter) Tag(tag DataElementTag) *dcmWriter {
	return dw.UInt16(tag.GroupNumber()).UInt16(tag.ElementNumber())
}

func (dw *dcmWriter) UInt16(v uint16) *dcmWriter {
	b := make([]byte, 2)
	dw.order.PutUint16(b, v)
	return dw.Bytes(b)
}

func (dw *dcmWriter) UInt32(v uint32) *dcmWriter {
	b := make([]byte, 4)
	dw.order.PutUint32(b, v)
	return dw.Bytes(b)
}

func (dw *dcmWriter) String(s string) *dcmWriter {
	dw.buf.WriteString(s)
	return dw
}

func (dw *dcmWriter) Bytes(b []byte) *dcmWriter {
	dw.buf.Write(b)
	return dw
}

// Delimiter writes a delimitation item with zero length
func (dw *dcmWriter) Delimiter(tag DataElementTag) *dcmWriter {
	return dw.Tag(tag).UInt32(0)
}

// Item writes a sequence item or fragment header
func (dw *dcmWriter) Item(length uint32) *dcmWriter {
	return dw.Tag(ItemTag).UInt32(length)
}

// Explicit writes an explicit VR element header
func (dw *dcmWriter) Explicit(tag DataElementTag, vr string, length uint32) *dcmWriter {
	dw.Tag(tag).String(vr)
	if explicitVRLittleEndian.has32BitLength(lookupVRByName(vr)) {
		return dw.UInt16(0).UInt32(length)
	}
	return dw.UInt16(uint16(length))
}

// Implicit writes an implicit VR element header
func (dw *dcmWriter) Implicit(tag DataElementTag, length uint32) *dcmWriter {
	return dw.Tag(tag).UInt32(length)
}

// ExplicitText writes a complete explicit VR text element, padded to even length
func (dw *dcmWriter) ExplicitText(tag DataElementTag, vr string, value string) *dcmWriter {
	value = padText(vr, value)
	return dw.Explicit(tag, vr, uint32(len(value))).String(value)
}

// ImplicitText writes a complete implicit VR text element, padded to even length
func (dw *dcmWriter) ImplicitText(tag DataElementTag, vr string, value string) *dcmWriter {
	value = padText(vr, value)
	return dw.Implicit(tag, uint32(len(value))).String(value)
}

func (dw *dcmWriter) Len() uint32 {
	return uint32(dw.buf.Len())
}

func (dw *dcmWriter) Data() []byte {
	return dw.buf.Bytes()
}

func padText(vr string, value string) string {
	if len(value)%2 == 0 {
		return value
	}
	if vr == "UI" {
		return value + "\x00"
	}
	return value + " "
}

// part10 prefixes dataSet with a preamble, the DICM prefix and a file meta group declaring the
// given transfer syntax
func part10(syntaxUID string, dataSet []byte) []byte {
	uidLength := uint32(len(padText("UI", syntaxUID)))
	dw := newDcmWriter(binary.LittleEndian)
	dw.Bytes(make([]byte, preambleLength)).String(dicmPrefix)
	dw.Explicit(FileMetaInformationGroupLengthTag, "UL", 4).UInt32(8 + uidLength)
	dw.ExplicitText(TransferSyntaxUIDTag, "UI", syntaxUID)
	return dw.Bytes(dataSet).Data()
}

// newTestContext returns a parse context over buf positioned at offset 0
func newTestContext(buf []byte, syntax transferSyntax, opts ...ParseOption) *parseContext {
	cfg := newParseConfig(opts...)
	warnings := newWarningLog(cfg.logger, false)
	return &parseContext{
		bs:       newByteStream(buf, syntax.byteOrder(), warnings),
		syntax:   syntax,
		config:   cfg,
		warnings: warnings,
		logger:   cfg.logger,
	}
}

func mustParseRaw(t *testing.T, syntaxUID string, data []byte, opts ...ParseOption) *DataSet {
	t.Helper()
	ds, err := ParseBytes(data, append([]ParseOption{WithTransferSyntax(syntaxUID)}, opts...)...)
	require.NoError(t, err)
	return ds
}

func mustElement(t *testing.T, ds *DataSet, tag DataElementTag) *Element {
	t.Helper()
	e, ok := ds.Element(tag)
	require.Truef(t, ok, "element %v not found", tag)
	return e
}

// sample tags used by fixtures
const (
	modalityTag                 DataElementTag = 0x00080060
	referencedImageSequenceTag  DataElementTag = 0x00081140
	referencedSOPClassUIDTag    DataElementTag = 0x00081150
	referencedSOPInstanceUIDTag DataElementTag = 0x00081155
	referencedStudySequenceTag  DataElementTag = 0x00081110
	patientNameTag              DataElementTag = 0x00100010
	rowsTag                     DataElementTag = 0x00280010
	privateUNTag                DataElementTag = 0x00091010
)
