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
	"errors"
	"fmt"
)

const (
	preambleLength = 128
	dicmPrefix     = "DICM"
)

// fileMeta is the result of reading the part 10 header of a buffer
type fileMeta struct {
	dataSet   *DataSet
	syntaxUID string
	syntax    transferSyntax
}

func hasPart10Header(buf []byte) bool {
	end := preambleLength + len(dicmPrefix)
	return len(buf) >= end && string(buf[preambleLength:end]) == dicmPrefix
}

// readFileMeta reads the file meta information group that follows the preamble and "DICM"
// prefix. The group is always encoded in explicit VR little endian:
// http://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
//
// On return the cursor is positioned at the first byte of the data set.
func readFileMeta(pc *parseContext) (*fileMeta, error) {
	bs := pc.bs
	if err := bs.Skip(preambleLength + int64(len(dicmPrefix))); err != nil {
		return nil, err
	}

	ds := pc.enter()
	defer pc.leave(ds)

	for uint64(bs.Position())+tagSize <= uint64(bs.Len()) {
		tag, err := bs.PeekTag()
		if err != nil {
			return nil, err
		}
		if !tag.IsMetaElement() {
			break
		}
		element, err := readDataElement(pc)
		if err != nil {
			return nil, fmt.Errorf("reading file meta element: %w", err)
		}
		if err := pc.add(ds, element); err != nil {
			return nil, err
		}
	}

	meta := &fileMeta{dataSet: ds}
	if uid, ok := readTransferSyntaxUID(ds); ok {
		meta.syntaxUID = uid
	} else if pc.config.transferSyntaxUID != "" {
		meta.syntaxUID = pc.config.transferSyntaxUID
	} else {
		return nil, errors.New("transfer syntax not found: missing required meta element (0002,0010)")
	}
	meta.syntax = lookupTransferSyntax(meta.syntaxUID)
	return meta, nil
}

func readTransferSyntaxUID(meta *DataSet) (string, bool) {
	uid, ok := meta.StringAt(TransferSyntaxUIDTag, 0)
	if !ok || uid == "" {
		return "", false
	}
	return uid, true
}

var defaultMetaOrder binary.ByteOrder = binary.LittleEndian
