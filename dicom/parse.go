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
	"compress/flate"
	"errors"
	"fmt"
	"io"
)

// Parse parses a DICOM file represented as an io.Reader, returning the DataSet defined by applying
// options sequentially in the order given to Elements in the file. The input is read fully
// into memory; see ParseBytes.
func Parse(r io.Reader, opts ...ParseOption) (*DataSet, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return ParseBytes(buf, opts...)
}

// ParseBytes parses buf, which holds either a DICOM part 10 file (preamble, "DICM" prefix and
// file meta information followed by the data set) or, if the WithTransferSyntax option is
// given, a raw data set.
//
// The returned DataSet and every nested DataSet refer to buf (or, for the deflated transfer
// syntax, to an inflated copy of it); buf must not be modified while they are in use.
// Recoverable anomalies in the input are reported by DataSet.Warnings rather than as errors.
func ParseBytes(buf []byte, opts ...ParseOption) (*DataSet, error) {
	cfg := newParseConfig(opts...)
	warnings := newWarningLog(cfg.logger, cfg.mirrorWarnings)
	pc := &parseContext{
		bs:       newByteStream(buf, defaultMetaOrder, warnings),
		syntax:   explicitVRLittleEndian,
		config:   cfg,
		warnings: warnings,
		logger:   cfg.logger,
	}

	var meta *fileMeta
	syntaxUID := cfg.transferSyntaxUID
	if hasPart10Header(buf) {
		var err error
		if meta, err = readFileMeta(pc); err != nil {
			return nil, err
		}
		syntaxUID = meta.syntaxUID
	} else if syntaxUID == "" {
		return nil, errors.New("DICM prefix not found at offset 128 and no transfer syntax given for a raw data set")
	}

	syntax := lookupTransferSyntax(syntaxUID)
	if syntax.isDeflated() {
		inflated, err := inflate(buf, pc.bs.Position())
		if err != nil {
			return nil, err
		}
		position := pc.bs.Position()
		pc.bs = newByteStream(inflated, defaultMetaOrder, warnings)
		pc.bs.position = position
		if meta != nil {
			meta.dataSet.byteArray = inflated
		}
	}
	pc.syntax = syntax
	pc.bs.order = syntax.byteOrder()

	ds, err := parseDataSet(pc, uint64(pc.bs.Len()))
	if err != nil {
		return nil, err
	}

	if meta != nil {
		ds.meta = meta.dataSet
		for tag, element := range meta.dataSet.Elements {
			if _, ok := ds.Elements[tag]; !ok {
				ds.Elements[tag] = element
			}
		}
	}

	pc.logger.Debugw("parsed data set",
		"transferSyntax", syntaxUID,
		"elements", len(ds.Elements),
		"warnings", len(warnings.entries),
		"bytes", pc.bs.Len())
	return ds, nil
}

// inflate returns a copy of buf whose bytes from offset onward, compressed with the deflate
// algorithm (RFC 1951) without zlib header, are replaced by their uncompressed form
func inflate(buf []byte, offset uint32) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(buf[offset:]))
	defer r.Close()

	out := bytes.NewBuffer(make([]byte, 0, 2*len(buf)))
	out.Write(buf[:offset])
	if _, err := io.Copy(out, r); err != nil {
		return nil, fmt.Errorf("inflating deflated data set: %w", err)
	}
	return out.Bytes(), nil
}

// parseDataSet reads elements from the cursor until it reaches end. It is used both for the top
// level data set and for the contents of items of known length.
func parseDataSet(pc *parseContext, end uint64) (*DataSet, error) {
	ds := pc.enter()
	defer pc.leave(ds)

	bs := pc.bs
	for uint64(bs.Position()) < end && !pc.stopped {
		element, err := readDataElement(pc)
		if err != nil {
			return nil, err
		}
		if element.Tag == ItemDelimitationItemTag {
			pc.warnings.add(element.DataOffset, "unexpected item delimitation item in data set of known length")
			continue
		}
		if err := pc.add(ds, element); err != nil {
			return nil, err
		}
	}

	if uint64(bs.Position()) > uint64(bs.Len()) {
		return nil, &BufferOverreadError{Position: bs.Len(), Requested: bs.Position() - bs.Len(), Length: bs.Len()}
	}
	if uint64(bs.Position()) > end {
		pc.warnings.add(bs.Position(), "elements overran the end of their data set (%d)", end)
	}
	return ds, nil
}
