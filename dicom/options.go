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
	"fmt"

	"go.uber.org/zap"
)

// Transform describes a transformation applied to an Element before it is stored in its DataSet
type Transform func(*Element) (*Element, error)

// ParseOption configures the behavior of the Parse function.
type ParseOption struct {
	apply func(*parseConfig)
}

type parseConfig struct {
	transforms        []Transform
	vrLookup          func(DataElementTag) string
	untilTag          *DataElementTag
	transferSyntaxUID string
	logger            *zap.SugaredLogger
	mirrorWarnings    bool
}

func newParseConfig(opts ...ParseOption) *parseConfig {
	cfg := &parseConfig{mirrorWarnings: GetConfig().MirrorWarnings}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = packageLogger()
	}
	return cfg
}

func (cfg *parseConfig) applyTransforms(element *Element) (*Element, error) {
	var err error
	for i, t := range cfg.transforms {
		element, err = t(element)
		if err != nil {
			return nil, fmt.Errorf("applying transform %v: %w", i, err)
		}
		if element == nil { // transform wants to filter this element out
			return nil, nil
		}
	}
	return element, nil
}

// WithTransform returns a ParseOption that applies the given transformation to each Element in
// the DICOM file in the order encountered. For Elements that contain a sequence, the transform
// is applied to nested Elements first (i.e. transform is called on Elements in post-order).
// If the transform returns an error, Parse will stop parsing and return an error.
// If no error is returned and a non-nil Element is returned, this Element will be added to
// the returned DataSet of Parse. If a nil Element is returned, this Element will be
// excluded from the DataSet returned from Parse.
func WithTransform(t Transform) ParseOption {
	return ParseOption{func(cfg *parseConfig) {
		cfg.transforms = append(cfg.transforms, t)
	}}
}

// DropGroupLengths will exclude all group length elements (gggg,0000) from the returned DataSet
var DropGroupLengths = WithTransform(func(element *Element) (*Element, error) {
	if element.Tag.ElementNumber() == 0 {
		return nil, nil
	}
	return element, nil
})

// DropBulkData will exclude the elements for which isBulkData returns true
func DropBulkData(isBulkData func(*Element) bool) ParseOption {
	return WithTransform(func(element *Element) (*Element, error) {
		if isBulkData(element) {
			return nil, nil
		}
		return element, nil
	})
}

// DefaultBulkDataDefinition returns true if and only if the tag corresponds to a data element
// that contains large non-metadata fields
func DefaultBulkDataDefinition(elem *Element) bool {
	// Tags in the DICOM data dictionary have wildcards (e.g. tags like (gggg,eexx), (ggxx,eeee)).
	// For example the Curve Data tag is defined as (50xx,3000) and CurveDataTag = 0x50003000, so
	// a tag is of the form (50xx,3000) if (tag & 0xFF00FFFF) == CurveDataTag.
	//
	// The following list of masks handles all wildcards in the DICOM data dictionary. The value
	// 0xFFFFFFFF is included in the list of masks for convenience since
	// (tag & 0xFFFFFFFF) == tag
	for _, m := range []uint32{0xFFFFFF00, 0xFFFFFF0F, 0xFFFF000F, 0xFFFF0000, 0xFF00FFFF, 0xFFFFFFFF} {
		switch DataElementTag(uint32(elem.Tag) & m) {
		case PixelDataProviderURLTag, AudioSampleDataTag, CurveDataTag, SpectroscopyDataTag,
			OverlayDataTag, EncapsulatedDocumentTag, FloatPixelDataTag, DoubleFloatPixelDataTag,
			PixelDataTag, WaveformDataTag:
			return true
		}
	}
	return false
}

// WithLogger sets the logger that receives debug output and, if enabled in Config, a copy of
// every warning recorded during the parse. The package logger is used by default.
func WithLogger(logger *zap.SugaredLogger) ParseOption {
	return ParseOption{func(cfg *parseConfig) {
		cfg.logger = logger
	}}
}

// WithVRLookup supplies the VR of elements encoded in the implicit VR transfer syntax. lookup
// returns a two letter VR code, or "" if the VR of tag is unknown. Without a lookup, sequences
// in implicit VR data sets are recognised by peeking at the bytes that follow their header.
func WithVRLookup(lookup func(tag DataElementTag) string) ParseOption {
	return ParseOption{func(cfg *parseConfig) {
		cfg.vrLookup = lookup
	}}
}

// UntilTag stops parsing once the header of the top level element with the given tag has been
// read. That element is included in the returned DataSet without its value being consumed.
func UntilTag(tag DataElementTag) ParseOption {
	return ParseOption{func(cfg *parseConfig) {
		cfg.untilTag = &tag
	}}
}

// WithTransferSyntax sets the transfer syntax of input that has no DICOM part 10 header (raw
// data sets). It is also used when a part 10 header lacks the Transfer Syntax UID element.
func WithTransferSyntax(uid string) ParseOption {
	return ParseOption{func(cfg *parseConfig) {
		cfg.transferSyntaxUID = uid
	}}
}
