// Package dicom is the core package of the dicomparser library. It decodes the DICOM file format
// as specified in [http://dicom.nema.org/medical/dicom/current/output/pdf/part05.pdf] from an
// in-memory buffer into a tree of DataSets, and reconstructs the frames of encapsulated
// (compressed) pixel data from its fragments.
//
// Elements are not decoded eagerly. Parse records, for every element, where its value lives in
// the buffer; the typed accessors of DataSet (Uint16, StringAt, FloatString, ...) decode values
// on demand. Sequences are the exception: their items are parsed recursively into nested
// DataSets during Parse.
//
// Every call to Parse or ParseBytes owns its own cursor and warning list, so independent parses
// may run concurrently.
package dicom
