// Package extractors selects the driven.Extractor that turns an uploaded
// file into plain text. Each sub-package knows one family of formats;
// the Registry picks the highest priority extractor for a MIME type.
//
// Extractors are registered with the Registry at startup.
package extractors
