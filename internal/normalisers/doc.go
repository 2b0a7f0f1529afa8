// Package normalisers extracts plain text from ingested files. Each
// sub-package handles a family of MIME types; the Registry in this package
// dispatches a raw document to the highest-priority normaliser for its type.
//
// Normalisers are registered at startup. PDF and image normalisers are only
// registered when their external tools are available.
package normalisers
