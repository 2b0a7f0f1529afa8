// Package usecases holds the template side of use-case generation: the
// keyword feature table, the fixed use-case templates, course-name
// extraction and decoding of delegate responses.
//
// Everything here is deterministic and free of I/O apart from LoadTable.
package usecases
