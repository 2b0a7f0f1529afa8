// Package codec encodes index artifacts for the storage adapters.
//
// Artifacts are gob-encoded with a leading format version so a store can
// reject payloads written by an incompatible build and force a rebuild.
package codec

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

// Version is the artifact format version.
const Version = 1

type header struct {
	Version int
}

// EncodeModel writes model to w.
func EncodeModel(w io.Writer, model *domain.TermModel) error {
	return encode(w, model)
}

// DecodeModel reads a model written by EncodeModel.
func DecodeModel(r io.Reader) (*domain.TermModel, error) {
	var m domain.TermModel
	if err := decode(r, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// EncodeMatrix writes matrix to w.
func EncodeMatrix(w io.Writer, matrix *domain.WeightMatrix) error {
	return encode(w, matrix)
}

// DecodeMatrix reads a matrix written by EncodeMatrix.
func DecodeMatrix(r io.Reader) (*domain.WeightMatrix, error) {
	var m domain.WeightMatrix
	if err := decode(r, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ModelBytes encodes model to a byte slice.
func ModelBytes(model *domain.TermModel) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeModel(&buf, model); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MatrixBytes encodes matrix to a byte slice.
func MatrixBytes(matrix *domain.WeightMatrix) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeMatrix(&buf, matrix); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(w io.Writer, v any) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(header{Version: Version}); err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}
	return nil
}

func decode(r io.Reader, v any) error {
	dec := gob.NewDecoder(r)
	var h header
	if err := dec.Decode(&h); err != nil {
		return fmt.Errorf("decoding header: %w", err)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: artifact version %d, want %d", domain.ErrIndexUnavailable, h.Version, Version)
	}
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding artifact: %w", err)
	}
	return nil
}
