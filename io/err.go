package io

import (
	"errors"

	"github.com/ezrec/ledseq/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageEmpty = errors.New(f("image empty"))

	// Store errors
	ErrStoreOverflow = errors.New(f("image exceeds store capacity"))
	ErrStoreRange    = errors.New(f("store range invalid"))
)

// ErrImageSize is returned for an image whose byte length is not a whole
// number of words.
type ErrImageSize int

func (err ErrImageSize) Error() string {
	return f("image size %v is not a multiple of %v bytes", int(err), WORD_BYTES)
}
