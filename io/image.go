package io

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
)

// WriteImage writes words to w as a little-endian program image.
func WriteImage(w io.Writer, words []uint32) (err error) {
	err = binary.Write(w, binary.LittleEndian, words)
	return
}

// ReadImage reads a little-endian program image from r.
func ReadImage(r io.Reader) (words []uint32, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}
	if len(data) == 0 {
		err = ErrImageEmpty
		return
	}
	if len(data)%WORD_BYTES != 0 {
		err = ErrImageSize(len(data))
		return
	}

	words = make([]uint32, len(data)/WORD_BYTES)
	err = binary.Read(bytes.NewReader(data), binary.LittleEndian, words)
	if err != nil {
		words = nil
	}

	return
}

// SaveImage writes words to the file at path.
func SaveImage(path string, words []uint32) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		cerr := file.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = WriteImage(file, words)
	return
}

// LoadImage reads the program image at path.
func LoadImage(path string) (words []uint32, err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	words, err = ReadImage(file)
	return
}
