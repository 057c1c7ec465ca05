// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package filestore

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
)

var BadChecksum = errors.New("Reader failed checksum")

// ChecksumReader is an io.ReadCloser that checks the contents read
// from the underlying io.Reader against the provided hash.
type ChecksumReader struct {
	// The underlying data source
	io.Reader

	// The hash function to use
	hash.Hash

	// The hash value to check against.  Must be a hex-encoded lowercase string.
	Check string
}

// Reads from the underlying reader, update the hashing function, and
// pass the results through. Returns BadChecksum (instead of EOF) on
// the last read if the checksum doesn't match.
func (cr ChecksumReader) Read(p []byte) (n int, err error) {
	n, err = cr.Reader.Read(p)
	if n > 0 {
		cr.Hash.Write(p[:n])
	}
	if err == io.EOF {
		sum := cr.Hash.Sum(nil)
		if fmt.Sprintf("%x", sum) != cr.Check {
			err = BadChecksum
		}
	}
	return n, err
}

// WriteTo writes the entire contents of cr.Reader to dest. Returns
// BadChecksum if writing is successful but the checksum doesn't
// match.
func (cr ChecksumReader) WriteTo(dest io.Writer) (written int64, err error) {
	written, err = io.Copy(io.MultiWriter(dest, cr.Hash), cr.Reader)
	if err != nil {
		return written, err
	}

	sum := cr.Hash.Sum(nil)
	if fmt.Sprintf("%x", sum) != cr.Check {
		return written, BadChecksum
	}

	return written, nil
}

// Close reads all remaining data from the underlying Reader and
// returns BadChecksum if the checksum doesn't match. It also closes
// the underlying Reader if it implements io.ReadCloser.
func (cr ChecksumReader) Close() (err error) {
	_, err = io.Copy(cr.Hash, cr.Reader)

	if closer, ok := cr.Reader.(io.Closer); ok {
		closeErr := closer.Close()
		if err == nil {
			err = closeErr
		}
	}
	if err != nil {
		return err
	}
	if fmt.Sprintf("%x", cr.Hash.Sum(nil)) != cr.Check {
		return BadChecksum
	}
	return nil
}

// FileChecksum returns the hex sha256 digest and size of the file at
// path.
func FileChecksum(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()
	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), size, nil
}
