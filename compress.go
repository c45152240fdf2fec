// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// gzipMagic is the two-byte gzip member header; its presence right after
// the 24-byte UDLG header signals a compressed payload.
var gzipMagic = [2]byte{0x1f, 0x8b}

// xflOSPatch overwrites bytes 8-9 of a freshly-compressed gzip stream
// (XFL and OS) so re-encoded files match byte-for-byte what the original
// tool produced. Go's flate writer reports XFL=0 (unknown) and OS=255
// (unknown), while the reference tool's zlib build emits XFL=0x04 (fastest
// compression used) and OS=0x00 (FAT filesystem); decoders ignore both
// fields, but round-trip fidelity tests compare raw bytes.
var xflOSPatch = [2]byte{0x04, 0x00}

func looksCompressed(b []byte) bool {
	return len(b) >= 2 && b[0] == gzipMagic[0] && b[1] == gzipMagic[1]
}

// compressPayload gzips data and applies the XFL/OS byte patch described
// above, matching compress_gzip_zlib in the reference tool.
func compressPayload(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	if len(out) >= 10 {
		out[8] = xflOSPatch[0]
		out[9] = xflOSPatch[1]
	}
	return out, nil
}

// decompressPayload reverses compressPayload. The XFL/OS patch is
// transparent to decoding: the flate reader never inspects those bytes.
func decompressPayload(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return out, nil
}
