// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressPayloadRoundTrip(t *testing.T) {
	original := []byte("the quick brown fox jumps over the lazy dog, repeated: the quick brown fox jumps over the lazy dog")

	compressed, err := compressPayload(original)
	require.NoError(t, err)
	require.True(t, looksCompressed(compressed))

	decompressed, err := decompressPayload(compressed)
	require.NoError(t, err)
	require.Equal(t, original, decompressed)
}

func TestCompressPayloadPatchesXFLAndOS(t *testing.T) {
	compressed, err := compressPayload([]byte("payload"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(compressed), 10)
	require.Equal(t, byte(0x04), compressed[8])
	require.Equal(t, byte(0x00), compressed[9])
}

func TestDecompressPayloadMalformedFails(t *testing.T) {
	_, err := decompressPayload([]byte{0x1f, 0x8b, 0x00, 0x00})
	require.ErrorIs(t, err, ErrDecompression)
}

func TestLooksCompressedDetectsGzipMagic(t *testing.T) {
	require.True(t, looksCompressed([]byte{0x1f, 0x8b, 0x08, 0x00}))
	require.False(t, looksCompressed([]byte{0x00, 0x01}))
	require.False(t, looksCompressed([]byte{0x1f}))
}
