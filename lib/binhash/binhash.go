// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 digest.
type Digest [32]byte

// String returns the canonical hex form of the digest.
func (d Digest) String() string {
	return FormatDigest(d)
}

// messageDomainKey is the ASCII domain name zero-padded to 32 bytes.
// Changing it invalidates every digest computed so far.
var messageDomainKey = [32]byte{
	'l', 'i', 'p', 'i', '.', 'm', 'e', 's', 's', 'a', 'g', 'e', 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

func newHasher() *blake3.Hasher {
	hasher, err := blake3.NewKeyed(messageDomainKey[:])
	if err != nil {
		panic("binhash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

func digestOf(hasher *blake3.Hasher) Digest {
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// Sum returns the digest of an encoded message.
func Sum(data []byte) Digest {
	hasher := newHasher()
	hasher.Write(data)
	return digestOf(hasher)
}

// HashReader streams reader to EOF and returns the digest of
// everything read along with the number of bytes consumed.
func HashReader(reader io.Reader) (Digest, int64, error) {
	hasher := newHasher()
	size, err := io.Copy(hasher, reader)
	if err != nil {
		return Digest{}, size, err
	}
	return digestOf(hasher), size, nil
}

// HashFile computes the digest of the file at path.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	digest, _, err := HashReader(file)
	if err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return digest, nil
}

// FormatDigest returns the hex-encoded string representation of a
// digest. This is the format used in command output and logs.
func FormatDigest(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// ParseDigest parses a hex-encoded digest. Returns an error if the
// string is not a valid 64-character hex encoding of 32 bytes.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != 32 {
		return digest, fmt.Errorf("digest is %d bytes, want 32", len(decoded))
	}
	copy(digest[:], decoded)
	return digest, nil
}
