package sumfile

import (
	"encoding/hex"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/opencontainers/go-digest"
	"github.com/zeebo/blake3"
)

// Digest algorithm names accepted by ComputeDigest and the facade options.
// Any name go-digest knows and has compiled in also works.
const (
	SHA256 = "sha256"
	SHA384 = "sha384"
	SHA512 = "sha512"
	BLAKE3 = "blake3"
)

// DefaultAlgorithm is used when no algorithm option is given.
const DefaultAlgorithm = SHA256

// normalizeAlgorithm maps flexible spellings like "SHA-256" to canonical
// lowercase names.
func normalizeAlgorithm(name string) string {
	n := strings.ToLower(name)
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
}

// newHasher returns a hasher for the named algorithm. sha256/384/512 come
// from go-digest's registry; blake3 is wired in directly since go-digest
// does not carry it.
func newHasher(algorithm string) (hash.Hash, error) {
	name := normalizeAlgorithm(algorithm)
	if name == BLAKE3 {
		return blake3.New(), nil
	}
	alg := digest.Algorithm(name)
	if !alg.Available() {
		return nil, &Error{Kind: ErrAlgorithmUnavailable, Key: algorithm}
	}
	return alg.Hash(), nil
}

// ComputeDigest returns the lowercase hex digest of content under the
// named algorithm. It fails with ErrAlgorithmUnavailable for unknown or
// unavailable algorithms.
func ComputeDigest(algorithm string, content []byte) (string, error) {
	h, err := newHasher(algorithm)
	if err != nil {
		return "", err
	}
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DigestReader returns the lowercase hex digest of everything read from r.
func DigestReader(algorithm string, r io.Reader) (string, error) {
	h, err := newHasher(algorithm)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DigestFile returns the lowercase hex digest of the file's content.
func DigestFile(algorithm, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return DigestReader(algorithm, f)
}
