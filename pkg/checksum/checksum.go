// Package checksum provides the digest primitives the packaging pipeline
// pairs with the content-types manifest: SHA256 over byte streams and the
// Base64 form in which AppX block maps and signatures carry digests.
package checksum

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Sum256 returns the SHA256 digest of data.
func Sum256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// EncodeBase64 returns the standard Base64 encoding of data.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// SumReader digests an entire stream.
func SumReader(r io.Reader) ([]byte, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// FileDigest is one file's digest record, as consumed by the block map and
// signing stages downstream of the manifest.
type FileDigest struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"` // Base64, standard alphabet
}

// DigestFile digests a single file.
func DigestFile(path string) (FileDigest, error) {
	f, err := os.Open(path) // #nosec G304 -- caller-supplied package content path
	if err != nil {
		return FileDigest{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return FileDigest{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	sum, err := SumReader(f)
	if err != nil {
		return FileDigest{}, fmt.Errorf("failed to digest %s: %w", path, err)
	}
	return FileDigest{Path: path, Size: info.Size(), SHA256: EncodeBase64(sum)}, nil
}

// DigestFiles digests many files concurrently, bounded by NumCPU. Results
// are sorted by path so output is stable regardless of scheduling; the
// first failure is reported.
func DigestFiles(paths []string) ([]FileDigest, error) {
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	var mu sync.Mutex
	digests := make([]FileDigest, 0, len(paths))

	for _, path := range paths {
		path := path
		g.Go(func() error {
			d, err := DigestFile(path)
			if err != nil {
				return err
			}
			mu.Lock()
			digests = append(digests, d)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(digests, func(i, j int) bool { return digests[i].Path < digests[j].Path })
	return digests, nil
}
