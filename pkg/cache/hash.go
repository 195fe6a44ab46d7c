package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashFiles computes a SHA-256 hash over the names and contents of paths,
// in the order given. It returns "" for no paths.
func HashFiles(paths []string) (string, error) {
	if len(paths) == 0 {
		return "", nil
	}
	h := sha256.New()
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(h, "%s\x00", path)
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("hash %s: %w", path, err)
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// RenderKey returns the cache key of a rendered artifact. assets is the
// [HashFiles] digest of the images the DOT references, or "" for none.
// The key format is: render:<format>:hash(dot, assets)
func RenderKey(dot, format, assets string) string {
	if assets == "" {
		return fmt.Sprintf("render:%s:%s", format, Hash([]byte(dot)))
	}
	return fmt.Sprintf("render:%s:%s", format, Hash([]byte(dot+"\x00"+assets)))
}
