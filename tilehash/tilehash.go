// Package tilehash provides structural hashers for tile content.
package tilehash

import (
	"crypto/md5"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/eak1mov/go-tilecatalog/tile"
)

var ErrUnknownHasher = errors.New("tilecatalog: unknown hasher")

// MD5 hashes tile content with MD5. It is the default hasher.
var MD5 tile.Hasher = tile.HasherFunc(func(pix []byte) tile.ID {
	return md5.Sum(pix)
})

// SHA256 hashes tile content with SHA-256 truncated to the identifier width.
var SHA256 tile.Hasher = tile.HasherFunc(func(pix []byte) tile.ID {
	digest := sha256.Sum256(pix)
	return tile.ID(digest[:len(tile.ID{})])
})

// FNV128a hashes tile content with the non-cryptographic 128-bit FNV-1a hash.
var FNV128a tile.Hasher = tile.HasherFunc(func(pix []byte) tile.ID {
	h := fnv.New128a()
	h.Write(pix)
	return tile.ID(h.Sum(nil))
})

var hashers = map[string]tile.Hasher{
	"md5":     MD5,
	"sha256":  SHA256,
	"fnv128a": FNV128a,
}

// ByName returns the hasher registered under name ("md5", "sha256", "fnv128a").
func ByName(name string) (tile.Hasher, error) {
	h, ok := hashers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
	return h, nil
}
