package tile

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
)

var ErrInvalidID = errors.New("tilecatalog: invalid tile id")

// ID is a fixed-width structural identifier of tile content.
// IDs are comparable and totally ordered (bytewise).
type ID [16]byte

func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// ParseID parses the hexadecimal form produced by ID.String.
func ParseID(s string) (ID, error) {
	var id ID
	if hex.DecodedLen(len(s)) != len(id) {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return ID{}, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return id, nil
}
