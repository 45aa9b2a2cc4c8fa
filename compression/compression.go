// Package compression provides codecs for stored tile data.
package compression

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

type Compression uint8

const (
	Unknown Compression = iota
	None
	Gzip
	Zstd
)

var ErrUnsupported = errors.New("tilecatalog: compression not supported")

var names = map[Compression]string{
	None: "none",
	Gzip: "gzip",
	Zstd: "zstd",
}

func (c Compression) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(c))
}

// Parse returns the compression with the given name ("none", "gzip", "zstd").
func Parse(name string) (Compression, error) {
	for c, n := range names {
		if n == name {
			return c, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnsupported, name)
}

func Compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case None:
		return data, nil
	case Gzip:
		var buffer bytes.Buffer
		writer, _ := gzip.NewWriterLevel(&buffer, gzip.BestCompression)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("failed to compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("failed to compress: %w", err)
		}
		return buffer.Bytes(), nil
	case Zstd:
		encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return nil, fmt.Errorf("failed to compress: %w", err)
		}
		defer encoder.Close()
		return encoder.EncodeAll(data, nil), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupported, compression)
}

func Decompress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case None:
		return data, nil
	case Gzip:
		reader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decompress: %w", err)
		}
		defer reader.Close()

		result, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress: %w", err)
		}
		return result, nil
	case Zstd:
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress: %w", err)
		}
		defer decoder.Close()

		result, err := decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress: %w", err)
		}
		return result, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupported, compression)
}
