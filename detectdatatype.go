package assayplot

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeBZip2
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeBZip2:
		return "bzip2"
	}

	return "invalid"
}

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType checks the leading bytes of a stream against a set of known
// compression signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(head []byte) DataType {
Outer:
	for dt, sig := range byteCodeSigs {
		if len(head) < len(sig) {
			continue
		}
		for position := range sig {
			if head[position] != sig[position] {
				continue Outer
			}
		}
		return dt
	}

	return DataTypeNoCompression
}

// MaybeDecompress sniffs the first bytes of rc and, if they match a known
// compression format, returns a reader of the decompressed stream. For zip
// archives, the first entry is read. Closing the result closes rc.
func MaybeDecompress(rc io.ReadCloser) (io.ReadCloser, DataType, error) {
	br := bufio.NewReader(rc)

	// Short inputs are fine; Peek hands back whatever it could read.
	head, err := br.Peek(6)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, DataTypeInvalid, pfx.Err(err)
	}

	dt := DetectDataType(head)

	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, dt, pfx.Err(err)
		}
		return &stackedCloser{Reader: gz, closers: []io.Closer{gz, rc}}, dt, nil
	case DataTypeZip:
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			return nil, dt, pfx.Err(err)
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{rc}}, dt, nil
	case DataTypeBZip2:
		return &stackedCloser{Reader: bzip2.NewReader(br), closers: []io.Closer{rc}}, dt, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, dt, pfx.Err(err)
		}
		return &stackedCloser{Reader: reader, closers: []io.Closer{rc}}, dt, nil
	}

	// No compression detected.
	return &stackedCloser{Reader: br, closers: []io.Closer{rc}}, dt, nil
}

// stackedCloser reads from a decoding reader and closes every layer beneath
// it, innermost first.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *stackedCloser) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
