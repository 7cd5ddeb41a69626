package objects

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/klauspost/compress/zlib"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/utils"
)

// EncodeEnvelope builds the on-disk byte stream for one object:
// "<kind> <decimal-length>\0<payload>" compressed with zlib. The result is
// deterministic for identical inputs, but object identity never depends on
// it: hashes are computed over the pre-compression bytes.
func EncodeEnvelope(kind utils.ObjectType, payload []byte) ([]byte, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownObjectType, string(kind))
	}

	var buffer bytes.Buffer
	writer := zlib.NewWriter(&buffer)

	if _, err := writer.Write(buildData(kind, payload)); err != nil {
		return nil, fmt.Errorf("failed to compress object: %w", err)
	}

	// Close flushes any buffered compressed data
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress object: %w", err)
	}

	return buffer.Bytes(), nil
}

// DecodeEnvelope decompresses a stored object stream and splits it into the
// declared kind and payload. Fails with ErrMalformedObject if decompression
// fails, the length field is non-numeric, or the payload length does not
// exactly match the declared length; fails with ErrUnknownObjectType for an
// unrecognized kind tag.
func DecodeEnvelope(data []byte) (utils.ObjectType, []byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("%w: decompression failed: %v", ErrMalformedObject, err)
	}
	defer reader.Close()

	var buffer bytes.Buffer
	if _, err := buffer.ReadFrom(reader); err != nil {
		return "", nil, fmt.Errorf("%w: decompression failed: %v", ErrMalformedObject, err)
	}
	raw := buffer.Bytes()

	spaceIndex := bytes.IndexByte(raw, ' ')
	if spaceIndex < 0 {
		return "", nil, fmt.Errorf("%w: no space separator in header", ErrMalformedObject)
	}

	kind, ok := utils.ParseObjectType(string(raw[:spaceIndex]))
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownObjectType, raw[:spaceIndex])
	}

	nullIndex := bytes.IndexByte(raw[spaceIndex:], constants.NullByte)
	if nullIndex < 0 {
		return "", nil, fmt.Errorf("%w: no null byte in header", ErrMalformedObject)
	}
	nullIndex += spaceIndex

	declaredSize, err := strconv.Atoi(string(raw[spaceIndex+1 : nullIndex]))
	if err != nil {
		return "", nil, fmt.Errorf("%w: non-numeric length field %q", ErrMalformedObject, raw[spaceIndex+1:nullIndex])
	}

	payload := raw[nullIndex+1:]
	if len(payload) != declaredSize {
		return "", nil, fmt.Errorf("%w: declared length %d but payload is %d bytes",
			ErrMalformedObject, declaredSize, len(payload))
	}

	return kind, payload, nil
}
