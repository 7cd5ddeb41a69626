package objects

import (
	"bytes"
	"fmt"
)

// KVLM is the key-value-list-with-message format carried inside commit and
// tag payloads: an ordered run of "key SP value NL" header records, a blank
// line, then a free-text message running to end of buffer. A header value
// may contain embedded newlines as long as every continuation line starts
// with a single space; the parser strips that space and the serializer puts
// it back, so Serialize(Parse(x)) == x for any conforming buffer x.
//
// Keys are kept in first-seen order. A key seen more than once keeps an
// ordered list of values; re-serialization flattens the list back into
// repeated "key value" lines in original order.
type KVLM struct {
	keys    []string
	values  map[string][][]byte
	message []byte
}

func NewKVLM() *KVLM {
	return &KVLM{values: make(map[string][][]byte)}
}

// Add appends a value under key, preserving first-seen key order.
func (k *KVLM) Add(key string, value []byte) {
	if _, seen := k.values[key]; !seen {
		k.keys = append(k.keys, key)
	}
	k.values[key] = append(k.values[key], value)
}

// Values returns every value recorded under key, in insertion order.
func (k *KVLM) Values(key string) [][]byte {
	return k.values[key]
}

// First returns the first value recorded under key.
func (k *KVLM) First(key string) ([]byte, bool) {
	values := k.values[key]
	if len(values) == 0 {
		return nil, false
	}
	return values[0], true
}

// Keys returns header keys in first-seen order. The message is not a key.
func (k *KVLM) Keys() []string {
	return k.keys
}

func (k *KVLM) Message() []byte {
	return k.message
}

func (k *KVLM) SetMessage(message []byte) {
	k.message = message
}

// ParseKVLM decodes a conforming buffer. Parsing is position-indexed rather
// than line-split so continuation lines land inside the value they extend.
// Buffers without the blank header/message separator, or with a header line
// missing its key/value separator, fail with ErrMalformedObject.
func ParseKVLM(raw []byte) (*KVLM, error) {
	kvlm := NewKVLM()

	pos := 0
	for {
		if pos >= len(raw) {
			return nil, fmt.Errorf("%w: kvlm buffer has no blank line before message", ErrMalformedObject)
		}

		// A newline at the cursor is the blank separator line; everything
		// after it is the message.
		if raw[pos] == '\n' {
			kvlm.message = raw[pos+1:]
			return kvlm, nil
		}

		spaceIndex := bytes.IndexByte(raw[pos:], ' ')
		newlineIndex := bytes.IndexByte(raw[pos:], '\n')
		if spaceIndex < 0 || (newlineIndex >= 0 && newlineIndex < spaceIndex) {
			return nil, fmt.Errorf("%w: kvlm header record without key/value separator", ErrMalformedObject)
		}
		spaceIndex += pos
		key := string(raw[pos:spaceIndex])

		// The value ends at the first newline NOT followed by a space.
		end := spaceIndex
		for {
			next := bytes.IndexByte(raw[end+1:], '\n')
			if next < 0 {
				return nil, fmt.Errorf("%w: unterminated kvlm value for key %q", ErrMalformedObject, key)
			}
			end += 1 + next
			if end+1 >= len(raw) || raw[end+1] != ' ' {
				break
			}
		}

		// Drop the leading space from each continuation line.
		value := bytes.ReplaceAll(raw[spaceIndex+1:end], []byte("\n "), []byte("\n"))
		kvlm.Add(key, value)

		pos = end + 1
	}
}

// Serialize re-encodes headers in original order, the blank separator line,
// and the message.
func (k *KVLM) Serialize() []byte {
	var buf bytes.Buffer

	for _, key := range k.keys {
		for _, value := range k.values[key] {
			buf.WriteString(key)
			buf.WriteByte(' ')
			buf.Write(bytes.ReplaceAll(value, []byte("\n"), []byte("\n ")))
			buf.WriteByte('\n')
		}
	}

	buf.WriteByte('\n')
	buf.Write(k.message)

	return buf.Bytes()
}
