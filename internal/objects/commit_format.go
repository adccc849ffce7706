package objects

import (
	"bytes"
	"fmt"
	"strings"
)

// CommitRecord is an ordered mapping from header key (e.g. "tree", "parent",
// "author") to one or more values, plus a free-text message. Key encounter
// order and per-key value order are preserved so a parsed record re-serializes
// byte-for-byte.
type CommitRecord struct {
	keys    []string
	values  map[string][]string
	message []byte
}

func NewCommitRecord() *CommitRecord {
	return &CommitRecord{
		values: make(map[string][]string),
	}
}

// Add appends value under key. A repeated key keeps its first position and
// accumulates values in append order (e.g. multiple parents of a merge commit).
func (record *CommitRecord) Add(key, value string) {
	if _, exists := record.values[key]; !exists {
		record.keys = append(record.keys, key)
	}
	record.values[key] = append(record.values[key], value)
}

// Keys returns the header keys in encounter order.
func (record *CommitRecord) Keys() []string {
	keys := make([]string, len(record.keys))
	copy(keys, record.keys)
	return keys
}

// Values returns all values stored under key in append order.
func (record *CommitRecord) Values(key string) []string {
	values := record.values[key]
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// Value returns the first value stored under key.
func (record *CommitRecord) Value(key string) (string, bool) {
	values := record.values[key]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Has reports whether key appears in the header mapping.
func (record *CommitRecord) Has(key string) bool {
	_, exists := record.values[key]
	return exists
}

// Message returns the free-text message following the blank line.
func (record *CommitRecord) Message() []byte {
	return record.message
}

func (record *CommitRecord) SetMessage(message []byte) {
	record.message = append([]byte(nil), message...)
}

// ParseCommitRecord parses the commit payload micro-format: zero or more
// "key value" header lines, one blank line, then the message verbatim.
// A logical newline inside a value is stored on disk as newline+space
// (a folded continuation); parsing undoes the folding.
//
// The scan is an explicit cursor loop, so memory is bounded by input length
// regardless of header count.
func ParseCommitRecord(payload []byte) (*CommitRecord, error) {
	record := NewCommitRecord()
	cursor := 0

	for {
		spacePos := bytes.IndexByte(payload[cursor:], ' ')
		newlinePos := bytes.IndexByte(payload[cursor:], '\n')

		// Base case: a newline before any space signals the blank line
		// separating headers from the message.
		if spacePos < 0 || (newlinePos >= 0 && newlinePos < spacePos) {
			if newlinePos != 0 {
				return nil, fmt.Errorf("%w: no header/message boundary at offset %d", ErrFormat, cursor)
			}
			record.message = append([]byte(nil), payload[cursor+1:]...)
			return record, nil
		}

		key := string(payload[cursor : cursor+spacePos])

		// The value ends at the first newline NOT followed by a space;
		// newline+space is a folded continuation belonging to the value.
		end := cursor + spacePos
		for {
			next := bytes.IndexByte(payload[end+1:], '\n')
			if next < 0 {
				return nil, fmt.Errorf("%w: unterminated value for key %q", ErrFormat, key)
			}
			end += 1 + next
			if end+1 >= len(payload) || payload[end+1] != ' ' {
				break
			}
		}

		rawValue := payload[cursor+spacePos+1 : end]
		record.Add(key, string(bytes.ReplaceAll(rawValue, []byte("\n "), []byte("\n"))))

		cursor = end + 1
	}
}

// Serialize emits headers in encounter order (values in append order, folding
// re-applied), one blank line, then the message bytes unmodified.
// For any record, ParseCommitRecord(record.Serialize()) reproduces the record.
func (record *CommitRecord) Serialize() []byte {
	var buf bytes.Buffer

	for _, key := range record.keys {
		for _, value := range record.values[key] {
			buf.WriteString(key)
			buf.WriteByte(' ')
			buf.WriteString(strings.ReplaceAll(value, "\n", "\n "))
			buf.WriteByte('\n')
		}
	}

	buf.WriteByte('\n')
	buf.Write(record.message)

	return buf.Bytes()
}
