package wire

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// textEncoding is URL-safe base64 without padding (RFC 4648 §5, no
// '='), the only variant the decoders accept.
var textEncoding = base64.RawURLEncoding

// EncodeTextMsgB serializes Bob's encrypted units to the compact text
// format: "B <count>\n" followed by, per record, the position, the
// base64 ciphertext, and the base64 nonce, each on its own line.
func EncodeTextMsgB(units []EncryptedUnit) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "B %d\n", len(units))
	for _, u := range units {
		b.WriteString(u.Position)
		b.WriteByte('\n')
		b.WriteString(textEncoding.EncodeToString(u.Ciphertext))
		b.WriteByte('\n')
		b.WriteString(textEncoding.EncodeToString(u.Nonce))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// DecodeTextMsgB parses the compact text format produced by
// EncodeTextMsgB.
func DecodeTextMsgB(data []byte) ([]EncryptedUnit, error) {
	lines := newLineReader(data)
	count, err := lines.header('B')
	if err != nil {
		return nil, err
	}

	units := make([]EncryptedUnit, count)
	for i := 0; i < count; i++ {
		position, err := lines.next()
		if err != nil {
			return nil, fmt.Errorf("wire: msgB record %d: %w", i, err)
		}
		ctLine, err := lines.next()
		if err != nil {
			return nil, fmt.Errorf("wire: msgB record %d: %w", i, err)
		}
		ciphertext, err := textEncoding.DecodeString(ctLine)
		if err != nil {
			return nil, fmt.Errorf("wire: msgB record %d: bad ciphertext base64: %w", i, err)
		}
		nonceLine, err := lines.next()
		if err != nil {
			return nil, fmt.Errorf("wire: msgB record %d: %w", i, err)
		}
		nonce, err := textEncoding.DecodeString(nonceLine)
		if err != nil {
			return nil, fmt.Errorf("wire: msgB record %d: bad nonce base64: %w", i, err)
		}
		if len(nonce) != 24 {
			return nil, fmt.Errorf("wire: msgB record %d: nonce has wrong length %d, want 24", i, len(nonce))
		}
		units[i] = EncryptedUnit{Position: position, Ciphertext: ciphertext, Nonce: nonce}
	}
	return units, nil
}

// EncodeTextMsgA serializes Alice's blinded values.
func EncodeTextMsgA(entries []PointEntry) []byte {
	return encodeTextPointEntries('A', entries)
}

// DecodeTextMsgA parses Alice's blinded values.
func DecodeTextMsgA(data []byte) ([]PointEntry, error) {
	return decodeTextPointEntries('A', data)
}

// EncodeTextMsgR serializes Bob's transformed values.
func EncodeTextMsgR(entries []PointEntry) []byte {
	return encodeTextPointEntries('R', entries)
}

// DecodeTextMsgR parses Bob's transformed values.
func DecodeTextMsgR(data []byte) ([]PointEntry, error) {
	return decodeTextPointEntries('R', data)
}

func encodeTextPointEntries(tag byte, entries []PointEntry) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%c %d\n", tag, len(entries))
	for _, e := range entries {
		b.WriteString(e.Position)
		b.WriteByte('\n')
		b.WriteString(textEncoding.EncodeToString(e.Point))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func decodeTextPointEntries(tag byte, data []byte) ([]PointEntry, error) {
	lines := newLineReader(data)
	count, err := lines.header(tag)
	if err != nil {
		return nil, err
	}

	entries := make([]PointEntry, count)
	for i := 0; i < count; i++ {
		position, err := lines.next()
		if err != nil {
			return nil, fmt.Errorf("wire: msg%c record %d: %w", tag, i, err)
		}
		pointLine, err := lines.next()
		if err != nil {
			return nil, fmt.Errorf("wire: msg%c record %d: %w", tag, i, err)
		}
		point, err := textEncoding.DecodeString(pointLine)
		if err != nil {
			return nil, fmt.Errorf("wire: msg%c record %d: bad point base64: %w", tag, i, err)
		}
		entries[i] = PointEntry{Position: position, Point: point}
	}
	return entries, nil
}

// lineReader walks a "\n"-terminated text message line by line.
type lineReader struct {
	lines []string
	pos   int
}

func newLineReader(data []byte) *lineReader {
	s := string(data)
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return &lineReader{lines: nil}
	}
	return &lineReader{lines: strings.Split(s, "\n")}
}

// header reads and validates the "<tag> <count>" first line.
func (lr *lineReader) header(wantTag byte) (int, error) {
	first, err := lr.next()
	if err != nil {
		return 0, fmt.Errorf("wire: missing header line: %w", err)
	}
	parts := strings.SplitN(first, " ", 2)
	if len(parts) != 2 || len(parts[0]) != 1 {
		return 0, fmt.Errorf("wire: malformed header %q", first)
	}
	if parts[0][0] != wantTag {
		return 0, fmt.Errorf("wire: unexpected header tag %q, want %q", parts[0], string(wantTag))
	}
	count, err := strconv.Atoi(parts[1])
	if err != nil || count < 0 {
		return 0, fmt.Errorf("wire: malformed item count %q", parts[1])
	}
	return count, nil
}

func (lr *lineReader) next() (string, error) {
	if lr.pos >= len(lr.lines) {
		return "", fmt.Errorf("wire: unexpected end of message")
	}
	line := lr.lines[lr.pos]
	lr.pos++
	return line, nil
}
