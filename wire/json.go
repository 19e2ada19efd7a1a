package wire

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeJSONMsgB serializes Bob's encrypted units as a JSON envelope
// with keys "position", "ciphertext", "nonce" per item.
func EncodeJSONMsgB(units []EncryptedUnit) []byte {
	items := make([]jsonItem, len(units))
	for i, u := range units {
		items[i] = jsonItem{
			{"position", u.Position},
			{"ciphertext", textEncoding.EncodeToString(u.Ciphertext)},
			{"nonce", textEncoding.EncodeToString(u.Nonce)},
		}
	}
	return encodeJSONEnvelope(items)
}

// DecodeJSONMsgB parses the JSON envelope produced by EncodeJSONMsgB.
func DecodeJSONMsgB(data []byte) ([]EncryptedUnit, error) {
	raw, err := decodeJSONEnvelope(data)
	if err != nil {
		return nil, err
	}
	units := make([]EncryptedUnit, len(raw))
	for i, item := range raw {
		if err := requireExactKeys(item, "position", "ciphertext", "nonce"); err != nil {
			return nil, fmt.Errorf("wire: json msgB item %d: %w", i, err)
		}
		ciphertext, err := base64.RawURLEncoding.DecodeString(item["ciphertext"])
		if err != nil {
			return nil, fmt.Errorf("wire: json msgB item %d: bad ciphertext base64: %w", i, err)
		}
		nonce, err := base64.RawURLEncoding.DecodeString(item["nonce"])
		if err != nil {
			return nil, fmt.Errorf("wire: json msgB item %d: bad nonce base64: %w", i, err)
		}
		if len(nonce) != 24 {
			return nil, fmt.Errorf("wire: json msgB item %d: nonce has wrong length %d, want 24", i, len(nonce))
		}
		units[i] = EncryptedUnit{Position: item["position"], Ciphertext: ciphertext, Nonce: nonce}
	}
	return units, nil
}

// EncodeJSONMsgA serializes Alice's blinded values with keys
// "position", "blindedPoint".
func EncodeJSONMsgA(entries []PointEntry) []byte {
	return encodeJSONPointEntries(entries, "blindedPoint")
}

// DecodeJSONMsgA parses Alice's blinded values.
func DecodeJSONMsgA(data []byte) ([]PointEntry, error) {
	return decodeJSONPointEntries(data, "blindedPoint")
}

// EncodeJSONMsgR serializes Bob's transformed values with keys
// "position", "transformedPoint".
func EncodeJSONMsgR(entries []PointEntry) []byte {
	return encodeJSONPointEntries(entries, "transformedPoint")
}

// DecodeJSONMsgR parses Bob's transformed values.
func DecodeJSONMsgR(data []byte) ([]PointEntry, error) {
	return decodeJSONPointEntries(data, "transformedPoint")
}

func encodeJSONPointEntries(entries []PointEntry, pointKey string) []byte {
	items := make([]jsonItem, len(entries))
	for i, e := range entries {
		items[i] = jsonItem{
			{"position", e.Position},
			{pointKey, textEncoding.EncodeToString(e.Point)},
		}
	}
	return encodeJSONEnvelope(items)
}

func decodeJSONPointEntries(data []byte, pointKey string) ([]PointEntry, error) {
	raw, err := decodeJSONEnvelope(data)
	if err != nil {
		return nil, err
	}
	entries := make([]PointEntry, len(raw))
	for i, item := range raw {
		if err := requireExactKeys(item, "position", pointKey); err != nil {
			return nil, fmt.Errorf("wire: json item %d: %w", i, err)
		}
		point, err := base64.RawURLEncoding.DecodeString(item[pointKey])
		if err != nil {
			return nil, fmt.Errorf("wire: json item %d: bad point base64: %w", i, err)
		}
		entries[i] = PointEntry{Position: item["position"], Point: point}
	}
	return entries, nil
}

// jsonItem is an ordered list of string-valued fields for one envelope
// element, written out in order to keep encoding deterministic.
type jsonItem []jsonField

type jsonField struct {
	key   string
	value string
}

func requireExactKeys(item map[string]string, keys ...string) error {
	if len(item) != len(keys) {
		return fmt.Errorf("expected exactly %d keys, got %d", len(keys), len(item))
	}
	for _, k := range keys {
		if _, ok := item[k]; !ok {
			return fmt.Errorf("missing required key %q", k)
		}
	}
	return nil
}

// encodeJSONEnvelope writes `{"items":[...]}` by hand rather than via
// encoding/json, so the exact escaping rules (`\"`, `\\`, `\n`, `\r`,
// `\t`) and the flat-object shape are fully under our control.
func encodeJSONEnvelope(items []jsonItem) []byte {
	var b strings.Builder
	b.WriteString(`{"items":[`)
	for i, item := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('{')
		for j, f := range item {
			if j > 0 {
				b.WriteByte(',')
			}
			writeJSONString(&b, f.key)
			b.WriteByte(':')
			writeJSONString(&b, f.value)
		}
		b.WriteByte('}')
	}
	b.WriteString(`]}`)
	return []byte(b.String())
}

func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

// decodeJSONEnvelope parses the exact `{"items":[{...},...]}` shape:
// a top-level object with exactly one key, "items", whose value is an
// array of flat string-valued objects. Anything else — missing keys,
// extra keys, nested structures, non-string values, unbalanced braces —
// is a fatal parse error.
func decodeJSONEnvelope(data []byte) ([]map[string]string, error) {
	p := &jsonParser{data: data}
	p.skipWS()
	if err := p.consume('{'); err != nil {
		return nil, err
	}
	p.skipWS()
	key, err := p.parseString()
	if err != nil {
		return nil, fmt.Errorf("wire: json: %w", err)
	}
	if key != "items" {
		return nil, fmt.Errorf("wire: json: expected top-level key \"items\", got %q", key)
	}
	p.skipWS()
	if err := p.consume(':'); err != nil {
		return nil, err
	}
	p.skipWS()
	items, err := p.parseArray()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if err := p.consume('}'); err != nil {
		return nil, err
	}
	p.skipWS()
	if p.pos != len(p.data) {
		return nil, fmt.Errorf("wire: json: trailing data after envelope")
	}
	return items, nil
}

type jsonParser struct {
	data []byte
	pos  int
}

func (p *jsonParser) skipWS() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *jsonParser) consume(c byte) error {
	if p.pos >= len(p.data) || p.data[p.pos] != c {
		return fmt.Errorf("wire: json: expected %q at offset %d", c, p.pos)
	}
	p.pos++
	return nil
}

func (p *jsonParser) parseString() (string, error) {
	if err := p.consume('"'); err != nil {
		return "", err
	}
	var b strings.Builder
	for {
		if p.pos >= len(p.data) {
			return "", fmt.Errorf("wire: json: unterminated string")
		}
		c := p.data[p.pos]
		if c == '"' {
			p.pos++
			return b.String(), nil
		}
		if c == '\\' {
			p.pos++
			if p.pos >= len(p.data) {
				return "", fmt.Errorf("wire: json: unterminated escape sequence")
			}
			switch p.data[p.pos] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return "", fmt.Errorf("wire: json: unsupported escape sequence \\%c", p.data[p.pos])
			}
			p.pos++
			continue
		}
		b.WriteByte(c)
		p.pos++
	}
}

func (p *jsonParser) parseArray() ([]map[string]string, error) {
	if err := p.consume('['); err != nil {
		return nil, err
	}
	p.skipWS()
	items := []map[string]string{}
	if p.pos < len(p.data) && p.data[p.pos] == ']' {
		p.pos++
		return items, nil
	}
	for {
		p.skipWS()
		item, err := p.parseFlatObject()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		p.skipWS()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("wire: json: unterminated array")
		}
		if p.data[p.pos] == ',' {
			p.pos++
			continue
		}
		if err := p.consume(']'); err != nil {
			return nil, err
		}
		return items, nil
	}
}

func (p *jsonParser) parseFlatObject() (map[string]string, error) {
	if err := p.consume('{'); err != nil {
		return nil, err
	}
	obj := map[string]string{}
	p.skipWS()
	if p.pos < len(p.data) && p.data[p.pos] == '}' {
		p.pos++
		return obj, nil
	}
	for {
		p.skipWS()
		key, err := p.parseString()
		if err != nil {
			return nil, fmt.Errorf("wire: json: %w", err)
		}
		p.skipWS()
		if err := p.consume(':'); err != nil {
			return nil, err
		}
		p.skipWS()
		value, err := p.parseString()
		if err != nil {
			return nil, fmt.Errorf("wire: json: %w", err)
		}
		if _, dup := obj[key]; dup {
			return nil, fmt.Errorf("wire: json: duplicate key %q", key)
		}
		obj[key] = value
		p.skipWS()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("wire: json: unterminated object")
		}
		if p.data[p.pos] == ',' {
			p.pos++
			continue
		}
		if err := p.consume('}'); err != nil {
			return nil, err
		}
		return obj, nil
	}
}
