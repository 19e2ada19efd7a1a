package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleUnits() []EncryptedUnit {
	return []EncryptedUnit{
		{Position: "1 3", Ciphertext: []byte{1, 2, 3, 4}, Nonce: make([]byte, 24)},
		{Position: "-2 -4", Ciphertext: []byte{5, 6}, Nonce: make([]byte, 24)},
	}
}

func samplePoints() []PointEntry {
	return []PointEntry{
		{Position: "1 3", Point: []byte{9, 9, 9}},
		{Position: "-2 -4", Point: []byte{1}},
	}
}

func TestTextMsgBRoundTrip(t *testing.T) {
	units := sampleUnits()
	encoded := EncodeTextMsgB(units)
	decoded, err := DecodeTextMsgB(encoded)
	require.NoError(t, err)
	require.Equal(t, units, decoded)
}

func TestTextMsgARoundTrip(t *testing.T) {
	entries := samplePoints()
	encoded := EncodeTextMsgA(entries)
	decoded, err := DecodeTextMsgA(encoded)
	require.NoError(t, err)
	require.Equal(t, entries, decoded)
}

func TestTextMsgRRoundTrip(t *testing.T) {
	entries := samplePoints()
	encoded := EncodeTextMsgR(entries)
	decoded, err := DecodeTextMsgR(encoded)
	require.NoError(t, err)
	require.Equal(t, entries, decoded)
}

func TestJSONMsgBRoundTrip(t *testing.T) {
	units := sampleUnits()
	encoded := EncodeJSONMsgB(units)
	decoded, err := DecodeJSONMsgB(encoded)
	require.NoError(t, err)
	require.Equal(t, units, decoded)
}

func TestJSONMsgARoundTrip(t *testing.T) {
	entries := samplePoints()
	encoded := EncodeJSONMsgA(entries)
	decoded, err := DecodeJSONMsgA(encoded)
	require.NoError(t, err)
	require.Equal(t, entries, decoded)
}

func TestJSONMsgRRoundTrip(t *testing.T) {
	entries := samplePoints()
	encoded := EncodeJSONMsgR(entries)
	decoded, err := DecodeJSONMsgR(encoded)
	require.NoError(t, err)
	require.Equal(t, entries, decoded)
}

func TestTextRejectsUnknownHeaderTag(t *testing.T) {
	_, err := DecodeTextMsgB([]byte("X 1\nfoo\nYg\nYg\n"))
	require.Error(t, err)
}

func TestTextRejectsNonIntegerCount(t *testing.T) {
	_, err := DecodeTextMsgB([]byte("B abc\n"))
	require.Error(t, err)
}

func TestTextRejectsMissingLine(t *testing.T) {
	_, err := DecodeTextMsgB([]byte("B 1\nonly-position\n"))
	require.Error(t, err)
}

func TestTextRejectsBadBase64(t *testing.T) {
	_, err := DecodeTextMsgB([]byte("B 1\n1 3\nnot!base64!\nYg\n"))
	require.Error(t, err)
}

func TestTextRejectsWrongNonceLength(t *testing.T) {
	units := []EncryptedUnit{{Position: "1 3", Ciphertext: []byte{1}, Nonce: make([]byte, 12)}}
	encoded := EncodeTextMsgB(units)
	_, err := DecodeTextMsgB(encoded)
	require.Error(t, err)
}

func TestJSONRejectsMissingKey(t *testing.T) {
	_, err := DecodeJSONMsgB([]byte(`{"items":[{"position":"1 3","ciphertext":"YQ"}]}`))
	require.Error(t, err)
}

func TestJSONRejectsWrongEnvelopeKey(t *testing.T) {
	_, err := DecodeJSONMsgB([]byte(`{"data":[]}`))
	require.Error(t, err)
}

func TestJSONRejectsUnbalancedBraces(t *testing.T) {
	_, err := DecodeJSONMsgB([]byte(`{"items":[{"position":"1 3"}`))
	require.Error(t, err)
}

func TestJSONRejectsExtraKey(t *testing.T) {
	_, err := DecodeJSONMsgB([]byte(`{"items":[{"position":"1 3","ciphertext":"YQ","nonce":"YQAAAAAAAAAAAAAAAAAAAAAAAAAA","extra":"x"}]}`))
	require.Error(t, err)
}
