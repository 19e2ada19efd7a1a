package psi

import (
	"crypto/rand"
	"fmt"

	"github.com/ruteri/geopsi/wire"
)

type pointEntryKind int

const (
	aliceBlindedKind pointEntryKind = iota
	bobTransformedKind
)

func randomSeed(seed *[32]byte) error {
	_, err := rand.Read(seed[:])
	return err
}

func encodeMsgB(units []wire.EncryptedUnit, format wire.Format) ([]byte, error) {
	switch format {
	case wire.TextFormat:
		return wire.EncodeTextMsgB(units), nil
	case wire.JSONFormat:
		return wire.EncodeJSONMsgB(units), nil
	default:
		return nil, fmt.Errorf("psi: unknown wire format %d", format)
	}
}

func decodeMsgB(data []byte, format wire.Format) ([]wire.EncryptedUnit, error) {
	switch format {
	case wire.TextFormat:
		return wire.DecodeTextMsgB(data)
	case wire.JSONFormat:
		return wire.DecodeJSONMsgB(data)
	default:
		return nil, fmt.Errorf("psi: unknown wire format %d", format)
	}
}

func encodePointEntries(entries []wire.PointEntry, format wire.Format, kind pointEntryKind) ([]byte, error) {
	switch {
	case format == wire.TextFormat && kind == aliceBlindedKind:
		return wire.EncodeTextMsgA(entries), nil
	case format == wire.TextFormat && kind == bobTransformedKind:
		return wire.EncodeTextMsgR(entries), nil
	case format == wire.JSONFormat && kind == aliceBlindedKind:
		return wire.EncodeJSONMsgA(entries), nil
	case format == wire.JSONFormat && kind == bobTransformedKind:
		return wire.EncodeJSONMsgR(entries), nil
	default:
		return nil, fmt.Errorf("psi: unknown wire format %d", format)
	}
}

func decodePointEntries(data []byte, format wire.Format, kind pointEntryKind) ([]wire.PointEntry, error) {
	switch {
	case format == wire.TextFormat && kind == aliceBlindedKind:
		return wire.DecodeTextMsgA(data)
	case format == wire.TextFormat && kind == bobTransformedKind:
		return wire.DecodeTextMsgR(data)
	case format == wire.JSONFormat && kind == aliceBlindedKind:
		return wire.DecodeJSONMsgA(data)
	case format == wire.JSONFormat && kind == bobTransformedKind:
		return wire.DecodeJSONMsgR(data)
	default:
		return nil, fmt.Errorf("psi: unknown wire format %d", format)
	}
}
