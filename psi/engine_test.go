package psi

import (
	"testing"

	"github.com/ruteri/geopsi/grid"
	"github.com/ruteri/geopsi/wire"
	"github.com/stretchr/testify/require"
)

func plaintexts(units []DecryptedUnit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Plaintext
	}
	return out
}

func TestRunPSIScenario1SingleMatch(t *testing.T) {
	for _, format := range []wire.Format{wire.TextFormat, wire.JSONFormat} {
		bob := []grid.Unit{
			{ID: "b1", X: 1.2, Y: 3.4},
			{ID: "b2", X: -5.6, Y: 7.8},
		}
		alice := []grid.Unit{
			{ID: "a1", X: 1.9, Y: 3.1},
			{ID: "a2", X: 4.2, Y: 8.6},
			{ID: "a3", X: -5.0, Y: 7.0},
		}
		result, err := RunPSI(bob, alice, format)
		require.NoError(t, err)
		require.Equal(t, []string{"1 3"}, plaintexts(result))
	}
}

func TestRunPSIScenario2NoMatches(t *testing.T) {
	bob := []grid.Unit{
		{ID: "b1", X: 10.1, Y: 20.2},
		{ID: "b2", X: 30.3, Y: 40.4},
	}
	alice := []grid.Unit{
		{ID: "a1", X: -1, Y: -2},
		{ID: "a2", X: -3, Y: -4},
	}
	result, err := RunPSI(bob, alice, wire.JSONFormat)
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestRunPSIScenario3DuplicateBobKeysDeduped(t *testing.T) {
	bob := []grid.Unit{
		{ID: "b1", X: 1.1, Y: 2.2},
		{ID: "b2", X: 1.4, Y: 2.8},
	}
	alice := []grid.Unit{
		{ID: "a1", X: 1.9, Y: 2.2},
		{ID: "a2", X: 5, Y: 5},
	}
	result, err := RunPSI(bob, alice, wire.TextFormat)
	require.NoError(t, err)
	require.Equal(t, []string{"1 2"}, plaintexts(result))
}

func TestRunPSIScenario4EmptyBobSet(t *testing.T) {
	result, err := RunPSI(nil, []grid.Unit{{ID: "a1", X: 1, Y: 1}}, wire.JSONFormat)
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestRunPSIScenario4EmptyBobSetText(t *testing.T) {
	result, err := RunPSI(nil, []grid.Unit{{ID: "a1", X: 1, Y: 1}}, wire.TextFormat)
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestRunPSIEmptyAliceSet(t *testing.T) {
	result, err := RunPSI([]grid.Unit{{ID: "b1", X: 1, Y: 1}}, nil, wire.TextFormat)
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestAliceFinalizeTruncatedResponse(t *testing.T) {
	bob := []grid.Unit{{ID: "b1", X: 1.2, Y: 3.4}}
	alice := []grid.Unit{{ID: "a1", X: 1.9, Y: 3.1}, {ID: "a2", X: 9, Y: 9}}

	bobState, msgB, err := BobInit(bob, wire.JSONFormat)
	require.NoError(t, err)

	aliceState, msgA, err := AliceBlind(msgB, alice, wire.JSONFormat)
	require.NoError(t, err)

	msgR, err := BobTransform(msgA, bobState, wire.JSONFormat)
	require.NoError(t, err)

	entries, err := wire.DecodeJSONMsgR(msgR)
	require.NoError(t, err)
	truncated := entries[:0]
	truncatedMsg := wire.EncodeJSONMsgR(truncated)

	result, err := AliceFinalize(truncatedMsg, aliceState, wire.JSONFormat)
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestBobTransformRejectsMalformedPoint(t *testing.T) {
	bob := []grid.Unit{{ID: "b1", X: 1, Y: 1}}
	bobState, _, err := BobInit(bob, wire.JSONFormat)
	require.NoError(t, err)

	badMsgA := []byte(`{"items":[{"position":"1 1","blindedPoint":"AAAA"}]}`)
	_, err = BobTransform(badMsgA, bobState, wire.JSONFormat)
	require.Error(t, err)
}

func TestAliceBlindRejectsMalformedMsgB(t *testing.T) {
	_, _, err := AliceBlind([]byte("not a valid message"), []grid.Unit{{ID: "a1", X: 1, Y: 1}}, wire.TextFormat)
	require.Error(t, err)
}
