package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func rec(id string, at time.Time) SessionRecord {
	return SessionRecord{
		SessionID:    id,
		StartedAt:    at,
		BobSetSize:   2,
		AliceSetSize: 3,
		MatchCount:   1,
		Timings: Timings{
			BobSetupMS:      1.5,
			AliceSetupMS:    2.5,
			BobResponseMS:   3.5,
			AliceFinalizeMS: 4.5,
		},
	}
}

func TestMemoryStoreRecordAndRetrieve(t *testing.T) {
	s := NewMemoryStore(10)
	ctx := context.Background()
	base := time.Unix(1700000000, 0)

	require.NoError(t, s.RecordSession(ctx, rec("s1", base)))
	require.NoError(t, s.RecordSession(ctx, rec("s2", base.Add(time.Second))))
	require.NoError(t, s.RecordSession(ctx, rec("s3", base.Add(2*time.Second))))

	got, err := s.RecentSessions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "s3", got[0].SessionID)
	require.Equal(t, "s2", got[1].SessionID)
}

func TestMemoryStoreRecentSessionsLimitExceedsSize(t *testing.T) {
	s := NewMemoryStore(10)
	ctx := context.Background()
	require.NoError(t, s.RecordSession(ctx, rec("s1", time.Unix(0, 0))))

	got, err := s.RecentSessions(ctx, 50)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestMemoryStoreEvictsOldestAtCapacity(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()
	base := time.Unix(1700000000, 0)

	require.NoError(t, s.RecordSession(ctx, rec("s1", base)))
	require.NoError(t, s.RecordSession(ctx, rec("s2", base.Add(time.Second))))
	require.NoError(t, s.RecordSession(ctx, rec("s3", base.Add(2*time.Second))))

	got, err := s.RecentSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "s3", got[0].SessionID)
	require.Equal(t, "s2", got[1].SessionID)
}

func TestMemoryStoreDefaultCapacity(t *testing.T) {
	s := NewMemoryStore(0)
	require.Equal(t, 256, s.capacity)
}

func TestMemoryStoreEmpty(t *testing.T) {
	s := NewMemoryStore(10)
	got, err := s.RecentSessions(context.Background(), 5)
	require.NoError(t, err)
	require.Empty(t, got)
}
