package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"compliance-screening-be/pkg/screening"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(orgID uuid.UUID, count int64) *screening.Result {
	return &screening.Result{OrganizationID: orgID, LawCount: count}
}

func TestGetOrComputeSharesOneFlight(t *testing.T) {
	c := New(0)
	orgID := uuid.New()

	var computes atomic.Int32
	compute := func(ctx context.Context) (*screening.Result, error) {
		computes.Add(1)
		time.Sleep(50 * time.Millisecond)
		return result(orgID, 42), nil
	}

	const callers = 10
	results := make([]*screening.Result, callers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			res, err := c.GetOrCompute(context.Background(), orgID, screening.TierBasic, time.Hour, compute)
			require.NoError(t, err)
			results[i] = res
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), computes.Load())
	for _, res := range results {
		assert.Same(t, results[0], res)
	}
}

func TestGetOrComputeHonorsJoinerDeadline(t *testing.T) {
	c := New(0)
	orgID := uuid.New()

	leaderStarted := make(chan struct{})
	release := make(chan struct{})
	compute := func(ctx context.Context) (*screening.Result, error) {
		close(leaderStarted)
		<-release
		return result(orgID, 42), nil
	}

	leaderDone := make(chan struct{})
	go func() {
		defer close(leaderDone)
		res, err := c.GetOrCompute(context.Background(), orgID, screening.TierBasic, time.Hour, compute)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), res.LawCount)
	}()
	<-leaderStarted

	// The leader's compute is still running; a joiner with a short deadline
	// must not wait for it.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.GetOrCompute(ctx, orgID, screening.TierBasic, time.Hour, compute)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	<-leaderDone
}

func TestGetOrComputeFailuresAreNotCached(t *testing.T) {
	c := New(0)
	orgID := uuid.New()
	boom := errors.New("store down")

	var computes atomic.Int32
	fail := func(ctx context.Context) (*screening.Result, error) {
		computes.Add(1)
		return nil, boom
	}
	succeed := func(ctx context.Context) (*screening.Result, error) {
		computes.Add(1)
		return result(orgID, 7), nil
	}

	_, err := c.GetOrCompute(context.Background(), orgID, screening.TierBasic, time.Hour, fail)
	require.ErrorIs(t, err, boom)

	res, err := c.GetOrCompute(context.Background(), orgID, screening.TierBasic, time.Hour, succeed)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.LawCount)
	assert.Equal(t, int32(2), computes.Load())
}

func TestGetOrComputeRespectsTTL(t *testing.T) {
	c := New(0)
	orgID := uuid.New()

	var computes atomic.Int32
	compute := func(ctx context.Context) (*screening.Result, error) {
		computes.Add(1)
		return result(orgID, 3), nil
	}

	_, err := c.GetOrCompute(context.Background(), orgID, screening.TierBasic, 10*time.Millisecond, compute)
	require.NoError(t, err)
	_, err = c.GetOrCompute(context.Background(), orgID, screening.TierBasic, 10*time.Millisecond, compute)
	require.NoError(t, err)
	assert.Equal(t, int32(1), computes.Load())

	time.Sleep(30 * time.Millisecond)

	_, err = c.GetOrCompute(context.Background(), orgID, screening.TierBasic, 10*time.Millisecond, compute)
	require.NoError(t, err)
	assert.Equal(t, int32(2), computes.Load())
}

func TestEvictionIsLeastRecentlyUsed(t *testing.T) {
	c := New(2)
	orgA, orgB, orgC := uuid.New(), uuid.New(), uuid.New()

	fill := func(orgID uuid.UUID) {
		_, err := c.GetOrCompute(context.Background(), orgID, screening.TierBasic, time.Hour, func(ctx context.Context) (*screening.Result, error) {
			return result(orgID, 1), nil
		})
		require.NoError(t, err)
	}

	fill(orgA)
	fill(orgB)

	// Touch A so B becomes the eviction candidate.
	_, ok := c.Peek(orgA, screening.TierBasic)
	require.True(t, ok)

	fill(orgC)

	_, ok = c.Peek(orgB, screening.TierBasic)
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Peek(orgA, screening.TierBasic)
	assert.True(t, ok)
	_, ok = c.Peek(orgC, screening.TierBasic)
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestInvalidateClearsEveryTier(t *testing.T) {
	c := New(0)
	orgID := uuid.New()
	tiers := []screening.ComplexityTier{screening.TierBasic, screening.TierEnhanced, screening.TierComprehensive}

	for _, tier := range tiers {
		tier := tier
		_, err := c.GetOrCompute(context.Background(), orgID, tier, time.Hour, func(ctx context.Context) (*screening.Result, error) {
			return result(orgID, int64(tier)), nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, c.Len())

	c.Invalidate(orgID)

	for _, tier := range tiers {
		_, ok := c.Peek(orgID, tier)
		assert.False(t, ok)
	}
	assert.Equal(t, 0, c.Len())
}
