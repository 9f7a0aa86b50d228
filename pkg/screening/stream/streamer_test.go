package stream

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"compliance-screening-be/internal/pkg/logger"
	"compliance-screening-be/pkg/screening"
	"compliance-screening-be/pkg/screening/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

type stubScreener struct {
	calls atomic.Int32
}

func (s *stubScreener) Screen(ctx context.Context, orgID uuid.UUID, p *screening.OrganizationProfile) (*screening.Result, error) {
	n := s.calls.Add(1)
	return &screening.Result{
		OrganizationID: orgID,
		LawCount:       int64(n),
		Method:         screening.MethodTiered,
	}, nil
}

type recordingDelivery struct {
	updates chan Update
}

func (d *recordingDelivery) Deliver(update Update) {
	d.updates <- update
}

func intPtr(v int) *int { return &v }

func testProfile() *screening.OrganizationProfile {
	return &screening.OrganizationProfile{
		IndustrySector:     "construction",
		HeadquartersRegion: "Scotland",
		EmployeeCount:      intPtr(120),
		EntityType:         "limited_company",
	}
}

func receiveUpdate(t *testing.T, ch <-chan Update) Update {
	t.Helper()
	select {
	case update := <-ch:
		return update
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
		return Update{}
	}
}

func TestOnProfileChangedSkipsCosmeticChanges(t *testing.T) {
	screener := &stubScreener{}
	s := NewStreamer(screener, cache.New(0), nopLogger{})

	s.OnProfileChanged(context.Background(), uuid.New(), testProfile(), []string{"special_circumstances", "contact_email"}, true)

	assert.Equal(t, int32(0), screener.calls.Load())
}

func TestOnProfileChangedPushesToSubscribers(t *testing.T) {
	screener := &stubScreener{}
	s := NewStreamer(screener, cache.New(0), nopLogger{})
	require.NoError(t, s.Start(context.Background()))

	orgID := uuid.New()
	ch, cancel := s.Subscribe(orgID)
	defer cancel()

	s.OnProfileChanged(context.Background(), orgID, testProfile(), []string{"industry_sector"}, true)
	update := receiveUpdate(t, ch)
	assert.Equal(t, orgID, update.OrganizationID)
	assert.Equal(t, uint64(1), update.Generation)
	require.NotNil(t, update.Result)
	assert.Equal(t, int64(1), update.Result.LawCount)

	s.OnProfileChanged(context.Background(), orgID, testProfile(), []string{"operational_regions"}, true)
	update = receiveUpdate(t, ch)
	assert.Equal(t, uint64(2), update.Generation)
}

// gatedScreener stalls its first Screen call until released, so a test can
// overlap a slow re-screen with a fast one.
type gatedScreener struct {
	firstStarted chan struct{}
	release      chan struct{}
	calls        atomic.Int32
}

func (s *gatedScreener) Screen(ctx context.Context, orgID uuid.UUID, p *screening.OrganizationProfile) (*screening.Result, error) {
	n := s.calls.Add(1)
	if n == 1 {
		close(s.firstStarted)
		<-s.release
	}
	return &screening.Result{
		OrganizationID: orgID,
		LawCount:       int64(n),
		Method:         screening.MethodTiered,
	}, nil
}

func TestGenerationsFollowTriggerOrder(t *testing.T) {
	screener := &gatedScreener{firstStarted: make(chan struct{}), release: make(chan struct{})}
	s := NewStreamer(screener, cache.New(0), nopLogger{})
	require.NoError(t, s.Start(context.Background()))

	orgID := uuid.New()
	ch, cancel := s.Subscribe(orgID)
	defer cancel()

	// The first change re-screens in the background and stalls inside Screen.
	s.OnProfileChanged(context.Background(), orgID, testProfile(), []string{"industry_sector"}, false)
	<-screener.firstStarted

	// The second change was triggered later but completes first. It must
	// carry the higher generation so the stale completion is discardable.
	s.OnProfileChanged(context.Background(), orgID, testProfile(), []string{"employee_count"}, true)
	update := receiveUpdate(t, ch)
	assert.Equal(t, uint64(2), update.Generation)
	assert.Equal(t, int64(2), update.Result.LawCount)

	close(screener.release)
	update = receiveUpdate(t, ch)
	assert.Equal(t, uint64(1), update.Generation, "late completion keeps its trigger-time generation")
	assert.Equal(t, int64(1), update.Result.LawCount)
}

func TestOnProfileChangedInvalidatesCache(t *testing.T) {
	screener := &stubScreener{}
	resultCache := cache.New(0)
	s := NewStreamer(screener, resultCache, nopLogger{})

	orgID := uuid.New()
	_, err := resultCache.GetOrCompute(context.Background(), orgID, screening.TierBasic, time.Hour, func(ctx context.Context) (*screening.Result, error) {
		return &screening.Result{OrganizationID: orgID}, nil
	})
	require.NoError(t, err)

	s.OnProfileChanged(context.Background(), orgID, testProfile(), []string{"headquarters_region"}, true)

	_, ok := resultCache.Peek(orgID, screening.TierBasic)
	assert.False(t, ok, "relevant change should invalidate cached results")
}

func TestDeliveriesReceiveEveryUpdate(t *testing.T) {
	screener := &stubScreener{}
	s := NewStreamer(screener, cache.New(0), nopLogger{})
	require.NoError(t, s.Start(context.Background()))

	delivery := &recordingDelivery{updates: make(chan Update, 1)}
	s.AddDelivery(delivery)

	orgID := uuid.New()
	s.OnProfileChanged(context.Background(), orgID, testProfile(), []string{"employee_count"}, true)

	update := receiveUpdate(t, delivery.updates)
	assert.Equal(t, orgID, update.OrganizationID)
	assert.Equal(t, uint64(1), update.Generation)
}

func TestSubscribeCancelIsIdempotent(t *testing.T) {
	s := NewStreamer(&stubScreener{}, cache.New(0), nopLogger{})

	ch, cancel := s.Subscribe(uuid.New())
	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open, "cancel should close the subscriber channel")
}
