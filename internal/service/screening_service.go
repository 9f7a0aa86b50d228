package service

import (
	"context"
	"encoding/json"
	"time"

	"compliance-screening-be/internal/dto"
	"compliance-screening-be/internal/mapper"
	"compliance-screening-be/internal/model"
	"compliance-screening-be/internal/pkg/logger"
	"compliance-screening-be/internal/repository/specification"
	"compliance-screening-be/internal/repository/unitofwork"
	"compliance-screening-be/pkg/events"
	pktNats "compliance-screening-be/pkg/nats"
	"compliance-screening-be/pkg/screening"
	"compliance-screening-be/pkg/screening/aggregate"
	"compliance-screening-be/pkg/screening/matcher"
	"compliance-screening-be/pkg/screening/strategy"

	"github.com/google/uuid"
)

type IScreeningService interface {
	Screen(ctx context.Context, orgId uuid.UUID) (*dto.ScreenResponse, error)
	Count(ctx context.Context, orgId uuid.UUID) (*dto.CountResponse, error)
	Preview(ctx context.Context, orgId uuid.UUID, limit int) (*dto.PreviewResponse, error)
	AnalyzeComplexity(ctx context.Context, orgId uuid.UUID) (*dto.ComplexityResponse, error)
	Aggregate(ctx context.Context, orgId uuid.UUID) (*dto.AggregateResponse, error)
	ListSnapshots(ctx context.Context, orgId uuid.UUID, limit, offset int) (*dto.SnapshotListResponse, error)
}

type screeningService struct {
	uowFactory     unitofwork.RepositoryFactory
	matcher        *matcher.Matcher
	aggregator     *aggregate.Aggregator
	builder        *strategy.Builder
	orgMapper      *mapper.OrganizationMapper
	locMapper      *mapper.LocationMapper
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewScreeningService(
	uowFactory unitofwork.RepositoryFactory,
	m *matcher.Matcher,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IScreeningService {
	return &screeningService{
		uowFactory:     uowFactory,
		matcher:        m,
		aggregator:     aggregate.NewAggregator(m),
		builder:        strategy.NewBuilder(),
		orgMapper:      mapper.NewOrganizationMapper(),
		locMapper:      mapper.NewLocationMapper(),
		eventPublisher: eventPublisher,
		log:            log,
	}
}

// loadProfile fetches the organization and projects it into the engine's
// profile view. Returns (nil, nil) when the organization does not exist.
func (s *screeningService) loadProfile(ctx context.Context, uow unitofwork.UnitOfWork, orgId uuid.UUID) (*screening.OrganizationProfile, string, string, error) {
	org, err := uow.OrganizationRepository().FindOne(ctx, specification.ByID{ID: orgId})
	if err != nil {
		return nil, "", "", err
	}
	if org == nil {
		return nil, "", "", nil
	}
	return s.orgMapper.ToProfile(org), org.Name, org.ContactEmail, nil
}

func (s *screeningService) Screen(ctx context.Context, orgId uuid.UUID) (*dto.ScreenResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, _, _, err := s.loadProfile(ctx, uow, orgId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	result, err := s.matcher.Screen(ctx, orgId, profile)
	if err != nil {
		return nil, err
	}

	s.persistSnapshot(ctx, uow, result)
	s.publishScreened(ctx, result)

	return &dto.ScreenResponse{Result: result}, nil
}

func (s *screeningService) Count(ctx context.Context, orgId uuid.UUID) (*dto.CountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, _, _, err := s.loadProfile(ctx, uow, orgId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	count, err := s.matcher.Count(ctx, profile)
	if err != nil {
		return nil, err
	}

	score := s.matcher.AnalyzeComplexity(profile)
	return &dto.CountResponse{
		OrganizationId: orgId,
		LawCount:       count,
		Tier:           score.TierName,
	}, nil
}

func (s *screeningService) Preview(ctx context.Context, orgId uuid.UUID, limit int) (*dto.PreviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, _, _, err := s.loadProfile(ctx, uow, orgId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	regulations, err := s.matcher.Preview(ctx, profile, limit)
	if err != nil {
		return nil, err
	}

	score := s.matcher.AnalyzeComplexity(profile)
	return &dto.PreviewResponse{
		OrganizationId: orgId,
		Tier:           score.TierName,
		Regulations:    regulations,
	}, nil
}

func (s *screeningService) AnalyzeComplexity(ctx context.Context, orgId uuid.UUID) (*dto.ComplexityResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, _, _, err := s.loadProfile(ctx, uow, orgId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	score := s.matcher.AnalyzeComplexity(profile)
	strat := s.builder.Build(profile)
	return &dto.ComplexityResponse{
		OrganizationId:  orgId,
		Completeness:    score,
		LatencyClass:    strat.LatencyClass,
		CacheTTLSeconds: int64(strat.CacheTTL / time.Second),
	}, nil
}

func (s *screeningService) Aggregate(ctx context.Context, orgId uuid.UUID) (*dto.AggregateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, _, _, err := s.loadProfile(ctx, uow, orgId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	entities, err := uow.LocationRepository().FindByOrganizationId(ctx, orgId)
	if err != nil {
		return nil, err
	}
	locations := make([]aggregate.Location, 0, len(entities))
	for _, e := range entities {
		locations = append(locations, s.locMapper.ToAggregateLocation(e))
	}

	agg, err := s.aggregator.Aggregate(ctx, orgId, profile, locations)
	if err != nil {
		return nil, err
	}
	return &dto.AggregateResponse{Aggregate: agg}, nil
}

func (s *screeningService) ListSnapshots(ctx context.Context, orgId uuid.UUID, limit, offset int) (*dto.SnapshotListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	models, err := uow.ScreeningSnapshotRepository().FindByOrganizationId(ctx, orgId, limit, offset)
	if err != nil {
		return nil, err
	}

	snapshots := make([]dto.SnapshotResponse, 0, len(models))
	for _, m := range models {
		snapshots = append(snapshots, dto.SnapshotResponse{
			Id:         m.Id,
			Tier:       m.Tier,
			Method:     m.Method,
			Confidence: m.Confidence,
			LawCount:   m.LawCount,
			CreatedAt:  m.CreatedAt,
		})
	}
	return &dto.SnapshotListResponse{
		OrganizationId: orgId,
		Snapshots:      snapshots,
	}, nil
}

// persistSnapshot records the audit trail entry. Failures are logged and
// swallowed so auditing never blocks a screening response.
func (s *screeningService) persistSnapshot(ctx context.Context, uow unitofwork.UnitOfWork, result *screening.Result) {
	payload, err := json.Marshal(result)
	if err != nil {
		s.log.Warn("ScreeningService", "Failed to marshal snapshot payload", map[string]interface{}{
			"organization_id": result.OrganizationID.String(),
			"error":           err.Error(),
		})
		return
	}

	snapshot := &model.ScreeningSnapshot{
		Id:             uuid.New(),
		OrganizationId: result.OrganizationID,
		Tier:           result.TierName,
		Method:         result.Method,
		Confidence:     result.Confidence,
		LawCount:       result.LawCount,
		Payload:        payload,
	}
	if err := uow.ScreeningSnapshotRepository().Create(ctx, snapshot); err != nil {
		s.log.Warn("ScreeningService", "Failed to persist screening snapshot", map[string]interface{}{
			"organization_id": result.OrganizationID.String(),
			"error":           err.Error(),
		})
	}
}

// publishScreened emits SCREENING_COMPLETED for downstream consumers.
// Auxiliary, never fails the request.
func (s *screeningService) publishScreened(ctx context.Context, result *screening.Result) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: "SCREENING_COMPLETED",
		Data: map[string]interface{}{
			"organization_id": result.OrganizationID,
			"law_count":       result.LawCount,
			"tier":            result.TierName,
			"method":          result.Method,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("ScreeningService", "Failed to publish SCREENING_COMPLETED event", map[string]interface{}{
			"organization_id": result.OrganizationID.String(),
			"error":           err.Error(),
		})
	}
}
