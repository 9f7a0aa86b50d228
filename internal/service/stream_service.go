package service

import (
	"context"
	"encoding/json"
	"time"

	"compliance-screening-be/internal/dto"
	"compliance-screening-be/internal/mapper"
	"compliance-screening-be/internal/model"
	"compliance-screening-be/internal/pkg/logger"
	"compliance-screening-be/internal/pkg/mailer"
	"compliance-screening-be/internal/pkg/serverutils"
	"compliance-screening-be/internal/repository/specification"
	"compliance-screening-be/internal/repository/unitofwork"
	"compliance-screening-be/pkg/events"
	pktNats "compliance-screening-be/pkg/nats"
	"compliance-screening-be/pkg/screening/stream"

	"github.com/google/uuid"
)

// durable consumer name for the profile-update feed
const profileUpdatesDurable = "screening-profile-updates"

type IStreamService interface {
	Start(ctx context.Context) error
	Subscribe(orgId uuid.UUID) (<-chan stream.Update, func())
}

type streamService struct {
	uowFactory      unitofwork.RepositoryFactory
	streamer        *stream.Streamer
	eventSubscriber *pktNats.Subscriber
	orgMapper       *mapper.OrganizationMapper
	log             logger.ILogger
}

func NewStreamService(
	uowFactory unitofwork.RepositoryFactory,
	streamer *stream.Streamer,
	eventSubscriber *pktNats.Subscriber,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IStreamService {
	s := &streamService{
		uowFactory:      uowFactory,
		streamer:        streamer,
		eventSubscriber: eventSubscriber,
		orgMapper:       mapper.NewOrganizationMapper(),
		log:             log,
	}
	streamer.AddDelivery(&alertDelivery{
		uowFactory:   uowFactory,
		emailService: emailService,
		log:          log,
	})
	return s
}

// Start wires the streamer's fan-out loop and, when an event bus is
// configured, the ORGANIZATION_PROFILE_UPDATED consumer that feeds it.
func (s *streamService) Start(ctx context.Context) error {
	if err := s.streamer.Start(ctx); err != nil {
		return err
	}

	if s.eventSubscriber == nil {
		s.log.Warn("StreamService", "No event bus configured, profile updates will not trigger re-screening", nil)
		return nil
	}
	return s.eventSubscriber.Subscribe("events.ORGANIZATION_PROFILE_UPDATED", profileUpdatesDurable, s.handleProfileUpdated)
}

func (s *streamService) Subscribe(orgId uuid.UUID) (<-chan stream.Update, func()) {
	return s.streamer.Subscribe(orgId)
}

func (s *streamService) handleProfileUpdated(ctx context.Context, event events.Event) error {
	raw, err := json.Marshal(event.Payload())
	if err != nil {
		return err
	}
	var msg dto.ProfileUpdatedMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		s.log.Error("StreamService", "Malformed profile update payload", map[string]interface{}{"error": err.Error()})
		// Do not Nak into a retry loop over a payload that can never parse.
		return nil
	}
	if err := serverutils.ValidateRequest(&msg); err != nil {
		s.log.Error("StreamService", "Invalid profile update payload", map[string]interface{}{"error": err.Error()})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	org, err := uow.OrganizationRepository().FindOne(ctx, specification.ByID{ID: msg.OrganizationId})
	if err != nil {
		return err
	}
	if org == nil {
		s.log.Warn("StreamService", "Profile update for unknown organization", map[string]interface{}{
			"organization_id": msg.OrganizationId.String(),
		})
		return nil
	}

	profile := s.orgMapper.ToProfile(org)
	s.streamer.OnProfileChanged(ctx, msg.OrganizationId, profile, msg.ChangedFields, false)
	return nil
}

// alertDelivery compares each pushed result against the latest persisted
// snapshot, emails the organization contact when the obligation count
// moved, and records the new snapshot.
type alertDelivery struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	log          logger.ILogger
}

func (d *alertDelivery) Deliver(update stream.Update) {
	if update.Result == nil || update.Result.Degraded() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uow := d.uowFactory.NewUnitOfWork(ctx)

	previous, err := uow.ScreeningSnapshotRepository().FindLatestByOrganizationId(ctx, update.OrganizationID)
	if err != nil {
		d.log.Warn("StreamService", "Failed to load previous snapshot for alert check", map[string]interface{}{
			"organization_id": update.OrganizationID.String(),
			"error":           err.Error(),
		})
		return
	}

	d.persist(ctx, uow, update)

	if previous == nil || previous.LawCount == update.Result.LawCount {
		return
	}

	org, err := uow.OrganizationRepository().FindOne(ctx, specification.ByID{ID: update.OrganizationID})
	if err != nil || org == nil || org.ContactEmail == "" {
		return
	}

	if d.emailService == nil {
		return
	}
	if err := d.emailService.SendScreeningAlert(org.ContactEmail, org.Name, previous.LawCount, update.Result.LawCount); err != nil {
		d.log.Warn("StreamService", "Failed to send screening alert", map[string]interface{}{
			"organization_id": update.OrganizationID.String(),
			"error":           err.Error(),
		})
	}
}

func (d *alertDelivery) persist(ctx context.Context, uow unitofwork.UnitOfWork, update stream.Update) {
	payload, err := json.Marshal(update.Result)
	if err != nil {
		return
	}
	snapshot := &model.ScreeningSnapshot{
		Id:             uuid.New(),
		OrganizationId: update.OrganizationID,
		Tier:           update.Result.TierName,
		Method:         update.Result.Method,
		Confidence:     update.Result.Confidence,
		LawCount:       update.Result.LawCount,
		Payload:        payload,
	}
	if err := uow.ScreeningSnapshotRepository().Create(ctx, snapshot); err != nil {
		d.log.Warn("StreamService", "Failed to persist pushed snapshot", map[string]interface{}{
			"organization_id": update.OrganizationID.String(),
			"error":           err.Error(),
		})
	}
}
