// Package stream reacts to profile-change events, decides whether
// re-screening is warranted, and pushes refined results to subscribers
// asynchronously over an in-process watermill bus.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"compliance-screening-be/internal/pkg/logger"
	"compliance-screening-be/pkg/screening"
	"compliance-screening-be/pkg/screening/profile"
	"compliance-screening-be/pkg/screening/strategy"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const resultTopic = "screening.results"

// subscriberBuffer bounds each subscriber channel. A subscriber that cannot
// keep up loses intermediate updates rather than blocking the fan-out; the
// generation number lets it detect the gap.
const subscriberBuffer = 4

// Update is one pushed re-screening outcome. Generation increases
// monotonically per organization in trigger order, so receivers can discard
// re-screens that complete out of order.
type Update struct {
	OrganizationID uuid.UUID         `json:"organization_id"`
	Generation     uint64            `json:"generation"`
	Result         *screening.Result `json:"result"`
}

// Screener runs a screening pass. Satisfied by the matcher.
type Screener interface {
	Screen(ctx context.Context, orgID uuid.UUID, p *screening.OrganizationProfile) (*screening.Result, error)
}

// Delivery receives every fanned-out update in addition to channel
// subscribers. The websocket hub and the alert mailer register here.
type Delivery interface {
	Deliver(update Update)
}

type subscriber struct {
	ch chan Update
}

type Streamer struct {
	pubSub   *gochannel.GoChannel
	screener Screener
	cache    screening.ResultCache
	analyzer *profile.Analyzer
	log      logger.ILogger

	mu          sync.Mutex
	subscribers map[uuid.UUID]map[*subscriber]struct{}
	generations map[uuid.UUID]uint64
	deliveries  []Delivery
}

func NewStreamer(screener Screener, cache screening.ResultCache, log logger.ILogger) *Streamer {
	return &Streamer{
		pubSub:      gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}),
		screener:    screener,
		cache:       cache,
		analyzer:    profile.NewAnalyzer(),
		log:         log,
		subscribers: make(map[uuid.UUID]map[*subscriber]struct{}),
		generations: make(map[uuid.UUID]uint64),
	}
}

// AddDelivery registers an auxiliary delivery target (e.g. websocket hub).
func (s *Streamer) AddDelivery(d Delivery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = append(s.deliveries, d)
}

// Start begins consuming the internal result topic and fanning updates out
// to subscribers. Must be called once before any push is expected.
func (s *Streamer) Start(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, resultTopic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", resultTopic, err)
	}

	go func() {
		for msg := range messages {
			s.fanOut(msg)
		}
	}()
	return nil
}

// Subscribe registers interest in one organization's re-screening results.
// The returned cancel func must be called when the subscriber goes away.
func (s *Streamer) Subscribe(orgID uuid.UUID) (<-chan Update, func()) {
	sub := &subscriber{ch: make(chan Update, subscriberBuffer)}

	s.mu.Lock()
	if s.subscribers[orgID] == nil {
		s.subscribers[orgID] = make(map[*subscriber]struct{})
	}
	s.subscribers[orgID][sub] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if subs, ok := s.subscribers[orgID]; ok {
			if _, live := subs[sub]; live {
				delete(subs, sub)
				close(sub.ch)
			}
			if len(subs) == 0 {
				delete(s.subscribers, orgID)
			}
		}
	}
	return sub.ch, cancel
}

// OnProfileChanged decides whether the change warrants re-screening. A
// relevant change invalidates every cached tier for the organization and
// triggers a re-screen, synchronously or in the background per the caller's
// preference. The call never fails because of subscriber trouble.
func (s *Streamer) OnProfileChanged(ctx context.Context, orgID uuid.UUID, p *screening.OrganizationProfile, changedFields []string, synchronous bool) {
	tier := s.analyzer.Analyze(p).Tier
	if !strategy.RelevantChange(tier, changedFields) {
		s.log.Debug("Streamer", "Profile change not screening-relevant, skipping", map[string]interface{}{
			"organization_id": orgID.String(),
			"changed_fields":  changedFields,
		})
		return
	}

	s.cache.Invalidate(orgID)

	// The generation is claimed at trigger time so overlapping re-screens
	// carry event order, not completion order.
	generation := s.nextGeneration(orgID)

	if synchronous {
		s.rescreen(ctx, orgID, generation, p)
		return
	}
	go s.rescreen(context.WithoutCancel(ctx), orgID, generation, p)
}

func (s *Streamer) rescreen(ctx context.Context, orgID uuid.UUID, generation uint64, p *screening.OrganizationProfile) {
	res, err := s.screener.Screen(ctx, orgID, p)
	if err != nil {
		s.log.Error("Streamer", "Re-screening failed", map[string]interface{}{
			"organization_id": orgID.String(),
			"error":           err.Error(),
		})
		return
	}

	update := Update{
		OrganizationID: orgID,
		Generation:     generation,
		Result:         res,
	}

	payload, err := json.Marshal(update)
	if err != nil {
		s.log.Error("Streamer", "Failed to marshal update", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(resultTopic, msg); err != nil {
		s.log.Error("Streamer", "Failed to publish update", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Streamer) nextGeneration(orgID uuid.UUID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[orgID]++
	return s.generations[orgID]
}

// fanOut pushes one published update to every subscriber of its
// organization. Slow subscribers drop the update; they reconcile via the
// generation number on the next push.
func (s *Streamer) fanOut(msg *message.Message) {
	defer msg.Ack()

	var update Update
	if err := json.Unmarshal(msg.Payload, &update); err != nil {
		s.log.Error("Streamer", "Failed to unmarshal update", map[string]interface{}{"error": err.Error()})
		return
	}

	s.mu.Lock()
	subs := make([]*subscriber, 0, len(s.subscribers[update.OrganizationID]))
	for sub := range s.subscribers[update.OrganizationID] {
		subs = append(subs, sub)
	}
	deliveries := make([]Delivery, len(s.deliveries))
	copy(deliveries, s.deliveries)
	s.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub.ch <- update:
		default:
			s.log.Warn("Streamer", "Subscriber buffer full, dropping update", map[string]interface{}{
				"organization_id": update.OrganizationID.String(),
				"generation":      update.Generation,
			})
		}
	}

	for _, d := range deliveries {
		d.Deliver(update)
	}
}
