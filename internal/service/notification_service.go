package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/rubrica-go-api/internal/dto"
	"github.com/noah-isme/rubrica-go-api/internal/observability"
)

const notificationBufferSize = 16

// NotificationService fans grading notifications out to connected
// students and to peer API nodes via Redis and NATS.
type NotificationService interface {
	Publish(ctx context.Context, notification dto.GradingNotification) error
	Subscribe(studentID uint) (<-chan dto.GradingNotification, func())
	Start(ctx context.Context)
}

type notificationService struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	validator    *validator.Validate
	logger       zerolog.Logger
	tracer       trace.Tracer
	sanitizer    *bluemonday.Policy
	broker       *notificationBroker
	nodeID       string
}

type notificationEvent struct {
	Source       string                  `json:"source"`
	Notification dto.GradingNotification `json:"notification"`
	SentAt       time.Time               `json:"sent_at"`
}

type notificationBroker struct {
	mu          sync.RWMutex
	subscribers map[uint]map[chan dto.GradingNotification]struct{}
}

// NewNotificationService constructs a notification service.
func NewNotificationService(redisClient *redis.Client, channelBase string, natsConn *nats.Conn, validate *validator.Validate, logger zerolog.Logger) NotificationService {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":grading"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".grading"
	}

	return &notificationService{
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		validator:    validate,
		logger:       logger.With().Str("component", "notification_service").Logger(),
		tracer:       otel.Tracer("github.com/noah-isme/rubrica-go-api/internal/service/notification"),
		sanitizer:    bluemonday.StrictPolicy(),
		broker: &notificationBroker{
			subscribers: make(map[uint]map[chan dto.GradingNotification]struct{}),
		},
		nodeID: uuid.NewString(),
	}
}

func (s *notificationService) Start(ctx context.Context) {
	if s.redis != nil && s.redisChannel != "" {
		go s.consumeRedis(ctx)
	}
	if s.nats != nil && s.natsSubject != "" {
		go s.consumeNATS(ctx)
	}
}

func (s *notificationService) Publish(ctx context.Context, notification dto.GradingNotification) error {
	if err := s.validator.Struct(notification); err != nil {
		return err
	}

	cleanMessage := strings.TrimSpace(s.sanitizer.Sanitize(notification.Message))
	if cleanMessage == "" {
		return errors.New("notification message empty after sanitization")
	}
	notification.Message = cleanMessage
	if notification.SentAt.IsZero() {
		notification.SentAt = time.Now().UTC()
	}

	attrs := []attribute.KeyValue{
		attribute.Int("notification.student_id", int(notification.StudentID)),
		attribute.Int("notification.submission_id", int(notification.SubmissionID)),
		attribute.String("notification.variant", notification.Variant),
	}

	spanCtx, span := s.tracer.Start(ctx, "notifications.publish", trace.WithAttributes(attrs...))
	defer span.End()

	s.broadcast(notification)
	observability.NotificationsPublished().WithLabelValues("local").Inc()

	if err := s.publish(spanCtx, notification); err != nil {
		span.RecordError(err)
		s.logger.Warn().Err(err).Msg("failed to publish grading notification to brokers")
	}

	return nil
}

func (s *notificationService) Subscribe(studentID uint) (<-chan dto.GradingNotification, func()) {
	channel := make(chan dto.GradingNotification, notificationBufferSize)

	s.broker.subscribe(studentID, channel)

	cleanup := func() {
		s.broker.unsubscribe(studentID, channel)
	}

	return channel, cleanup
}

func (s *notificationService) broadcast(notification dto.GradingNotification) {
	s.broker.broadcast(notification.StudentID, notification)
}

func (s *notificationService) publish(ctx context.Context, notification dto.GradingNotification) error {
	event := notificationEvent{
		Source:       s.nodeID,
		Notification: notification,
		SentAt:       time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if s.redis != nil && s.redisChannel != "" {
		if err := s.redis.Publish(ctx, s.redisChannel, payload).Err(); err != nil {
			return err
		}
		observability.NotificationsPublished().WithLabelValues("redis").Inc()
	}

	if s.nats != nil && s.natsSubject != "" {
		if err := s.nats.Publish(s.natsSubject, payload); err != nil {
			return err
		}
		observability.NotificationsPublished().WithLabelValues("nats").Inc()
	}

	return nil
}

func (s *notificationService) consumeRedis(ctx context.Context) {
	pubsub := s.redis.Subscribe(ctx, s.redisChannel)
	defer func() { _ = pubsub.Close() }()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.logger.Error().Err(err).Msg("grading notification redis subscription closed")
			return
		}
		s.handleEvent([]byte(msg.Payload))
	}
}

func (s *notificationService) consumeNATS(ctx context.Context) {
	sub, err := s.nats.QueueSubscribe(s.natsSubject, "rubrica-grading", func(msg *nats.Msg) {
		s.handleEvent(msg.Data)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to subscribe to nats grading subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drain grading nats subscription")
		}
	}()
}

func (s *notificationService) handleEvent(payload []byte) {
	var event notificationEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.logger.Warn().Err(err).Msg("invalid grading notification payload")
		return
	}

	if event.Source == s.nodeID {
		return
	}

	s.broadcast(event.Notification)
}

func (b *notificationBroker) subscribe(studentID uint, ch chan dto.GradingNotification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[studentID]; !exists {
		b.subscribers[studentID] = make(map[chan dto.GradingNotification]struct{})
	}
	b.subscribers[studentID][ch] = struct{}{}
}

func (b *notificationBroker) unsubscribe(studentID uint, ch chan dto.GradingNotification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscribers, ok := b.subscribers[studentID]; ok {
		delete(subscribers, ch)
		close(ch)
		if len(subscribers) == 0 {
			delete(b.subscribers, studentID)
		}
	}
}

func (b *notificationBroker) broadcast(studentID uint, notification dto.GradingNotification) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	subscribers := b.subscribers[studentID]
	for ch := range subscribers {
		select {
		case ch <- notification:
		default:
		}
	}
}
