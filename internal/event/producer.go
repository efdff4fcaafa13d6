package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	pkgkafka "github.com/utafrali/EcommerceGo/storefront/pkg/kafka"
)

// Kafka topics for storefront domain events.
var (
	TopicUserRegistered = pkgkafka.Topic("user", "registered")
	TopicGuestMerged    = pkgkafka.Topic("guest", "merged")
	TopicReviewCreated  = pkgkafka.Topic("review", "created")
)

// Aggregate types.
const (
	AggregateTypeUser    = "user"
	AggregateTypeGuest   = "guest"
	AggregateTypeProduct = "product"
)

// SourceStorefront identifies events published by this service.
const SourceStorefront = "storefront"

// UserRegisteredData is the payload of user.registered.
type UserRegisteredData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// GuestMergedData is the payload of guest.merged. The guest token itself is
// never published.
type GuestMergedData struct {
	GuestID string `json:"guest_id"`
	UserID  string `json:"user_id"`
}

// ReviewCreatedData is the payload of review.created.
type ReviewCreatedData struct {
	ReviewID  string `json:"review_id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "domain event published",
		slog.String("topic", topic),
		slog.String("event_id", event.EventID),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{ID: user.ID, Email: user.Email}
	if user.Name != nil {
		data.Name = *user.Name
	}
	return p.publish(ctx, TopicUserRegistered, user.ID, AggregateTypeUser, data)
}

// PublishGuestMerged publishes a guest.merged event.
func (p *Producer) PublishGuestMerged(ctx context.Context, guestID, userID string) error {
	return p.publish(ctx, TopicGuestMerged, guestID, AggregateTypeGuest, GuestMergedData{GuestID: guestID, UserID: userID})
}

// PublishReviewCreated publishes a review.created event keyed by product so
// rating updates of one product stay ordered.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ReviewID:  review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
	}
	return p.publish(ctx, TopicReviewCreated, review.ProductID, AggregateTypeProduct, data)
}
