package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
	pkgkafka "github.com/utafrali/EcommerceGo/storefront/pkg/kafka"
)

// RatingRecomputer refreshes the cached rating of a product.
type RatingRecomputer interface {
	RecomputeRating(ctx context.Context, productID string) error
}

// RatingHandler keeps product ratings in step with review.created events.
type RatingHandler struct {
	ratings RatingRecomputer
	logger  *slog.Logger
}

// NewRatingHandler creates a review.created handler.
func NewRatingHandler(ratings RatingRecomputer, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{
		ratings: ratings,
		logger:  logger,
	}
}

// Handle recomputes the rating of the reviewed product. A product deleted
// since the review was written is skipped, not retried.
func (h *RatingHandler) Handle(ctx context.Context, event *pkgkafka.Event) error {
	if event.EventType != TopicReviewCreated {
		h.logger.WarnContext(ctx, "unexpected event type on rating consumer",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}

	var data ReviewCreatedData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("decode review.created: %w", err)
	}
	if data.ProductID == "" {
		h.logger.WarnContext(ctx, "review.created without product id", slog.String("event_id", event.EventID))
		return nil
	}

	if err := h.ratings.RecomputeRating(ctx, data.ProductID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.logger.InfoContext(ctx, "rating update skipped, product gone",
				slog.String("product_id", data.ProductID),
			)
			return nil
		}
		return fmt.Errorf("recompute rating of %s: %w", data.ProductID, err)
	}

	h.logger.InfoContext(ctx, "product rating recomputed",
		slog.String("product_id", data.ProductID),
		slog.String("event_id", event.EventID),
	)
	return nil
}

// NewRatingConsumer subscribes the handler to review.created with replay
// protection from store and dead-lettering of poison messages.
func NewRatingConsumer(
	brokers []string,
	groupID string,
	handler *RatingHandler,
	store pkgkafka.IdempotencyStore,
	logger *slog.Logger,
) *pkgkafka.Consumer {
	cfg := pkgkafka.ConsumerConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   TopicReviewCreated,
	}
	h := pkgkafka.IdempotentHandler(store, handler.Handle, logger)
	return pkgkafka.NewConsumer(cfg, h, logger).WithDLQ(pkgkafka.NewDLQ(brokers, logger))
}
