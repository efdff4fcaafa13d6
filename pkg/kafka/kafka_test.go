package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		m := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func (r *fakeReader) commits() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

func encoded(t *testing.T, eventType string, offset int64) kafka.Message {
	t.Helper()
	e, err := NewEvent(eventType, "p1", "product", "storefront", map[string]int{"rating": 4})
	require.NoError(t, err)
	b, err := marshalEvent(e)
	require.NoError(t, err)
	return kafka.Message{Topic: Topic("review", "created"), Offset: offset, Value: b}
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "storefront.review.created", Topic("review", "created"))
	assert.Equal(t, "storefront.dlq.storefront.review.created", DLQTopic("storefront.review.created"))
}

func TestNewEvent(t *testing.T) {
	e, err := NewEvent("guest.merged", "g1", "guest", "storefront", map[string]string{"user_id": "u1"})
	require.NoError(t, err)
	assert.Len(t, e.EventID, 36)
	assert.Equal(t, 1, e.Version)

	var payload map[string]string
	require.NoError(t, e.UnmarshalData(&payload))
	assert.Equal(t, "u1", payload["user_id"])

	_, err = NewEvent("bad", "x", "x", "x", make(chan int))
	assert.Error(t, err)
}

func TestProducer_Publish(t *testing.T) {
	prevProp := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prevProp) })

	w := &fakeWriter{}
	p := NewProducerWithWriter(w, quiet())

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled,
	}))

	e, err := NewEvent("user.registered", "u1", "user", "storefront", map[string]string{"email": "a@b.c"})
	require.NoError(t, err)
	e.CorrelationID = "corr-1"
	require.NoError(t, p.Publish(ctx, Topic("user", "registered"), e))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "u1", string(msg.Key))
	hc := headerCarrier{headers: &msg.Headers}
	assert.Equal(t, "user.registered", hc.Get("event_type"))
	assert.Equal(t, "corr-1", hc.Get("correlation_id"))
	assert.Contains(t, hc.Get("traceparent"), "4bf92f3577b34da6a3ce929d0e0e4736")
}

func TestProducer_PublishError(t *testing.T) {
	p := NewProducerWithWriter(&fakeWriter{err: errors.New("leader not available")}, quiet())
	e, _ := NewEvent("user.registered", "u1", "user", "storefront", nil)
	err := p.Publish(context.Background(), "t", e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestProducer_CountsPerTopic(t *testing.T) {
	const topic = "storefront.metrics.probe"
	okBefore := counterValue(t, published.WithLabelValues(topic))
	errBefore := counterValue(t, publishErrors.WithLabelValues(topic))

	e, _ := NewEvent("metrics.probe", "p1", "product", "storefront", nil)
	require.NoError(t, NewProducerWithWriter(&fakeWriter{}, quiet()).Publish(context.Background(), topic, e))
	require.Error(t, NewProducerWithWriter(&fakeWriter{err: errors.New("down")}, quiet()).Publish(context.Background(), topic, e))

	assert.Equal(t, okBefore+1, counterValue(t, published.WithLabelValues(topic)))
	assert.Equal(t, errBefore+1, counterValue(t, publishErrors.WithLabelValues(topic)))
}

func TestHeaderCarrier(t *testing.T) {
	headers := []kafka.Header{{Key: "a", Value: []byte("1")}}
	c := headerCarrier{headers: &headers}

	c.Set("a", "2")
	c.Set("b", "3")
	assert.Equal(t, "2", c.Get("a"))
	assert.Equal(t, "3", c.Get("b"))
	assert.Equal(t, "", c.Get("missing"))
	assert.ElementsMatch(t, []string{"a", "b"}, c.Keys())
}

func runConsumer(t *testing.T, c *Consumer, until func() bool) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()
	require.Eventually(t, until, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestConsumer_HandlesAndCommits(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{encoded(t, "review.created", 1), encoded(t, "review.created", 2)}}

	var mu sync.Mutex
	var handled []string
	c := NewConsumerWithReader(r, ConsumerConfig{Topic: "t", GroupID: "g"}, func(_ context.Context, e *Event) error {
		mu.Lock()
		handled = append(handled, e.EventType)
		mu.Unlock()
		return nil
	}, quiet())

	runConsumer(t, c, func() bool { return len(r.commits()) == 2 })
	assert.Equal(t, []string{"review.created", "review.created"}, handled)
	assert.Equal(t, []int64{1, 2}, r.commits())
}

func TestConsumer_PoisonMessageDeadLettered(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{encoded(t, "review.created", 7)}}
	dw := &fakeWriter{}

	attempts := 0
	c := NewConsumerWithReader(r, ConsumerConfig{Topic: "t", GroupID: "ratings", MaxRetries: 2, RetryWait: time.Millisecond},
		func(context.Context, *Event) error {
			attempts++
			return errors.New("product missing")
		}, quiet()).WithDLQ(NewDLQWithWriter(dw, quiet()))

	runConsumer(t, c, func() bool { return len(r.commits()) == 1 })
	assert.Equal(t, 2, attempts)
	require.Len(t, dw.msgs, 1)
	assert.Equal(t, DLQTopic(Topic("review", "created")), dw.msgs[0].Topic)
	hc := headerCarrier{headers: &dw.msgs[0].Headers}
	assert.Equal(t, "product missing", hc.Get("dlq.error"))
	assert.Equal(t, "ratings", hc.Get("dlq.consumer_group"))
}

func TestConsumer_MalformedMessageSkipped(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{{Topic: "t", Offset: 3, Value: []byte("{not json")}}}
	called := false
	c := NewConsumerWithReader(r, ConsumerConfig{Topic: "t"}, func(context.Context, *Event) error {
		called = true
		return nil
	}, quiet())

	runConsumer(t, c, func() bool { return len(r.commits()) == 1 })
	assert.False(t, called)
}

func TestIdempotentHandler(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisIdempotencyStore(client, "storefront:events", time.Hour)

	calls := 0
	h := IdempotentHandler(store, func(context.Context, *Event) error {
		calls++
		return nil
	}, quiet())

	e, _ := NewEvent("review.created", "p1", "product", "storefront", nil)
	require.NoError(t, h(context.Background(), e))
	require.NoError(t, h(context.Background(), e))
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("storefront:events:"+e.EventID))

	noID := &Event{EventType: "review.created"}
	require.NoError(t, h(context.Background(), noID))
	require.NoError(t, h(context.Background(), noID))
	assert.Equal(t, 3, calls)
}

func TestIdempotentHandler_FailureNotMarked(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisIdempotencyStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "ev", time.Hour)

	h := IdempotentHandler(store, func(context.Context, *Event) error { return errors.New("db down") }, quiet())
	e, _ := NewEvent("review.created", "p1", "product", "storefront", nil)
	require.Error(t, h(context.Background(), e))
	assert.False(t, mr.Exists("ev:"+e.EventID))
}
