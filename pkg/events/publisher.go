package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

type OrderEvent struct {
	OrderID      uint      `json:"orderId"`
	MemberID     uint      `json:"memberId"`
	RestaurantID uint      `json:"restaurantId"`
	CourierID    *uint     `json:"courierId,omitempty"`
	Status       string    `json:"status"`
	At           time.Time `json:"at"`
}

type RatingEvent struct {
	OrderID          uint      `json:"orderId"`
	RestaurantID     uint      `json:"restaurantId"`
	RestaurantRating *int      `json:"restaurantRating,omitempty"`
	DeliveryRating   *int      `json:"deliveryRating,omitempty"`
	At               time.Time `json:"at"`
}

type Publisher interface {
	PublishOrder(ctx context.Context, ev OrderEvent) error
	PublishRating(ctx context.Context, ev RatingEvent) error
	Close() error
}

// KafkaPublisher writes order lifecycle and rating events keyed by order id,
// so a consumer sees one order's history in sequence.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaPublisher) PublishOrder(ctx context.Context, ev OrderEvent) error {
	payload, _ := json.Marshal(ev)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(ev.OrderID), 10)),
		Value: payload,
	})
}

func (p *KafkaPublisher) PublishRating(ctx context.Context, ev RatingEvent) error {
	payload, _ := json.Marshal(ev)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(ev.OrderID), 10)),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error { return p.Writer.Close() }

// NopPublisher is used when no broker is configured and in tests.
type NopPublisher struct{}

func (NopPublisher) PublishOrder(context.Context, OrderEvent) error   { return nil }
func (NopPublisher) PublishRating(context.Context, RatingEvent) error { return nil }
func (NopPublisher) Close() error                                     { return nil }
