package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"forum/domain/shared"

	"github.com/nats-io/nats.go"
)

// Publisher 消息发布端，*nats.Conn 满足该接口
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Envelope 转发到消息总线的事件格式
type Envelope struct {
	Event       string            `json:"event"`
	AggregateID string            `json:"aggregate_id"`
	OccurredOn  time.Time         `json:"occurred_on"`
	Payload     map[string]string `json:"payload,omitempty"`
}

// Forwarder 把已提交的领域事件发布到 <prefix>.<event>
// 发布失败按订阅者失败处理，写入不会回滚
type Forwarder struct {
	publisher Publisher
	prefix    string
}

func NewForwarder(publisher Publisher, prefix string) *Forwarder {
	if prefix == "" {
		prefix = "forum.events"
	}
	return &Forwarder{publisher: publisher, prefix: prefix}
}

func (f *Forwarder) Name() string { return "event-forwarder" }

func (f *Forwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	env := Envelope{
		Event:       event.EventName(),
		AggregateID: event.GetAggregateID().String(),
		OccurredOn:  event.OccurredOn().UTC(),
	}
	if attrs := eventAttributes(event); len(attrs) > 0 {
		env.Payload = make(map[string]string, len(attrs))
		for _, attr := range attrs {
			env.Payload[attr.key] = attr.value
		}
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", env.Event, err)
	}
	return f.publisher.Publish(f.Subject(env.Event), data)
}

// Subject 事件对应的主题
func (f *Forwarder) Subject(eventName string) string {
	return f.prefix + "." + eventName
}

// ConnectNATS 连接 NATS，断线时有限重连
func ConnectNATS(url, clientName string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(clientName),
		nats.MaxReconnects(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats %s: %w", url, err)
	}
	return nc, nil
}

var _ Publisher = (*nats.Conn)(nil)
