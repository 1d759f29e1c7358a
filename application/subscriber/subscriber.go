/*
Package subscriber 领域事件订阅者

订阅者在仓储写入提交之后被同步调用；返回错误会中止本轮调度并传回触发写入的调用方，
因此这里的订阅者只记录，不返回错误。
*/
package subscriber

import (
	"context"

	"forum/domain/answer"
	"forum/domain/question"
	"forum/domain/shared"
	"forum/pkg/logger"
	"forum/pkg/metrics"

	"go.uber.org/zap"
)

// EventNames 论坛领域的全部事件类型
var EventNames = []string{
	answer.EventAnswerCreated,
	question.EventBestAnswerChosen,
}

// RegisterAll 为全部事件类型注册订阅者
func RegisterAll(events *shared.DomainEvents, handlers ...shared.EventHandler) error {
	for _, name := range EventNames {
		for _, h := range handlers {
			if err := events.Register(name, h); err != nil {
				return err
			}
		}
	}
	return nil
}

type attribute struct {
	key, value string
}

// eventAttributes 事件的业务字段，日志和转发共用
func eventAttributes(event shared.DomainEvent) []attribute {
	switch e := event.(type) {
	case *answer.AnswerCreatedEvent:
		return []attribute{
			{"question_id", e.QuestionID().String()},
			{"author_id", e.AuthorID().String()},
		}
	case *question.QuestionBestAnswerChosenEvent:
		return []attribute{{"best_answer_id", e.BestAnswerID().String()}}
	default:
		return nil
	}
}

// LogSubscriber 以结构化日志记录每个事件
type LogSubscriber struct {
	logger *zap.Logger
}

func NewLogSubscriber(logger *zap.Logger) *LogSubscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSubscriber{logger: logger.Named("events")}
}

func (s *LogSubscriber) Name() string { return "event-logger" }

func (s *LogSubscriber) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event", event.EventName()),
		zap.String("aggregate_id", event.GetAggregateID().String()),
		zap.Time("occurred_on", event.OccurredOn()),
	}

	for _, attr := range eventAttributes(event) {
		fields = append(fields, zap.String(attr.key, attr.value))
	}

	fields = append(fields, logger.ContextFields(ctx)...)

	s.logger.Info("Domain event dispatched", fields...)
	return nil
}

// MetricsSubscriber 统计事件投递次数
type MetricsSubscriber struct {
	metrics *metrics.Metrics
}

func NewMetricsSubscriber(m *metrics.Metrics) *MetricsSubscriber {
	return &MetricsSubscriber{metrics: m}
}

func (s *MetricsSubscriber) Name() string { return "event-metrics" }

func (s *MetricsSubscriber) Handle(ctx context.Context, event shared.DomainEvent) error {
	s.metrics.EventDispatched(event.EventName())
	return nil
}

var (
	_ shared.EventHandler = (*LogSubscriber)(nil)
	_ shared.EventHandler = (*MetricsSubscriber)(nil)
)
