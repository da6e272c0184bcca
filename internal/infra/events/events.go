package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Publisher публикует события жизненного цикла бронирования
type Publisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// Noop отбрасывает события (events.driver = "none")
type Noop struct{}

func (Noop) Publish(context.Context, domain.BookingEvent) error {
	return nil
}

// Multi рассылает событие всем публикаторам, ошибки объединяются
type Multi struct {
	publishers []Publisher
}

// NewMulti создает fan-out публикатор, nil-публикаторы пропускаются
func NewMulti(publishers ...Publisher) *Multi {
	m := &Multi{}
	for _, p := range publishers {
		if p != nil {
			m.publishers = append(m.publishers, p)
		}
	}
	return m
}

func (m *Multi) Publish(ctx context.Context, event domain.BookingEvent) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TransitionRecorder счетчик переходов жизненного цикла
type TransitionRecorder interface {
	IncBookingTransition(event string)
}

// MetricsPublisher считает опубликованные события в prometheus
type MetricsPublisher struct {
	recorder TransitionRecorder
}

func NewMetricsPublisher(recorder TransitionRecorder) *MetricsPublisher {
	return &MetricsPublisher{recorder: recorder}
}

func (p *MetricsPublisher) Publish(_ context.Context, event domain.BookingEvent) error {
	p.recorder.IncBookingTransition(string(event.Type))
	return nil
}

func encode(event domain.BookingEvent) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("events: failed to encode %s for booking %d: %w", event.Type, event.BookingID, err)
	}
	return body, nil
}
