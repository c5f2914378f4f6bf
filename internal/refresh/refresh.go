package refresh

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan-widget/internal/clock"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/http/api/widget/packets"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/render"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/state"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/widget"
)

// Sink receives the view for one widget instance.
type Sink interface {
	Deliver(ctx context.Context, id widget.InstanceID, view packets.WidgetView) error
}

type Service struct {
	reader   *state.Reader
	clock    clock.Clock
	renderer render.Renderer
	sink     Sink
}

func NewService(reader *state.Reader, clk clock.Clock, renderer render.Renderer, sink Sink) *Service {
	return &Service{reader: reader, clock: clk, renderer: renderer, sink: sink}
}

// Result describes one refresh cycle. Views are in the order the ids were given.
type Result struct {
	CycleID   string
	Views     []packets.WidgetView
	Delivered int
	Failed    map[widget.InstanceID]error
}

// Cycle runs one refresh: read the widget data, read the clock once, resolve
// every instance, render and deliver. A failed delivery does not stop the
// others; all failures are joined into the returned error.
func (s *Service) Cycle(ctx context.Context, widgetIDs []string) (Result, error) {
	res := Result{
		CycleID: uuid.NewString(),
		Failed:  map[widget.InstanceID]error{},
	}
	logger := log.With().Str("cycle_id", res.CycleID).Logger()

	ids := widget.NewInstanceSet(widgetIDs...)
	if len(ids) == 0 {
		logger.Debug().Msg("refresh with no active widgets")
		res.Views = []packets.WidgetView{}
		return res, nil
	}

	instructions := s.resolve(ctx, ids)

	res.Views = make([]packets.WidgetView, 0, len(ids))
	var errs []error
	for _, id := range ids {
		view := s.renderer.Render(id, instructions[id])
		res.Views = append(res.Views, view)

		if s.sink == nil {
			continue
		}
		if err := s.sink.Deliver(ctx, id, view); err != nil {
			logger.Error().Err(err).Str("widget_id", string(id)).Msg("failed to deliver widget view")
			res.Failed[id] = err
			errs = append(errs, fmt.Errorf("widget %s: %w", id, err))
			continue
		}
		res.Delivered++
	}

	logger.Info().
		Int("widgets", len(ids)).
		Int("delivered", res.Delivered).
		Int("failed", len(res.Failed)).
		Msg("widget refresh finished")

	return res, errors.Join(errs...)
}

// Preview renders one instance without delivering it.
func (s *Service) Preview(ctx context.Context, widgetID string) (packets.WidgetView, bool) {
	ids := widget.NewInstanceSet(widgetID)
	if len(ids) == 0 {
		return packets.WidgetView{}, false
	}
	id := ids[0]
	return s.renderer.Render(id, s.resolve(ctx, ids)[id]), true
}

func (s *Service) resolve(ctx context.Context, ids []widget.InstanceID) map[widget.InstanceID]widget.RenderInstruction {
	snapshot := state.Load(ctx, s.reader)
	now, mono := s.clock.NowMillis(), s.clock.MonotonicMillis()

	log.Debug().
		Str("prayer_name", snapshot.Label).
		Int64("target_ms", snapshot.TargetEpochMillis).
		Int64("now_ms", now).
		Msg("resolving widget state")

	return widget.Resolve(snapshot, ids, now, mono)
}
