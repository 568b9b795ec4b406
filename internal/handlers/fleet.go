package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/mykafka"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/service/search"
)

const FleetTopic = "fleet_events"

// FleetSideEffects bundles the fire-and-forget sinks fleet mutations feed:
// a kafka event per change and the search index for the changed document.
// Either sink may be nil (disabled); failures are logged, never surfaced.
type FleetSideEffects struct {
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

func (f *FleetSideEffects) publish(c echo.Context, event map[string]interface{}) {
	if f == nil || f.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := f.Producer.PublishEvent(ctx, FleetTopic, fmt.Sprint(event["id"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (f *FleetSideEffects) indexDoc(c echo.Context, doc search.Document) {
	if f == nil || f.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.Index(ctx, f.ES, f.Index, doc); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
}

func (f *FleetSideEffects) removeDoc(c echo.Context, kind string, id uint) {
	if f == nil || f.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.Delete(ctx, f.ES, f.Index, kind, id); err != nil {
		c.Logger().Errorf("ES delete error: %v", err)
	}
}
