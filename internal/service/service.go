package service

import (
	"context"
	"errors"
	"fmt"

	"ccash-backend/internal/components/assert"
	"ccash-backend/internal/components/telemetry"
	"ccash-backend/internal/scrapers/capecoral"
	"ccash-backend/internal/scrapers/fred"
	"ccash-backend/internal/store"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_refresh_employment = "refresh-employment"
	report_refresh_news       = "refresh-news"
	report_db_query           = "db.query"
)

var tracer = otel.Tracer("ccash.internal.service")

type EmploymentSource interface {
	FetchObservations(ctx context.Context) ([]fred.Observation, error)
}

type NewsSource interface {
	Scrape(ctx context.Context) ([]capecoral.Record, error)
}

// Service runs the fetch -> transform -> store pipelines, a failed fetch
// never touches the stored tables. Sources return their errors unreported,
// the service reports each failure once.
type Service struct {
	store      store.Store
	employment EmploymentSource
	news       NewsSource
	tel        telemetry.API
}

func NewService(s store.Store, employment EmploymentSource, news NewsSource, tel telemetry.API) Service {
	assert.NotNil(employment, "employment source")
	assert.NotNil(news, "news source")
	assert.NotNil(tel, "telemetry")

	return Service{
		store:      s,
		employment: employment,
		news:       news,
		tel:        telemetry.NewScopedAPI("service", tel),
	}
}

func (s Service) RefreshEmployment(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "RefreshEmployment")
	defer span.End()

	observations, err := s.employment.FetchObservations(ctx)
	if err != nil {
		s.tel.ReportBroken(report_refresh_employment, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch observations")
		return fmt.Errorf("fetch employment: %w", err)
	}

	err = s.store.ReplaceEmployment(ctx, observations)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "ReplaceEmployment")
		span.RecordError(err)
		span.SetStatus(codes.Error, "replace employment")
		return fmt.Errorf("save employment: %w", err)
	}

	span.SetAttributes(attribute.Int("observations", len(observations)))
	s.tel.ReportCount("employment.observations", int64(len(observations)))
	return nil
}

// RefreshNews scrapes the news page and replaces the news table, it
// returns the records that were saved.
func (s Service) RefreshNews(ctx context.Context) ([]capecoral.Record, error) {
	ctx, span := tracer.Start(ctx, "RefreshNews")
	defer span.End()

	records, err := s.news.Scrape(ctx)
	if err != nil {
		s.tel.ReportBroken(report_refresh_news, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "scrape news")
		return nil, fmt.Errorf("scrape news: %w", err)
	}

	err = s.store.ReplaceNews(ctx, records)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "ReplaceNews")
		span.RecordError(err)
		span.SetStatus(codes.Error, "replace news")
		return nil, fmt.Errorf("save news: %w", err)
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	s.tel.ReportCount("news.records", int64(len(records)))
	return records, nil
}

// RefreshAll refreshes both tables, a failure in one does not stop the other.
func (s Service) RefreshAll(ctx context.Context) error {
	var errs []error
	err := s.RefreshEmployment(ctx)
	if err != nil {
		errs = append(errs, err)
	}
	_, err = s.RefreshNews(ctx)
	if err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
