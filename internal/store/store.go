package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ccash-backend/internal/db"
	"ccash-backend/internal/scrapers/capecoral"
	"ccash-backend/internal/scrapers/fred"
)

// Store persists the employment series and the news records, every write
// replaces the whole table.
type Store struct {
	db     *sql.DB
	qry    *db.Queries
	makeTx db.MakeTx
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:     database,
		qry:    db.New(database),
		makeTx: db.NewMakeTx(database),
	}
}

func (s Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s Store) ReplaceEmployment(ctx context.Context, observations []fred.Observation) error {
	tx, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return err
	}
	defer discard()

	err = tx.DeleteAllEmployment(ctx)
	if err != nil {
		return fmt.Errorf("delete employment: %w", err)
	}
	for _, obs := range observations {
		err = tx.CreateEmployment(ctx, db.CreateEmploymentParams{
			Date:             obs.Date.Format(fred.DateLayout),
			UnemploymentRate: obs.UnemploymentRate,
		})
		if err != nil {
			return fmt.Errorf("insert employment: %w", err)
		}
	}
	return commit()
}

func (s Store) ReplaceNews(ctx context.Context, records []capecoral.Record) error {
	tx, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return err
	}
	defer discard()

	err = tx.DeleteAllNews(ctx)
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	for _, r := range records {
		err = tx.CreateNews(ctx, db.CreateNewsParams{
			ScrapeDate:  r.ScrapeDate,
			NewsDate:    r.NewsDate,
			Headline:    r.Headline,
			Description: r.Description,
		})
		if err != nil {
			return fmt.Errorf("insert news: %w", err)
		}
	}
	return commit()
}

// Employment returns the stored series in ascending date order.
func (s Store) Employment(ctx context.Context) ([]fred.Observation, error) {
	rows, err := s.qry.GetAllEmployment(ctx)
	if err != nil {
		return nil, err
	}
	observations := make([]fred.Observation, len(rows))
	for i, r := range rows {
		date, err := time.Parse(fred.DateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", r.Date, err)
		}
		observations[i] = fred.Observation{
			Date:             date,
			UnemploymentRate: r.UnemploymentRate,
		}
	}
	return observations, nil
}

// News returns the stored records in the order they were scraped.
func (s Store) News(ctx context.Context) ([]capecoral.Record, error) {
	rows, err := s.qry.GetAllNews(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]capecoral.Record, len(rows))
	for i, r := range rows {
		records[i] = capecoral.Record{
			ScrapeDate:  r.ScrapeDate,
			NewsDate:    r.NewsDate,
			Headline:    r.Headline,
			Description: r.Description,
		}
	}
	return records, nil
}
