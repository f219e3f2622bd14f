package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/andresuchdata/forecast-engine/internal/domain"
)

// ReportArchive persists rendered forecast reports as JSON objects so past
// runs remain auditable after the cache has expired.
type ReportArchive struct {
	store  ObjectStorage
	prefix string
}

func NewReportArchive(store ObjectStorage, prefix string) *ReportArchive {
	return &ReportArchive{store: store, prefix: prefix}
}

// Archive uploads one report under <prefix>/<tenant>/<asOf>.json.
func (a *ReportArchive) Archive(ctx context.Context, report *domain.ForecastReport) (string, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encode forecast report: %w", err)
	}

	key := path.Join(a.prefix, report.TenantID, report.AsOf.UTC().Format("2006-01-02T15-04-05Z")+".json")
	if err := a.store.PutObject(ctx, key, payload, "application/json"); err != nil {
		return "", err
	}

	return key, nil
}

// List returns the archived report objects for one tenant.
func (a *ReportArchive) List(ctx context.Context, tenantID string) ([]ObjectInfo, error) {
	return a.store.ListObjects(ctx, path.Join(a.prefix, tenantID)+"/")
}

// Fetch retrieves and decodes one archived report by its object key.
func (a *ReportArchive) Fetch(ctx context.Context, key string) (*domain.ForecastReport, error) {
	payload, err := a.store.GetObject(ctx, key)
	if err != nil {
		return nil, err
	}

	var report domain.ForecastReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("decode archived report %s: %w", key, err)
	}

	return &report, nil
}
