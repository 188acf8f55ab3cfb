package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/usedcar-api/internal/dto"
	"github.com/noah-isme/usedcar-api/internal/models"
	appErrors "github.com/noah-isme/usedcar-api/pkg/errors"
	"github.com/noah-isme/usedcar-api/pkg/export"
)

type catalogMatcher interface {
	Matching(ctx context.Context, query models.CarQuery) ([]models.Car, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Enabled bool
	MaxRows int
}

// ExportService renders search results as downloadable files.
type ExportService struct {
	catalog catalogMatcher
	logger  *zap.Logger
	cfg     ExportConfig
	now     func() time.Time
}

var carExportColumns = []export.Column{
	{Key: "id", Title: "ID", Width: 1.6},
	{Key: "brand", Title: "Brand"},
	{Key: "model", Title: "Model"},
	{Key: "variant", Title: "Variant"},
	{Key: "year", Title: "Year", Width: 0.6},
	{Key: "price", Title: "Price (INR)", Width: 0.9},
	{Key: "fuel", Title: "Fuel", Width: 0.7},
	{Key: "transmission", Title: "Transmission", Width: 0.9},
	{Key: "bodyType", Title: "Body", Width: 0.7},
	{Key: "ownership", Title: "Ownership", Width: 0.8},
	{Key: "kmDriven", Title: "Km", Width: 0.7},
	{Key: "city", Title: "City"},
	{Key: "state", Title: "State"},
}

// NewExportService constructs an ExportService.
func NewExportService(catalog catalogMatcher, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 5000
	}
	return &ExportService{catalog: catalog, logger: logger, cfg: cfg, now: time.Now}
}

// Export runs the query without pagination and renders the result.
func (s *ExportService) Export(ctx context.Context, query models.CarQuery, rawFormat string) (*dto.ExportResult, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export is disabled")
	}
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unsupported export format")
	}
	renderer, err := export.NewRenderer(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unsupported export format")
	}

	cars, err := s.catalog.Matching(ctx, query)
	if err != nil {
		return nil, err
	}
	truncated := len(cars) > s.cfg.MaxRows
	if truncated {
		s.logger.Warn("export truncated", zap.Int("matched", len(cars)), zap.Int("max_rows", s.cfg.MaxRows))
		cars = cars[:s.cfg.MaxRows]
	}

	generated := s.now().UTC()
	dataset := export.Dataset{
		Title:   fmt.Sprintf("Used cars (%d) - %s", len(cars), generated.Format("02 Jan 2006 15:04 MST")),
		Columns: carExportColumns,
		Rows:    carRows(cars),
	}
	payload, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &dto.ExportResult{
		Filename:    fmt.Sprintf("cars_%s.%s", generated.Format("20060102_150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Payload:     payload,
		Rows:        len(cars),
		Truncated:   truncated,
	}, nil
}

func carRows(cars []models.Car) []map[string]string {
	rows := make([]map[string]string, len(cars))
	for i, car := range cars {
		rows[i] = map[string]string{
			"id":           car.ID,
			"brand":        car.Brand,
			"model":        car.Model,
			"variant":      car.Variant,
			"year":         optionalInt(car.ManufacturingYear),
			"price":        optionalInt64(car.CarPrice),
			"fuel":         car.FuelType,
			"transmission": car.Transmission,
			"bodyType":     car.BodyType,
			"ownership":    car.Ownership,
			"kmDriven":     optionalInt(car.KmDriven),
			"city":         car.City(),
			"state":        car.State(),
		}
	}
	return rows
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optionalInt64(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
