package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/templui/habits/internal/calendar"
	"github.com/templui/habits/internal/model"
	"github.com/templui/habits/internal/storage"
)

var (
	ErrStorageDisabled = errors.New("storage is not configured")
)

const exportKeyLayout = "20060102T150405Z"

type ExportService struct {
	habitService *HabitService
	store        storage.Storage
	now          calendar.Clock
}

// NewExportService returns a service that uploads summary snapshots to store.
// A nil store disables exports.
func NewExportService(habitService *HabitService, store storage.Storage, now calendar.Clock) *ExportService {
	if now == nil {
		now = habitService.now
	}
	return &ExportService{
		habitService: habitService,
		store:        store,
		now:          now,
	}
}

func (s *ExportService) Enabled() bool {
	return s.store != nil
}

// Export writes the current summary as JSON to object storage and returns
// the object key with a presigned download URL.
func (s *ExportService) Export(ctx context.Context) (*model.ExportResult, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}

	days, err := s.habitService.Summary(ctx)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now().UTC()
	snapshot := model.SummaryExport{
		GeneratedAt: generatedAt,
		Timezone:    s.habitService.Location().String(),
		Days:        days,
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}

	key := fmt.Sprintf("exports/summary-%s.json", generatedAt.Format(exportKeyLayout))
	err = s.store.Save(ctx, key, bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, fmt.Errorf("failed to store summary export: %w", err)
	}

	url, err := s.store.PresignedURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to presign summary export: %w", err)
	}

	slog.Info("summary exported", "key", key, "days", len(days))
	return &model.ExportResult{Key: key, URL: url}, nil
}
