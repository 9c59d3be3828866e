package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/athebyme/googleshopping-feed/internal/adapters/feed"
	"github.com/athebyme/googleshopping-feed/internal/adapters/messaging"
	"github.com/athebyme/googleshopping-feed/internal/domain/models"
	"github.com/athebyme/googleshopping-feed/internal/utils"
	"github.com/athebyme/googleshopping-feed/pkg/interfaces"
	pkgutils "github.com/athebyme/googleshopping-feed/pkg/utils"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики для Prometheus
var (
	rowsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feed_export_rows_emitted_total",
		Help: "Общее количество выпущенных строк фида",
	})

	rowsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feed_export_rows_skipped_total",
		Help: "Общее количество вариантов без детальных данных",
	})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "feed_export_run_duration_seconds",
		Help:    "Длительность запуска экспорта",
		Buckets: prometheus.DefBuckets,
	})
)

// Статусы запуска экспорта
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// ExportRun описывает один запуск экспорта фида
type ExportRun struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt *time.Time  `json:"finished_at,omitempty"`
	Summary    *RunSummary `json:"summary,omitempty"`
	OutputFile string      `json:"output_file,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// ExportService организует запуски экспорта: собирает пакет вариантов из
// поискового индекса, создает движок генерации с собственными кэшами на
// запуск, пишет файл фида и публикует событие о результате. Одновременно
// допускается только один активный запуск на процесс.
type ExportService struct {
	index      VariationIndexPort
	catalog    AttributeCatalogPort
	selections PropertySelectionPort
	details    DetailDataPort
	helper     ExportHelperPort
	messaging  interfaces.MessagingPort
	logger     interfaces.LoggerPort
	outputDir  string
	eventTopic string

	mu      sync.Mutex
	running bool
	runs    map[string]*ExportRun
}

// NewExportService создает сервис экспорта
func NewExportService(
	index VariationIndexPort,
	catalog AttributeCatalogPort,
	selections PropertySelectionPort,
	details DetailDataPort,
	helper ExportHelperPort,
	messagingClient interfaces.MessagingPort,
	logger interfaces.LoggerPort,
	outputDir string,
	eventTopic string,
) *ExportService {
	return &ExportService{
		index:      index,
		catalog:    catalog,
		selections: selections,
		details:    details,
		helper:     helper,
		messaging:  messagingClient,
		logger:     logger,
		outputDir:  outputDir,
		eventTopic: eventTopic,
		runs:       make(map[string]*ExportRun),
	}
}

// Run выполняет один запуск экспорта синхронно и возвращает его итоги
func (s *ExportService) Run(ctx context.Context, settings *models.Settings, filter *models.DetailFilter) (*ExportRun, error) {
	run, err := s.begin()
	if err != nil {
		return nil, err
	}
	err = s.perform(ctx, run, settings, filter)
	return run, err
}

// Start запускает экспорт в фоне и сразу возвращает созданный запуск.
// Итоги доступны через GetRun по мере выполнения.
func (s *ExportService) Start(settings *models.Settings, filter *models.DetailFilter) (*ExportRun, error) {
	run, err := s.begin()
	if err != nil {
		return nil, err
	}

	// Контекст запроса не используется: запуск живет дольше запроса
	go func() {
		_ = s.perform(context.Background(), run, settings, filter)
	}()

	return run, nil
}

// begin регистрирует новый запуск; одновременно допускается только один
func (s *ExportService) begin() (*ExportRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil, utils.ErrExportAlreadyRunning
	}
	s.running = true

	run := &ExportRun{
		ID:        uuid.New().String(),
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	s.runs[run.ID] = run

	return run, nil
}

// perform выполняет зарегистрированный запуск до конца
func (s *ExportService) perform(ctx context.Context, run *ExportRun, settings *models.Settings, filter *models.DetailFilter) error {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	log := s.logger.WithRunID(run.ID)
	log.InfoWithContext(ctx, "Запуск экспорта фида",
		interfaces.LogField{Key: "lang", Value: settings.Lang()},
		interfaces.LogField{Key: "channel_id", Value: settings.ChannelID()},
	)

	summary, outputFile, err := s.execute(ctx, run.ID, settings, filter, log)

	now := time.Now().UTC()
	duration := now.Sub(run.StartedAt)
	runDuration.Observe(duration.Seconds())

	s.mu.Lock()
	run.FinishedAt = &now
	if err != nil {
		run.Status = RunStatusFailed
		run.Error = err.Error()
	} else {
		run.Status = RunStatusCompleted
		run.Summary = summary
		run.OutputFile = outputFile
	}
	s.mu.Unlock()

	if err != nil {
		log.ErrorWithContext(ctx, "Экспорт фида завершился с ошибкой",
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
		s.publishEvent(ctx, &messaging.ExportEvent{
			EventType:  messaging.FeedExportFailedEvent,
			RunID:      run.ID,
			DurationMs: duration.Milliseconds(),
			Error:      err.Error(),
		})
		return err
	}

	rowsEmitted.Add(float64(summary.Emitted))
	rowsSkipped.Add(float64(summary.Skipped))

	log.InfoWithContext(ctx, "Экспорт фида завершен",
		interfaces.LogField{Key: "total", Value: summary.Total},
		interfaces.LogField{Key: "emitted", Value: summary.Emitted},
		interfaces.LogField{Key: "skipped", Value: summary.Skipped},
		interfaces.LogField{Key: "output_file", Value: outputFile},
		interfaces.LogField{Key: "duration", Value: duration.String()},
	)

	s.publishEvent(ctx, &messaging.ExportEvent{
		EventType:  messaging.FeedExportCompletedEvent,
		RunID:      run.ID,
		Total:      summary.Total,
		Emitted:    summary.Emitted,
		Skipped:    summary.Skipped,
		DurationMs: duration.Milliseconds(),
		OutputFile: outputFile,
	})

	return nil
}

// execute собирает пакет, создает движок с кэшами на запуск и пишет файл
func (s *ExportService) execute(ctx context.Context, runID string, settings *models.Settings, filter *models.DetailFilter, log interfaces.LoggerPort) (*RunSummary, string, error) {
	batch, err := s.collectBatch(ctx, settings, filter)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка выборки вариантов из индекса: %w", err)
	}
	log.InfoWithContext(ctx, "Пакет вариантов собран",
		interfaces.LogField{Key: "count", Value: len(batch)},
	)

	outputFile := settings.Get(models.SettingOutputFileName)
	if outputFile == "" {
		outputFile = fmt.Sprintf("googleshopping-%s.csv", runID)
	}
	outputPath := filepath.Join(s.outputDir, outputFile)

	file, err := os.Create(outputPath)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка создания файла фида: %w", err)
	}
	defer file.Close()

	generator := NewFeedGenerator(
		s.helper,
		NewAttributeLinkCache(s.catalog, log),
		NewItemPropertyResolver(s.selections, log),
		NewDetailJoin(s.details),
		log,
	)

	summary, err := generator.Generate(ctx, batch, settings, filter, feed.NewWriter(file))
	if err != nil {
		return nil, "", err
	}

	return summary, outputPath, nil
}

// collectBatch постранично выбирает все варианты для экспорта
func (s *ExportService) collectBatch(ctx context.Context, settings *models.Settings, filter *models.DetailFilter) ([]*models.VariationRecord, error) {
	var batch []*models.VariationRecord

	err := pkgutils.WalkPages(ctx, pkgutils.DefaultPageSize,
		func(ctx context.Context, page, pageSize int) ([]*models.VariationRecord, error) {
			return s.index.ListVariations(ctx, settings, filter, page, pageSize)
		},
		func(variation *models.VariationRecord) error {
			batch = append(batch, variation)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	return batch, nil
}

// publishEvent публикует событие экспорта; ошибка публикации не влияет
// на итог запуска
func (s *ExportService) publishEvent(ctx context.Context, event *messaging.ExportEvent) {
	if s.messaging == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.ErrorWithContext(ctx, "Ошибка сериализации события экспорта",
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
		return
	}

	if err := s.messaging.PublishWithKey(ctx, s.eventTopic, event.RunID, payload); err != nil {
		s.logger.ErrorWithContext(ctx, "Ошибка публикации события экспорта",
			interfaces.LogField{Key: "error", Value: err.Error()},
			interfaces.LogField{Key: "topic", Value: s.eventTopic},
		)
	}
}

// GetRun возвращает запуск экспорта по идентификатору
func (s *ExportService) GetRun(runID string) (*ExportRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[runID]
	if !ok {
		return nil, utils.ErrExportRunNotFound
	}

	// Копия, чтобы вызывающий не наблюдал мутации выполняющегося запуска
	snapshot := *run
	return &snapshot, nil
}

// ListRuns возвращает все известные запуски экспорта
func (s *ExportService) ListRuns() []*ExportRun {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := make([]*ExportRun, 0, len(s.runs))
	for _, run := range s.runs {
		snapshot := *run
		runs = append(runs, &snapshot)
	}
	return runs
}
