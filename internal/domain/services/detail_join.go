package services

import (
	"context"
	"fmt"

	"github.com/athebyme/googleshopping-feed/internal/domain/models"
)

// DetailJoin индексирует записи вторичного слоя данных по ID варианта.
// Порядок выдачи коллаборатора при этом не важен.
type DetailJoin struct {
	port DetailDataPort

	records map[int64]*models.DetailRecord
}

// NewDetailJoin создает новое соединение с детальными данными
func NewDetailJoin(port DetailDataPort) *DetailJoin {
	return &DetailJoin{
		port:    port,
		records: make(map[int64]*models.DetailRecord),
	}
}

// Build выполняет один пакетный запрос за детальными данными для всего
// набора идентификаторов и строит индекс по ID варианта. Пустой набор
// или пустой ответ дают пустой индекс, это не ошибка, движок просто
// не выпустит ни одной строки.
func (j *DetailJoin) Build(ctx context.Context, variationIDs []int64, settings *models.Settings, filter *models.DetailFilter) error {
	if len(variationIDs) == 0 {
		return nil
	}

	details, err := j.port.GetDetails(ctx, variationIDs, settings, filter)
	if err != nil {
		return fmt.Errorf("ошибка выборки детальных данных: %w", err)
	}

	for _, detail := range details {
		if detail == nil {
			continue
		}
		j.records[detail.VariationID] = detail
	}

	return nil
}

// Get возвращает детальную запись варианта и признак ее наличия
func (j *DetailJoin) Get(variationID int64) (*models.DetailRecord, bool) {
	record, ok := j.records[variationID]
	return record, ok
}

// Len возвращает количество проиндексированных записей
func (j *DetailJoin) Len() int {
	return len(j.records)
}
