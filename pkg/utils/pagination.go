package utils

import "context"

// DefaultPageSize задает размер страницы при постраничном обходе внешних каталогов
const DefaultPageSize = 50

// Pagination представляет модель для пагинации запросов к хранилищу
type Pagination struct {
	Page     int `json:"page"`      // Номер страницы (начиная с 1)
	PageSize int `json:"page_size"` // Размер страницы
}

// NewPagination создает новый экземпляр Pagination с заданными параметрами
func NewPagination(page, pageSize int) *Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// GetOffset возвращает смещение для SQL запроса
func (p *Pagination) GetOffset() int {
	return (p.Page - 1) * p.PageSize
}

// GetLimit возвращает лимит для SQL запроса
func (p *Pagination) GetLimit() int {
	return p.PageSize
}

// PageFetcher возвращает элементы одной страницы каталога.
// Номера страниц начинаются с 1.
type PageFetcher[T any] func(ctx context.Context, page, pageSize int) ([]T, error)

// WalkPages последовательно обходит страницы каталога и вызывает visit для
// каждого элемента. Обход завершается, когда страница пуста или короче
// запрошенного размера: условие окончания привязано к самой странице,
// а не к отдельно отслеживаемому счетчику.
func WalkPages[T any](ctx context.Context, pageSize int, fetch PageFetcher[T], visit func(T) error) error {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		items, err := fetch(ctx, page, pageSize)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		for _, item := range items {
			if err := visit(item); err != nil {
				return err
			}
		}

		// Неполная страница означает конец каталога
		if len(items) < pageSize {
			return nil
		}
	}
}
