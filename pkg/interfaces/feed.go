package interfaces

// FeedWriterPort определяет интерфейс записи строк фида.
// Реализация отвечает за экранирование и разделители формата.
type FeedWriterPort interface {
	// WriteHeader записывает строку заголовка фида
	WriteHeader(columns []string) error

	// WriteRow записывает одну строку данных фида
	WriteRow(values []string) error

	// Flush сбрасывает буферы и возвращает первую накопленную ошибку записи
	Flush() error
}
