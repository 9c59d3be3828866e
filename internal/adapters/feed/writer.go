package feed

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/athebyme/googleshopping-feed/pkg/interfaces"
)

// fieldSanitizer заменяет пробелом табуляцию и перевод строки внутри
// значения поля. Значения никогда не заключаются в кавычки, остальные
// символы пишутся как есть.
var fieldSanitizer = strings.NewReplacer(
	"\t", " ",
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
)

// Writer пишет фид в формате TSV: одна строка заголовка и по одной
// строке на вариант, поля в фиксированном порядке, разделитель табуляция.
type Writer struct {
	out  *bufio.Writer
	rows int
}

// NewWriter создает писатель фида поверх произвольного io.Writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(w)}
}

// WriteHeader записывает строку заголовка фида
func (w *Writer) WriteHeader(columns []string) error {
	if err := w.writeLine(columns); err != nil {
		return fmt.Errorf("ошибка записи заголовка: %w", err)
	}
	return nil
}

// WriteRow записывает одну строку данных фида
func (w *Writer) WriteRow(values []string) error {
	if err := w.writeLine(values); err != nil {
		return fmt.Errorf("ошибка записи строки: %w", err)
	}
	w.rows++
	return nil
}

func (w *Writer) writeLine(values []string) error {
	for i, value := range values {
		if i > 0 {
			if err := w.out.WriteByte('\t'); err != nil {
				return err
			}
		}
		if _, err := fieldSanitizer.WriteString(w.out, value); err != nil {
			return err
		}
	}
	return w.out.WriteByte('\n')
}

// Flush сбрасывает буферы и возвращает первую накопленную ошибку записи
func (w *Writer) Flush() error {
	return w.out.Flush()
}

// Rows возвращает число записанных строк данных (без заголовка)
func (w *Writer) Rows() int {
	return w.rows
}

var _ interfaces.FeedWriterPort = (*Writer)(nil)
