package handlers

import (
	"errors"
	"net/http"

	"github.com/athebyme/googleshopping-feed/internal/domain/models"
	"github.com/athebyme/googleshopping-feed/internal/domain/services"
	"github.com/athebyme/googleshopping-feed/internal/utils"
	"github.com/athebyme/googleshopping-feed/pkg/interfaces"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// ExportHandler обработчик запросов управления экспортом фида
type ExportHandler struct {
	exportService *services.ExportService
	defaults      map[string]string
	logger        interfaces.LoggerPort
}

// NewExportHandler создает новый обработчик экспорта.
// defaults содержит настройки запуска по умолчанию из конфигурации; значения
// из тела запроса имеют приоритет.
func NewExportHandler(exportService *services.ExportService, defaults map[string]string, logger interfaces.LoggerPort) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		defaults:      defaults,
		logger:        logger,
	}
}

// errorResponse представляет структуру ответа с ошибкой
type errorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// response представляет структуру успешного ответа
type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// startExportRequest тело запроса на запуск экспорта
type startExportRequest struct {
	Settings map[string]string    `json:"settings,omitempty"`
	Filter   *models.DetailFilter `json:"filter,omitempty"`
}

// StartExport обрабатывает запрос на запуск экспорта фида
func (h *ExportHandler) StartExport(w http.ResponseWriter, r *http.Request) {
	var req startExportRequest
	if r.ContentLength > 0 {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errorResponse{
				Error:   "bad_request",
				Code:    http.StatusBadRequest,
				Message: "Некорректное тело запроса",
			})
			return
		}
	}

	values := make(map[string]string, len(h.defaults)+len(req.Settings))
	for k, v := range h.defaults {
		values[k] = v
	}
	for k, v := range req.Settings {
		values[k] = v
	}

	run, err := h.exportService.Start(models.NewSettings(values), req.Filter)
	if err != nil {
		if errors.Is(err, utils.ErrExportAlreadyRunning) {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, errorResponse{
				Error:   "conflict",
				Code:    http.StatusConflict,
				Message: "Экспорт уже выполняется",
			})
			return
		}

		h.logger.ErrorWithContext(r.Context(), "Ошибка запуска экспорта",
			interfaces.LogField{Key: "error", Value: err.Error()})
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{
			Error:   "internal_error",
			Code:    http.StatusInternalServerError,
			Message: "Ошибка запуска экспорта",
		})
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, response{
		Success: true,
		Data:    run,
	})
}

// GetExport обрабатывает запрос на получение запуска экспорта по ID
func (h *ExportHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "bad_request",
			Code:    http.StatusBadRequest,
			Message: "ID запуска не указан",
		})
		return
	}

	run, err := h.exportService.GetRun(runID)
	if err != nil {
		if errors.Is(err, utils.ErrExportRunNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, errorResponse{
				Error:   "not_found",
				Code:    http.StatusNotFound,
				Message: "Запуск экспорта не найден",
			})
			return
		}

		h.logger.ErrorWithContext(r.Context(), "Ошибка получения запуска экспорта",
			interfaces.LogField{Key: "error", Value: err.Error()})
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{
			Error:   "internal_error",
			Code:    http.StatusInternalServerError,
			Message: "Ошибка получения запуска экспорта",
		})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data:    run,
	})
}

// ListExports обрабатывает запрос на получение списка запусков экспорта
func (h *ExportHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	runs := h.exportService.ListRuns()

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data:    runs,
		Meta:    map[string]int{"total": len(runs)},
	})
}
