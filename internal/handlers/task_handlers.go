package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/view"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService TaskService
}

func NewTaskHandler(taskService TaskService) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
	}
}

func (s *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	query := r.URL.Query().Get("query")

	mode := view.SortMode(r.URL.Query().Get("sort"))
	if mode == "" {
		mode = view.SortCreatedAt
	}
	if !mode.Valid() {
		logger.Warn("HTTP: Неверное значение параметра",
			zap.String("query", "sort"),
			zap.String("received", string(mode)),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное значение sort")
		return
	}

	tasks := s.TaskService.List(query, mode)

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("tasks", dto.FromTaskList(tasks)))
}

func (s *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	if request.Title == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "title"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "название не может быть пустым")
		return
	}

	if request.Priority != "" && !request.Priority.Valid() {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "priority"),
			zap.String("error", "wrong_value"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное значение priority")
		return
	}

	created, err := s.TaskService.CreateTask(r.Context(), request.Title,
		task.WithDescription(request.Description),
		task.WithPriority(request.Priority),
		task.WithDeadline(request.Deadline),
		task.WithNotes(request.Notes),
	)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "create_task"),
			zap.Duration("ms", time.Since(start)))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.Int64("task_id", created.ID),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusCreated, toPayload("task", dto.FromTask(created)))
}

func (s *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	var updated task.Task
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	if updated.Title == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "title"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "название не может быть пустым")
		return
	}

	// id из пути главнее id из тела
	updated.ID = id

	result := s.TaskService.UpdateTask(r.Context(), &updated)
	if result == nil {
		// Устаревший id - это no-op, не ошибка
		logger.Info("HTTP_OUT: Задача не найдена, обновление пропущено",
			zap.Int64("task_id", id),
			zap.Duration("ms", time.Since(start)))
		responseWithJSON(w, http.StatusOK, toPayload("updated", false))
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.Int64("task_id", id),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK,
		toPayload("updated", true),
		toPayload("task", dto.FromTask(result)),
	)
}

func (s *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	if !isConfirmed(r) {
		responseConfirmRequired(w, "удаление задачи требует подтверждения: повторите с confirm=true")
		return
	}

	s.TaskService.DeleteTask(r.Context(), id)

	logger.Info("HTTP_OUT: Задача удалена",
		zap.Int64("task_id", id),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("deleted", true))
}

func (s *TaskHandler) ToggleAll(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	s.TaskService.ToggleAllCompleted(r.Context())

	logger.Info("HTTP_OUT: Массовое переключение выполнено",
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("toggled", true))
}

func (s *TaskHandler) DeleteCompleted(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !isConfirmed(r) {
		responseConfirmRequired(w, "массовое удаление требует подтверждения: повторите с confirm=true")
		return
	}

	removed := s.TaskService.DeleteCompleted(r.Context())

	logger.Info("HTTP_OUT: Завершённые задачи удалены",
		zap.Int("removed", removed),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("removed", removed))
}

func (s *TaskHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	if request.From == nil || request.To == nil {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "from/to"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "поля from и to обязательны")
		return
	}

	if err := s.TaskService.MoveTask(r.Context(), *request.From, *request.To); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Задача перемещена",
		zap.Int("from", *request.From),
		zap.Int("to", *request.To),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("moved", true))
}

func (s *TaskHandler) StepTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	var request dto.StepRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	if request.Direction != "up" && request.Direction != "down" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "direction"),
			zap.String("error", "wrong_value"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "direction должен быть up или down")
		return
	}

	if err := s.TaskService.MoveTaskStep(r.Context(), id, request.Direction == "up"); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Задача сдвинута",
		zap.Int64("task_id", id),
		zap.String("direction", request.Direction),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("moved", true))
}

func (s *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if !s.TaskService.HealthCheck(r.Context()) {
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "degraded"),
			toPayload("storage", "unavailable"),
		)
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("status", "ok"))
}

func parseTaskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		logger.Warn("HTTP: Ошибка получения параметра",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "не удалось получить значение id: "+err.Error())
		return 0, false
	}
	return id, true
}

func isConfirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}
