package handlers

import (
	"net/http"
	"time"

	"taskBoard/internal/logger"

	"go.uber.org/zap"
)

type NotificationHandler struct {
	Notifications NotificationService
}

func NewNotificationHandler(notifications NotificationService) NotificationHandler {
	return NotificationHandler{
		Notifications: notifications,
	}
}

func (s *NotificationHandler) GetState(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	responseWithJSON(w, http.StatusOK,
		toPayload("supported", s.Notifications.Supported()),
		toPayload("permission", s.Notifications.Permission()),
		toPayload("dismissed", s.Notifications.Dismissed()),
	)
}

func (s *NotificationHandler) RequestPermission(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !s.Notifications.Supported() {
		responseWithError(w, http.StatusNotImplemented, "уведомления не поддерживаются на этой платформе")
		return
	}

	permission, err := s.Notifications.RequestPermission(r.Context())
	if err != nil {
		logger.Error("HTTP: Ошибка запроса разрешения", err,
			zap.Duration("ms", time.Since(start)))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Запрос разрешения выполнен",
		zap.String("permission", string(permission)),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("permission", permission))
}

func (s *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	s.Notifications.Dismiss(r.Context())

	logger.Info("HTTP_OUT: Промпт уведомлений отклонён")
	responseWithJSON(w, http.StatusOK, toPayload("dismissed", true))
}
