package notify

import (
	"context"
	"sync"

	"taskBoard/internal/logger"

	"go.uber.org/zap"
)

// ConsoleMedium - штатная реализация: пишет уведомления структурным
// логом. Настольного канала в поставке нет, интерфейс Medium - точка
// расширения под него.
type ConsoleMedium struct {
	mtx        sync.Mutex
	permission Permission
}

func NewConsoleMedium() *ConsoleMedium {
	return &ConsoleMedium{permission: PermissionDefault}
}

func (m *ConsoleMedium) Supported() bool {
	return true
}

func (m *ConsoleMedium) Permission() Permission {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return m.permission
}

func (m *ConsoleMedium) RequestPermission(ctx context.Context) (Permission, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	// Локальному носителю не у кого спрашивать - выдаём разрешение.
	if m.permission == PermissionDefault {
		m.permission = PermissionGranted
		logger.Info("Notify: Разрешение на уведомления выдано")
	}
	return m.permission, nil
}

func (m *ConsoleMedium) Send(ctx context.Context, alert Alert) error {
	fields := []zap.Field{
		zap.String("title", alert.Title),
		zap.String("body", alert.Body),
		zap.String("tag", alert.Tag),
		zap.Bool("urgent", alert.RequireInteraction),
	}
	if len(alert.Vibration) > 0 {
		fields = append(fields, zap.Ints("vibration", alert.Vibration))
	}
	logger.Info("Notify: Уведомление", fields...)
	return nil
}
