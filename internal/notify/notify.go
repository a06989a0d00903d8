package notify

import "context"

type Permission string

const PermissionDefault Permission = "default"
const PermissionGranted Permission = "granted"
const PermissionDenied Permission = "denied"

// Alert повторяет форму браузерного Notification: tag - ключ
// дедупликации на стороне носителя, у нас он дублируется явным
// fired-набором воркера и нужен только для сообщения.
type Alert struct {
	Title              string
	Body               string
	Icon               string
	Tag                string
	RequireInteraction bool
	Vibration          []int
}

// Medium - канал доставки уведомлений с рукопожатием разрешения.
type Medium interface {
	Supported() bool
	Permission() Permission
	RequestPermission(ctx context.Context) (Permission, error)
	Send(ctx context.Context, alert Alert) error
}

// Capabilities прячет все проверки платформы в одном месте,
// остальной код воркера платформу не знает.
type Capabilities interface {
	SupportsNotifications() bool
	IsRestrictedPlatform() bool
}

type PlatformCaps struct {
	Notifications bool
	Restricted    bool
}

func (c PlatformCaps) SupportsNotifications() bool {
	return c.Notifications
}

func (c PlatformCaps) IsRestrictedPlatform() bool {
	return c.Restricted
}
