package worker

import (
	"fmt"
	"time"

	"taskBoard/internal/notify"
)

type Tier string

const TierNone Tier = ""
const TierNow Tier = "now"
const TierHour Tier = "hour"
const TierDay Tier = "day"
const TierWeek Tier = "week"

const alertIcon = "/icons/icon-192.png"

// ClassifyRemaining относит остаток времени максимум к одному ярусу.
// Порядок проверок важен: первый совпавший выигрывает.
func ClassifyRemaining(remaining time.Duration) Tier {
	switch {
	case remaining > -time.Hour && remaining <= 0:
		return TierNow
	case remaining > 0 && remaining <= time.Hour:
		return TierHour
	case remaining > time.Hour && remaining <= 24*time.Hour:
		return TierDay
	case remaining > 24*time.Hour && remaining <= 7*24*time.Hour:
		return TierWeek
	default:
		return TierNone
	}
}

// Alert собирает уведомление яруса для конкретной задачи. Каждый ярус -
// своё сообщение и срочность, у hour и now - ещё и вибрация.
func (tier Tier) Alert(taskID int64, title string) notify.Alert {
	alert := notify.Alert{
		Icon: alertIcon,
		Tag:  fmt.Sprintf("deadline-%s-%d", tier, taskID),
	}

	switch tier {
	case TierNow:
		alert.Title = "Срок истёк!"
		alert.Body = fmt.Sprintf("Время на задачу «%s» вышло", title)
		alert.RequireInteraction = true
		alert.Vibration = []int{300, 100, 300, 100, 300}
	case TierHour:
		alert.Title = "Остался один час"
		alert.Body = fmt.Sprintf("Задачу «%s» нужно закончить в течение часа", title)
		alert.RequireInteraction = true
		alert.Vibration = []int{200, 100, 200}
	case TierDay:
		alert.Title = "Дедлайн уже завтра"
		alert.Body = fmt.Sprintf("Задачу «%s» нужно закончить в течение суток", title)
	case TierWeek:
		alert.Title = "Дедлайн приближается"
		alert.Body = fmt.Sprintf("Задачу «%s» нужно закончить в течение недели", title)
	}

	return alert
}
