package services

import "time"

// Горизонт синхронизации записей: фиксированные ±30 дней от момента
// вызова. Не настраивается — расширение горизонта это продуктовое
// решение, а не конфигурация.
const bookingSyncHorizon = 30 * 24 * time.Hour

type syncWindow struct {
	From time.Time
	To   time.Time
}

func newSyncWindow(now time.Time) syncWindow {
	return syncWindow{
		From: now.Add(-bookingSyncHorizon),
		To:   now.Add(bookingSyncHorizon),
	}
}

func (w syncWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}
