package yclients

import "fmt"

// APIError — транспортный сбой: не-2xx ответ платформы.
// Статус и тело сохраняются для диагностики.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yClients %s API error: %d - %s", e.Endpoint, e.StatusCode, e.Body)
}

// RejectedError — платформа ответила 2xx, но с явным success:false.
type RejectedError struct {
	Endpoint string
	Message  string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("yClients %s API error: success=false - %s", e.Endpoint, e.Message)
}

// PermissionDeniedError — 403 на эндпоинте записей. Почти всегда это
// значит, что User Token не имеет прав на просмотр записей, поэтому
// сообщение дополняется инструкцией для пользователя.
type PermissionDeniedError struct {
	StatusCode int
	Body       string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf(
		"yClients records API error: %d - %s. "+
			"Скорее всего, User Token не имеет прав на просмотр записей для этой компании. "+
			"Проверьте в YClients права пользователя (раздел \"Пользователи\" → \"Права доступа\" → доступ к расписанию/API) "+
			"или сгенерируйте User Token для пользователя с полными правами.",
		e.StatusCode, e.Body,
	)
}
