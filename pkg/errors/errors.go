package errors

import (
	"fmt"
	"net/http"
)

// Типизированные ошибки конфигурации синхронизации.
// Все четыре фатальны для текущего вызова оркестратора: без учётных данных
// ни один класс сущностей синхронизировать нельзя. ErrMissingUserToken
// выделена отдельно — partner-токена достаточно для staff/services,
// но не для записей (особенность API yClients).
var (
	ErrBranchNotFound      = fmt.Errorf("филиал не найден")
	ErrMissingCompanyID    = fmt.Errorf("yClients company ID не настроен для филиала")
	ErrMissingPartnerToken = fmt.Errorf("интеграция с yClients не настроена: добавьте Partner Token")
	ErrMissingUserToken    = fmt.Errorf("для синхронизации записей требуется User Token: добавьте его в настройках интеграции")

	ErrNotFound = fmt.Errorf("запись не найдена")
)

// HttpError — ошибка уровня HTTP с пользовательским сообщением и причиной.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Context: context,
	}
}

// HTTPStatus возвращает код ответа для ошибок предусловий синхронизации.
func HTTPStatus(err error) int {
	switch err {
	case ErrBranchNotFound:
		return http.StatusNotFound
	case ErrMissingCompanyID, ErrMissingPartnerToken, ErrMissingUserToken:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	}
	if httpErr, ok := err.(*HttpError); ok {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}
