package siigo

import (
	"errors"
	"fmt"
)

var (
	ErrMissingToken      = errors.New("auth response has no access_token")
	ErrUnexpectedPayload = errors.New("unexpected response payload")

	// ErrInvalidRequest запрос не удалось собрать: тело не сериализуется в JSON
	// или неверны метод и путь. До Siigo такой запрос не доходит.
	ErrInvalidRequest = errors.New("invalid siigo request")
)

// AuthenticationError не удалось получить токен: неверные учетные данные,
// сетевая ошибка или некорректный ответ /auth.
type AuthenticationError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthenticationError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("siigo authentication failed (%d): %s", e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("siigo authentication failed: %v", e.Err)
	default:
		return "siigo authentication failed"
	}
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// TransportError запрос не был выполнен: соединение, DNS, обрыв чтения тела
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("siigo transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError ответ вне диапазона [200,300)
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("siigo API (%d): %s", e.StatusCode, e.Body)
}

// IsNotFound удобная проверка для 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
