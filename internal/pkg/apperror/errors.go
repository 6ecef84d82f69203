package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrCodeConflict      ErrorCode = "CONFLICT"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

// AppError - ошибка приложения с кодом, который однозначно отображается в HTTP статус.
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду и сообщению, чтобы errors.Is работал
// и для копий сентинелов, и для обернутых ошибок.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation, Forbidden, NotFound и Conflict - короткие конструкторы для таксономии движка.
func Validation(message string) *AppError { return New(ErrCodeValidation, message) }
func Forbidden(message string) *AppError  { return New(ErrCodeForbidden, message) }
func NotFound(message string) *AppError   { return New(ErrCodeNotFound, message) }
func Conflict(message string) *AppError   { return New(ErrCodeConflict, message) }

// Database оборачивает ошибку хранилища.
func Database(err error, message string) *AppError {
	return Wrap(err, ErrCodeDatabaseError, message)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки или ErrCodeInternal для сторонних ошибок.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	return CodeOf(err) == ErrCodeForbidden
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

func IsConflict(err error) bool {
	return CodeOf(err) == ErrCodeConflict
}

func IsUnauthorized(err error) bool {
	return CodeOf(err) == ErrCodeUnauthorized
}

var (
	ErrProfileNotFound = NotFound("профиль не найден")
	ErrProjectNotFound = NotFound("проект не найден")
	ErrBidNotFound     = NotFound("ставка не найдена")
	ErrOrderNotFound   = NotFound("заказ не найден")

	ErrUnauthorized       = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrInvalidCredentials = New(ErrCodeUnauthorized, "неверные учетные данные")
	ErrInvalidToken       = New(ErrCodeUnauthorized, "недействительный или просроченный токен")
	ErrForbidden          = Forbidden("недостаточно прав")
	ErrRoleRequired       = Forbidden("требуется роль")
	ErrNotProjectOwner    = Forbidden("проект принадлежит другому заказчику")
	ErrNotBidOwner        = Forbidden("ставка принадлежит другому фрилансеру")
	ErrNotOrderParty      = Forbidden("вы не участник заказа")

	ErrProjectNotAcceptingBids = Conflict("проект не принимает ставки")
	ErrDuplicateBid            = Conflict("ставка на этот проект уже подана")
	ErrBidNotPending           = Conflict("ставка уже не ожидает решения")
	ErrBidNotAcceptable        = Conflict("ставку нельзя принять")
	ErrProjectNotOpen          = Conflict("проект не открыт")
	ErrProjectAlreadyAccepted  = Conflict("по проекту уже принята ставка")
	ErrStatusConflict          = Conflict("статус изменен параллельным запросом")
	ErrInvalidTransition       = Conflict("переход статуса недопустим")
	ErrEmailTaken              = Conflict("email уже зарегистрирован")
)
