package models

import "errors"

// Ошибки доменного уровня. HTTP-слой сопоставляет их со статусами ответа.
var (
	ErrUnauthorized     = errors.New("missing or invalid authorization header")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token expired")
	ErrForbidden        = errors.New("forbidden access")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrRejectedPlan     = errors.New("invalid subscription period")
	ErrBadRequest       = errors.New("bad request")
	ErrPaymentProvider  = errors.New("payment provider error")
	ErrStoreUnavailable = errors.New("store unavailable")
)
