package services

import (
	"errors"
	"fmt"
)

// Категории ошибок; хендлеры различают их через errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
	ErrShare      = errors.New("share error")
)

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func notFoundErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

func shareErr(channel string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrShare, channel, err)
}

// ShareResult: итог побочного шеринга в один канал. Оркестратор его только логирует.
type ShareResult struct {
	Channel   string `json:"channel"`
	Attempted bool   `json:"attempted"`
	OK        bool   `json:"ok"`
	Err       error  `json:"-"`
}
