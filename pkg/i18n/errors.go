package i18n

import "errors"

var (
	ErrEmptyLanguage       = errors.New("i18n: language cannot be empty")
	ErrUnsupportedLanguage = errors.New("i18n: unsupported language")
	ErrInvalidResource     = errors.New("i18n: invalid translation resource")
)
