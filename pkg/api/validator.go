package api

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxNameLength - ограничение на имя игрока в таблице рекордов.
const MaxNameLength = 32

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p LoginPayload) Validate() error {
	if utf8.RuneCountInString(p.Name) > MaxNameLength {
		return errors.New("name is too long")
	}
	if strings.ContainsAny(p.Name, "\n\r\t") {
		return errors.New("name contains control characters")
	}
	return nil
}

func (p PiecePayload) Validate() error {
	if p.PieceID == "" {
		return errors.New("pieceId is required")
	}
	if !strings.HasPrefix(p.PieceID, "p_") {
		return errors.New("pieceId is malformed")
	}
	return nil
}
