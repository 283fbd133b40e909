package domain

import "errors"

// Ошибки правил. Не фатальны: клиент получает их как ERROR-лог.
var (
	ErrPieceNotFound   = errors.New("piece not found or already removed")
	ErrGameNotActive   = errors.New("game is not accepting picks")
	ErrEncounterActive = errors.New("a creature encounter is in progress")
	ErrNoEncounter     = errors.New("no creature encounter in progress")
	ErrLevelNotCleared = errors.New("level is not cleared yet")
)
