package utils

import (
	"hash/fnv"

	"github.com/google/uuid"
)

// GenerateID создает уникальный ID сессии или записи лога.
func GenerateID() string {
	return uuid.NewString()
}

// StringToSeed превращает строку (имя игрока, "daily-2025-12-04") в детерминированный seed.
// Нулевой seed зарезервирован под "случайный", поэтому хэш 0 сдвигается в 1.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	seed := int64(h.Sum64() &^ (1 << 63))
	if seed == 0 {
		return 1
	}
	return seed
}
