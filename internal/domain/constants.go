package domain

// Типы сообщений сервера
const (
	ResponseUpdate     = "UPDATE"
	ResponsePrediction = "PREDICTION"
	ResponseError      = "ERROR"
)

// Типы записей игрового лога
const (
	LogInfo     = "INFO"
	LogCollapse = "COLLAPSE"
	LogCreature = "CREATURE"
	LogBite     = "BITE"
	LogError    = "ERROR"
	LogGameOver = "GAME_OVER"
	LogCleared  = "CLEARED"
)
