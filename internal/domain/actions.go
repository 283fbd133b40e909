package domain

import "strings"

// ActionType - внутренний числовой идентификатор действия игрока.
// Значения пишутся в реплей одним байтом, поэтому порядок менять нельзя.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionPick
	ActionHover
	ActionReact
	ActionExpire // внутреннее: истек таймер встречи
	ActionNextLevel
	ActionRestart
	ActionLogin
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":       ActionInit,
	"PICK":       ActionPick,
	"HOVER":      ActionHover,
	"REACT":      ActionReact,
	"EXPIRE":     ActionExpire,
	"NEXT_LEVEL": ActionNextLevel,
	"RESTART":    ActionRestart,
	"LOGIN":      ActionLogin,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:      "INIT",
	ActionPick:      "PICK",
	ActionHover:     "HOVER",
	ActionReact:     "REACT",
	ActionExpire:    "EXPIRE",
	ActionNextLevel: "NEXT_LEVEL",
	ActionRestart:   "RESTART",
	ActionLogin:     "LOGIN",
}

// ParseAction конвертирует строку из JSON в ActionType (без учета регистра).
func ParseAction(s string) ActionType {
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для логов)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsRecorded - меняет ли действие состояние партии (и значит попадает в реплей).
func (a ActionType) IsRecorded() bool {
	switch a {
	case ActionPick, ActionReact, ActionExpire, ActionNextLevel, ActionRestart:
		return true
	}
	return false
}

// IsClientAction - может ли действие прийти от клиента. EXPIRE шлет только таймер.
func (a ActionType) IsClientAction() bool {
	return a != ActionUnknown && a != ActionExpire
}
