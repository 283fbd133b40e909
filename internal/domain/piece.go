package domain

import (
	"fmt"
	"math"
)

// PieceID - стабильный идентификатор полена внутри кучи.
// Кодирует строку и столбец решетки на момент создания: "p_<row>_<col>".
type PieceID string

// MakePieceID собирает ID из координат решетки.
func MakePieceID(row, col int) PieceID {
	return PieceID(fmt.Sprintf("p_%d_%d", row, col))
}

// RowCol разбирает ID обратно в координаты решетки.
func (id PieceID) RowCol() (row, col int, ok bool) {
	if _, err := fmt.Sscanf(string(id), "p_%d_%d", &row, &col); err != nil {
		return 0, 0, false
	}
	return row, col, true
}

func (id PieceID) String() string {
	return string(id)
}

// Vec2 - точка или размер в единицах холста.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Piece - одно круглое полено.
//
// Pos - левый верхний угол ограничивающего квадрата, Size - его размеры.
// Физический круг вписан в квадрат. ID, Pos и Size не меняются после
// размещения: куча никогда не сдвигает поленья, только убирает их.
type Piece struct {
	ID  PieceID `json:"id"`
	Row int     `json:"row"` // 0 - нижний (земляной) ряд
	Col int     `json:"col"`

	Pos  Vec2 `json:"pos"`
	Size Vec2 `json:"size"`

	Removed bool `json:"removed"`

	Creature CreatureTag `json:"creature"`
	Material MaterialTag `json:"material"`
	Risk     RiskLevel   `json:"risk"`
}

// Center возвращает центр вписанного круга.
func (p *Piece) Center() Vec2 {
	return Vec2{X: p.Pos.X + p.Size.X/2, Y: p.Pos.Y + p.Size.Y/2}
}

// Radius - радиус вписанного круга.
func (p *Piece) Radius() float64 {
	return math.Min(p.Size.X, p.Size.Y) / 2
}

// Bottom - нижняя граница ограничивающего квадрата.
func (p *Piece) Bottom() float64 {
	return p.Pos.Y + p.Size.Y
}

// IsGround сообщает, лежит ли полено на земле. Земля держит всегда.
func (p *Piece) IsGround() bool {
	return p.Row == 0
}

// IsLive - полено еще в куче.
func (p *Piece) IsLive() bool {
	return !p.Removed
}

// HasCreature - под поленом кто-то прячется.
func (p *Piece) HasCreature() bool {
	return p.Creature != CreatureNone
}
