package domain

// Pile - упорядоченная коллекция поленьев.
//
// Поленья никогда не удаляются из среза: снятие полена - это только
// Removed = true. Так ID остаются стабильными, а порядок обхода
// детерминированным (важно для тестов и для рендеринга).
type Pile struct {
	Pieces []*Piece `json:"pieces"`

	CellW   float64 `json:"cellW"`
	CellH   float64 `json:"cellH"`
	GroundY float64 `json:"groundY"` // верх земляного ряда
	Rows    int     `json:"rows"`
	Cols    int     `json:"cols"`

	index map[PieceID]int
}

// NewPile создает пустую кучу с заданной решеткой.
func NewPile(cellW, cellH, groundY float64) *Pile {
	return &Pile{
		Pieces:  make([]*Piece, 0),
		CellW:   cellW,
		CellH:   cellH,
		GroundY: groundY,
		index:   make(map[PieceID]int),
	}
}

// Add добавляет полено в конец кучи. Повторный ID заменяет индекс на новое полено.
func (p *Pile) Add(piece *Piece) {
	if len(p.index) != len(p.Pieces) {
		p.reindex()
	}
	p.index[piece.ID] = len(p.Pieces)
	p.Pieces = append(p.Pieces, piece)

	if piece.Row+1 > p.Rows {
		p.Rows = piece.Row + 1
	}
	if piece.Col+1 > p.Cols {
		p.Cols = piece.Col + 1
	}
}

// Get ищет полено по ID (включая снятые). nil, если такого нет.
// Индекс не меняется: куча, собранная литералом, ищется перебором,
// поэтому чтение безопасно для конкурентных читателей.
func (p *Pile) Get(id PieceID) *Piece {
	if p == nil {
		return nil
	}
	if len(p.index) == len(p.Pieces) {
		if i, ok := p.index[id]; ok && p.Pieces[i].ID == id {
			return p.Pieces[i]
		}
	}
	// Индекс устарел (Pieces менялся мимо Add): последний с таким ID побеждает
	for i := len(p.Pieces) - 1; i >= 0; i-- {
		if p.Pieces[i].ID == id {
			return p.Pieces[i]
		}
	}
	return nil
}

// Contains проверяет, что именно это полено (а не однофамилец) лежит в куче.
func (p *Pile) Contains(piece *Piece) bool {
	return piece != nil && p.Get(piece.ID) == piece
}

// Live возвращает живые поленья в порядке кучи.
func (p *Pile) Live() []*Piece {
	if p == nil {
		return nil
	}
	live := make([]*Piece, 0, len(p.Pieces))
	for _, piece := range p.Pieces {
		if !piece.Removed {
			live = append(live, piece)
		}
	}
	return live
}

// LiveCount - количество поленьев, оставшихся в куче.
func (p *Pile) LiveCount() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, piece := range p.Pieces {
		if !piece.Removed {
			n++
		}
	}
	return n
}

// Len - общее количество поленьев, включая снятые.
func (p *Pile) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Pieces)
}

// Row возвращает поленья одного ряда решетки в порядке кучи.
func (p *Pile) Row(row int) []*Piece {
	var out []*Piece
	for _, piece := range p.Pieces {
		if piece.Row == row {
			out = append(out, piece)
		}
	}
	return out
}

func (p *Pile) reindex() {
	p.index = make(map[PieceID]int, len(p.Pieces))
	for i, piece := range p.Pieces {
		p.index[piece.ID] = i
	}
}
