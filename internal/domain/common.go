package domain

// TradeStatus represents the lifecycle state of a journaled trade.
type TradeStatus string

const (
	StatusOpen   TradeStatus = "open"
	StatusClosed TradeStatus = "closed"
)

// ProfitLevel identifies the predefined price level a trade is closed at.
type ProfitLevel string

const (
	LevelOB1 ProfitLevel = "OB1"
	LevelOB2 ProfitLevel = "OB2"
	LevelOB3 ProfitLevel = "OB3"
	LevelSL  ProfitLevel = "SL"
)

// Valid reports whether the level is one of the recognized close levels.
func (l ProfitLevel) Valid() bool {
	switch l {
	case LevelOB1, LevelOB2, LevelOB3, LevelSL:
		return true
	}
	return false
}

// Multiplier returns the fluctuation multiple of a profit target (1, 2 or 3).
// It is 0 for SL and for unrecognized levels.
func (l ProfitLevel) Multiplier() int {
	switch l {
	case LevelOB1:
		return 1
	case LevelOB2:
		return 2
	case LevelOB3:
		return 3
	}
	return 0
}

// UDRDelta returns the risk units won or lost when closing at this level:
// +1/+2/+3 for OB1/OB2/OB3 and -1 for SL.
func (l ProfitLevel) UDRDelta() int {
	if l == LevelSL {
		return -1
	}
	return l.Multiplier()
}
