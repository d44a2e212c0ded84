package game

// resolveWinners maps revealed moves to the winning move value and the
// players who picked it, in join order. With exactly two distinct moves on
// the table the classic dominance rule decides; everyone matching one move,
// or all three moves present, is a draw.
func resolveWinners(players []PlayerID, moves []Move) (Move, []PlayerID) {
	var hasRock, hasPaper, hasScissors bool
	for _, m := range moves {
		switch m {
		case MoveRock:
			hasRock = true
		case MovePaper:
			hasPaper = true
		case MoveScissors:
			hasScissors = true
		}
	}

	distinct := 0
	for _, present := range []bool{hasRock, hasPaper, hasScissors} {
		if present {
			distinct++
		}
	}
	if distinct != 2 {
		return MoveNone, nil
	}

	var winning Move
	switch {
	case hasRock && hasPaper:
		winning = MovePaper
	case hasPaper && hasScissors:
		winning = MoveScissors
	default: // rock and scissors
		winning = MoveRock
	}

	var winners []PlayerID
	for i, m := range moves {
		if m == winning {
			winners = append(winners, players[i])
		}
	}
	return winning, winners
}

// winningMove recovers the winning move value of a revealed game, MoveNone
// for a draw.
func winningMove(g *Game) Move {
	if len(g.Winners) == 0 {
		return MoveNone
	}
	for i, p := range g.Players {
		if p == g.Winners[0] {
			return g.RevealedMoves[i]
		}
	}
	return MoveNone
}
