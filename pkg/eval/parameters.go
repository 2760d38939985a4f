package eval

// Tapered-evaluation parameters, ported piece-for-piece from the reference tuner's
// trained weights. Index order throughout matches board.Piece.Kind()-1 (Pawn=0 ..
// Wall=17).

const (
	edgeDistance      = 2
	EdgeParameterCount = edgeDistance * (edgeDistance + 3) / 2
	endgameThreshold  = 32

	pawnScaleFactor  = 89
	pawnScalingBonus = -21

	tempoBonus = 10
)

// edgeIndexing maps (min(row-distance-from-edge, 2), min(col-distance-from-edge, 2))
// to one of 6 buckets (0..5); the one entry >= EdgeParameterCount, bucket 5 (the
// interior), has no edge-avoidance column and gets no penalty, matching the
// reference's INDEXING table used for its 3x3 corner/edge/center classification.
var edgeIndexing = [9]int{0, 1, 2, 1, 3, 4, 2, 4, 5}

// pieceValuesMG/EG are (middlegame, endgame) material values in centipawns.
var pieceValuesMG = [18]int32{67, 323, 360, 489, 1024, -195, 832, 979, 253, 179, 169, 560, 503, 575, 1432, 653, 1, 44}
var pieceValuesEG = [18]int32{144, 297, 263, 481, 998, 887, 965, 1117, 195, 167, 299, 313, 973, 1026, 1644, 633, 25, 110}

var mgEdgeAvoidance = [18][EdgeParameterCount]int32{
	{-7, 16, 29, -10, 0},
	{43, 47, 38, 30, 13},
	{53, 45, 25, -7, -5},
	{36, 34, 4, 7, 5},
	{19, 13, 4, 18, -3},
	{-165, -151, -91, -25, -25},
	{65, 17, 14, 16, 0},
	{9, 13, 5, 62, -8},
	{42, 89, 52, 62, 41},
	{-28, 42, 9, 66, 28},
	{45, 15, 5, 0, 0},
	{34, 34, 6, 71, -24},
	{17, 58, 9, 54, 31},
	{55, 30, 35, 39, 24},
	{15, 26, 1, 1, 1},
	{122, 100, 84, 66, 64},
	{0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0},
}

var egEdgeAvoidance = [18][EdgeParameterCount]int32{
	{103, 0, 8, -12, -1},
	{29, 0, 1, 0, 3},
	{0, 0, 0, 10, 4},
	{104, 25, 23, 20, 0},
	{69, 22, 10, 12, 15},
	{125, 105, 59, 23, 18},
	{279, 148, 91, 184, 44},
	{18, 86, 48, 44, 76},
	{0, -16, -16, -13, -28},
	{76, -10, -26, -15, -26},
	{53, 0, 22, 19, 7},
	{96, 19, 18, 29, 24},
	{153, 0, 25, 17, 9},
	{349, 186, 81, 56, 29},
	{151, 0, 0, 0, 0},
	{141, 112, 103, 71, 26},
	{0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0},
}

var mgFriendlyPawnPenalty = [18]int32{0, 12, 7, 1, 1, 42, 9, 0, 0, 0, 1, 1, 0, 0, 0, 0, 9, 0}
var egFriendlyPawnPenalty = [18]int32{36, 13, 2, 0, 0, -3, 19, 0, 5, 1, 0, 0, 0, 11, 111, 33, 2, 2}
var mgEnemyPawnPenalty = [18]int32{0, 15, 2, -38, 1, 122, 25, -8, 0, 0, 0, 9, 50, 28, 0, 65, 9, 9}
var egEnemyPawnPenalty = [18]int32{0, 38, 100, 65, 16, 46, 82, 36, 29, 24, 121, 118, 7, 70, 26, 30, 30, -18}

var mgMobilityBonus = [18]int32{0, 0, 4, 6, 2, 0, 2, 2, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0}
var egMobilityBonus = [18]int32{0, 0, 5, 7, 7, 0, 0, 5, 0, 0, 0, 0, 0, 0, 13, 0, 0, 0}

// endgameFactor weighs how much each piece kind's presence keeps the position in the
// middlegame phase; material is capped at endgameThreshold.
var endgameFactor = [18]int32{0, 1, 1, 2, 4, 2, 4, 4, 1, 1, 1, 1, 3, 3, 8, 2, 0, 0}

// pack/unpackMG/unpackEG combine a (middlegame, endgame) pair into a single 32-bit
// word, the representation the hot evaluation loop accumulates into; unpack splits it
// back out once per node instead of once per term. The endgame half is stored in the
// low 16 bits and sign-extended via int16; the middlegame half is stored in the high
// 16 bits, and unpackMG adds 0x8000 before shifting to undo the borrow a negative
// endgame half takes from it.
func pack(mg, eg int32) int32 {
	return (mg << 16) + int32(int16(eg))
}

func unpackMG(v int32) int32 {
	return (v + 0x8000) >> 16
}

func unpackEG(v int32) int32 {
	return int32(int16(v))
}

func edgeIndex(dist, width int) int {
	h := dist
	if h > edgeDistance {
		h = edgeDistance
	}
	w := width
	if w > edgeDistance {
		w = edgeDistance
	}
	return edgeIndexing[h*(edgeDistance+1)+w]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
