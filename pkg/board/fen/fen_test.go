package fen_test

import (
	"testing"

	"github.com/herohde/liberty/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
	}

	for _, tt := range tests {
		b, err := fen.Decode(tt)
		require.NoError(t, err)
		assert.Equal(t, tt, fen.Encode(b))
	}
}

func TestDecodeWideBoard(t *testing.T) {
	// A 12-wide board exercises the multi-digit decimal (not base-26) run-length
	// encoding used for empty-square gaps, independent of the move-notation column
	// letters.
	b, err := fen.Decode("12/12/12/12/12/12/12/12/12/12/12/12 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, 12, b.Height)
	assert.Equal(t, 12, b.Width)
}

func TestDecodeRejectsNonRectangular(t *testing.T) {
	_, err := fen.Decode("8/7 w - - 0 1")
	assert.Error(t, err)
}

func TestDecodeDefaultsOmittedTrailingFields(t *testing.T) {
	// Halfmove clock and fullmove number are omitted entirely; both should default
	// (to 0 and 1) rather than being rejected.
	b, err := fen.Decode("8/8/8/8/8/8/8/8 w - -")
	require.NoError(t, err)
	assert.Equal(t, 0, b.Halfmoves)
	assert.Equal(t, 1, b.Moves)
}

func TestDecodeIgnoresTrailingVariantFields(t *testing.T) {
	// Fields beyond the sixth are variant parameters not yet interpreted; Decode must
	// still accept the position rather than rejecting it outright.
	b, err := fen.Decode("8/8/8/8/8/8/8/8 w - - 0 1 - iznl")
	require.NoError(t, err)
	assert.Equal(t, 8, b.Height)
}

func TestDecodeRejectsEmptyString(t *testing.T) {
	_, err := fen.Decode("")
	assert.Error(t, err)
}
