package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTentativeCommit(t *testing.T) {
	r := New()
	r.SubHeader("Defensive Equipment")
	r.BeginTentative()
	r.Line("AMS", "+ 32", 32)
	r.EndTentative(true)

	lines := r.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "AMS", lines[0].Label)
	assert.Equal(t, 32.0, lines[0].Total)
}

func TestTentativeDiscard(t *testing.T) {
	r := New()
	r.Line("Armor", "10 x 2.5", 25)
	r.BeginTentative()
	r.SubHeader("Defensive Equipment")
	r.Info("none", "")
	r.EndTentative(false)

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, "Armor", r.Entries()[0].Label)
}

func TestTentativeNested(t *testing.T) {
	r := New()
	r.BeginTentative()
	r.Line("outer", "", 1)
	r.BeginTentative()
	r.Line("inner", "", 2)
	r.EndTentative(false)
	r.EndTentative(true)

	lines := r.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "outer", lines[0].Label)
}

func TestEndTentativeUnmatched(t *testing.T) {
	r := New()
	r.Line("a", "", 1)
	r.EndTentative(false)
	assert.Equal(t, 1, r.Len())
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{25, "25"},
		{1.12, "1.12"},
		{0.5, "0.50"},
		{-15, "-15"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in), "FormatNumber(%v)", tt.in)
	}
}

func TestWriteText(t *testing.T) {
	r := New()
	r.Header("Atlas AS7-D")
	r.SubHeader("Defensive Battle Rating")
	r.Line("Armor", "304 x 2.5", 760)
	r.Blank()

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r))
	out := buf.String()
	assert.Contains(t, out, "Atlas AS7-D\n===========")
	assert.Contains(t, out, "Armor")
	assert.Contains(t, out, "760")
}

func TestWriteTSV(t *testing.T) {
	r := New()
	r.Header("Locust")
	r.Line("Armor", "64 x 2.5", 160)
	r.Info("Heat Efficiency", "14")

	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, r))
	rows := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, rows, 3)
	assert.Equal(t, "header\tLocust\t\t", rows[0])
	assert.Equal(t, "line\tArmor\t64 x 2.5\t160", rows[1])
	assert.Equal(t, "info\tHeat Efficiency\t14\t", rows[2])
}

func TestDiscardSink(t *testing.T) {
	// must not panic on unbalanced use
	Discard.EndTentative(true)
	Discard.Line("x", "y", 1)
}
