package syndrql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseStatements_SplitsOnSemicolons(t *testing.T) {
	stmts := ParseStatements("SHOW DATABASES;SHOW BUNDLES;")

	require.Len(t, stmts, 2)
	assert.Equal(t, "SHOW DATABASES;", stmts[0].Text)
	assert.Equal(t, "SHOW BUNDLES;", stmts[1].Text)
}

func TestParseStatements_TrailingSegmentWithoutTerminator(t *testing.T) {
	stmts := ParseStatements("SHOW DATABASES;SELECT DOC")

	require.Len(t, stmts, 2)
	assert.Equal(t, "SELECT DOC", stmts[1].Text)
	assert.True(t, stmts[1].Dirty)
}

func TestParseStatements_SemicolonInsideStringIgnored(t *testing.T) {
	stmts := ParseStatements(`SELECT DOCUMENTS FROM BUNDLE "a;b";`)

	require.Len(t, stmts, 1)
}

func TestParseStatements_EscapedQuoteInsideString(t *testing.T) {
	stmts := ParseStatements(`INSERT INTO BUNDLE "x" DOCUMENT {"k": "a\";b"};SHOW BUNDLES;`)

	require.Len(t, stmts, 2)
	assert.Equal(t, "SHOW BUNDLES;", stmts[1].Text)
}

func TestParseStatements_NewlineClosesOpenString(t *testing.T) {
	// An unterminated string must not swallow the rest of the document.
	stmts := ParseStatements("SELECT \"oops\nSHOW DATABASES;")

	require.Len(t, stmts, 1)
	assert.Equal(t, 0, stmts[0].LineStart)
	assert.Equal(t, 1, stmts[0].LineEnd)
}

func TestParseStatements_LineTracking(t *testing.T) {
	doc := "SHOW DATABASES;\nSELECT DOCUMENTS\nFROM BUNDLE \"users\";\nSHOW BUNDLES;"
	stmts := ParseStatements(doc)

	require.Len(t, stmts, 3)
	assert.Equal(t, 0, stmts[0].LineStart)
	// Second statement's text begins with the newline ending line 0
	assert.Equal(t, 0, stmts[1].LineStart)
	assert.Equal(t, 2, stmts[1].LineEnd)
	assert.Equal(t, 2, stmts[2].LineStart)
}

func TestParseStatements_Empty(t *testing.T) {
	assert.Empty(t, ParseStatements(""))
}

func TestParseStatements_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := rapid.StringOf(rapid.RuneFrom([]rune(`ABC abc;"'\` + "\n\t"))).Draw(t, "doc")

		stmts := ParseStatements(doc)

		var joined strings.Builder
		for _, s := range stmts {
			joined.WriteString(s.Text)
		}
		// Joining every segment reproduces the document byte for byte.
		assert.Equal(t, doc, joined.String())
	})
}

func TestStatementAt(t *testing.T) {
	doc := "SHOW DATABASES;\nSELECT DOCUMENTS\nFROM BUNDLE \"users\";"
	stmts := ParseStatements(doc)
	require.Len(t, stmts, 2)

	assert.Same(t, stmts[0], StatementAt(stmts, 0, 3))
	assert.Same(t, stmts[1], StatementAt(stmts, 2, 0))
	// End-of-document cursor still belongs to the last statement.
	assert.Same(t, stmts[1], StatementAt(stmts, 2, 21))
	assert.Nil(t, StatementAt(stmts, 10, 0))
}

func TestStatementAt_SharedLine(t *testing.T) {
	stmts := ParseStatements("SHOW DATABASES; SHOW BUNDLES;")
	require.Len(t, stmts, 2)
	require.Equal(t, 0, stmts[0].ColStart)
	require.Equal(t, 15, stmts[1].ColStart)

	// Column picks the statement when two share a line.
	assert.Same(t, stmts[0], StatementAt(stmts, 0, 14))
	assert.Same(t, stmts[1], StatementAt(stmts, 0, 15))
	assert.Same(t, stmts[1], StatementAt(stmts, 0, 29))
}

func TestMarkDirty_SharesUntouchedEntries(t *testing.T) {
	stmts := ParseStatements("SHOW DATABASES;SHOW BUNDLES;")

	out := MarkDirty(stmts, stmts[1])

	assert.Same(t, stmts[0], out[0], "untouched entries should be shared")
	assert.NotSame(t, stmts[1], out[1], "target should be replaced with a copy")
	assert.True(t, out[1].Dirty)
}

func TestMarkClean_SetsValidity(t *testing.T) {
	stmts := ParseStatements("SHOW DATABASES;")

	out := MarkClean(stmts, stmts[0], true)

	assert.NotSame(t, stmts[0], out[0])
	assert.False(t, out[0].Dirty)
	assert.True(t, out[0].Valid)
}
