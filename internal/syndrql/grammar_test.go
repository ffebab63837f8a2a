package syndrql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_TableIntegrity(t *testing.T) {
	rules := Rules()
	require.NotEmpty(t, rules)

	seen := map[string]bool{}
	for _, r := range rules {
		require.NotEmpty(t, r.Pattern, r.Type)
		assert.False(t, seen[r.Type], "duplicate statement type %s", r.Type)
		seen[r.Type] = true

		lead := r.Pattern[0]
		assert.Equal(t, ClassKeyword, lead.Class, "%s must lead with a keyword", r.Type)
		assert.False(t, lead.Optional, "%s leading keyword cannot be optional", r.Type)
		require.NotEmpty(t, lead.Value, r.Type)

		kw, ok := LookupKeyword(lead.Value)
		require.True(t, ok, "%s starter %q must be reserved", r.Type, lead.Value)
		assert.True(t, IsStarter(kw), "%s starter %q must be a statement starter", r.Type, lead.Value)

		// Every keyword spelling in a pattern must exist in the keyword
		// table, otherwise the element could never match a token.
		for _, el := range r.Pattern {
			if el.Class != ClassKeyword {
				continue
			}
			if el.Value != "" {
				_, ok := LookupKeyword(el.Value)
				assert.True(t, ok, "%s uses unreserved %q", r.Type, el.Value)
			}
			for _, c := range el.Choices {
				_, ok := LookupKeyword(c)
				assert.True(t, ok, "%s choice %q is unreserved", r.Type, c)
			}
		}
	}
}

func TestRules_SpecificShapePrecedesGeneral(t *testing.T) {
	idx := map[string]int{}
	for i, r := range Rules() {
		idx[r.Type] = i
	}
	assert.Less(t, idx["SELECT DOCUMENTS"], idx["SELECT"])
	assert.Less(t, idx["UPDATE DOCUMENTS"], idx["UPDATE"])
	assert.Less(t, idx["DELETE DOCUMENTS"], idx["DELETE"])
}

func TestCandidatesFor(t *testing.T) {
	sel := Tokenize("select")[0]
	cands := candidatesFor(sel)
	require.Len(t, cands, 2)
	assert.Equal(t, "SELECT DOCUMENTS", cands[0].Type)
	assert.Equal(t, "SELECT", cands[1].Type)

	none := candidatesFor(Tokenize("banana")[0])
	assert.Empty(t, none)
}

func TestGrammarElement_Matches(t *testing.T) {
	from := Tokenize("FROM")[0]
	users := Tokenize("users")[0]
	str := Tokenize(`"x"`)[0]
	num := Tokenize("42")[0]
	semi := Tokenize(";")[0]

	assert.True(t, kw("FROM").Matches(from))
	assert.True(t, kw("from").Matches(from), "element spelling is case-insensitive")
	assert.False(t, kw("FROM").Matches(users))

	assert.True(t, ident("bundle_name").Matches(users))
	assert.False(t, ident("bundle_name").Matches(from), "keywords are not identifiers")

	choice := kwOf("ASC", "DESC")
	assert.True(t, choice.Matches(Tokenize("desc")[0]))
	assert.False(t, choice.Matches(from))

	cond := optExpr("condition")
	assert.True(t, cond.Matches(users))
	assert.True(t, cond.Matches(str))
	assert.True(t, cond.Matches(num))
	assert.True(t, cond.Matches(Tokenize("AND")[0]), "logical keywords belong to expressions")
	assert.False(t, cond.Matches(Tokenize("ORDER")[0]), "clause keywords end expressions")
	assert.False(t, cond.Matches(semi))

	proj := projection("field_list")
	assert.True(t, proj.Matches(users))
	assert.True(t, proj.Matches(Tokenize("*")[0]))
	assert.True(t, proj.Matches(Tokenize(",")[0]))
	assert.False(t, proj.Matches(str))

	payload := body("document_body")
	assert.True(t, payload.Matches(Tokenize("{")[0]))
	assert.True(t, payload.Matches(str))
	assert.False(t, payload.Matches(semi), "terminator ends the body")
	assert.False(t, payload.Matches(from), "keywords end the body")
}

func TestGrammarElement_Describe(t *testing.T) {
	assert.Equal(t, "FROM", kw("FROM").Describe())
	assert.Equal(t, "ASC | DESC", kwOf("ASC", "DESC").Describe())
	assert.Equal(t, "<bundle_name>", ident("bundle_name").Describe())
	assert.Equal(t, "<punctuation>", GrammarElement{Class: ClassPunctuation}.Describe())
}

func TestGrammarRule_Synopsis(t *testing.T) {
	var use GrammarRule
	for _, r := range Rules() {
		if r.Type == "USE DATABASE" {
			use = r
		}
	}
	assert.Equal(t, "USE DATABASE <database_name> [;]", use.Synopsis())
}
