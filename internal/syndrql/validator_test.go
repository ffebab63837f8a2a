package syndrql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validate(src string) ValidationResult {
	return Validate(Tokenize(src))
}

func TestValidate_AcceptsSupportedStatements(t *testing.T) {
	tests := []struct {
		input string
		rule  string
	}{
		{`USE DATABASE inventory;`, "USE DATABASE"},
		{`SHOW DATABASES;`, "SHOW DATABASES"},
		{`SHOW BUNDLES;`, "SHOW BUNDLES"},
		{`CREATE DATABASE inventory;`, "CREATE DATABASE"},
		{`CREATE BUNDLE users;`, "CREATE BUNDLE"},
		{`CREATE BUNDLE users WITH FIELDS (name string, age number);`, "CREATE BUNDLE"},
		{`DROP DATABASE inventory;`, "DROP DATABASE"},
		{`DROP BUNDLE users;`, "DROP BUNDLE"},
		{`ALTER BUNDLE users ADD FIELD email string;`, "ALTER BUNDLE"},
		{`ALTER BUNDLE users REMOVE FIELD age;`, "ALTER BUNDLE"},
		{`ALTER BUNDLE users RENAME FIELD old TO new_name;`, "ALTER BUNDLE"},
		{`SELECT DOCUMENTS FROM users;`, "SELECT DOCUMENTS"},
		{`SELECT DOCUMENTS FROM users WHERE age >= 21 AND name == "Bob";`, "SELECT DOCUMENTS"},
		{`SELECT DOCUMENTS FROM users WHERE active == true ORDER BY name DESC LIMIT 10 OFFSET 5;`, "SELECT DOCUMENTS"},
		{`SELECT name, age FROM users;`, "SELECT"},
		{`SELECT * FROM users WHERE age < 30;`, "SELECT"},
		{`INSERT INTO users VALUES {name: "Bob", age: 30};`, "INSERT INTO"},
		{`INSERT INTO users DOCUMENT {name: "Ada", active: true};`, "INSERT INTO"},
		{`UPDATE DOCUMENTS IN users SET age = 31 WHERE name == "Bob";`, "UPDATE DOCUMENTS"},
		{`UPDATE users SET age = 31;`, "UPDATE"},
		{`DELETE DOCUMENTS FROM users WHERE age > 90;`, "DELETE DOCUMENTS"},
		{`DELETE FROM users;`, "DELETE"},
		{`BEGIN TRANSACTION;`, "BEGIN TRANSACTION"},
		{`BEGIN;`, "BEGIN TRANSACTION"},
		{`COMMIT;`, "COMMIT TRANSACTION"},
		{`ROLLBACK TRANSACTION;`, "ROLLBACK TRANSACTION"},
		{`GRANT READ ON users TO alice;`, "GRANT"},
		{`REVOKE WRITE ON users FROM bob;`, "REVOKE"},
		{`select documents from users;`, "SELECT DOCUMENTS"},
		{`SELECT DOCUMENTS FROM users`, "SELECT DOCUMENTS"}, // terminator optional
		{`SELECT DOCUMENTS FROM users WHERE id == @user_id;`, "SELECT DOCUMENTS"},
		{`SELECT DOCUMENTS FROM users LIMIT $1;`, "SELECT DOCUMENTS"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := validate(tt.input)
			require.True(t, res.Valid, "errors: %v / %v", res.ErrorMessage, res.ExpectedTokens)
			require.NotNil(t, res.MatchedRule)
			assert.Equal(t, tt.rule, res.MatchedRule.Type)
			assert.Empty(t, res.InvalidTokens)
			assert.Empty(t, res.InvalidLines)
			assert.Empty(t, res.Incomplete)
		})
	}
}

func TestValidate_EmptyInputIsValid(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n", "-- just a comment\n", "/* hi */"} {
		res := validate(input)
		assert.True(t, res.Valid, "input %q", input)
		assert.Empty(t, res.InvalidTokens)
		assert.Nil(t, res.MatchedRule)
	}
}

func TestValidate_BareSelectIsIncomplete(t *testing.T) {
	res := validate("SELECT")
	require.False(t, res.Valid)
	assert.Empty(t, res.InvalidTokens, "nothing typed yet is wrong, just missing")

	kinds := map[IncompleteKind]bool{}
	for _, inc := range res.Incomplete {
		kinds[inc.Kind] = true
	}
	assert.True(t, kinds[KindIncomplete], "a user value is still missing")
	assert.True(t, kinds[KindMissingCritical], "clause keywords are still missing")
	assert.Contains(t, res.ExpectedTokens, "DOCUMENTS")
	assert.Contains(t, res.ExpectedTokens, "<bundle_name>")
}

func TestValidate_MissingBundleNameFlagsWhere(t *testing.T) {
	tokens := Tokenize("SELECT DOCUMENTS FROM WHERE")
	res := Validate(tokens)
	require.False(t, res.Valid)

	// The WHERE keyword sits where the bundle name belongs.
	var whereIdx int
	for i, tok := range tokens {
		if tok.Keyword == KwWhere {
			whereIdx = i
		}
	}
	assert.True(t, res.InvalidTokens[whereIdx])
	assert.Contains(t, res.ExpectedTokens, "<bundle_name>")

	exp, ok := res.ExpectedAt(whereIdx)
	require.True(t, ok)
	assert.Equal(t, "<bundle_name>", exp)
}

func TestValidate_RecoversAfterBadToken(t *testing.T) {
	// One wrong token must not cascade into flagging the whole tail.
	tokens := Tokenize(`SELECT DOCUMENTS FORM users WHERE age > 1;`)
	res := Validate(tokens)
	require.False(t, res.Valid)

	flagged := 0
	for range res.InvalidTokens {
		flagged++
	}
	assert.Equal(t, 1, flagged, "only FORM should be flagged: %v", res.InvalidTokens)

	for i := range res.InvalidTokens {
		assert.Equal(t, "FORM", tokens[i].Value)
	}
}

func TestValidate_TrailingTokensAreInvalid(t *testing.T) {
	tokens := Tokenize("SHOW DATABASES users")
	res := Validate(tokens)
	require.False(t, res.Valid)

	var usersIdx int
	for i, tok := range tokens {
		if tok.Value == "users" {
			usersIdx = i
		}
	}
	assert.True(t, res.InvalidTokens[usersIdx])
}

func TestValidate_UnknownStarter(t *testing.T) {
	tokens := Tokenize("FETCH users;")
	res := Validate(tokens)
	require.False(t, res.Valid)
	assert.Contains(t, res.ErrorMessage, "no grammar rule")
	assert.Equal(t, StarterKeywords(), res.Suggestions)

	for i, tok := range tokens {
		if tok.IsSignificant() {
			assert.True(t, res.InvalidTokens[i], "token %q", tok.Value)
		} else {
			assert.False(t, res.InvalidTokens[i], "token %q", tok.Value)
		}
	}
}

func TestValidate_FirstCleanRuleWins(t *testing.T) {
	res := validate("SELECT * FROM users;")
	require.True(t, res.Valid)
	require.NotNil(t, res.MatchedRule)
	assert.Equal(t, "SELECT", res.MatchedRule.Type,
		"the projection shape matches after SELECT DOCUMENTS fails")
}

func TestValidate_FailureReportsFirstCandidateOnly(t *testing.T) {
	// Both SELECT shapes fail here; diagnostics must describe just the
	// first, so the user is not told about two statement types at once.
	res := validate("SELECT FROM")
	require.False(t, res.Valid)
	assert.Contains(t, res.ErrorMessage, "SELECT DOCUMENTS")
}

func TestValidate_MissingInsertBody(t *testing.T) {
	res := validate("INSERT INTO users VALUES")
	require.False(t, res.Valid)

	require.NotEmpty(t, res.Incomplete)
	var missing []string
	for _, inc := range res.Incomplete {
		if inc.Kind == KindIncomplete {
			missing = append(missing, inc.Missing...)
		}
	}
	assert.Contains(t, missing, "<document_body>")
}

func TestValidate_UnterminatedStringInvalidatesStatement(t *testing.T) {
	tokens := Tokenize(`SELECT DOCUMENTS FROM users WHERE name == "Bob`)
	res := Validate(tokens)
	require.False(t, res.Valid, "an open quote can never execute")
	assert.Nil(t, res.MatchedRule)

	var strIdx int
	for i, tok := range tokens {
		if tok.Type == TokenString {
			strIdx = i
		}
	}
	assert.True(t, res.InvalidTokens[strIdx])
}

func TestValidate_InvalidLinesTrackTokenLines(t *testing.T) {
	res := validate("SELECT DOCUMENTS\nFROM\nWHERE x")
	require.False(t, res.Valid)
	assert.True(t, res.InvalidLines[2], "WHERE sits on the third line: %v", res.InvalidLines)
}

// ===========================================================================
// Property-Based Tests (using pgregory.net/rapid)
// ===========================================================================

func TestProperty_ValidationIsDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		src := querylikeSource(rt)
		tokens := Tokenize(src)

		a := Validate(tokens)
		b := Validate(tokens)
		require.Equal(rt, a.Valid, b.Valid)
		require.Equal(rt, a.InvalidTokens, b.InvalidTokens)
		require.Equal(rt, a.InvalidLines, b.InvalidLines)
		require.Equal(rt, a.ExpectedTokens, b.ExpectedTokens)
		require.Equal(rt, a.Incomplete, b.Incomplete)
	})
}

func TestProperty_InvalidResultsAlwaysExplain(t *testing.T) {
	// Whatever the input, a failed validation must carry something the
	// analyzer can turn into a diagnostic.
	rapid.Check(t, func(rt *rapid.T) {
		src := querylikeSource(rt)
		tokens := Tokenize(src)

		res := Validate(tokens)
		if res.Valid {
			return
		}
		details := AnalyzeErrors(tokens, res, 0)
		require.NotEmpty(rt, details, "input %q", src)
	})
}
