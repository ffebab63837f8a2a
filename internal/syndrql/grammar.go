package syndrql

import "strings"

// ElementClass is the grammar-side counterpart of a token class. An
// element admits a token when the token's class belongs to the element's
// class; Value and Choices narrow the match further.
type ElementClass int

const (
	// ClassKeyword admits keyword tokens.
	ClassKeyword ElementClass = iota
	// ClassIdentifier admits identifier tokens.
	ClassIdentifier
	// ClassLiteral admits strings, numbers, bare literals, and placeholders.
	ClassLiteral
	// ClassNumber admits number tokens and placeholders standing in for one.
	ClassNumber
	// ClassOperator admits operator tokens.
	ClassOperator
	// ClassPunctuation admits punctuation tokens.
	ClassPunctuation
	// ClassExpression admits any token that can appear inside a filter
	// or assignment run: identifiers, values, operators, grouping
	// punctuation, and the logical keywords AND OR NOT IN LIKE. Clause
	// keywords such as ORDER or LIMIT end a repeatable expression run.
	ClassExpression
	// ClassProjection admits a field list: identifiers, commas, and *.
	ClassProjection
	// ClassDocumentBody admits the brace-delimited payload of an INSERT:
	// any significant token except keywords and the statement terminator.
	ClassDocumentBody
)

// String returns a lower-case name for the class, used in diagnostics
// when an element has no spelling or placeholder of its own.
func (c ElementClass) String() string {
	switch c {
	case ClassKeyword:
		return "keyword"
	case ClassIdentifier:
		return "identifier"
	case ClassLiteral:
		return "literal"
	case ClassNumber:
		return "number"
	case ClassOperator:
		return "operator"
	case ClassPunctuation:
		return "punctuation"
	case ClassExpression:
		return "expression"
	case ClassProjection:
		return "field list"
	case ClassDocumentBody:
		return "document body"
	default:
		return "element"
	}
}

func (c ElementClass) admits(tok Token) bool {
	switch c {
	case ClassKeyword:
		return tok.Type == TokenKeyword
	case ClassIdentifier:
		return tok.Type == TokenIdentifier
	case ClassLiteral:
		switch tok.Type {
		case TokenString, TokenNumber, TokenLiteral, TokenPlaceholder:
			return true
		}
		return false
	case ClassNumber:
		return tok.Type == TokenNumber || tok.Type == TokenPlaceholder
	case ClassOperator:
		return tok.Type == TokenOperator
	case ClassPunctuation:
		return tok.Type == TokenPunctuation
	case ClassExpression:
		switch tok.Type {
		case TokenIdentifier, TokenString, TokenNumber, TokenLiteral, TokenPlaceholder, TokenOperator:
			return true
		case TokenKeyword:
			switch tok.Keyword {
			case KwAnd, KwOr, KwNot, KwIn, KwLike:
				return true
			}
			return false
		case TokenPunctuation:
			return tok.Value == "(" || tok.Value == ")" || tok.Value == ","
		}
		return false
	case ClassProjection:
		switch tok.Type {
		case TokenIdentifier:
			return true
		case TokenOperator:
			return tok.Value == "*"
		case TokenPunctuation:
			return tok.Value == ","
		}
		return false
	case ClassDocumentBody:
		switch tok.Type {
		case TokenKeyword, TokenUnknown:
			return false
		case TokenPunctuation:
			return tok.Value != ";"
		}
		return tok.IsSignificant()
	default:
		return false
	}
}

// GrammarElement is one slot in a rule's pattern. Elements are matched
// against significant tokens in order, with no backtracking.
type GrammarElement struct {
	Class       ElementClass
	Value       string   // required spelling, matched case-insensitively
	Choices     []string // any one of these spellings, case-insensitively
	Placeholder string   // diagnostic name for a user-supplied value
	Optional    bool
	Repeatable  bool
}

// Matches reports whether the token satisfies this element.
func (e GrammarElement) Matches(tok Token) bool {
	if !e.Class.admits(tok) {
		return false
	}
	if e.Value != "" && !strings.EqualFold(e.Value, tok.Value) {
		return false
	}
	if len(e.Choices) > 0 {
		for _, c := range e.Choices {
			if strings.EqualFold(c, tok.Value) {
				return true
			}
		}
		return false
	}
	return true
}

// Describe returns the diagnostic name for the element: its required
// spelling, its choices, or its placeholder in angle brackets.
func (e GrammarElement) Describe() string {
	switch {
	case e.Value != "":
		return e.Value
	case len(e.Choices) > 0:
		return strings.Join(e.Choices, " | ")
	case e.Placeholder != "":
		return "<" + e.Placeholder + ">"
	}
	return "<" + e.Class.String() + ">"
}

// GrammarRule describes one statement shape. Rules are tried in table
// order and the first rule that validates cleanly wins.
type GrammarRule struct {
	Type    string // statement type, e.g. "SELECT DOCUMENTS"
	Pattern []GrammarElement
}

// Starter returns the leading keyword of the rule.
func (r GrammarRule) Starter() string {
	if len(r.Pattern) == 0 {
		return ""
	}
	return r.Pattern[0].Value
}

// Synopsis renders the pattern as a usage line. Optional elements are
// bracketed and repeatable elements carry a trailing ellipsis.
func (r GrammarRule) Synopsis() string {
	parts := make([]string, 0, len(r.Pattern))
	for _, el := range r.Pattern {
		d := el.Describe()
		if el.Repeatable {
			d += "..."
		}
		if el.Optional {
			d = "[" + d + "]"
		}
		parts = append(parts, d)
	}
	return strings.Join(parts, " ")
}

func kw(spelling string) GrammarElement {
	return GrammarElement{Class: ClassKeyword, Value: spelling}
}

func optKw(spelling string) GrammarElement {
	return GrammarElement{Class: ClassKeyword, Value: spelling, Optional: true}
}

func kwOf(choices ...string) GrammarElement {
	return GrammarElement{Class: ClassKeyword, Choices: choices}
}

func optKwOf(choices ...string) GrammarElement {
	return GrammarElement{Class: ClassKeyword, Choices: choices, Optional: true}
}

func ident(name string) GrammarElement {
	return GrammarElement{Class: ClassIdentifier, Placeholder: name}
}

func optIdent(name string) GrammarElement {
	return GrammarElement{Class: ClassIdentifier, Placeholder: name, Optional: true}
}

func optNum(name string) GrammarElement {
	return GrammarElement{Class: ClassNumber, Placeholder: name, Optional: true}
}

func expr(name string) GrammarElement {
	return GrammarElement{Class: ClassExpression, Placeholder: name, Repeatable: true}
}

func optExpr(name string) GrammarElement {
	return GrammarElement{Class: ClassExpression, Placeholder: name, Optional: true, Repeatable: true}
}

func projection(name string) GrammarElement {
	return GrammarElement{Class: ClassProjection, Placeholder: name, Repeatable: true}
}

func body(name string) GrammarElement {
	return GrammarElement{Class: ClassDocumentBody, Placeholder: name, Repeatable: true}
}

// terminator is the optional trailing semicolon. Keeping it optional
// lets statements still being typed validate cleanly.
func terminator() GrammarElement {
	return GrammarElement{Class: ClassPunctuation, Value: ";", Optional: true}
}

// grammarRules is the full statement table. Order matters twice over:
// candidate rules are tried top to bottom, and the more specific shape
// must precede the general one that shares its starter, so that
// SELECT DOCUMENTS wins over a projection SELECT.
var grammarRules = []GrammarRule{
	{Type: "USE DATABASE", Pattern: []GrammarElement{
		kw("USE"), kw("DATABASE"), ident("database_name"), terminator(),
	}},
	{Type: "SHOW DATABASES", Pattern: []GrammarElement{
		kw("SHOW"), kw("DATABASES"), terminator(),
	}},
	{Type: "SHOW BUNDLES", Pattern: []GrammarElement{
		kw("SHOW"), kw("BUNDLES"), terminator(),
	}},
	{Type: "CREATE DATABASE", Pattern: []GrammarElement{
		kw("CREATE"), kw("DATABASE"), ident("database_name"), terminator(),
	}},
	{Type: "CREATE BUNDLE", Pattern: []GrammarElement{
		kw("CREATE"), kw("BUNDLE"), ident("bundle_name"),
		optKw("WITH"), optKw("FIELDS"), optExpr("field_definitions"),
		terminator(),
	}},
	{Type: "DROP DATABASE", Pattern: []GrammarElement{
		kw("DROP"), kw("DATABASE"), ident("database_name"), terminator(),
	}},
	{Type: "DROP BUNDLE", Pattern: []GrammarElement{
		kw("DROP"), kw("BUNDLE"), ident("bundle_name"), terminator(),
	}},
	{Type: "ALTER BUNDLE", Pattern: []GrammarElement{
		kw("ALTER"), kw("BUNDLE"), ident("bundle_name"),
		kwOf("ADD", "REMOVE", "RENAME"), optKw("FIELD"),
		expr("field_change"), optKw("TO"), optIdent("new_name"),
		terminator(),
	}},
	{Type: "SELECT DOCUMENTS", Pattern: []GrammarElement{
		kw("SELECT"), kw("DOCUMENTS"), kw("FROM"), ident("bundle_name"),
		optKw("WHERE"), optExpr("condition"),
		optKw("ORDER"), optKw("BY"), optIdent("order_field"), optKwOf("ASC", "DESC"),
		optKw("LIMIT"), optNum("limit_count"), optKw("OFFSET"), optNum("offset_count"),
		terminator(),
	}},
	{Type: "SELECT", Pattern: []GrammarElement{
		kw("SELECT"), projection("field_list"), kw("FROM"), ident("bundle_name"),
		optKw("WHERE"), optExpr("condition"),
		optKw("ORDER"), optKw("BY"), optIdent("order_field"), optKwOf("ASC", "DESC"),
		optKw("LIMIT"), optNum("limit_count"), optKw("OFFSET"), optNum("offset_count"),
		terminator(),
	}},
	{Type: "INSERT INTO", Pattern: []GrammarElement{
		kw("INSERT"), kw("INTO"), ident("bundle_name"),
		kwOf("VALUES", "DOCUMENT"), body("document_body"),
		terminator(),
	}},
	{Type: "UPDATE DOCUMENTS", Pattern: []GrammarElement{
		kw("UPDATE"), kw("DOCUMENTS"), kw("IN"), ident("bundle_name"),
		kw("SET"), expr("assignments"),
		optKw("WHERE"), optExpr("condition"),
		terminator(),
	}},
	{Type: "UPDATE", Pattern: []GrammarElement{
		kw("UPDATE"), ident("bundle_name"),
		kw("SET"), expr("assignments"),
		optKw("WHERE"), optExpr("condition"),
		terminator(),
	}},
	{Type: "DELETE DOCUMENTS", Pattern: []GrammarElement{
		kw("DELETE"), kw("DOCUMENTS"), kw("FROM"), ident("bundle_name"),
		optKw("WHERE"), optExpr("condition"),
		terminator(),
	}},
	{Type: "DELETE", Pattern: []GrammarElement{
		kw("DELETE"), kw("FROM"), ident("bundle_name"),
		optKw("WHERE"), optExpr("condition"),
		terminator(),
	}},
	{Type: "BEGIN TRANSACTION", Pattern: []GrammarElement{
		kw("BEGIN"), optKw("TRANSACTION"), terminator(),
	}},
	{Type: "COMMIT TRANSACTION", Pattern: []GrammarElement{
		kw("COMMIT"), optKw("TRANSACTION"), terminator(),
	}},
	{Type: "ROLLBACK TRANSACTION", Pattern: []GrammarElement{
		kw("ROLLBACK"), optKw("TRANSACTION"), terminator(),
	}},
	{Type: "GRANT", Pattern: []GrammarElement{
		kw("GRANT"), kwOf("READ", "WRITE", "ADMIN"), kw("ON"), ident("bundle_name"),
		kw("TO"), ident("user_name"), terminator(),
	}},
	{Type: "REVOKE", Pattern: []GrammarElement{
		kw("REVOKE"), kwOf("READ", "WRITE", "ADMIN"), kw("ON"), ident("bundle_name"),
		kw("FROM"), ident("user_name"), terminator(),
	}},
}

// Rules returns the grammar table in priority order. The returned slice
// is detached from the internal table.
func Rules() []GrammarRule {
	return append([]GrammarRule(nil), grammarRules...)
}

// candidatesFor shortlists rules whose leading keyword equals the first
// significant token, case-insensitively.
func candidatesFor(first Token) []GrammarRule {
	var out []GrammarRule
	for _, r := range grammarRules {
		if strings.EqualFold(r.Starter(), first.Value) {
			out = append(out, r)
		}
	}
	return out
}
