package syndrql

import "strings"

// Keyword is the canonical identity of a reserved word, independent of
// the casing used in source text.
type Keyword int

const (
	KwNone Keyword = iota
	KwAdd
	KwAdmin
	KwAlter
	KwAnd
	KwAsc
	KwBegin
	KwBundle
	KwBundles
	KwBy
	KwCommit
	KwCreate
	KwDatabase
	KwDatabases
	KwDelete
	KwDesc
	KwDocument
	KwDocuments
	KwDrop
	KwFalse
	KwField
	KwFields
	KwFrom
	KwGrant
	KwIn
	KwInsert
	KwInto
	KwLike
	KwLimit
	KwNot
	KwNull
	KwOffset
	KwOn
	KwOr
	KwOrder
	KwRead
	KwRemove
	KwRename
	KwRevoke
	KwRollback
	KwSelect
	KwSet
	KwShow
	KwTo
	KwTransaction
	KwTrue
	KwUpdate
	KwUse
	KwValues
	KwWhere
	KwWith
	KwWrite
)

// keywords maps the upper-cased spelling of every reserved word to its
// canonical keyword. Lookup is case-insensitive; SELECT, select, and
// SeLeCt all resolve to KwSelect.
var keywords = map[string]Keyword{
	"ADD":         KwAdd,
	"ADMIN":       KwAdmin,
	"ALTER":       KwAlter,
	"AND":         KwAnd,
	"ASC":         KwAsc,
	"BEGIN":       KwBegin,
	"BUNDLE":      KwBundle,
	"BUNDLES":     KwBundles,
	"BY":          KwBy,
	"COMMIT":      KwCommit,
	"CREATE":      KwCreate,
	"DATABASE":    KwDatabase,
	"DATABASES":   KwDatabases,
	"DELETE":      KwDelete,
	"DESC":        KwDesc,
	"DOCUMENT":    KwDocument,
	"DOCUMENTS":   KwDocuments,
	"DROP":        KwDrop,
	"FALSE":       KwFalse,
	"FIELD":       KwField,
	"FIELDS":      KwFields,
	"FROM":        KwFrom,
	"GRANT":       KwGrant,
	"IN":          KwIn,
	"INSERT":      KwInsert,
	"INTO":        KwInto,
	"LIKE":        KwLike,
	"LIMIT":       KwLimit,
	"NOT":         KwNot,
	"NULL":        KwNull,
	"OFFSET":      KwOffset,
	"ON":          KwOn,
	"OR":          KwOr,
	"ORDER":       KwOrder,
	"READ":        KwRead,
	"REMOVE":      KwRemove,
	"RENAME":      KwRename,
	"REVOKE":      KwRevoke,
	"ROLLBACK":    KwRollback,
	"SELECT":      KwSelect,
	"SET":         KwSet,
	"SHOW":        KwShow,
	"TO":          KwTo,
	"TRANSACTION": KwTransaction,
	"TRUE":        KwTrue,
	"UPDATE":      KwUpdate,
	"USE":         KwUse,
	"VALUES":      KwValues,
	"WHERE":       KwWhere,
	"WITH":        KwWith,
	"WRITE":       KwWrite,
}

// literalKeywords are reserved words that tokenize as literals rather
// than keywords. They still carry their canonical Keyword value.
var literalKeywords = map[Keyword]bool{
	KwTrue:  true,
	KwFalse: true,
	KwNull:  true,
}

// keywordNames holds the canonical upper-case spelling per keyword,
// built once from the lookup table.
var keywordNames = func() map[Keyword]string {
	names := make(map[Keyword]string, len(keywords))
	for name, kw := range keywords {
		names[kw] = name
	}
	return names
}()

// String returns the canonical upper-case spelling of the keyword.
func (k Keyword) String() string {
	if name, ok := keywordNames[k]; ok {
		return name
	}
	return ""
}

// LookupKeyword resolves an identifier to its canonical keyword.
// The second return is false when the identifier is not reserved.
func LookupKeyword(ident string) (Keyword, bool) {
	kw, ok := keywords[strings.ToUpper(ident)]
	return kw, ok
}

// statementStarters are the keywords that can begin a statement. The
// validator shortlists candidate rules by the first significant token,
// and the analyzer suggests these when nothing matches.
var statementStarters = []Keyword{
	KwAlter,
	KwBegin,
	KwCommit,
	KwCreate,
	KwDelete,
	KwDrop,
	KwGrant,
	KwInsert,
	KwRevoke,
	KwRollback,
	KwSelect,
	KwShow,
	KwUpdate,
	KwUse,
}

// StarterKeywords returns the canonical spellings of every keyword that
// can begin a statement, sorted alphabetically.
func StarterKeywords() []string {
	names := make([]string, 0, len(statementStarters))
	for _, kw := range statementStarters {
		names = append(names, kw.String())
	}
	// statementStarters is kept in alphabetical order; keep the
	// returned slice detached so callers can't mutate the table.
	return names
}

// IsStarter reports whether the keyword can begin a statement.
func IsStarter(kw Keyword) bool {
	for _, s := range statementStarters {
		if s == kw {
			return true
		}
	}
	return false
}
