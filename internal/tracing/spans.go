package tracing

// Span attribute keys for language-service tracing.
// These constants define the semantic conventions for span attributes
// emitted around SyndrQL validation phases.
const (
	// File attributes
	AttrFilePath  = "file.path"
	AttrFileBytes = "file.bytes"

	// Statement attributes
	AttrStatementIndex = "statement.index"
	AttrStatementCount = "statement.count"
	AttrStatementRule  = "statement.rule"
	AttrStatementValid = "statement.valid"

	// Token attributes
	AttrTokenCount = "token.count"
	AttrLineCount  = "line.count"

	// Diagnostic attributes
	AttrErrorCount = "error.count"
	AttrErrorCode  = "error.code"

	// Cache attributes
	AttrCacheHit   = "cache.hit"
	AttrCacheScope = "cache.scope"

	// Error attributes
	AttrErrorMessage = "error.message"
)

// Span names for the service phases.
const (
	SpanCheckFile = "check.file"
	SpanSegment   = "syndrql.segment"
	SpanTokenize  = "syndrql.tokenize"
	SpanValidate  = "syndrql.validate"
	SpanAnalyze   = "syndrql.analyze"
)

// Event names for span events.
const (
	EventCacheHit         = "cache.hit"
	EventCacheMiss        = "cache.miss"
	EventRuleMatched      = "rule.matched"
	EventUnterminatedTail = "statement.unterminated"
)
