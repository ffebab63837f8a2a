// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextSecondary   ColorToken = "text.secondary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextDescription ColorToken = "text.description"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault   ColorToken = "border.default"
	TokenBorderFocus     ColorToken = "border.focus"
	TokenBorderHighlight ColorToken = "border.highlight"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Selection
	TokenSelectionIndicator ColorToken = "selection.indicator"

	// Overlays/Modals
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"

	// Toast notifications
	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
	TokenToastInfo    ColorToken = "toast.info"
	TokenToastWarn    ColorToken = "toast.warn"

	// SyndrQL syntax highlighting
	TokenSyntaxKeyword     ColorToken = "syntax.keyword" //nolint:gosec // UI color token, not credentials
	TokenSyntaxIdentifier  ColorToken = "syntax.identifier"
	TokenSyntaxString      ColorToken = "syntax.string"
	TokenSyntaxNumber      ColorToken = "syntax.number"
	TokenSyntaxOperator    ColorToken = "syntax.operator"
	TokenSyntaxPunctuation ColorToken = "syntax.punctuation"
	TokenSyntaxComment     ColorToken = "syntax.comment"
	TokenSyntaxPlaceholder ColorToken = "syntax.placeholder"
	TokenSyntaxError       ColorToken = "syntax.error"

	// Misc
	TokenSpinner ColorToken = "spinner"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		// Text hierarchy
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenTextDescription,
		TokenTextPlaceholder,

		// Borders
		TokenBorderDefault,
		TokenBorderFocus,
		TokenBorderHighlight,

		// Status indicators
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		// Selection
		TokenSelectionIndicator,

		// Overlays/Modals
		TokenOverlayTitle,
		TokenOverlayBorder,

		// Toast notifications
		TokenToastSuccess,
		TokenToastError,
		TokenToastInfo,
		TokenToastWarn,

		// SyndrQL syntax highlighting
		TokenSyntaxKeyword,
		TokenSyntaxIdentifier,
		TokenSyntaxString,
		TokenSyntaxNumber,
		TokenSyntaxOperator,
		TokenSyntaxPunctuation,
		TokenSyntaxComment,
		TokenSyntaxPlaceholder,
		TokenSyntaxError,

		// Misc
		TokenSpinner,
	}
}
