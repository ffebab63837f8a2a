// Package styles contains Lip Gloss style definitions.
package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the stock quill color scheme.
// Color values mirror the Dark values of the AdaptiveColor definitions
// in styles.go.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default quill theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#CCCCCC",
		TokenTextSecondary:   "#BBBBBB",
		TokenTextMuted:       "#696969",
		TokenTextDescription: "#999999",
		TokenTextPlaceholder: "#777777",

		// Borders
		TokenBorderDefault:   "#696969",
		TokenBorderFocus:     "#FFFFFF",
		TokenBorderHighlight: "#54A0FF",

		// Status indicators
		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		// Selection
		TokenSelectionIndicator: "#FFFFFF",

		// Overlays/Modals
		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",

		// Toast notifications
		TokenToastSuccess: "#73F59F",
		TokenToastError:   "#FF8787",
		TokenToastInfo:    "#54A0FF",
		TokenToastWarn:    "#FECA57",

		// SyndrQL syntax (Catppuccin Mocha accents)
		TokenSyntaxKeyword:     "#CBA6F7",
		TokenSyntaxIdentifier:  "#94E2D5",
		TokenSyntaxString:      "#F9E2AF",
		TokenSyntaxNumber:      "#FAB387",
		TokenSyntaxOperator:    "#F38BA8",
		TokenSyntaxPunctuation: "#89B4FA",
		TokenSyntaxComment:     "#6C7086",
		TokenSyntaxPlaceholder: "#F5C2E7",
		TokenSyntaxError:       "#F38BA8",

		// Misc
		TokenSpinner: "#FFFFFF",
	},
}

// CatppuccinMochaPreset is the warm dark Catppuccin variant.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CDD6F4",
		TokenTextSecondary:   "#BAC2DE",
		TokenTextMuted:       "#6C7086",
		TokenTextDescription: "#A6ADC8",
		TokenTextPlaceholder: "#7F849C",

		TokenBorderDefault:   "#585B70",
		TokenBorderFocus:     "#B4BEFE",
		TokenBorderHighlight: "#89B4FA",

		TokenStatusSuccess: "#A6E3A1",
		TokenStatusWarning: "#F9E2AF",
		TokenStatusError:   "#F38BA8",

		TokenSelectionIndicator: "#F5E0DC",

		TokenOverlayTitle:  "#CDD6F4",
		TokenOverlayBorder: "#585B70",

		TokenToastSuccess: "#A6E3A1",
		TokenToastError:   "#F38BA8",
		TokenToastInfo:    "#89B4FA",
		TokenToastWarn:    "#F9E2AF",

		TokenSyntaxKeyword:     "#CBA6F7",
		TokenSyntaxIdentifier:  "#94E2D5",
		TokenSyntaxString:      "#F9E2AF",
		TokenSyntaxNumber:      "#FAB387",
		TokenSyntaxOperator:    "#F38BA8",
		TokenSyntaxPunctuation: "#89B4FA",
		TokenSyntaxComment:     "#6C7086",
		TokenSyntaxPlaceholder: "#F5C2E7",
		TokenSyntaxError:       "#F38BA8",

		TokenSpinner: "#B4BEFE",
	},
}

// CatppuccinLattePreset is the warm light Catppuccin variant.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Warm, cozy light theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#4C4F69",
		TokenTextSecondary:   "#5C5F77",
		TokenTextMuted:       "#9CA0B0",
		TokenTextDescription: "#6C6F85",
		TokenTextPlaceholder: "#8C8FA1",

		TokenBorderDefault:   "#ACB0BE",
		TokenBorderFocus:     "#7287FD",
		TokenBorderHighlight: "#1E66F5",

		TokenStatusSuccess: "#40A02B",
		TokenStatusWarning: "#DF8E1D",
		TokenStatusError:   "#D20F39",

		TokenSelectionIndicator: "#DC8A78",

		TokenOverlayTitle:  "#4C4F69",
		TokenOverlayBorder: "#ACB0BE",

		TokenToastSuccess: "#40A02B",
		TokenToastError:   "#D20F39",
		TokenToastInfo:    "#1E66F5",
		TokenToastWarn:    "#DF8E1D",

		TokenSyntaxKeyword:     "#8839EF",
		TokenSyntaxIdentifier:  "#179299",
		TokenSyntaxString:      "#DF8E1D",
		TokenSyntaxNumber:      "#FE640B",
		TokenSyntaxOperator:    "#D20F39",
		TokenSyntaxPunctuation: "#1E66F5",
		TokenSyntaxComment:     "#9CA0B0",
		TokenSyntaxPlaceholder: "#EA76CB",
		TokenSyntaxError:       "#D20F39",

		TokenSpinner: "#7287FD",
	},
}

// NordPreset is the arctic, north-bluish palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#ECEFF4",
		TokenTextSecondary:   "#E5E9F0",
		TokenTextMuted:       "#4C566A",
		TokenTextDescription: "#D8DEE9",
		TokenTextPlaceholder: "#616E88",

		TokenBorderDefault:   "#4C566A",
		TokenBorderFocus:     "#88C0D0",
		TokenBorderHighlight: "#81A1C1",

		TokenStatusSuccess: "#A3BE8C",
		TokenStatusWarning: "#EBCB8B",
		TokenStatusError:   "#BF616A",

		TokenSelectionIndicator: "#ECEFF4",

		TokenOverlayTitle:  "#ECEFF4",
		TokenOverlayBorder: "#4C566A",

		TokenToastSuccess: "#A3BE8C",
		TokenToastError:   "#BF616A",
		TokenToastInfo:    "#81A1C1",
		TokenToastWarn:    "#EBCB8B",

		TokenSyntaxKeyword:     "#81A1C1",
		TokenSyntaxIdentifier:  "#8FBCBB",
		TokenSyntaxString:      "#A3BE8C",
		TokenSyntaxNumber:      "#B48EAD",
		TokenSyntaxOperator:    "#EBCB8B",
		TokenSyntaxPunctuation: "#88C0D0",
		TokenSyntaxComment:     "#616E88",
		TokenSyntaxPlaceholder: "#B48EAD",
		TokenSyntaxError:       "#BF616A",

		TokenSpinner: "#88C0D0",
	},
}

// HighContrastPreset maximizes contrast for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#FFFFFF",
		TokenTextSecondary:   "#FFFFFF",
		TokenTextMuted:       "#C0C0C0",
		TokenTextDescription: "#FFFFFF",
		TokenTextPlaceholder: "#C0C0C0",

		TokenBorderDefault:   "#FFFFFF",
		TokenBorderFocus:     "#FFFF00",
		TokenBorderHighlight: "#00FFFF",

		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		TokenSelectionIndicator: "#FFFF00",

		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",

		TokenToastSuccess: "#00FF00",
		TokenToastError:   "#FF0000",
		TokenToastInfo:    "#00FFFF",
		TokenToastWarn:    "#FFFF00",

		TokenSyntaxKeyword:     "#00FFFF",
		TokenSyntaxIdentifier:  "#FFFFFF",
		TokenSyntaxString:      "#FFFF00",
		TokenSyntaxNumber:      "#FF00FF",
		TokenSyntaxOperator:    "#FF0000",
		TokenSyntaxPunctuation: "#00FF00",
		TokenSyntaxComment:     "#C0C0C0",
		TokenSyntaxPlaceholder: "#FF00FF",
		TokenSyntaxError:       "#FF0000",

		TokenSpinner: "#FFFFFF",
	},
}
