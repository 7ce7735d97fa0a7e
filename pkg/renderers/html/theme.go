package html

import theme "github.com/goliatone/go-theme"

// DefaultTheme returns the fire palette applied when no theme is configured.
func DefaultTheme() *theme.RendererConfig {
	tokens := map[string]string{
		"accent":       "#e4572e",
		"accent-hover": "#c2410c",
		"surface":      "#fffaf5",
		"border":       "#f3d5c0",
		"text":         "#3b1f0e",
		"muted":        "#8a6a55",
		"danger":       "#b91c1c",
	}
	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--ff-"+key] = value
	}
	return &theme.RendererConfig{
		Theme:   "fire",
		Variant: "light",
		Tokens:  tokens,
		CSSVars: vars,
	}
}

type themeContext struct {
	Name    string `json:"name,omitempty"`
	Variant string `json:"variant,omitempty"`
	Style   string `json:"style,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	return themeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Style:   cssVarsDeclarations(cfg.CSSVars),
	}
}

func stylesheetURL(cfg *theme.RendererConfig, fallback string) string {
	if cfg != nil && cfg.AssetURL != nil {
		if url := cfg.AssetURL(StylesheetName); url != "" {
			return url
		}
	}
	return fallback
}
