package tui

// Theme holds the prefixes prepended to informational messages. The zero
// value prints messages bare.
type Theme struct {
	TitlePrefix   string
	SectionPrefix string
	ErrorPrefix   string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithoutConfirm skips the final submit confirmation prompt; the form is
// submitted as soon as every field validates.
func WithoutConfirm() Option {
	return func(r *Renderer) {
		r.confirm = false
	}
}
