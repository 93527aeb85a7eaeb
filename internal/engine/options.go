package engine

import "github.com/dshills/textcore/internal/engine/selection"

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithSelection sets the initial selection. Without it the engine starts
// with a caret at the end of the content.
func WithSelection(sel selection.Selection) Option {
	return func(e *Engine) {
		e.initSel = &sel
	}
}

// WithLogger sets the logger used for edit tracing.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
