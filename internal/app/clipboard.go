package app

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard stores text for copy and paste.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard returns the operating system clipboard, or a
// process-local one when the platform has no clipboard utility.
func SystemClipboard() Clipboard {
	if clipboard.Unsupported {
		return &MemoryClipboard{}
	}
	return systemClipboard{}
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// MemoryClipboard keeps the clipboard in memory.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// ReadAll implements Clipboard.
func (c *MemoryClipboard) ReadAll() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

// WriteAll implements Clipboard.
func (c *MemoryClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}
