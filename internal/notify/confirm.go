package notify

import (
	"fmt"
	"sync"
)

// PromptKind styles a confirmation prompt.
type PromptKind string

// Prompt kinds.
const (
	PromptDanger  PromptKind = "danger"
	PromptInfo    PromptKind = "info"
	PromptSuccess PromptKind = "success"
)

// Prompt is a generalized yes/no confirmation shown before destructive or
// state-changing actions.
type Prompt struct {
	Title     string
	Message   string
	Kind      PromptKind
	OnConfirm func()
}

// Confirmer holds at most one live prompt at a time. Confirming invokes the
// callback then closes; cancelling closes without invoking it.
type Confirmer struct {
	mu     sync.Mutex
	active *Prompt
}

// NewConfirmer creates a Confirmer with no live prompt.
func NewConfirmer() *Confirmer {
	return &Confirmer{}
}

// Show makes the prompt live. Returns an error when another prompt is
// already live.
func (c *Confirmer) Show(prompt Prompt) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		return fmt.Errorf("a confirmation prompt is already open")
	}
	if prompt.Kind == "" {
		prompt.Kind = PromptInfo
	}
	c.active = &prompt
	return nil
}

// Active returns the live prompt, or nil.
func (c *Confirmer) Active() *Prompt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Confirm closes the live prompt and runs its callback. No-op without a live
// prompt.
func (c *Confirmer) Confirm() {
	c.mu.Lock()
	prompt := c.active
	c.active = nil
	c.mu.Unlock()

	if prompt != nil && prompt.OnConfirm != nil {
		prompt.OnConfirm()
	}
}

// Cancel closes the live prompt without running the callback. Covers both an
// explicit cancel and an outside dismiss.
func (c *Confirmer) Cancel() {
	c.mu.Lock()
	c.active = nil
	c.mu.Unlock()
}
