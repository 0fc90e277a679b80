// Package prompt loads the system prompt templates the model is driven
// with. Templates are plain markdown files, one per purpose, carrying a
// placeholder token that the captured text is substituted into.
package prompt

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const (
	// SystemPromptName is the required explanation prompt.
	SystemPromptName = "subtitle_explainer"
	// ImagePromptName is the optional vision-analysis prompt.
	ImagePromptName = "subtitle_image_explainer"

	primaryPlaceholder  = "{subtitle_text}"
	fallbackPlaceholder = "{text}"
)

// Manager serves prompt templates from a directory. The main system
// prompt is loaded eagerly; a missing file there is a fatal
// configuration error surfaced by NewManager.
type Manager struct {
	dir          string
	systemPrompt string
}

// NewManager loads the required system prompt from dir.
func NewManager(dir string) (*Manager, error) {
	m := &Manager{dir: dir}
	template, ok := m.Load(SystemPromptName)
	if !ok {
		return nil, fmt.Errorf("required prompt file not found: %s", m.path(SystemPromptName))
	}
	m.systemPrompt = template
	log.Printf("Loaded prompt from: %s.md", SystemPromptName)
	return m, nil
}

// Load reads a named template. Missing files are reported with ok=false,
// not an error; the caller decides whether that is fatal.
func (m *Manager) Load(name string) (string, bool) {
	data, err := os.ReadFile(m.path(name))
	if err != nil {
		log.Printf("Prompt file not found: %s (%v)", m.path(name), err)
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// Reload re-reads the system prompt from disk.
func (m *Manager) Reload() error {
	template, ok := m.Load(SystemPromptName)
	if !ok {
		return fmt.Errorf("required prompt file not found: %s", m.path(SystemPromptName))
	}
	m.systemPrompt = template
	log.Printf("Prompt reloaded")
	return nil
}

// PromptForText returns the system prompt with text substituted in.
func (m *Manager) PromptForText(text string) string {
	return FormatForText(m.systemPrompt, text)
}

// ImagePrompt returns the vision-analysis prompt. Like the system
// prompt, it is fatal-if-missing once requested.
func (m *Manager) ImagePrompt() (string, error) {
	template, ok := m.Load(ImagePromptName)
	if !ok {
		return "", fmt.Errorf("image prompt file not found: %s", m.path(ImagePromptName))
	}
	return template, nil
}

func (m *Manager) path(name string) string {
	return filepath.Join(m.dir, name+".md")
}

// FormatForText substitutes text into the first recognized placeholder.
// Templates without a placeholder get the text appended as a delimited
// suffix rather than failing the cycle.
func FormatForText(template, text string) string {
	if strings.Contains(template, primaryPlaceholder) {
		return strings.ReplaceAll(template, primaryPlaceholder, text)
	}
	if strings.Contains(template, fallbackPlaceholder) {
		return strings.ReplaceAll(template, fallbackPlaceholder, text)
	}
	return template + "\n\nText to analyze: " + text
}
