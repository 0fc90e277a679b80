package llm

import "fmt"

// Unavailable is the demo-mode Provider used when no API key is
// configured. It never errors so the rest of the pipeline can be
// exercised without a backend.
type Unavailable struct{}

func (Unavailable) GetContext(userText, systemPrompt string) (string, error) {
	preview := userText
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}
	return fmt.Sprintf(`**DEMO MODE** - no API key configured

Text analyzed: %q

This text would be contextualized by the configured model.

To enable real responses:
1. Get an API key from your provider (e.g. https://console.groq.com)
2. Create a .env file with: GROQ_API_KEY=your-key-here
3. Restart the application`, preview), nil
}

func (Unavailable) DescribeImage(pngData []byte, prompt string) (string, error) {
	return "**DEMO MODE** - image analysis requires an API key.\n\nSet GROQ_API_KEY in your .env file and restart.", nil
}

func (Unavailable) Ping() error { return nil }
