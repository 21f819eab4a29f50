// Package fallback answers when no completion model is reachable.
package fallback

import (
	"fmt"
	"strings"

	"zara/zara/utils/textutils"
)

const (
	// ModeSuffix is appended to every fallback reply.
	ModeSuffix = "\n\n*(Note: Running in Fallback Mode due to API error)*"

	// HighTrafficNotice replaces the fallback reply when the provider
	// rejected the turn for quota or rate limits.
	HighTrafficNotice = "⚠️ I'm currently experiencing high traffic and have hit my daily usage limits for AI generation. Please try again later or check your API key quotas."

	echoLen = 30
)

type rule struct {
	keywords []string
	reply    string
}

// Order is priority: the first rule with a matching keyword wins.
var rules = []rule{
	{
		keywords: []string{"hello", "hi"},
		reply:    "Hello! It's wonderful to meet you. I'm Zara, created by Sri. How are you feeling today? (Note: Currently using fallback mode - please check your Cerebras API key)",
	},
	{
		keywords: []string{"who are you", "your name"},
		reply:    "I'm Zara, a friendly and intelligent AI assistant created by Sri. I'm here to help you with anything from coding to emotional support. (Currently in fallback mode)",
	},
	{
		keywords: []string{"sri"},
		reply:    "Sri is my creator! He designed me to be helpful, emotionally aware, and professional.",
	},
	{
		keywords: []string{"help"},
		reply:    "I'd be happy to help! Whether it's technical coding, career advice, or just a chat, I'm here for you. What do you need assistance with?",
	},
	{
		keywords: []string{"python", "code", "programming", "function"},
		reply: "Here's a simple Python example for you:\n\n" +
			"```python\n" +
			"def greet(name):\n" +
			"    return f\"Hello, {name}! Welcome to coding!\"\n\n" +
			"# Usage\n" +
			"print(greet(\"User\"))\n" +
			"```\n\n" +
			"Let me know if you need something more specific! (Note: Full AI responses require valid Cerebras API key)",
	},
	{
		keywords: []string{"sad", "frustrated", "stressed", "upset"},
		reply:    "I'm so sorry to hear you're feeling that way. It's completely normal to have tough days. I'm here to listen if you want to talk about it, or we can focus on something else to help you reset. You're doing great. ❤️",
	},
}

// Respond maps the user's utterance to a canned reply. Keywords match as
// case-insensitive substrings.
func Respond(message string) string {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply
			}
		}
	}
	return fmt.Sprintf("That's interesting! I'm listening. Tell me more about '%s...' I'm currently in fallback mode, so for full AI capabilities, please ensure your Cerebras API key is properly configured.", textutils.Prefix(message, echoLen))
}
