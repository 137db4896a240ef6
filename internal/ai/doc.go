// Package ai provides the model backend abstraction for the lingopal
// application. It normalizes a single "ask the model" call across two
// backends: the Gemini API (structured output, web search grounding,
// vision) and any OpenAI-compatible chat completion endpoint. Domain
// operations build a Request and never branch on provider identity.
package ai
