// Package openai implements the ai service contracts against
// OpenAI-compatible chat APIs (OpenAI, Gemini's OpenAI endpoint, Ollama,
// LocalAI, vLLM).
package openai
