// Package ai defines the external intelligence contracts the system
// consumes: a knowledge-lookup Searcher for enriching variant records and
// a Generator for conversational replies and session titles.
//
// Concrete providers live in subpackages (openai for OpenAI-compatible
// services, mock for tests). Throttling rejections from any provider are
// reported as *ThrottleError so callers can honor server-suggested retry
// delays.
package ai
