// Package annotate enriches variant records with knowledge-lookup summaries.
//
// The Annotator fans one lookup out per record over a bounded worker pool,
// spaces calls by a minimum interval to stay inside remote rate budgets,
// and retries a throttled lookup exactly once using the server-suggested
// delay. Results always come back in input order regardless of completion
// order. A lookup failure that survives the retry aborts the whole batch:
// callers get either every record annotated or a single aggregate error,
// never a silent partial result.
package annotate
