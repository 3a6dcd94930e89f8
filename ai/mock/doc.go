// Package mock provides test doubles for the ai service contracts.
//
// The mocks are instrumented: they count calls, track how many lookups are
// in flight at once, and accept injected behavior via function fields.
// This lets tests assert concurrency bounds and exercise throttling paths
// without a live provider.
package mock
