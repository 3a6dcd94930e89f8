// Copyright 2025 Variant Lab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package annotate

import (
	"context"
	"sync"
	"time"
)

// rateGate spaces outgoing lookups by a minimum interval. It is shared by
// every task of every batch running through the same Annotator, so the
// spacing holds process-wide across concurrent invocations.
type rateGate struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

func newRateGate(interval time.Duration) *rateGate {
	return &rateGate{interval: interval}
}

// wait reserves the next free call slot and blocks until it arrives.
// Slots are handed out in reservation order; the first caller proceeds
// immediately. A reservation whose wait is cancelled is handed back, so
// a dead batch does not delay callers that come after it.
func (g *rateGate) wait(ctx context.Context) error {
	if g.interval <= 0 {
		return ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	now := time.Now()
	slot := g.next
	if slot.Before(now) {
		slot = now
	}
	g.next = slot.Add(g.interval)
	g.mu.Unlock()

	if err := sleepUntil(ctx, slot); err != nil {
		g.mu.Lock()
		g.next = g.next.Add(-g.interval)
		g.mu.Unlock()
		return err
	}
	return nil
}

// sleepUntil blocks until the deadline or context cancellation.
func sleepUntil(ctx context.Context, deadline time.Time) error {
	return sleepFor(ctx, time.Until(deadline))
}

// sleepFor blocks for d with context awareness.
func sleepFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
