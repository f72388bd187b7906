package engine

import (
	"strings"
	"sync"
	"time"
)

// FailureKind classifies the outcome of one backend call.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureQuota
	FailureOther
)

// quotaSignatures are matched against backend output and error text. The
// provider has no structured error channel at this boundary, so quota
// exhaustion is recognized from rate-limit wording in free text. This is a
// heuristic adapter and tolerates false positives.
var quotaSignatures = []string{
	" 429 ",
	"code: 429",
	"(429)",
	"exceeded your current quota",
	"rate limit",
	"rate limits",
	"resource_exhausted",
	"resource exhausted",
}

// ClassifyBackendResult maps one (text, err) pair from the backend to a
// FailureKind. Quota wording wins over generic errors so the circuit
// breaker trips even when the provider wraps the 429 in an error response.
func ClassifyBackendResult(text string, err error) FailureKind {
	if looksLikeQuota(text) {
		return FailureQuota
	}
	if err != nil {
		if looksLikeQuota(err.Error()) {
			return FailureQuota
		}
		return FailureOther
	}
	return FailureNone
}

func looksLikeQuota(text string) bool {
	t := strings.ToLower(text)
	for _, sig := range quotaSignatures {
		if strings.Contains(t, sig) {
			return true
		}
	}
	return false
}

// Governor throttles backend calls: a per-user cooldown keeps one chatty
// user from burning quota, and a single process-wide breaker turns the
// whole service conversationally offline for a window after any user trips
// the provider's quota.
type Governor struct {
	mu             sync.Mutex
	lastQuotaFail  time.Time
	userCooldown   time.Duration
	globalCooldown time.Duration
	now            func() time.Time
}

// NewGovernor creates a governor with the given cooldown windows.
func NewGovernor(userCooldown, globalCooldown time.Duration) *Governor {
	return &Governor{
		userCooldown:   userCooldown,
		globalCooldown: globalCooldown,
		now:            time.Now,
	}
}

// MayCall reports whether a backend call is currently permitted for a user
// whose last backend call happened at lastCall (zero if never).
func (g *Governor) MayCall(lastCall time.Time) bool {
	now := g.now()
	if !lastCall.IsZero() && now.Sub(lastCall) < g.userCooldown {
		return false
	}
	g.mu.Lock()
	fail := g.lastQuotaFail
	g.mu.Unlock()
	if !fail.IsZero() && now.Sub(fail) < g.globalCooldown {
		return false
	}
	return true
}

// RecordQuotaFailure trips the global breaker. Last writer wins; the window
// does not need to be precise.
func (g *Governor) RecordQuotaFailure() {
	g.mu.Lock()
	g.lastQuotaFail = g.now()
	g.mu.Unlock()
}

// QuotaSuppressed reports whether the global breaker is currently open.
func (g *Governor) QuotaSuppressed() bool {
	g.mu.Lock()
	fail := g.lastQuotaFail
	g.mu.Unlock()
	return !fail.IsZero() && g.now().Sub(fail) < g.globalCooldown
}
