package voice

import "strings"

// Category buckets a provider call failure for retry handling.
type Category string

const (
	CategoryTransient  Category = "transient"
	CategoryCapacity   Category = "capacity"
	CategoryAuth       Category = "auth"
	CategoryUserHangup Category = "user_hangup"
	CategoryFatal      Category = "fatal"
)

// Classification is the outcome for one provider error.
type Classification struct {
	Category  Category
	Retryable bool
}

// Ordered by specificity; first match wins.
var errorPatterns = []struct {
	substr string
	result Classification
}{
	{"user_hangup", Classification{CategoryUserHangup, false}},
	{"call.hangup", Classification{CategoryUserHangup, false}},
	{"hangup", Classification{CategoryUserHangup, false}},
	{"caller disconnected", Classification{CategoryUserHangup, false}},

	{"rate limit", Classification{CategoryCapacity, true}},
	{"too many requests", Classification{CategoryCapacity, true}},
	{"429", Classification{CategoryCapacity, true}},
	{"concurrency limit", Classification{CategoryCapacity, true}},
	{"capacity", Classification{CategoryCapacity, true}},

	{"unauthorized", Classification{CategoryAuth, false}},
	{"invalid api key", Classification{CategoryAuth, false}},
	{"authentication", Classification{CategoryAuth, false}},
	{"forbidden", Classification{CategoryAuth, false}},
	{"401", Classification{CategoryAuth, false}},
	{"403", Classification{CategoryAuth, false}},

	{"timeout", Classification{CategoryTransient, true}},
	{"timed out", Classification{CategoryTransient, true}},
	{"connection reset", Classification{CategoryTransient, true}},
	{"connection refused", Classification{CategoryTransient, true}},
	{"temporarily unavailable", Classification{CategoryTransient, true}},
	{"service unavailable", Classification{CategoryTransient, true}},
	{"502", Classification{CategoryTransient, true}},
	{"503", Classification{CategoryTransient, true}},
	{"504", Classification{CategoryTransient, true}},
}

// Classify maps a provider error onto a retry category. Unrecognized errors
// are fatal, not retried.
func Classify(err error) Classification {
	if err == nil {
		return Classification{CategoryFatal, false}
	}
	msg := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(msg, p.substr) {
			return p.result
		}
	}
	return Classification{CategoryFatal, false}
}
