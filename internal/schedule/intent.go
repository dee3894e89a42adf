// Package schedule holds the scheduling-intent classifier and the
// normalizer that repairs model-produced schedule JSON into the strict
// shape the rest of the service works with.
package schedule

import "strings"

// schedulingKeywords is the fixed vocabulary used to decide whether a
// prompt is asking for a schedule. Any single hit classifies the prompt
// as a scheduling request; false positives are accepted.
var schedulingKeywords = []string{
	"schedule", "plan", "organize", "time", "calendar", "agenda",
	"routine", "timetable", "arrange", "allocate", "block",
	"morning", "afternoon", "evening", "today", "tomorrow",
	"week", "day", "hour", "minute", "appointment", "meeting",
}

// IsSchedulingRequest reports whether the prompt looks like a request
// for schedule creation. Case-insensitive substring match, no negation
// handling, no weighting.
func IsSchedulingRequest(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, kw := range schedulingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
