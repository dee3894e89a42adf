package models

// Schedule types accepted from the model.
const (
	ScheduleTypeDaily  = "daily"
	ScheduleTypeWeekly = "weekly"
	ScheduleTypeCustom = "custom"
)

// Event defaults applied when the model omits a field.
const (
	DefaultCategory  = "personal"
	DefaultPriority  = "medium"
	DefaultStartTime = "09:00"
	DefaultEndTime   = "10:00"
)

// ValidScheduleTypes enumerates the accepted schedule_type values.
var ValidScheduleTypes = map[string]bool{
	ScheduleTypeDaily:  true,
	ScheduleTypeWeekly: true,
	ScheduleTypeCustom: true,
}

// ValidCategories enumerates the accepted event categories.
var ValidCategories = map[string]bool{
	"work":      true,
	"personal":  true,
	"health":    true,
	"education": true,
	"social":    true,
}

// ValidPriorities enumerates the accepted event priorities.
var ValidPriorities = map[string]bool{
	"high":   true,
	"medium": true,
	"low":    true,
}

// ScheduleEvent is one time-boxed entry of a generated schedule.
type ScheduleEvent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// DateRange bounds a schedule, both dates in YYYY-MM-DD.
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Schedule is the structured output produced from a natural-language
// prompt. Event order is the model's output order.
type Schedule struct {
	ScheduleType string          `json:"schedule_type"`
	DateRange    DateRange       `json:"date_range"`
	Events       []ScheduleEvent `json:"events"`
	Suggestions  []string        `json:"suggestions"`
}
