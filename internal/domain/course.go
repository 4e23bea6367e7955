package domain

// RawItem is one course entry as produced by an ingestion source, before
// its duration has been interpreted.
type RawItem struct {
	Title    string
	Duration string
}

// CourseItem is a normalized unit of content to schedule.
type CourseItem struct {
	Index       int
	Title       string
	RawDuration string
	DurationMin float64
}
