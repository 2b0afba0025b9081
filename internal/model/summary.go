package model

import (
	"time"
)

// SummaryDay compares completed habits with the habits that were possible
// on a recorded day. Counts are floats to keep ratios client-side simple.
type SummaryDay struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Completed float64   `json:"completed"`
	Amount    float64   `json:"amount"`
}

type SummaryExport struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Timezone    string       `json:"timezone"`
	Days        []SummaryDay `json:"days"`
}

type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type DigestLine struct {
	Date      time.Time
	WeekDay   string
	Completed int
	Amount    int
	Percent   int
}

type Digest struct {
	Subject   string
	HTML      string
	Text      string
	From      time.Time
	To        time.Time
	Lines     []DigestLine
	Completed int
	Amount    int
}
