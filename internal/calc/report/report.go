// Package report renders sized duct segments as PDF and Excel documents.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"Airduct/internal/calc/batch"
)

const DefaultTitle = "Duct Sizing Report"

type Report struct {
	Title    string             `json:"title"`
	Project  string             `json:"project"`
	Author   string             `json:"author"`
	Notes    string             `json:"notes"`
	Date     time.Time          `json:"date"`
	Segments []batch.ItemResult `json:"segments"`
}

func (r Report) title() string {
	if r.Title == "" {
		return DefaultTitle
	}
	return r.Title
}

func (r Report) date() time.Time {
	if r.Date.IsZero() {
		return time.Now()
	}
	return r.Date
}

// round3 rounds half away from zero to three decimals.
func round3(v float64) float64 {
	return decimal.NewFromFloat(v).Round(3).InexactFloat64()
}

func fmt3(v float64) string {
	return decimal.NewFromFloat(v).Round(3).String()
}

func fmt2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func governor(r batch.ItemResult) string {
	if r.Result == nil {
		return ""
	}
	if r.Result.WorstCase != nil {
		return string(r.Result.WorstCase.GovernedBy)
	}
	return string(r.Result.Mode)
}
