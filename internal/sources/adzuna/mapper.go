package adzuna

import (
	"fmt"

	"github.com/hiredeck/hiredeck/internal/sources"
)

// mapResult adapts one Adzuna listing into the common raw-job shape.
// Adzuna contract fields map onto our job types; salary is rendered
// as a display range since Adzuna reports annual numbers.
func mapResult(r adzunaResult) sources.RawJob {
	return sources.RawJob{
		SourceID:    r.ID,
		Title:       r.Title,
		Company:     r.Company.DisplayName,
		Location:    r.Location.DisplayName,
		Description: r.Description,
		Salary:      formatSalary(r.SalaryMin, r.SalaryMax),
		URL:         r.RedirectURL,
		PostedDate:  r.Created,
		JobType:     mapContract(r.ContractTime, r.ContractType),
	}
}

func mapContract(contractTime, contractType string) string {
	switch {
	case contractTime == "part_time":
		return "part-time"
	case contractType == "contract":
		return "contract"
	case contractTime == "full_time":
		return "full-time"
	default:
		return "" // let the normalizer classify from the text
	}
}

func formatSalary(min, max float64) string {
	if min <= 0 && max <= 0 {
		return ""
	}
	if max <= 0 || min == max {
		return fmt.Sprintf("$%.0f", min)
	}
	if min <= 0 {
		return fmt.Sprintf("up to $%.0f", max)
	}
	return fmt.Sprintf("$%.0f - $%.0f", min, max)
}
