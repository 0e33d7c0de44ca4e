package domain

import "strings"

// Classification is keyword-driven: each concern is an ordered rule
// table scanned against the lowercased posting text. First hit wins,
// so more specific labels must come before generic ones. Keeping the
// rules as data means they are testable and extensible without
// touching the normalizer's control flow.

// CategoryRule maps a set of keywords to a category label.
type CategoryRule struct {
	Label    string
	Keywords []string
}

// DefaultCategory is assigned when no category rule matches.
const DefaultCategory = "General"

// CategoryRules is scanned in order against title+description.
var CategoryRules = []CategoryRule{
	{Label: "Customer Service", Keywords: []string{"customer service", "customer support", "call center", "help desk"}},
	{Label: "Marketing", Keywords: []string{"marketing", "seo", "social media", "content strategist", "brand"}},
	{Label: "Sales", Keywords: []string{"sales", "account executive", "business development"}},
	{Label: "Engineering", Keywords: []string{"engineer", "developer", "software", "devops", "programmer"}},
	{Label: "Design", Keywords: []string{"designer", "design", "ux", "ui"}},
	{Label: "Finance", Keywords: []string{"accountant", "accounting", "finance", "bookkeep", "payroll"}},
	{Label: "Healthcare", Keywords: []string{"nurse", "medical", "healthcare", "clinical", "caregiver"}},
	{Label: "Education", Keywords: []string{"teacher", "tutor", "instructor", "education"}},
	{Label: "Warehouse", Keywords: []string{"warehouse", "forklift", "picker", "packer", "fulfillment"}},
	{Label: "Food Service", Keywords: []string{"cook", "barista", "server", "restaurant", "food service"}},
	{Label: "Retail", Keywords: []string{"cashier", "retail", "store associate", "stock associate"}},
	{Label: "Administrative", Keywords: []string{"administrative", "receptionist", "office assistant", "data entry", "clerk"}},
	{Label: "Transportation", Keywords: []string{"driver", "delivery", "courier", "cdl"}},
}

// jobTypeRules is scanned in order; anything unmatched is full-time.
var jobTypeRules = []CategoryRule{
	{Label: "internship", Keywords: []string{"internship", "intern "}},
	{Label: "part-time", Keywords: []string{"part-time", "part time"}},
	{Label: "contract", Keywords: []string{"contract", "contractor", "temporary"}},
	{Label: "freelance", Keywords: []string{"freelance", "freelancer", "gig "}},
}

// DefaultJobType is assigned when no job type rule matches.
const DefaultJobType = "full-time"

var remoteKeywords = []string{
	"remote", "work from home", "telecommute", "virtual",
}

var entryLevelKeywords = []string{
	"entry level", "entry-level", "junior", "intern", "trainee",
	"new grad", "0-1 years", "0-2 years", "no experience", "will train",
}

// ClassifyCategory scans title+description and returns the first
// matching category label, or DefaultCategory.
func ClassifyCategory(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, rule := range CategoryRules {
		if containsAny(text, rule.Keywords) {
			return rule.Label
		}
	}
	return DefaultCategory
}

// ClassifyJobType scans title+description for an employment type,
// defaulting to full-time.
func ClassifyJobType(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, rule := range jobTypeRules {
		if containsAny(text, rule.Keywords) {
			return rule.Label
		}
	}
	return DefaultJobType
}

// IsRemote scans title+description+location for remote-work markers.
func IsRemote(title, description, location string) bool {
	text := strings.ToLower(title + " " + description + " " + location)
	return containsAny(text, remoteKeywords)
}

// IsEntryLevel scans title+description for entry-level markers.
func IsEntryLevel(title, description string) bool {
	text := strings.ToLower(title + " " + description)
	return containsAny(text, entryLevelKeywords)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
