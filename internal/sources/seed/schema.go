package seed

// File is the top-level structure of a jobs seed file.
type File struct {
	Jobs []Entry `yaml:"jobs"`
}

// Entry is one manually curated or generated job posting.
// Only title, company and location are required; everything else is
// an optional hint for the normalizer.
type Entry struct {
	ID          string `yaml:"id,omitempty"`
	Title       string `yaml:"title"`
	Company     string `yaml:"company"`
	Location    string `yaml:"location"`
	Description string `yaml:"description,omitempty"`
	Salary      string `yaml:"salary,omitempty"`
	URL         string `yaml:"url,omitempty"`
	Posted      string `yaml:"posted,omitempty"` // ex: 2026-08-01
	Category    string `yaml:"category,omitempty"`
	JobType     string `yaml:"type,omitempty"`
	Remote      *bool  `yaml:"remote,omitempty"`
	EntryLevel  *bool  `yaml:"entry_level,omitempty"`
	EmployerID  string `yaml:"employer_id,omitempty"`
}
