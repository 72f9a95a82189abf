package models

// Category is the single classification assigned to every generated post.
type Category string

const (
	CategoryJobs         Category = "Jobs"
	CategoryResearch     Category = "Research"
	CategoryFellowships  Category = "Fellowships"
	CategoryScholarships Category = "Scholarships"
	CategoryGrants       Category = "Grants"
	CategoryExams        Category = "Exams"
	CategoryEvents       Category = "Events"
	CategoryGuidance     Category = "Guidance"
	CategoryWarnings     Category = "Warnings"
	CategoryStartups     Category = "Startups"
	CategoryPolicy       Category = "Policy"
)

// IsJobLike reports whether posts of this category carry job_details.
func (c Category) IsJobLike() bool {
	return c == CategoryJobs || c == CategoryResearch
}

// JobDetails holds the normalized listing fields. Every value is a verbatim
// substring of the input or one of the generic placeholders.
type JobDetails struct {
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	JobType         string   `json:"job_type,omitempty"`
	SalaryRange     string   `json:"salary_range,omitempty"`
	ApplicationLink string   `json:"application_link,omitempty"`
	Tags            []string `json:"tags"`
	Deadline        string   `json:"deadline,omitempty"`
	Contact         string   `json:"contact,omitempty"`
}

// GeneratedPost is the engine's output contract.
type GeneratedPost struct {
	Title      string      `json:"title"`
	Slug       string      `json:"slug"`
	Excerpt    string      `json:"excerpt"`
	Content    string      `json:"content"`
	Category   Category    `json:"category"`
	Language   string      `json:"language,omitempty"`
	JobDetails *JobDetails `json:"job_details,omitempty"`
}
