// Package record defines the normalized portfolio record model and the
// sources that supply records.
package record

// Record categories. The set is open; these are the ones the portfolio
// store ships today.
const (
	CategoryProject     = "project"
	CategoryPost        = "post"
	CategorySkill       = "skill"
	CategoryService     = "service"
	CategoryTestimonial = "testimonial"
	CategoryAchievement = "achievement"
)

// Record is a normalized portfolio unit. ID is stable across refreshes and
// uniquely identifies the record within one index generation.
type Record struct {
	ID         string         `json:"id"`
	Category   string         `json:"type"`
	Title      string         `json:"title"`
	Body       string         `json:"content"`
	Tags       []string       `json:"tags"`
	Attributes map[string]any `json:"metadata,omitempty"`
}

// Raw is a source-specific row before normalization. Sources fill the common
// fields and fold everything category-specific into Extra.
type Raw struct {
	Category string
	SourceID string
	Title    string
	Body     string
	Tags     []string
	Extra    map[string]any
}
