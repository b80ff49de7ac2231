package entity

// Post is a blog article surfaced on the landing page. Trending posts are
// sourced from the AI integration and fall back to the static catalog when
// the upstream is unavailable.
type Post struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Date     string `json:"date"`
	Category string `json:"category"` // AI, Tech, Innovation
	Image    string `json:"image"`
	ReadTime string `json:"read_time"`
	URL      string `json:"url,omitempty"`
}
