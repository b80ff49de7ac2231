// Package content holds the static fallbacks served when the AI integration
// is unavailable. The landing page must never go blank because an upstream
// model is down.
package content

import "github.com/bloomview/bloomview-api/internal/entity"

// AssistantFallbackReply is returned when the assistant upstream errors out.
const AssistantFallbackReply = "I'm sorry, I'm having a bit of trouble connecting to my knowledge base. " +
	"Please reach out to our human team directly via the contact form!"

// FallbackPosts is the curated blog catalog shown when live trending posts
// cannot be sourced.
var FallbackPosts = []entity.Post{
	{
		ID:       "static-1",
		Title:    "The Impact of Generative AI on Global Education",
		Excerpt:  "How AI tools are reshaping the way international students prepare for their academic journeys.",
		Date:     "2024-11-04",
		Category: "AI",
		Image:    "https://images.unsplash.com/photo-1620712943543-bcc4688e7485",
		ReadTime: "5 min read",
	},
	{
		ID:       "static-2",
		Title:    "Cloud Computing Trends for Small Businesses",
		Excerpt:  "Leveraging modern IT infrastructure to scale operations without breaking the bank.",
		Date:     "2024-10-21",
		Category: "Tech",
		Image:    "https://images.unsplash.com/photo-1544197150-b99a580bb7a8",
		ReadTime: "4 min read",
	},
	{
		ID:       "static-3",
		Title:    "Preparing for a Tech Career Abroad",
		Excerpt:  "A comprehensive guide for students looking to study and work in the UK and Canada tech sectors.",
		Date:     "2024-10-02",
		Category: "Innovation",
		Image:    "https://images.unsplash.com/photo-1523240795612-9a054b0db644",
		ReadTime: "6 min read",
	},
}
