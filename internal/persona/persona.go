package persona

import "strings"

// The persona set is closed and defined at process start. Vocabularies are
// matched by case-insensitive substring containment, so multi-word entries
// like "high refresh rate" work without tokenization.
const (
	Gamers          = "Gamers"
	Students        = "Students"
	ContentCreators = "Content Creators"
	CasualUsers     = "Casual Users"
	Programmers     = "Programmers / Engineers"
)

var Keywords = map[string][]string{
	Gamers: {
		"fps", "game", "gaming", "gpu", "twitch", "stream", "fortnite",
		"csgo", "valorant", "esports", "high refresh rate", "overclock",
		"mmorpg", "low latency", "ray tracing",
	},
	Students: {
		"study", "school", "college", "assignment", "homework", "lecture",
		"project", "exam", "class", "research", "zoom", "online class",
		"notes", "presentation", "group work", "pdf", "writing", "report",
	},
	ContentCreators: {
		"youtube", "editing", "video", "render", "streaming", "photoshop",
		"premiere", "vlog", "after effects", "color grading", "audio mixing",
		"graphic tablet", "1080p", "4k", "animation", "creative cloud",
	},
	CasualUsers: {
		"internet", "browsing", "movies", "netflix", "social media", "web",
		"youtube", "watching", "facebook", "instagram", "twitter", "spotify",
		"podcast", "email", "shopping",
	},
	Programmers: {
		"coding", "programming", "python", "java", "software", "developer",
		"debug", "compile", "engineer", "data", "linux", "git", "docker",
		"algorithm", "machine learning", "api", "script",
	},
}

// All returns the persona names in a stable order.
func All() []string {
	return []string{Gamers, Students, ContentCreators, CasualUsers, Programmers}
}

// Classify buckets reviews by persona. A review lands in every persona
// whose vocabulary it mentions; one matching both "coding" and "gaming"
// belongs to both pools. Reviews matching nothing are excluded from all
// groups but still count toward the merged-pool total upstream.
func Classify(reviews []string, keywords map[string][]string) map[string][]string {
	categorized := make(map[string][]string, len(keywords))
	for name := range keywords {
		categorized[name] = nil
	}

	for _, review := range reviews {
		lower := strings.ToLower(review)
		for name, words := range keywords {
			for _, word := range words {
				if strings.Contains(lower, word) {
					categorized[name] = append(categorized[name], review)
					break
				}
			}
		}
	}
	return categorized
}
