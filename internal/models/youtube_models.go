package models

type YouTubeSearchResponse struct {
	Items []YouTubeSearchItem `json:"items"`
}

type YouTubeSearchItem struct {
	ID YouTubeVideoID `json:"id"`
}

type YouTubeVideoID struct {
	VideoID string `json:"videoId"`
}

type YouTubeCommentsResponse struct {
	Items         []YouTubeCommentThread `json:"items"`
	NextPageToken string                 `json:"nextPageToken"`
}

type YouTubeCommentThread struct {
	Snippet YouTubeCommentThreadSnippet `json:"snippet"`
}

type YouTubeCommentThreadSnippet struct {
	TopLevelComment YouTubeComment `json:"topLevelComment"`
}

type YouTubeComment struct {
	Snippet YouTubeCommentSnippet `json:"snippet"`
}

type YouTubeCommentSnippet struct {
	TextDisplay string `json:"textDisplay"`
}
