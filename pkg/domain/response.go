package domain

// Result is what a mode handler hands back to the view after a successful submit.
type Result struct {
	Mode    Mode
	Text    string
	Image   *UploadedImage
	History []ChatMessage
}

// Submission is one user action in a view: text for Chat and Troubleshoot, an image for the
// diagram explainers.
type Submission struct {
	Mode      Mode
	SessionID string
	Text      string
	Image     *UploadedImage
}
