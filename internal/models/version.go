// ABOUTME: Version history and AI endpoint models for the Docs API.
// ABOUTME: Versions come from the S3-backed history store, hence etags.

package models

import "time"

// Version is one entry of a document's version history.
type Version struct {
	VersionID    string    `json:"version_id"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag"`
	IsLatest     bool      `json:"is_latest"`
}

// VersionList is the paginated version history response.
type VersionList struct {
	Versions            []Version `json:"versions"`
	Count               int       `json:"count"`
	IsTruncated         bool      `json:"is_truncated"`
	NextVersionIDMarker string    `json:"next_version_id_marker"`
}

// AI transform actions supported by the Docs backend.
const (
	AIActionPrompt    = "prompt"
	AIActionCorrect   = "correct"
	AIActionRephrase  = "rephrase"
	AIActionSummarize = "summarize"
	AIActionBeautify  = "beautify"
	AIActionEmojify   = "emojify"
)

// AITransformRequest asks the backend AI to rewrite text.
type AITransformRequest struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

// AITranslateRequest asks the backend AI to translate text.
type AITranslateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// AIResponse is the answer payload of both AI endpoints.
type AIResponse struct {
	Answer string `json:"answer"`
}

// ConvertRequest is the payload of the markdown conversion endpoint,
// which runs the editor's own converter server-side.
type ConvertRequest struct {
	Markdown string `json:"markdown"`
}

// ConvertResponse carries the converted content envelope.
type ConvertResponse struct {
	Content string `json:"content"`
}
