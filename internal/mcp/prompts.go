// ABOUTME: MCP prompts for common document workflows.
// ABOUTME: Pre-configured prompts guiding agents through the docs tools.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-document",
		Description: "Summarize a document and write the summary back into it",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "document_id",
				Description: "UUID of the document to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizeDocumentPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "translate-document",
		Description: "Translate a document into another language",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "document_id",
				Description: "UUID of the document to translate",
				Required:    true,
			},
			{
				Name:        "language",
				Description: "Target language code (e.g. 'fr', 'en')",
				Required:    true,
			},
		},
	}, s.getTranslateDocumentPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "draft-document",
		Description: "Draft a new structured document on a topic",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "topic",
				Description: "What the document should cover",
				Required:    true,
			},
		},
	}, s.getDraftDocumentPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "review-sharing",
		Description: "Review who has access to a document and suggest cleanups",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "document_id",
				Description: "UUID of the document to review",
				Required:    true,
			},
		},
	}, s.getReviewSharingPrompt)
}

func promptResult(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}
}

func (s *Server) getSummarizeDocumentPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	documentID, ok := req.Params.Arguments["document_id"]
	if !ok || documentID == "" {
		return nil, fmt.Errorf("document_id argument is required")
	}

	template := fmt.Sprintf(`Please summarize the document with ID: %s

1. Use the docs_get_document_content tool to read the document
2. Create a concise summary highlighting:
   - Main topic or theme
   - Key points or decisions
   - Open questions or action items
3. Use the docs_ai_transform tool with action "summarize" if you want
   the backend's own summary to compare against
4. Use the docs_update_document_content tool (format "markdown") to put
   the summary at the top of the document, keeping the original text below`, documentID)

	return promptResult(template), nil
}

func (s *Server) getTranslateDocumentPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	documentID, ok := req.Params.Arguments["document_id"]
	if !ok || documentID == "" {
		return nil, fmt.Errorf("document_id argument is required")
	}
	language, ok := req.Params.Arguments["language"]
	if !ok || language == "" {
		return nil, fmt.Errorf("language argument is required")
	}

	template := fmt.Sprintf(`Please translate document %s into "%s".

1. Use the docs_get_document_content tool to read the current text
2. Use the docs_ai_translate tool with the text and language "%s"
3. Review the translation for obvious errors
4. Use the docs_update_document_content tool (format "markdown") to
   replace the document content with the translation`, documentID, language, language)

	return promptResult(template), nil
}

func (s *Server) getDraftDocumentPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic, ok := req.Params.Arguments["topic"]
	if !ok || topic == "" {
		topic = "the requested topic"
	}

	template := fmt.Sprintf(`Draft a new document about: %s

Structure the document with:

# [Title]

## Context
[Why this document exists]

## Details
[The substance, in short sections]

## Next Steps
[What should happen next]

Use the docs_create_document tool with format "markdown" to create it,
then report the new document's ID and title.`, topic)

	return promptResult(template), nil
}

func (s *Server) getReviewSharingPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	documentID, ok := req.Params.Arguments["document_id"]
	if !ok || documentID == "" {
		return nil, fmt.Errorf("document_id argument is required")
	}

	template := fmt.Sprintf(`Review the sharing of document %s.

1. Use the docs_list_accesses tool to see who has which role
2. Use the docs_list_invitations tool to see pending invitations
3. Flag anything surprising: owners who should be editors, stale
   invitations, or broad roles on sensitive content
4. Suggest concrete changes, naming the access IDs to update or revoke`, documentID)

	return promptResult(template), nil
}
