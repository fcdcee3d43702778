// Package ai defines the AI collaborators that consume scoring results.
package ai

import (
	"context"

	"github.com/spigell/rolecolor/internal/scoring"
)

// RewriteRequest asks for a professional summary written in the tone of the
// dominant RoleColor.
type RewriteRequest struct {
	ResumeText string
	Result     *scoring.Result
	// OriginalSummary is optional; when set the model enhances it instead of
	// writing from scratch.
	OriginalSummary string
}

// RefineRequest asks to revise an existing summary from user feedback.
type RefineRequest struct {
	ResumeText     string
	Result         *scoring.Result
	CurrentSummary string
	Feedback       string
}

// Rewriter produces text from a scored resume.
type Rewriter interface {
	Rewrite(ctx context.Context, req RewriteRequest) (string, error)
	Refine(ctx context.Context, req RefineRequest) (string, error)
	Explain(ctx context.Context, result *scoring.Result) (string, error)
}
