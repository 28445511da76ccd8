// ABOUTME: Terminal UI formatting for docs-mcp output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"

	"github.com/harper/docs-mcp/internal/models"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func FormatDocumentListItem(doc *models.ListDocument) string {
	var sb strings.Builder

	title := doc.Title
	if title == "" {
		title = "(untitled)"
	}
	marker := " "
	if doc.IsFavorite {
		marker = yellow("★")
	}
	indent := strings.Repeat("  ", max(doc.Depth-1, 0))
	sb.WriteString(fmt.Sprintf("  %s %s%s  %s\n", marker, indent, bold(title), faint(doc.ID.String()[:8])))

	details := []string{
		fmt.Sprintf("updated %s", doc.UpdatedAt.Format("2006-01-02 15:04")),
	}
	if doc.LinkReach != models.LinkReachRestricted {
		details = append(details, doc.LinkReach)
	}
	if doc.NumChild > 0 {
		details = append(details, fmt.Sprintf("%d children", doc.NumChild))
	}
	sb.WriteString(fmt.Sprintf("     %s%s\n", indent, faint(strings.Join(details, " · "))))

	return sb.String()
}

func FormatDocumentHeader(doc *models.Document) string {
	var sb strings.Builder

	title := doc.Title
	if title == "" {
		title = "(untitled)"
	}
	sb.WriteString(fmt.Sprintf("%s\n", bold(title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(doc.ID.String())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(doc.CreatedAt.Format("2006-01-02 15:04"))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(doc.UpdatedAt.Format("2006-01-02 15:04"))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Sharing:"), cyan(doc.LinkReach)))
	if len(doc.UserRoles) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Roles:"), cyan(strings.Join(doc.UserRoles, ", "))))
	}

	sb.WriteString(Separator())
	return sb.String()
}

func FormatContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		// Fallback to raw content if rendering fails
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatVersionListItem(v *models.Version) string {
	latest := ""
	if v.IsLatest {
		latest = cyan(" (latest)")
	}
	return fmt.Sprintf("  %s  %s%s\n",
		faint(v.LastModified.Format("2006-01-02 15:04:05")),
		v.VersionID,
		latest)
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
