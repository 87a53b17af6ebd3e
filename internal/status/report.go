package status

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	redColorConstant    lipgloss.Color = "1"
	greenColorConstant  lipgloss.Color = "2"
	yellowColorConstant lipgloss.Color = "3"
	blueColorConstant   lipgloss.Color = "4"
)

const (
	bareCategoryLabelConstant         = "Bare Git Repositories"
	detachedHeadCategoryLabelConstant = "Repos in Detached HEAD State"
	uncommittedCategoryLabelConstant  = "Repos with Uncommitted Changes"
	untrackedCategoryLabelConstant    = "Repos with Untracked Files"
	noUpstreamCategoryLabelConstant   = "Repos with No Upstream Set"
	divergedCategoryLabelConstant     = "Repos Diverged from Upstream"
	unpushedCategoryLabelConstant     = "Repos with Unpushed Commits (Ahead)"
	behindCategoryLabelConstant       = "Repos Behind Upstream"
	cleanCategoryLabelConstant        = "Repos Up-to-Date and Tracking Remote"
)

const (
	reportIndentConstant                 = "  "
	annotationSeparatorConstant          = "  "
	divergedAnnotationTemplateConstant   = "(ahead: %d, behind: %d)"
	authorsAnnotationTemplateConstant    = "(Authors: %s)"
	unknownAuthorsPlaceholderConstant    = "Unknown author(s)"
	authorListSeparatorConstant          = ", "
	summaryHeadingConstant               = "Summary"
	divergedSummaryTemplateConstant      = "Diverged: %d"
	unpushedSummaryTemplateConstant      = "Unpushed (ahead): %d"
	otherProblemsSummaryTemplateConstant = "Other problems: %d"
	cleanSummaryTemplateConstant         = "Clean: %d"
	noProblemsDetectedMessageConstant    = "No problem repos detected."
)

type categoryPresentation struct {
	category StatusCategory
	label    string
	color    lipgloss.Color
}

// reportCategoryPresentations returns every category with its label and color
// in the fixed report display order.
func reportCategoryPresentations() []categoryPresentation {
	return []categoryPresentation{
		{category: StatusCategoryBare, label: bareCategoryLabelConstant, color: blueColorConstant},
		{category: StatusCategoryDetachedHead, label: detachedHeadCategoryLabelConstant, color: yellowColorConstant},
		{category: StatusCategoryUncommitted, label: uncommittedCategoryLabelConstant, color: redColorConstant},
		{category: StatusCategoryUntracked, label: untrackedCategoryLabelConstant, color: yellowColorConstant},
		{category: StatusCategoryNoUpstream, label: noUpstreamCategoryLabelConstant, color: blueColorConstant},
		{category: StatusCategoryDiverged, label: divergedCategoryLabelConstant, color: redColorConstant},
		{category: StatusCategoryUnpushed, label: unpushedCategoryLabelConstant, color: yellowColorConstant},
		{category: StatusCategoryBehind, label: behindCategoryLabelConstant, color: yellowColorConstant},
		{category: StatusCategoryClean, label: cleanCategoryLabelConstant, color: greenColorConstant},
	}
}

// reportStyles paints report fragments when color output is enabled.
type reportStyles struct {
	colorEnabled bool
}

func (styles reportStyles) paint(text string, color lipgloss.Color) string {
	if !styles.colorEnabled {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// ReportRenderer writes categorized scan results in a fixed display order.
type ReportRenderer struct {
	styles reportStyles
}

// NewReportRenderer constructs a renderer; disabling color yields plain text output.
func NewReportRenderer(colorEnabled bool) *ReportRenderer {
	return &ReportRenderer{styles: reportStyles{colorEnabled: colorEnabled}}
}

// Render writes the per-category listings followed by the summary block.
func (renderer *ReportRenderer) Render(writer io.Writer, result ScanResult, skipClean bool) {
	for _, presentation := range reportCategoryPresentations() {
		repositories := result.CategorizedRepositories[presentation.category]
		if len(repositories) == 0 {
			continue
		}
		if presentation.category == StatusCategoryClean && skipClean {
			continue
		}
		renderer.renderCategory(writer, presentation, repositories, result)
	}

	renderer.renderSummary(writer, result, skipClean)
}

func (renderer *ReportRenderer) renderCategory(writer io.Writer, presentation categoryPresentation, repositories []string, result ScanResult) {
	fmt.Fprintln(writer, renderer.styles.paint(presentation.label, presentation.color))

	sortedRepositories := append([]string{}, repositories...)
	sort.Strings(sortedRepositories)

	for _, repositoryPath := range sortedRepositories {
		line := reportIndentConstant + renderer.styles.paint(repositoryPath, presentation.color)

		switch presentation.category {
		case StatusCategoryDiverged:
			counts := result.DivergedCounts[repositoryPath]
			annotation := fmt.Sprintf(divergedAnnotationTemplateConstant, counts.Ahead, counts.Behind)
			line += annotationSeparatorConstant + renderer.styles.paint(annotation, yellowColorConstant)
		case StatusCategoryUnpushed:
			annotation := fmt.Sprintf(authorsAnnotationTemplateConstant, formatAuthorList(result.UnpushedAuthors[repositoryPath]))
			line += annotationSeparatorConstant + renderer.styles.paint(annotation, yellowColorConstant)
		}

		fmt.Fprintln(writer, line)
	}
}

func (renderer *ReportRenderer) renderSummary(writer io.Writer, result ScanResult, skipClean bool) {
	divergedCount := len(result.CategorizedRepositories[StatusCategoryDiverged])
	unpushedCount := len(result.CategorizedRepositories[StatusCategoryUnpushed])

	otherProblemCount := 0
	for category, repositories := range result.CategorizedRepositories {
		switch category {
		case StatusCategoryDiverged, StatusCategoryUnpushed, StatusCategoryClean:
			continue
		}
		otherProblemCount += len(repositories)
	}

	fmt.Fprintln(writer)
	fmt.Fprintln(writer, renderer.styles.paint(summaryHeadingConstant, blueColorConstant))

	if divergedCount > 0 {
		fmt.Fprintln(writer, reportIndentConstant+renderer.styles.paint(fmt.Sprintf(divergedSummaryTemplateConstant, divergedCount), redColorConstant))
	}
	if unpushedCount > 0 {
		fmt.Fprintln(writer, reportIndentConstant+renderer.styles.paint(fmt.Sprintf(unpushedSummaryTemplateConstant, unpushedCount), yellowColorConstant))
	}
	if otherProblemCount > 0 {
		fmt.Fprintln(writer, reportIndentConstant+renderer.styles.paint(fmt.Sprintf(otherProblemsSummaryTemplateConstant, otherProblemCount), redColorConstant))
	}
	if divergedCount == 0 && unpushedCount == 0 && otherProblemCount == 0 {
		fmt.Fprintln(writer, reportIndentConstant+renderer.styles.paint(noProblemsDetectedMessageConstant, greenColorConstant))
	}

	cleanCount := len(result.CategorizedRepositories[StatusCategoryClean])
	if !skipClean && cleanCount > 0 {
		fmt.Fprintln(writer, reportIndentConstant+renderer.styles.paint(fmt.Sprintf(cleanSummaryTemplateConstant, cleanCount), greenColorConstant))
	}
}

func formatAuthorList(authors []string) string {
	trimmedAuthors := make([]string, 0, len(authors))
	for _, author := range authors {
		trimmedAuthor := strings.TrimSpace(author)
		if len(trimmedAuthor) == 0 {
			continue
		}
		trimmedAuthors = append(trimmedAuthors, trimmedAuthor)
	}

	if len(trimmedAuthors) == 0 {
		return unknownAuthorsPlaceholderConstant
	}

	sort.Strings(trimmedAuthors)
	return strings.Join(trimmedAuthors, authorListSeparatorConstant)
}
