// Package report renders submitted quiz results as PDF documents.
package report

import (
	"bytes"
	"fmt"

	"slidequiz/internal/domain"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	MIMEType = "application/pdf"
	FileName = "quiz_results.pdf"
)

type Config struct {
	PageSize     string
	MarginsMM    float64
	FontFamily   string
	PrimaryColor [3]int
}

// DefaultConfig is an A4 page with core Helvetica fonts.
func DefaultConfig() Config {
	return Config{
		PageSize:     "A4",
		MarginsMM:    15,
		FontFamily:   "Helvetica",
		PrimaryColor: [3]int{31, 56, 100},
	}
}

type Generator struct {
	cfg Config
}

func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// Title returns the report heading, e.g. "Medium Quiz Results".
func Title(difficulty domain.Difficulty) string {
	if difficulty == "" {
		return "Quiz Results"
	}
	return fmt.Sprintf("%s Quiz Results", cases.Title(language.English).String(string(difficulty)))
}

// Render writes result as a PDF: a heading with the score, then one block
// per question with the selected and correct answers.
func (g *Generator) Render(result *domain.QuizResult) ([]byte, error) {
	if result == nil {
		return nil, domain.NewInvalidInputError("quiz result is required")
	}

	pdf := fpdf.New("P", "mm", g.cfg.PageSize, "")
	pdf.SetMargins(g.cfg.MarginsMM, g.cfg.MarginsMM, g.cfg.MarginsMM)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := Title(result.Difficulty)
	pdf.SetTitle(title, false)
	pdf.SetCreator("slidequiz", false)
	pdf.AddPage()

	// ---------- heading ----------
	pdf.SetFont(g.cfg.FontFamily, "B", 22)
	pdf.SetTextColor(g.cfg.PrimaryColor[0], g.cfg.PrimaryColor[1], g.cfg.PrimaryColor[2])
	pdf.CellFormat(0, 15, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont(g.cfg.FontFamily, "", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Score: %d / %d", result.Score, result.Total), "", 1, "C", false, 0, "")
	pdf.SetFont(g.cfg.FontFamily, "", 10)
	pdf.CellFormat(0, 6, result.SubmittedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	// ---------- questions ----------
	pdf.SetTextColor(0, 0, 0)
	for i, item := range result.Items {
		pdf.SetFont(g.cfg.FontFamily, "B", 13)
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%d. %s", i+1, item.Question)), "", "L", false)

		pdf.SetFont(g.cfg.FontFamily, "", 12)
		selected := "(no answer)"
		if item.Selected != nil {
			selected = *item.Selected
		}
		mark := "Incorrect"
		if item.IsCorrect {
			mark = "Correct"
		}
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("Your answer: %s (%s)", selected, mark)), "", "L", false)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("Correct answer: %s", item.Correct)), "", "L", false)
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, domain.NewInternalError("failed to write quiz report", err)
	}
	return buf.Bytes(), nil
}
