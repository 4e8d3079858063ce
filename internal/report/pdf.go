// Package report renders a classification as a downloadable PDF and as
// chart-ready bar data.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"creator-quiz/internal/domain"
)

var ErrEmptyReport = errors.New("report has no classification")

// Bar is one dimension of the score chart.
type Bar struct {
	Dimension domain.Dimension `json:"dimension"`
	Score     float64          `json:"score"`
	Max       float64          `json:"max"`
}

// Report is everything the PDF needs for one respondent.
type Report struct {
	UserID      string
	Text        domain.ReportText
	Bars        []Bar
	Strengths   []domain.Dimension
	GeneratedAt time.Time
}

// Bars returns the normalized scores in dimension order on the 0..displayMax scale.
func Bars(cl domain.Classification, displayMax float64) []Bar {
	bars := make([]Bar, 0, len(cl.Dimensions))
	for _, d := range cl.Dimensions {
		bars = append(bars, Bar{Dimension: d, Score: cl.Normalized[d], Max: displayMax})
	}
	return bars
}

// New builds a Report from a classification and its display text.
func New(userID string, cl domain.Classification, text domain.ReportText, displayMax float64, at time.Time) Report {
	return Report{
		UserID:      userID,
		Text:        text,
		Bars:        Bars(cl, displayMax),
		Strengths:   append([]domain.Dimension(nil), cl.Strengths...),
		GeneratedAt: at,
	}
}

// Filename is the attachment name offered to the browser.
func Filename(userID string) string {
	short := userID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("creator_report_%s.pdf", short)
}

const (
	pageMargin = 18.0
	barHeight  = 6.0
	labelWidth = 40.0
)

// Render writes rep as an A4 PDF to w.
func Render(w io.Writer, rep Report) error {
	if rep.Text.Primary == "" {
		return ErrEmptyReport
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Creator Type Report", true)
	pdf.SetCreator("creator-quiz", true)
	if !rep.GeneratedAt.IsZero() {
		pdf.SetCreationDate(rep.GeneratedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 2*pageMargin

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(contentWidth, 12, tr("Creator Type Report"), "", 1, "C", false, 0, "")
	if !rep.GeneratedAt.IsZero() {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(contentWidth, 5, rep.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(6)

	// Tipo principal.
	header := rep.Text.Name
	if rep.Text.Icon != "" {
		header = rep.Text.Icon + "  " + header
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentWidth, 9, tr(header), "", 1, "L", false, 0, "")
	if rep.Text.Description != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(contentWidth, 6, tr(rep.Text.Description), "", "L", false)
	}
	pdf.Ln(4)

	// Sub-tipo.
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentWidth, 8, tr(rep.Text.SubName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, p := range rep.Text.Paragraphs {
		pdf.MultiCell(contentWidth, 6, tr(p), "", "L", false)
		pdf.Ln(2)
	}
	if len(rep.Text.Suitability) > 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(contentWidth, 6, tr("Suited to: "+strings.Join(rep.Text.Suitability, ", ")), "", "L", false)
	}
	pdf.Ln(6)

	if len(rep.Bars) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(contentWidth, 8, tr("Trait scores"), "", 1, "L", false, 0, "")
		drawBars(pdf, tr, rep.Bars, contentWidth)
	}

	if len(rep.Strengths) > 0 {
		names := make([]string, len(rep.Strengths))
		for i, s := range rep.Strengths {
			names[i] = string(s)
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(contentWidth, 6, tr("Top strengths: "+strings.Join(names, ", ")), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func drawBars(pdf *fpdf.Fpdf, tr func(string) string, bars []Bar, contentWidth float64) {
	trackWidth := contentWidth - labelWidth - 14
	pdf.SetFont("Helvetica", "", 10)
	for _, b := range bars {
		x, y := pdf.GetX(), pdf.GetY()
		pdf.CellFormat(labelWidth, barHeight, tr(string(b.Dimension)), "", 0, "L", false, 0, "")

		pdf.SetFillColor(230, 230, 230)
		pdf.Rect(x+labelWidth, y+1, trackWidth, barHeight-2, "F")
		if b.Max > 0 {
			frac := b.Score / b.Max
			if frac < 0 {
				frac = 0
			}
			if frac > 1 {
				frac = 1
			}
			pdf.SetFillColor(66, 133, 244)
			pdf.Rect(x+labelWidth, y+1, trackWidth*frac, barHeight-2, "F")
		}

		pdf.SetXY(x+labelWidth+trackWidth+2, y)
		pdf.CellFormat(12, barHeight, fmt.Sprintf("%.1f", b.Score), "", 1, "R", false, 0, "")
		pdf.SetX(x)
		pdf.Ln(1)
	}
}
