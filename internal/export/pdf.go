// Package export builds the downloadable PDF report of the dashboard
// statistics page.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/univmedia/campusnews/internal/backend"
)

// StatsReport renders the aggregate post statistics as a one-page PDF.
func StatsReport(stats *backend.PostStats, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Campus News - Statistiques", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 8, generatedAt.Format("2 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, "Totaux", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Publications: %d", stats.TotalPosts), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("J'aime: %d", stats.TotalLikes), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Visites: %d", stats.TotalVisits), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeLeaderboard(pdf, "Catégories populaires", func() []row {
		rows := make([]row, 0, len(stats.PopularCategories))
		for _, c := range stats.PopularCategories {
			rows = append(rows, row{label: c.Category, value: c.Count})
		}
		return rows
	}())

	writeLeaderboard(pdf, "Publications les plus aimées", postRows(stats.MostLikedPosts, func(p backend.Post) int { return p.Likes }))
	writeLeaderboard(pdf, "Publications les plus visitées", postRows(stats.MostVisitedPosts, func(p backend.Post) int { return p.Visits }))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render stats PDF: %w", err)
	}
	return buf.Bytes(), nil
}

type row struct {
	label string
	value int
}

func postRows(posts []backend.Post, value func(backend.Post) int) []row {
	rows := make([]row, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, row{label: p.Title, value: value(p)})
	}
	return rows
}

func writeLeaderboard(pdf *gofpdf.Fpdf, title string, rows []row) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if len(rows) == 0 {
		pdf.CellFormat(0, 8, "-", "", 1, "L", false, 0, "")
		pdf.Ln(2)
		return
	}
	for _, r := range rows {
		pdf.CellFormat(140, 8, r.label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, fmt.Sprintf("%d", r.value), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
}
