package report

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"Airduct/internal/calc/batch"
	"Airduct/internal/calc/rect"
	apperr "Airduct/internal/errors"
)

var altColumns = []struct {
	title string
	width float64
}{
	{"Size (in)", 24},
	{"Clear (in)", 24},
	{"Area (sq ft)", 26},
	{"De (in)", 22},
	{"Velocity (FPM)", 30},
	{"Friction", 26},
	{"Aspect", 20},
}

// WritePDF renders the report as an A4 document.
func WritePDF(w io.Writer, rep Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(rep.title(), true)
	pdf.SetAuthor(rep.Author, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(rep.title()))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", rep.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", rep.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", rep.date().Format("2006-01-02")))
	pdf.Ln(8)
	if rep.Notes != "" {
		pdf.MultiCell(0, 6, tr(rep.Notes), "", "L", false)
		pdf.Ln(2)
	}

	for _, seg := range rep.Segments {
		segment(pdf, tr, seg)
	}

	if pdf.Err() {
		return apperr.Internal("render pdf", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return apperr.Internal("write pdf", err)
	}
	return nil
}

func segment(pdf *gofpdf.Fpdf, tr func(string) string, seg batch.ItemResult) {
	in := seg.Input
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr(seg.Tag))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("Airflow %s CFM, mode %s, insulation %s in", fmt3(in.CFM), in.Mode, fmt3(in.InsulationIn)))
	pdf.Ln(5)

	if !seg.OK() {
		pdf.SetTextColor(180, 0, 0)
		pdf.MultiCell(0, 5, tr("Not sized: "+seg.Error), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(3)
		return
	}

	res := seg.Result
	size := fmt.Sprintf("Round %s in (%s in clear)", fmt3(res.Round.NominalSizeIn), fmt3(res.Round.InteriorDiameterIn))
	if res.Round.NonStandard {
		size += ", non-standard"
	}
	pdf.Cell(0, 5, size)
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Velocity %s FPM, friction %s in.wg/100ft, governed by %s",
		fmt2(res.Round.VelocityFPM), fmt3(res.Round.FrictionRate), governor(seg)))
	pdf.Ln(5)
	for _, warn := range res.Warnings {
		pdf.Cell(0, 5, tr("Warning: "+warn))
		pdf.Ln(5)
	}

	if !res.HasAlternatives {
		pdf.Cell(0, 6, rect.NoAlternative)
		pdf.Ln(9)
		return
	}
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range altColumns {
		pdf.CellFormat(c.width, 6, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, c := range res.Alternatives {
		cells := []string{
			fmt.Sprintf("%sx%s", fmt3(c.WidthIn), fmt3(c.HeightIn)),
			fmt.Sprintf("%sx%s", fmt3(c.InteriorWidthIn), fmt3(c.InteriorHeightIn)),
			fmt3(c.AreaSqFt),
			fmt3(c.EquivalentDiameterIn),
			fmt2(c.VelocityFPM),
			fmt3(c.FrictionRate),
			c.AspectRatio,
		}
		for i, v := range cells {
			pdf.CellFormat(altColumns[i].width, 5, v, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}
