package report

import (
	"io"

	"github.com/xuri/excelize/v2"

	apperr "Airduct/internal/errors"
)

const (
	SheetRound       = "Round"
	SheetRectangular = "Rectangular"
)

var (
	roundHeader = []any{
		"Tag", "CFM", "Mode", "Insulation (in)", "Nominal (in)", "Clear (in)",
		"Area (sq ft)", "Velocity (FPM)", "Friction (in.wg/100ft)", "Governed by",
		"Non-standard", "Alternatives", "Notes", "Error",
	}
	rectHeader = []any{
		"Tag", "Policy", "Width (in)", "Height (in)", "Clear width (in)", "Clear height (in)",
		"Area (sq ft)", "De (in)", "Velocity (FPM)", "Friction (in.wg/100ft)", "Aspect",
	}
)

// WriteXLSX writes one row per segment to the Round sheet and one row per
// rectangular candidate to the Rectangular sheet.
func WriteXLSX(w io.Writer, rep Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetRound); err != nil {
		return apperr.Internal("rename sheet", err)
	}
	if _, err := f.NewSheet(SheetRectangular); err != nil {
		return apperr.Internal("add sheet", err)
	}
	if err := setRow(f, SheetRound, 1, roundHeader); err != nil {
		return err
	}
	if err := setRow(f, SheetRectangular, 1, rectHeader); err != nil {
		return err
	}

	rr, cr := 2, 2
	for _, seg := range rep.Segments {
		in := seg.Input
		row := []any{seg.Tag, round3(in.CFM), string(in.Mode), round3(in.InsulationIn)}
		if seg.OK() {
			res := seg.Result
			row = append(row,
				round3(res.Round.NominalSizeIn),
				round3(res.Round.InteriorDiameterIn),
				round3(res.Round.AreaSqFt),
				round3(res.Round.VelocityFPM),
				round3(res.Round.FrictionRate),
				governor(seg),
				res.Round.NonStandard,
				len(res.Alternatives),
				res.Notes,
				"",
			)
		} else {
			row = append(row, "", "", "", "", "", "", "", "", "", seg.Error)
		}
		if err := setRow(f, SheetRound, rr, row); err != nil {
			return err
		}
		rr++

		if !seg.OK() {
			continue
		}
		for _, c := range seg.Result.Alternatives {
			err := setRow(f, SheetRectangular, cr, []any{
				seg.Tag,
				string(seg.Result.Policy),
				c.WidthIn,
				c.HeightIn,
				round3(c.InteriorWidthIn),
				round3(c.InteriorHeightIn),
				round3(c.AreaSqFt),
				round3(c.EquivalentDiameterIn),
				round3(c.VelocityFPM),
				round3(c.FrictionRate),
				c.AspectRatio,
			})
			if err != nil {
				return err
			}
			cr++
		}
	}

	if err := f.Write(w); err != nil {
		return apperr.Internal("write workbook", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	ref, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return apperr.Internal("cell reference", err)
	}
	if err := f.SetSheetRow(sheet, ref, &values); err != nil {
		return apperr.Internal("write row", err)
	}
	return nil
}
