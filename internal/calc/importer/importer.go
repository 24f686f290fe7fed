// Package importer reads duct schedules from Excel workbooks.
//
// The first sheet is read and its first row is taken as the header. Columns,
// in order: tag, cfm, mode, friction_rate, velocity_fpm, insulation_in,
// preset, policy. Only cfm is required. A blank mode means friction; a
// blank policy is left for the caller's default.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Airduct/internal/calc/autodesign"
	"Airduct/internal/calc/batch"
	"Airduct/internal/calc/duct"
	"Airduct/internal/calc/rect"
	"Airduct/internal/calc/worstcase"
	apperr "Airduct/internal/errors"
)

const (
	colTag = iota
	colCFM
	colMode
	colFriction
	colVelocity
	colInsulation
	colPreset
	colPolicy
)

// RowError is a schedule row that could not be turned into a segment.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

type Schedule struct {
	Sheet    string       `json:"sheet"`
	Items    []batch.Item `json:"items"`
	Rejected []RowError   `json:"rejected"`
}

// Parse reads a schedule workbook. Blank rows are skipped; malformed rows
// are listed in Rejected with their 1-based sheet row number.
func Parse(r io.Reader) (Schedule, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Schedule{}, apperr.Parsing("invalid workbook", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Schedule{}, apperr.Parsing("read sheet "+sheet, err)
	}
	if len(rows) < 2 {
		return Schedule{}, apperr.Input("empty sheet %q", sheet)
	}

	s := Schedule{Sheet: sheet, Items: []batch.Item{}, Rejected: []RowError{}}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		item, err := parseRow(row)
		if err != nil {
			s.Rejected = append(s.Rejected, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		if item.Tag == "" {
			item.Tag = fmt.Sprintf("row %d", i+1)
		}
		s.Items = append(s.Items, item)
	}
	return s, nil
}

func parseRow(row []string) (batch.Item, error) {
	cfm, err := number(row, colCFM, "cfm", true)
	if err != nil {
		return batch.Item{}, err
	}
	friction, err := number(row, colFriction, "friction_rate", false)
	if err != nil {
		return batch.Item{}, err
	}
	velocity, err := number(row, colVelocity, "velocity_fpm", false)
	if err != nil {
		return batch.Item{}, err
	}
	insulation, err := number(row, colInsulation, "insulation_in", false)
	if err != nil {
		return batch.Item{}, err
	}
	if err := duct.CheckInsulation(insulation); err != nil {
		return batch.Item{}, err
	}

	mode := autodesign.Mode(strings.ToLower(cell(row, colMode)))
	if mode == "" {
		mode = autodesign.ModeFriction
	}
	return batch.Item{
		Tag: cell(row, colTag),
		Input: autodesign.Input{
			CFM:          cfm,
			Mode:         mode,
			FrictionRate: friction,
			VelocityFPM:  velocity,
			Preset:       worstcase.PresetID(strings.ToLower(cell(row, colPreset))),
			InsulationIn: insulation,
			Policy:       rect.Policy(strings.ToLower(cell(row, colPolicy))),
		},
	}, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func number(row []string, i int, name string, required bool) (float64, error) {
	s := cell(row, i)
	if s == "" {
		if required {
			return 0, apperr.Input("%s is required", name)
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, apperr.Input("%s: %q is not a number", name, s)
	}
	return v, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
