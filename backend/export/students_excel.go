package export

import (
	"bytes"
	"fmt"
	"strconv"

	"finquest/backend/services"

	"github.com/xuri/excelize/v2"
)

const (
	XLSXContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	StudentsFileName = "estudiantes.xlsx"
)

type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

var studentHeader = []string{
	"NIP", "Nombre", "Apellidos", "Edad", "Escuela", "Grado", "Fecha de nacimiento",
	"Tutor", "Email tutor", "Monedas", "Nivel", "Módulos completados", "Sesiones", "Registrado",
}

// StudentsSheet lays out the active students list, one row per student.
func StudentsSheet(students []services.StudentSummary) SheetSpec {
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		coins, level, modules := "", "", ""
		if s.Progress != nil {
			coins = strconv.Itoa(s.Progress.Coins)
			level = strconv.Itoa(s.Progress.Level)
			modules = strconv.Itoa(len(s.Progress.CompletedModules))
		}
		rows = append(rows, []string{
			s.NIP,
			s.FirstName,
			s.Surnames,
			strconv.Itoa(s.Age),
			s.School,
			s.Grade,
			s.BirthDate,
			s.TutorName,
			s.TutorEmail,
			coins,
			level,
			modules,
			strconv.FormatInt(s.TotalSessions, 10),
			s.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return SheetSpec{Title: "Estudiantes", Header: studentHeader, Rows: rows}
}

// NewWorkbook renders sheets with a bold, filterable header row.
func NewWorkbook(sheets []SheetSpec) (*excelize.File, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Title); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.Title); err != nil {
			return nil, fmt.Errorf("new sheet: %w", err)
		}

		for col, h := range s.Header {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellStr(s.Title, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		if len(s.Header) > 0 {
			end, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
			_ = f.SetCellStyle(s.Title, "A1", end, bold)
			_ = f.AutoFilter(s.Title, "A1:"+end, nil)
		}

		for r, row := range s.Rows {
			for c, val := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				if err := f.SetCellStr(s.Title, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}

		for c := 1; c <= len(s.Header); c++ {
			width := float64(len(s.Header[c-1]))
			for _, row := range s.Rows {
				if c-1 < len(row) && float64(len(row[c-1])) > width {
					width = float64(len(row[c-1]))
				}
			}
			width = min(max(width+2, 10), 40)
			name, _ := excelize.ColumnNumberToName(c)
			_ = f.SetColWidth(s.Title, name, name, width)
		}
	}
	return f, nil
}

// StudentsXLSX returns the encoded workbook for the active students list.
func StudentsXLSX(students []services.StudentSummary) ([]byte, error) {
	f, err := NewWorkbook([]SheetSpec{StudentsSheet(students)})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
