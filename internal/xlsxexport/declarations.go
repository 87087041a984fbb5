package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"edulink/internal/domain"
)

// SheetName is the worksheet holding declaration rows.
const SheetName = "Déclarations"

var header = []interface{}{
	"Période",
	"Intervenant",
	"Statut",
	"Chiffre d'affaires",
	"Missions",
	"Heures",
	"Frais professionnels",
	"Cotisations sociales",
	"Contribution formation",
	"Validée le",
	"Notes",
}

// amountColumns are the euro columns that get totals and currency formatting.
var amountColumns = []string{"D", "G", "H", "I"}

// WriteDeclarations renders declarations as a single-sheet workbook followed by
// a totals row, and writes it to w.
func WriteDeclarations(w io.Writer, decls []domain.Declaration) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("xlsxexport: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("xlsxexport: header: %w", err)
	}

	for i := range decls {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := declarationRow(&decls[i])
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("xlsxexport: row %d: %w", i+2, err)
		}
	}

	last := len(decls) + 1
	totalRow := last + 1
	if err := f.SetCellValue(SheetName, fmt.Sprintf("A%d", totalRow), "Total"); err != nil {
		return fmt.Errorf("xlsxexport: totals: %w", err)
	}
	if len(decls) > 0 {
		for _, col := range append([]string{"E", "F"}, amountColumns...) {
			formula := fmt.Sprintf("SUM(%s2:%s%d)", col, col, last)
			if err := f.SetCellFormula(SheetName, fmt.Sprintf("%s%d", col, totalRow), formula); err != nil {
				return fmt.Errorf("xlsxexport: totals: %w", err)
			}
		}
	}

	if err := applyStyles(f, totalRow); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsxexport: write: %w", err)
	}
	return nil
}

func declarationRow(d *domain.Declaration) []interface{} {
	validated := ""
	if d.ValidatedAt != nil {
		validated = d.ValidatedAt.Format("02/01/2006")
	}
	return []interface{}{
		d.Periode,
		d.IntervenantName,
		string(d.Status),
		euros(d.ChiffreAffaires),
		d.NbMissions,
		d.NbHeures,
		euros(d.FraisPro),
		euros(d.CotisationsSociales),
		euros(d.ContributionFormation),
		validated,
		d.Notes,
	}
}

func euros(cents int64) float64 {
	return float64(cents) / 100
}

func applyStyles(f *excelize.File, totalRow int) error {
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DCE6F1"}},
	})
	if err != nil {
		return fmt.Errorf("xlsxexport: style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("xlsxexport: style: %w", err)
	}
	boldMoney, err := f.NewStyle(&excelize.Style{NumFmt: 4, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsxexport: style: %w", err)
	}

	if err := f.SetCellStyle(SheetName, "A1", "K1", bold); err != nil {
		return err
	}
	for _, col := range amountColumns {
		if totalRow > 2 {
			if err := f.SetCellStyle(SheetName, col+"2", fmt.Sprintf("%s%d", col, totalRow-1), money); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(SheetName, fmt.Sprintf("%s%d", col, totalRow), fmt.Sprintf("%s%d", col, totalRow), boldMoney); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetName, "A", "C", 14); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "B", "B", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "D", "J", 18); err != nil {
		return err
	}
	return f.SetColWidth(SheetName, "K", "K", 40)
}
