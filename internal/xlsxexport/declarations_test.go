package xlsxexport_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"edulink/internal/domain"
	"edulink/internal/xlsxexport"
)

func TestWriteDeclarations(t *testing.T) {
	validated := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)
	decls := []domain.Declaration{
		{
			Periode:             "2024-01",
			IntervenantName:     "Camille Martin",
			Status:              domain.DeclarationValidee,
			ChiffreAffaires:     150000,
			NbMissions:          3,
			NbHeures:            12.5,
			CotisationsSociales: 33000,
			ValidatedAt:         &validated,
		},
		{
			Periode:         "2024-02",
			IntervenantName: "Camille Martin",
			Status:          domain.DeclarationBrouillon,
			ChiffreAffaires: 50050,
			NbMissions:      1,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, xlsxexport.WriteDeclarations(&buf, decls))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{xlsxexport.SheetName}, f.GetSheetList())

	raw := excelize.Options{RawCellValue: true}
	get := func(cell string) string {
		v, err := f.GetCellValue(xlsxexport.SheetName, cell, raw)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Période", get("A1"))
	assert.Equal(t, "2024-01", get("A2"))
	assert.Equal(t, "1500", get("D2"))
	assert.Equal(t, "500.5", get("D3"))
	assert.Equal(t, "10/02/2024", get("J2"))
	assert.Equal(t, "Total", get("A4"))

	formula, err := f.GetCellFormula(xlsxexport.SheetName, "D4")
	require.NoError(t, err)
	assert.Equal(t, "SUM(D2:D3)", formula)
}

func TestWriteDeclarations_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsxexport.WriteDeclarations(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(xlsxexport.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Total", rows[1][0])
}
