package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edulink/internal/domain"
)

func readRows(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	r := csv.NewReader(buf)
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	rows := readRows(t, &buf)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 16)
	assert.Equal(t, "Numéro", rows[0][0])
	assert.Equal(t, "Montant TTC", rows[0][12])
	assert.Equal(t, "Créée le", rows[0][15])
}

func TestWriteFactures_Paid(t *testing.T) {
	paid := domain.NewDate(2024, 4, 2)
	mode := domain.PaiementVirement
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	f := domain.Facture{
		Numero:          "FAC-2024-00007",
		Type:            domain.FactureTypeIntervenant,
		Status:          domain.FacturePayee,
		EcoleName:       "École Centrale",
		IntervenantName: "Camille Martin",
		DateEmission:    domain.NewDate(2024, 3, 1),
		DateEcheance:    domain.NewDate(2024, 3, 31),
		DatePaiement:    &paid,
		ModePaiement:    &mode,
		MontantHT:       93333,
		TauxTVA:         20,
		TVA:             18667,
		MontantTTC:      112000,
		Lignes:          domain.FactureLignes{{Description: "Atelier"}, {Description: "Déplacement"}},
		Notes:           "Merci; à bientôt",
		CreatedAt:       created,
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteFactures([]domain.Facture{f}))
	w.Flush()
	require.NoError(t, w.Error())

	rows := readRows(t, &buf)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "FAC-2024-00007", row[0])
	assert.Equal(t, "payee", row[2])
	assert.Equal(t, "École Centrale", row[3])
	assert.Equal(t, "2024-03-01", row[5])
	assert.Equal(t, "2024-04-02", row[7])
	assert.Equal(t, "virement", row[8])
	assert.Equal(t, "933,33", row[9])
	assert.Equal(t, "20", row[10])
	assert.Equal(t, "1120,00", row[12])
	assert.Equal(t, "2", row[13])
	assert.Equal(t, "Merci; à bientôt", row[14])
	assert.Equal(t, "2024-03-01T09:30:00Z", row[15])
}

func TestWriteFactures_Draft(t *testing.T) {
	f := domain.Facture{Numero: "FAC-2024-00008", Status: domain.FactureBrouillon, TauxTVA: 5.5}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteFactures([]domain.Facture{f}))
	w.Flush()

	row := readRows(t, &buf)[0]
	assert.Empty(t, row[7])
	assert.Empty(t, row[8])
	assert.Equal(t, "5,5", row[10])
	assert.Equal(t, "0,00", row[12])
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0,05", FormatAmount(5))
	assert.Equal(t, "123456,78", FormatAmount(12345678))
	assert.Equal(t, "-10,50", FormatAmount(-1050))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "factures 2024", "factures_2024"},
		{"special chars", "Déclarations / T1 (jan–mar)", "D_clarations_T1_jan_mar"},
		{"hyphens and underscores preserved", "export-factures_2025", "export-factures_2025"},
		{"consecutive underscores collapsed", "test___export", "test_export"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "factures_2024_"+today+".csv", BuildFilename("factures 2024", "csv"))
	assert.Equal(t, "declarations_"+today+".xlsx", BuildFilename("declarations", "xlsx"))
}
