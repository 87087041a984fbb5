package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"edulink/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Numéro",
	"Type",
	"Statut",
	"École",
	"Intervenant",
	"Date d'émission",
	"Date d'échéance",
	"Date de paiement",
	"Mode de paiement",
	"Montant HT",
	"Taux TVA",
	"TVA",
	"Montant TTC",
	"Nombre de lignes",
	"Notes",
	"Créée le",
}

// Writer wraps csv.Writer for exporting factures. Fields are separated by
// semicolons so French spreadsheet locales open the file without an import wizard.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	return &Writer{csv: cw}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteFactures converts a batch of factures to CSV rows and writes them.
func (w *Writer) WriteFactures(factures []domain.Facture) error {
	for i := range factures {
		if err := w.csv.Write(factureToRow(&factures[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func factureToRow(f *domain.Facture) []string {
	row := make([]string, len(columns))
	row[0] = f.Numero
	row[1] = string(f.Type)
	row[2] = string(f.Status)
	row[3] = f.EcoleName
	row[4] = f.IntervenantName
	row[5] = f.DateEmission.String()
	row[6] = f.DateEcheance.String()
	if f.DatePaiement != nil {
		row[7] = f.DatePaiement.String()
	}
	if f.ModePaiement != nil {
		row[8] = string(*f.ModePaiement)
	}
	row[9] = FormatAmount(f.MontantHT)
	row[10] = strings.Replace(strconv.FormatFloat(f.TauxTVA, 'f', -1, 64), ".", ",", 1)
	row[11] = FormatAmount(f.TVA)
	row[12] = FormatAmount(f.MontantTTC)
	row[13] = strconv.Itoa(len(f.Lignes))
	row[14] = f.Notes
	row[15] = f.CreatedAt.Format(time.RFC3339)
	return row
}

// FormatAmount renders cents with a decimal comma and no grouping: 1234,56.
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d,%02d", sign, cents/100, cents%100)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename makes name safe for a Content-Disposition header.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_base}_{YYYY-MM-DD}.{ext}.
func BuildFilename(base, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(base), time.Now().Format("2006-01-02"), ext)
}
