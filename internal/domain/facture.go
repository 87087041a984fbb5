package domain

import (
	"fmt"
	"math"
)

var factureTransitions = map[FactureStatus][]FactureStatus{
	FactureBrouillon: {FactureEnvoyee, FactureAnnulee},
	FactureEnvoyee:   {FacturePayee, FactureEnRetard, FactureAnnulee},
	FactureEnRetard:  {FacturePayee, FactureAnnulee},
}

// CanTransition reports whether from -> to is an edge of the invoice lifecycle.
func (s FactureStatus) CanTransition(to FactureStatus) bool {
	for _, next := range factureTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known status.
func (s FactureStatus) Valid() bool {
	switch s {
	case FactureBrouillon, FactureEnvoyee, FacturePayee, FactureAnnulee, FactureEnRetard:
		return true
	}
	return false
}

// FormatNumero renders an invoice number from its year and sequence value.
func FormatNumero(year int, seq int64) string {
	return fmt.Sprintf("FAC-%d-%05d", year, seq)
}

// ComputeTotals fills line totals, HT, TVA and TTC from the lines and TauxTVA.
func (f *Facture) ComputeTotals() error {
	if len(f.Lignes) == 0 {
		return ErrFactureHasNoLines
	}
	if f.TauxTVA < 0 {
		return ErrInvalidAmount
	}
	var ht int64
	for i := range f.Lignes {
		l := &f.Lignes[i]
		if l.Quantite < 0 || l.PrixUnitaire < 0 {
			return ErrInvalidAmount
		}
		l.Total = int64(math.Round(l.Quantite * float64(l.PrixUnitaire)))
		ht += l.Total
	}
	f.MontantHT = ht
	f.TVA = int64(math.Round(float64(ht) * f.TauxTVA / 100))
	f.MontantTTC = f.MontantHT + f.TVA
	return nil
}

// CanEdit is true while the invoice is a draft.
func (f *Facture) CanEdit() bool {
	return f.Status == FactureBrouillon
}

// IssuedBy reports whether actor may manage the invoice as its issuer.
func (f *Facture) IssuedBy(a Actor) bool {
	if a.IsAdmin() {
		return true
	}
	return f.CreatedBy == a.UserID
}

// VisibleTo reports whether actor may read the invoice.
func (f *Facture) VisibleTo(a Actor) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleEcole:
		return f.EcoleID == a.ProfileID
	case RoleIntervenant:
		return f.IntervenantID != nil && *f.IntervenantID == a.ProfileID
	}
	return false
}

// PDFKey is the object storage key of the rendered invoice.
func (f *Facture) PDFKey() string {
	return fmt.Sprintf("factures/%s/%s.pdf", f.ID, f.Numero)
}

// PartyInfo identifies one side printed on an invoice.
type PartyInfo struct {
	Name    string
	Address string
	Siret   string
	Email   string
}

// FactureParties are the issuer and the client of an invoice.
type FactureParties struct {
	Issuer PartyInfo
	Client PartyInfo
}
