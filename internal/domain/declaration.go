package domain

import (
	"math"
	"regexp"
	"time"
)

// EstimateRate is the flat rate used for the cotisation projection shown during entry.
const EstimateRate = 0.22

var periodePattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidPeriode reports whether p is a YYYY-MM month.
func ValidPeriode(p string) bool {
	return periodePattern.MatchString(p)
}

// PeriodeOf formats t as YYYY-MM.
func PeriodeOf(t time.Time) string {
	return t.Format("2006-01")
}

// EstimateCotisations projects social contributions from a turnover in cents.
func EstimateCotisations(chiffreAffaires int64) int64 {
	return int64(math.Round(float64(chiffreAffaires) * EstimateRate))
}

// ApplyRates computes the persisted contribution fields from the turnover.
func (d *Declaration) ApplyRates(cotisationRate, formationRate float64) {
	d.CotisationsSociales = int64(math.Round(float64(d.ChiffreAffaires) * cotisationRate))
	d.ContributionFormation = int64(math.Round(float64(d.ChiffreAffaires) * formationRate))
}

// CanEdit is true while the declaration is a draft.
func (d *Declaration) CanEdit() bool {
	return d.Status == DeclarationBrouillon
}

// CanDelete follows the same rule as CanEdit.
func (d *Declaration) CanDelete() bool {
	return d.Status == DeclarationBrouillon
}

// CanTransition reports whether a declaration may move to target.
func (d *Declaration) CanTransition(target DeclarationStatus) bool {
	switch target {
	case DeclarationTransmise:
		return d.Status == DeclarationBrouillon
	case DeclarationValidee:
		return d.Status == DeclarationBrouillon || d.Status == DeclarationTransmise
	}
	return false
}

// DeclarationView exposes the action flags alongside the declaration.
type DeclarationView struct {
	*Declaration
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// View wraps d with its action flags.
func (d *Declaration) View() DeclarationView {
	return DeclarationView{Declaration: d, CanEdit: d.CanEdit(), CanDelete: d.CanDelete()}
}

// Estimate is the projection returned to the entry form.
type Estimate struct {
	ChiffreAffaires     int64   `json:"chiffre_affaires"`
	Rate                float64 `json:"rate"`
	CotisationsEstimees int64   `json:"cotisations_estimees"`
	IsEstimate          bool    `json:"is_estimate"`
}

// NewEstimate builds the projection for ca.
func NewEstimate(ca int64) Estimate {
	return Estimate{
		ChiffreAffaires:     ca,
		Rate:                EstimateRate,
		CotisationsEstimees: EstimateCotisations(ca),
		IsEstimate:          true,
	}
}
