package domain

// AdminStats is the platform-wide dashboard.
type AdminStats struct {
	Intervenants   ModerationStats `json:"intervenants"`
	Challenges     ModerationStats `json:"challenges"`
	Missions       StatusCounts    `json:"missions"`
	Collaborations StatusCounts    `json:"collaborations"`
	Factures       FactureTotals   `json:"factures"`
	Ecoles         int             `json:"ecoles"`
}

// EcoleStats is the dashboard of one école.
type EcoleStats struct {
	Missions       StatusCounts  `json:"missions"`
	Collaborations StatusCounts  `json:"collaborations"`
	Favorites      int           `json:"favorites"`
	Factures       FactureTotals `json:"factures"`
}

// IntervenantStats is the dashboard of one intervenant.
type IntervenantStats struct {
	Status             ModerationStatus   `json:"status"`
	DocumentCompletion int                `json:"document_completion"`
	Challenges         ModerationStats    `json:"challenges"`
	Collaborations     StatusCounts       `json:"collaborations"`
	AssignedMissions   int                `json:"assigned_missions"`
	Declarations       DeclarationSummary `json:"declarations"`
}

// Stats is the role-scoped dashboard payload. Exactly one field is set.
type Stats struct {
	Role        UserRole          `json:"role"`
	Admin       *AdminStats       `json:"admin,omitempty"`
	Ecole       *EcoleStats       `json:"ecole,omitempty"`
	Intervenant *IntervenantStats `json:"intervenant,omitempty"`
}
