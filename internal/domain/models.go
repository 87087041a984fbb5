package domain

import (
	"time"

	"github.com/google/uuid"
)

// Actor is the authenticated caller as seen by the service layer.
// ProfileID is the école or intervenant profile of the user, uuid.Nil for admins.
type Actor struct {
	UserID    uuid.UUID
	Role      UserRole
	ProfileID uuid.UUID
}

// IsAdmin reports whether the actor has the ADMIN role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// User is an authenticated account.
type User struct {
	ID                   uuid.UUID `db:"id" json:"id"`
	Email                string    `db:"email" json:"email"`
	PasswordHash         string    `db:"password_hash" json:"-"`
	FullName             string    `db:"full_name" json:"full_name"`
	Role                 UserRole  `db:"role" json:"role"`
	IsActive             bool      `db:"is_active" json:"is_active"`
	PasswordResetTokenID *string   `db:"password_reset_token_id" json:"-"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// Ecole is the organisation profile of an ECOLE user.
type Ecole struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	Name         string    `db:"name" json:"name"`
	Siret        string    `db:"siret" json:"siret"`
	Address      string    `db:"address" json:"address"`
	PostalCode   string    `db:"postal_code" json:"postal_code"`
	City         string    `db:"city" json:"city"`
	Phone        string    `db:"phone" json:"phone"`
	Website      string    `db:"website" json:"website"`
	ContactEmail string    `db:"contact_email" json:"contact_email"`
	Description  string    `db:"description" json:"description"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Intervenant is a freelance trainer or speaker profile.
type Intervenant struct {
	ID                uuid.UUID         `db:"id" json:"id"`
	UserID            uuid.UUID         `db:"user_id" json:"user_id"`
	FirstName         string            `db:"first_name" json:"first_name"`
	LastName          string            `db:"last_name" json:"last_name"`
	Email             string            `db:"email" json:"email"`
	Phone             string            `db:"phone" json:"phone"`
	City              string            `db:"city" json:"city"`
	Bio               string            `db:"bio" json:"bio"`
	Siret             string            `db:"siret" json:"siret"`
	YearsExperience   int               `db:"years_experience" json:"years_experience"`
	DailyRateCents    *int64            `db:"daily_rate_cents" json:"daily_rate_cents"`
	LinkedinURL       string            `db:"linkedin_url" json:"linkedin_url"`
	WebsiteURL        string            `db:"website_url" json:"website_url"`
	Expertises        StringList        `db:"expertises" json:"expertises"`
	Languages         LanguageSkills    `db:"languages" json:"languages"`
	AvailabilityModes AvailabilityModes `db:"availability_modes" json:"availability_modes"`
	Status            ModerationStatus  `db:"status" json:"status"`
	RejectionReason   *string           `db:"rejection_reason" json:"rejection_reason"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`

	Documents []Document `db:"-" json:"documents,omitempty"`
}

// FullName joins first and last name.
func (i *Intervenant) FullName() string {
	if i.LastName == "" {
		return i.FirstName
	}
	return i.FirstName + " " + i.LastName
}

// IntervenantFilter narrows a directory listing.
type IntervenantFilter struct {
	Status    ModerationStatus
	Query     string
	Expertise string
	Mode      AvailabilityMode
	Language  string
}

// Document is a file uploaded by an intervenant into the vault.
type Document struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	IntervenantID uuid.UUID    `db:"intervenant_id" json:"intervenant_id"`
	Type          DocumentType `db:"type" json:"type"`
	FileName      string       `db:"file_name" json:"file_name"`
	OriginalName  string       `db:"original_name" json:"original_name"`
	FileType      FileType     `db:"file_type" json:"file_type"`
	FileSize      int64        `db:"file_size" json:"file_size"`
	ContentType   string       `db:"content_type" json:"content_type"`
	S3Bucket      string       `db:"s3_bucket" json:"-"`
	S3Key         string       `db:"s3_key" json:"-"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

// Sensitive reports whether the document's type is classified as sensitive.
func (d *Document) Sensitive() bool {
	req, ok := RequirementFor(d.Type)
	return ok && req.Sensitive
}

// Challenge is a workshop or challenge proposed by an intervenant.
type Challenge struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	IntervenantID    uuid.UUID        `db:"intervenant_id" json:"intervenant_id"`
	Title            string           `db:"title" json:"title"`
	ShortDescription string           `db:"short_description" json:"short_description"`
	Description      string           `db:"description" json:"description"`
	Thematique       Thematique       `db:"thematique" json:"thematique"`
	Duration         string           `db:"duration" json:"duration"`
	TargetAudience   string           `db:"target_audience" json:"target_audience"`
	Objectives       StringList       `db:"objectives" json:"objectives"`
	Deliverables     StringList       `db:"deliverables" json:"deliverables"`
	Prerequisites    string           `db:"prerequisites" json:"prerequisites"`
	ImageURL         string           `db:"image_url" json:"image_url"`
	VideoURL         string           `db:"video_url" json:"video_url"`
	PriceCents       *int64           `db:"price_cents" json:"price_cents"`
	Status           ModerationStatus `db:"status" json:"status"`
	RejectionReason  *string          `db:"rejection_reason" json:"rejection_reason"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// ChallengeFilter narrows a challenge listing.
type ChallengeFilter struct {
	Status        ModerationStatus
	Thematique    Thematique
	IntervenantID *uuid.UUID
	Query         string
}

// ModerationStats counts items per moderation status.
type ModerationStats struct {
	Total    int `db:"total" json:"total"`
	Pending  int `db:"pending" json:"pending"`
	Approved int `db:"approved" json:"approved"`
	Rejected int `db:"rejected" json:"rejected"`
}

// Mission is an assignment posted by an école.
type Mission struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	EcoleID       uuid.UUID     `db:"ecole_id" json:"ecole_id"`
	IntervenantID *uuid.UUID    `db:"intervenant_id" json:"intervenant_id"`
	Title         string        `db:"title" json:"title"`
	Description   string        `db:"description" json:"description"`
	StartDate     Date          `db:"start_date" json:"start_date"`
	EndDate       Date          `db:"end_date" json:"end_date"`
	PriceCents    int64         `db:"price_cents" json:"price_cents"`
	Status        MissionStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// Toggled returns the status a "réactiver"/"terminer" toggle moves to.
func (s MissionStatus) Toggled() MissionStatus {
	if s == MissionActive {
		return MissionCompleted
	}
	return MissionActive
}

// MissionFilter narrows a mission listing.
type MissionFilter struct {
	Status        MissionStatus
	EcoleID       *uuid.UUID
	IntervenantID *uuid.UUID
}

// Collaboration is a bilateral engagement between one école and one intervenant.
type Collaboration struct {
	ID                     uuid.UUID           `db:"id" json:"id"`
	EcoleID                uuid.UUID           `db:"ecole_id" json:"ecole_id"`
	IntervenantID          uuid.UUID           `db:"intervenant_id" json:"intervenant_id"`
	Titre                  string              `db:"titre" json:"titre"`
	Description            string              `db:"description" json:"description"`
	DateDebut              Date                `db:"date_debut" json:"date_debut"`
	DateFin                Date                `db:"date_fin" json:"date_fin"`
	MontantHT              int64               `db:"montant_ht" json:"montant_ht"`
	Notes                  string              `db:"notes" json:"notes"`
	Status                 CollaborationStatus `db:"status" json:"status"`
	ValidatedByEcole       bool                `db:"validated_by_ecole" json:"validated_by_ecole"`
	ValidatedByIntervenant bool                `db:"validated_by_intervenant" json:"validated_by_intervenant"`
	CreatedBy              CollaborationParty  `db:"created_by" json:"created_by"`
	CreatedAt              time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time           `db:"updated_at" json:"updated_at"`
}

// CollaborationFilter narrows a collaboration listing.
type CollaborationFilter struct {
	Status        CollaborationStatus
	EcoleID       *uuid.UUID
	IntervenantID *uuid.UUID
}

// StatusCounts maps a status value to the number of items in it.
type StatusCounts map[string]int

// Declaration is a monthly revenue declaration of an intervenant.
type Declaration struct {
	ID                    uuid.UUID         `db:"id" json:"id"`
	IntervenantID         uuid.UUID         `db:"intervenant_id" json:"intervenant_id"`
	Periode               string            `db:"periode" json:"periode"`
	ChiffreAffaires       int64             `db:"chiffre_affaires" json:"chiffre_affaires"`
	NbMissions            int               `db:"nb_missions" json:"nb_missions"`
	NbHeures              float64           `db:"nb_heures" json:"nb_heures"`
	FraisPro              int64             `db:"frais_pro" json:"frais_pro"`
	CotisationsSociales   int64             `db:"cotisations_sociales" json:"cotisations_sociales"`
	ContributionFormation int64             `db:"contribution_formation" json:"contribution_formation"`
	Notes                 string            `db:"notes" json:"notes"`
	Status                DeclarationStatus `db:"status" json:"status"`
	ValidatedAt           *time.Time        `db:"validated_at" json:"validated_at"`
	CreatedAt             time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time         `db:"updated_at" json:"updated_at"`

	IntervenantName string `db:"intervenant_name" json:"intervenant_name,omitempty"`
}

// DeclarationFilter narrows a declaration listing.
type DeclarationFilter struct {
	IntervenantID *uuid.UUID
	Year          int
	Status        DeclarationStatus
}

// DeclarationSummary aggregates declarations over a year.
type DeclarationSummary struct {
	Year                  int   `db:"year" json:"year"`
	Count                 int   `db:"count" json:"count"`
	ChiffreAffaires       int64 `db:"chiffre_affaires" json:"chiffre_affaires"`
	FraisPro              int64 `db:"frais_pro" json:"frais_pro"`
	CotisationsSociales   int64 `db:"cotisations_sociales" json:"cotisations_sociales"`
	ContributionFormation int64 `db:"contribution_formation" json:"contribution_formation"`
	NbMissions            int   `db:"nb_missions" json:"nb_missions"`
}

// LigneFacture is one invoice line. Amounts are in cents.
type LigneFacture struct {
	Description  string  `json:"description"`
	Quantite     float64 `json:"quantite"`
	PrixUnitaire int64   `json:"prix_unitaire"`
	Total        int64   `json:"total"`
}

// Facture is an invoice, issued by the platform to an école or by an intervenant.
type Facture struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	Type          FactureType   `db:"type" json:"type"`
	Numero        string        `db:"numero" json:"numero"`
	EcoleID       uuid.UUID     `db:"ecole_id" json:"ecole_id"`
	IntervenantID *uuid.UUID    `db:"intervenant_id" json:"intervenant_id"`
	MissionID     *uuid.UUID    `db:"mission_id" json:"mission_id"`
	MontantHT     int64         `db:"montant_ht" json:"montant_ht"`
	TauxTVA       float64       `db:"taux_tva" json:"taux_tva"`
	TVA           int64         `db:"tva" json:"tva"`
	MontantTTC    int64         `db:"montant_ttc" json:"montant_ttc"`
	Status        FactureStatus `db:"status" json:"status"`
	DateEmission  Date          `db:"date_emission" json:"date_emission"`
	DateEcheance  Date          `db:"date_echeance" json:"date_echeance"`
	DatePaiement  *Date         `db:"date_paiement" json:"date_paiement"`
	ModePaiement  *ModePaiement `db:"mode_paiement" json:"mode_paiement"`
	PDFPath       *string       `db:"pdf_path" json:"pdf_path"`
	Lignes        FactureLignes `db:"lignes" json:"lignes"`
	Notes         string        `db:"notes" json:"notes"`
	CreatedBy     uuid.UUID     `db:"created_by" json:"created_by"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`

	EcoleName       string `db:"ecole_name" json:"ecole_name,omitempty"`
	IntervenantName string `db:"intervenant_name" json:"intervenant_name,omitempty"`
}

// FactureFilter narrows a facture listing.
type FactureFilter struct {
	Status        FactureStatus
	Type          FactureType
	Year          int
	EcoleID       *uuid.UUID
	IntervenantID *uuid.UUID
}

// FactureTotals aggregates invoice amounts.
type FactureTotals struct {
	Count       int   `db:"count" json:"count"`
	MontantHT   int64 `db:"montant_ht" json:"montant_ht"`
	MontantTTC  int64 `db:"montant_ttc" json:"montant_ttc"`
	Paid        int64 `db:"paid" json:"paid"`
	Outstanding int64 `db:"outstanding" json:"outstanding"`
}

// Favorite is an école bookmark on an intervenant, joined with its note.
type Favorite struct {
	ID            uuid.UUID `db:"id" json:"id"`
	EcoleID       uuid.UUID `db:"ecole_id" json:"ecole_id"`
	IntervenantID uuid.UUID `db:"intervenant_id" json:"intervenant_id"`
	Note          string    `db:"note" json:"note"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	Intervenant *IntervenantSummary `db:"-" json:"intervenant,omitempty"`
}

// IntervenantSummary is the compact card shown in favorites and listings.
type IntervenantSummary struct {
	ID         uuid.UUID        `db:"id" json:"id"`
	FirstName  string           `db:"first_name" json:"first_name"`
	LastName   string           `db:"last_name" json:"last_name"`
	City       string           `db:"city" json:"city"`
	Expertises StringList       `db:"expertises" json:"expertises"`
	Status     ModerationStatus `db:"status" json:"status"`
}

// FavoriteState is the caller's view of one intervenant.
type FavoriteState struct {
	IntervenantID uuid.UUID `json:"intervenant_id"`
	Favorited     bool      `json:"favorited"`
	Note          string    `json:"note"`
}
