package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// UserRole identifies which side of the marketplace a user acts for.
type UserRole string

const (
	RoleAdmin       UserRole = "ADMIN"
	RoleEcole       UserRole = "ECOLE"
	RoleIntervenant UserRole = "INTERVENANT"
)

// ValidUserRoles is the set of all known roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:       true,
	RoleEcole:       true,
	RoleIntervenant: true,
}

// SelfRegistrableRoles are the roles a visitor may pick at sign-up.
var SelfRegistrableRoles = map[UserRole]bool{
	RoleEcole:       true,
	RoleIntervenant: true,
}

// ModerationStatus is shared by intervenant profiles and challenges.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// ValidModerationStatuses is used to validate status filters.
var ValidModerationStatuses = map[ModerationStatus]bool{
	ModerationPending:  true,
	ModerationApproved: true,
	ModerationRejected: true,
}

// LanguageLevel is the self-declared proficiency for a spoken language.
type LanguageLevel string

const (
	LevelDebutant      LanguageLevel = "debutant"
	LevelIntermediaire LanguageLevel = "intermediaire"
	LevelAvance        LanguageLevel = "avance"
	LevelNatif         LanguageLevel = "natif"
)

// ValidLanguageLevels lists accepted language levels.
var ValidLanguageLevels = map[LanguageLevel]bool{
	LevelDebutant:      true,
	LevelIntermediaire: true,
	LevelAvance:        true,
	LevelNatif:         true,
}

// AvailabilityMode describes how an intervenant can deliver a session.
type AvailabilityMode string

const (
	ModePresentiel AvailabilityMode = "presentiel"
	ModeHybride    AvailabilityMode = "hybride"
	ModeDistanciel AvailabilityMode = "distanciel"
)

// ValidAvailabilityModes lists accepted availability modes.
var ValidAvailabilityModes = map[AvailabilityMode]bool{
	ModePresentiel: true,
	ModeHybride:    true,
	ModeDistanciel: true,
}

// MissionStatus is the lifecycle of a mission posted by an école.
type MissionStatus string

const (
	MissionActive    MissionStatus = "ACTIVE"
	MissionCompleted MissionStatus = "COMPLETED"
)

// CollaborationStatus is the lifecycle of a collaboration.
type CollaborationStatus string

const (
	CollaborationBrouillon CollaborationStatus = "brouillon"
	CollaborationEnCours   CollaborationStatus = "en_cours"
	CollaborationTerminee  CollaborationStatus = "terminee"
	CollaborationAnnulee   CollaborationStatus = "annulee"
)

// CollaborationParty identifies which side created a collaboration.
type CollaborationParty string

const (
	PartyEcole       CollaborationParty = "ecole"
	PartyIntervenant CollaborationParty = "intervenant"
)

// DeclarationStatus is the lifecycle of a monthly revenue declaration.
type DeclarationStatus string

const (
	DeclarationBrouillon DeclarationStatus = "brouillon"
	DeclarationTransmise DeclarationStatus = "transmise"
	DeclarationValidee   DeclarationStatus = "validee"
)

// FactureType tells who issued an invoice.
type FactureType string

const (
	FactureTypeEcole       FactureType = "ecole"
	FactureTypeIntervenant FactureType = "intervenant"
)

// FactureStatus is the lifecycle of an invoice.
type FactureStatus string

const (
	FactureBrouillon FactureStatus = "brouillon"
	FactureEnvoyee   FactureStatus = "envoyee"
	FacturePayee     FactureStatus = "payee"
	FactureAnnulee   FactureStatus = "annulee"
	FactureEnRetard  FactureStatus = "en_retard"
)

// ModePaiement is how an invoice was settled.
type ModePaiement string

const (
	PaiementVirement ModePaiement = "virement"
	PaiementCheque   ModePaiement = "cheque"
	PaiementCarte    ModePaiement = "carte"
	PaiementEspeces  ModePaiement = "especes"
	PaiementAutre    ModePaiement = "autre"
)

// ValidModesPaiement lists accepted payment methods.
var ValidModesPaiement = map[ModePaiement]bool{
	PaiementVirement: true,
	PaiementCheque:   true,
	PaiementCarte:    true,
	PaiementEspeces:  true,
	PaiementAutre:    true,
}
