package domain

// StatusDescriptor is the presentation of one status value.
type StatusDescriptor struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// StatusDescriptors holds the presentation tables of every status enum, keyed by enum name.
var StatusDescriptors = map[string]map[string]StatusDescriptor{
	"moderation": {
		string(ModerationPending):  {"En attente", "yellow", "clock"},
		string(ModerationApproved): {"Validé", "green", "check-circle"},
		string(ModerationRejected): {"Refusé", "red", "x-circle"},
	},
	"mission": {
		string(MissionActive):    {"Active", "green", "play"},
		string(MissionCompleted): {"Terminée", "gray", "check"},
	},
	"collaboration": {
		string(CollaborationBrouillon): {"Brouillon", "gray", "file-edit"},
		string(CollaborationEnCours):   {"En cours", "blue", "loader"},
		string(CollaborationTerminee):  {"Terminée", "green", "check-circle"},
		string(CollaborationAnnulee):   {"Annulée", "red", "x-circle"},
	},
	"declaration": {
		string(DeclarationBrouillon): {"Brouillon", "gray", "file-edit"},
		string(DeclarationTransmise): {"Transmise", "blue", "send"},
		string(DeclarationValidee):   {"Validée", "green", "check-circle"},
	},
	"facture": {
		string(FactureBrouillon): {"Brouillon", "gray", "file-edit"},
		string(FactureEnvoyee):   {"Envoyée", "blue", "send"},
		string(FacturePayee):     {"Payée", "green", "check-circle"},
		string(FactureAnnulee):   {"Annulée", "red", "x-circle"},
		string(FactureEnRetard):  {"En retard", "orange", "alert-triangle"},
	},
}

// Reference is the static data the front end needs to render forms and badges.
type Reference struct {
	Thematiques          []ThematiqueOption                     `json:"thematiques"`
	DocumentRequirements []DocumentRequirement                  `json:"document_requirements"`
	Statuses             map[string]map[string]StatusDescriptor `json:"statuses"`
	LanguageLevels       []LanguageLevel                        `json:"language_levels"`
	AvailabilityModes    []AvailabilityMode                     `json:"availability_modes"`
	ModesPaiement        []ModePaiement                         `json:"modes_paiement"`
}

// ReferenceData assembles the reference payload.
func ReferenceData() Reference {
	return Reference{
		Thematiques:          Thematiques,
		DocumentRequirements: DocumentRequirements,
		Statuses:             StatusDescriptors,
		LanguageLevels:       []LanguageLevel{LevelDebutant, LevelIntermediaire, LevelAvance, LevelNatif},
		AvailabilityModes:    []AvailabilityMode{ModePresentiel, ModeHybride, ModeDistanciel},
		ModesPaiement:        []ModePaiement{PaiementVirement, PaiementCheque, PaiementCarte, PaiementEspeces, PaiementAutre},
	}
}
