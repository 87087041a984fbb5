package domain

// Thematique is the theme a challenge belongs to.
type Thematique string

const (
	ThemeInnovation               Thematique = "innovation"
	ThemeEntrepreneuriat          Thematique = "entrepreneuriat"
	ThemeDeveloppementDurable     Thematique = "developpement_durable"
	ThemeNumerique                Thematique = "numerique"
	ThemeIntelligenceArtificielle Thematique = "intelligence_artificielle"
	ThemeMarketingCommunication   Thematique = "marketing_communication"
	ThemeFinance                  Thematique = "finance"
	ThemeManagementLeadership     Thematique = "management_leadership"
	ThemeDesignThinking           Thematique = "design_thinking"
	ThemeSoftSkills               Thematique = "soft_skills"
)

// ThematiqueOption is a thematique with its display label.
type ThematiqueOption struct {
	Value Thematique `json:"value"`
	Label string     `json:"label"`
}

// Thematiques is the ordered list shown in filters and forms.
var Thematiques = []ThematiqueOption{
	{ThemeInnovation, "Innovation"},
	{ThemeEntrepreneuriat, "Entrepreneuriat"},
	{ThemeDeveloppementDurable, "Développement durable"},
	{ThemeNumerique, "Numérique"},
	{ThemeIntelligenceArtificielle, "Intelligence artificielle"},
	{ThemeMarketingCommunication, "Marketing & communication"},
	{ThemeFinance, "Finance"},
	{ThemeManagementLeadership, "Management & leadership"},
	{ThemeDesignThinking, "Design thinking"},
	{ThemeSoftSkills, "Soft skills"},
}

// ValidThematique reports whether t is part of the catalog.
func ValidThematique(t Thematique) bool {
	for _, o := range Thematiques {
		if o.Value == t {
			return true
		}
	}
	return false
}

// CanModerate reports whether an admin may move a challenge to target.
// Only pending challenges are moderated.
func (c *Challenge) CanModerate(target ModerationStatus) bool {
	return c.Status == ModerationPending && (target == ModerationApproved || target == ModerationRejected)
}

// CanModerateIntervenant reports whether a profile may move from -> to.
// Re-moderation between approved and rejected is allowed; nothing returns to pending.
func CanModerateIntervenant(from, to ModerationStatus) bool {
	if to == ModerationPending || from == to {
		return false
	}
	return to == ModerationApproved || to == ModerationRejected
}
