package domain

import "math"

// DocumentType identifies a slot of the intervenant document vault.
type DocumentType string

const (
	DocProfileImage       DocumentType = "PROFILE_IMAGE"
	DocCV                 DocumentType = "CV"
	DocDiplome            DocumentType = "DIPLOME"
	DocPieceIdentite      DocumentType = "PIECE_IDENTITE"
	DocKbis               DocumentType = "KBIS"
	DocRIB                DocumentType = "RIB"
	DocAssurance          DocumentType = "ASSURANCE"
	DocAttestationURSSAF  DocumentType = "ATTESTATION_URSSAF"
	DocAttestationFiscale DocumentType = "ATTESTATION_FISCALE"
	DocCasierJudiciaire   DocumentType = "CASIER_JUDICIAIRE"
)

// DocumentRequirement describes one slot of the vault.
type DocumentRequirement struct {
	Type      DocumentType `json:"type"`
	Label     string       `json:"label"`
	Required  bool         `json:"required"`
	Sensitive bool         `json:"sensitive"`
	Multiple  bool         `json:"multiple"`
}

// DocumentRequirements is the fixed, ordered vault catalog.
var DocumentRequirements = []DocumentRequirement{
	{Type: DocProfileImage, Label: "Photo de profil"},
	{Type: DocCV, Label: "Curriculum vitae", Required: true},
	{Type: DocDiplome, Label: "Diplômes", Required: true, Multiple: true},
	{Type: DocPieceIdentite, Label: "Pièce d'identité", Required: true, Sensitive: true},
	{Type: DocKbis, Label: "Extrait Kbis / avis SIRENE", Required: true},
	{Type: DocRIB, Label: "RIB", Required: true, Sensitive: true},
	{Type: DocAssurance, Label: "Attestation d'assurance RC Pro", Required: true},
	{Type: DocAttestationURSSAF, Label: "Attestation de vigilance URSSAF", Required: true},
	{Type: DocAttestationFiscale, Label: "Attestation de régularité fiscale", Sensitive: true},
	{Type: DocCasierJudiciaire, Label: "Extrait de casier judiciaire", Sensitive: true},
}

// RequirementFor looks up the catalog entry of a document type.
func RequirementFor(t DocumentType) (DocumentRequirement, bool) {
	for _, r := range DocumentRequirements {
		if r.Type == t {
			return r, true
		}
	}
	return DocumentRequirement{}, false
}

// DocumentsOfType filters docs by type, preserving order.
func DocumentsOfType(docs []Document, t DocumentType) []Document {
	out := make([]Document, 0)
	for i := range docs {
		if docs[i].Type == t {
			out = append(out, docs[i])
		}
	}
	return out
}

// CanUpload reports whether another file may be added for the given slot.
func CanUpload(req DocumentRequirement, docs []Document) bool {
	if req.Multiple {
		return true
	}
	for i := range docs {
		if docs[i].Type == req.Type {
			return false
		}
	}
	return true
}

// Completion returns the rounded percentage of required slots holding at least one document.
// An empty required set counts as complete.
func Completion(reqs []DocumentRequirement, docs []Document) int {
	present := make(map[DocumentType]bool, len(docs))
	for i := range docs {
		present[docs[i].Type] = true
	}

	total, filled := 0, 0
	for _, r := range reqs {
		if !r.Required {
			continue
		}
		total++
		if present[r.Type] {
			filled++
		}
	}
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * float64(filled) / float64(total)))
}

// VaultSlot is one requirement together with the documents filling it.
type VaultSlot struct {
	DocumentRequirement
	CanUpload bool       `json:"can_upload"`
	Documents []Document `json:"documents"`
}

// Vault is the document vault of one intervenant.
type Vault struct {
	Requirements []VaultSlot `json:"requirements"`
	Completion   int         `json:"completion"`
}

// BuildVault groups docs under the catalog and computes completion.
func BuildVault(docs []Document) *Vault {
	v := &Vault{
		Requirements: make([]VaultSlot, 0, len(DocumentRequirements)),
		Completion:   Completion(DocumentRequirements, docs),
	}
	for _, r := range DocumentRequirements {
		v.Requirements = append(v.Requirements, VaultSlot{
			DocumentRequirement: r,
			CanUpload:           CanUpload(r, docs),
			Documents:           DocumentsOfType(docs, r.Type),
		})
	}
	return v
}
