package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"edulink/internal/domain"
)

func doc(t domain.DocumentType) domain.Document {
	return domain.Document{ID: uuid.New(), Type: t}
}

func allRequired() []domain.Document {
	var docs []domain.Document
	for _, r := range domain.DocumentRequirements {
		if r.Required {
			docs = append(docs, doc(r.Type))
		}
	}
	return docs
}

func TestCompletion_Empty(t *testing.T) {
	assert.Equal(t, 0, domain.Completion(domain.DocumentRequirements, nil))
}

func TestCompletion_AllRequired(t *testing.T) {
	assert.Equal(t, 100, domain.Completion(domain.DocumentRequirements, allRequired()))
}

func TestCompletion_OptionalDocsDoNotCount(t *testing.T) {
	docs := []domain.Document{doc(domain.DocProfileImage), doc(domain.DocCasierJudiciaire)}
	assert.Equal(t, 0, domain.Completion(domain.DocumentRequirements, docs))
}

func TestCompletion_Rounded(t *testing.T) {
	// 7 required slots, 2 filled: 28.57 -> 29
	docs := []domain.Document{doc(domain.DocCV), doc(domain.DocDiplome), doc(domain.DocDiplome)}
	assert.Equal(t, 29, domain.Completion(domain.DocumentRequirements, docs))
}

func TestCompletion_ReachesHundredOnlyWhenEveryRequiredTypeIsPresent(t *testing.T) {
	full := allRequired()
	for i := range full {
		missingOne := make([]domain.Document, 0, len(full)-1)
		missingOne = append(missingOne, full[:i]...)
		missingOne = append(missingOne, full[i+1:]...)
		assert.Less(t, domain.Completion(domain.DocumentRequirements, missingOne), 100, "missing %s", full[i].Type)
	}
}

func TestCompletion_NoRequiredTypes(t *testing.T) {
	reqs := []domain.DocumentRequirement{{Type: domain.DocProfileImage}}
	assert.Equal(t, 100, domain.Completion(reqs, nil))
}

func TestCanUpload_SingleTypeAlreadyPresent(t *testing.T) {
	docs := []domain.Document{doc(domain.DocCV), doc(domain.DocDiplome)}

	cv, _ := domain.RequirementFor(domain.DocCV)
	diplome, _ := domain.RequirementFor(domain.DocDiplome)
	kbis, _ := domain.RequirementFor(domain.DocKbis)

	assert.False(t, domain.CanUpload(cv, docs))
	assert.True(t, domain.CanUpload(diplome, docs))
	assert.True(t, domain.CanUpload(kbis, docs))
}

func TestDocumentsOfType(t *testing.T) {
	d1, d2 := doc(domain.DocDiplome), doc(domain.DocDiplome)
	docs := []domain.Document{d1, doc(domain.DocCV), d2}

	got := domain.DocumentsOfType(docs, domain.DocDiplome)
	assert.Equal(t, []domain.Document{d1, d2}, got)
	assert.Empty(t, domain.DocumentsOfType(docs, domain.DocRIB))
}

func TestBuildVault_KeepsCatalogOrder(t *testing.T) {
	v := domain.BuildVault([]domain.Document{doc(domain.DocCV)})

	assert.Len(t, v.Requirements, len(domain.DocumentRequirements))
	assert.Equal(t, domain.DocProfileImage, v.Requirements[0].Type)
	assert.Equal(t, domain.DocCV, v.Requirements[1].Type)
	assert.False(t, v.Requirements[1].CanUpload)
	assert.Len(t, v.Requirements[1].Documents, 1)
	assert.Equal(t, 14, v.Completion)
}

func TestDocument_Sensitive(t *testing.T) {
	assert.True(t, (&domain.Document{Type: domain.DocRIB}).Sensitive())
	assert.False(t, (&domain.Document{Type: domain.DocCV}).Sensitive())
	assert.False(t, (&domain.Document{Type: "UNKNOWN"}).Sensitive())
}
