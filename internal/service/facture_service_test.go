package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"edulink/internal/domain"
	"edulink/internal/port"
	"edulink/internal/service"
	"edulink/mocks"
)

type factureDeps struct {
	repo         *mocks.MockFactureRepo
	ecoles       *mocks.MockEcoleRepo
	intervenants *mocks.MockIntervenantRepo
	storage      *mocks.MockObjectStorage
	renderer     *mocks.MockFactureRenderer
	notifier     *mocks.MockNotificationService
}

func newFactureService() (service.FactureService, factureDeps) {
	d := factureDeps{
		repo:         new(mocks.MockFactureRepo),
		ecoles:       new(mocks.MockEcoleRepo),
		intervenants: new(mocks.MockIntervenantRepo),
		storage:      new(mocks.MockObjectStorage),
		renderer:     new(mocks.MockFactureRenderer),
		notifier:     new(mocks.MockNotificationService),
	}
	svc := service.NewFactureService(d.repo, d.ecoles, d.intervenants, d.storage, d.renderer, d.notifier,
		testBillingConfig(), "test-bucket")
	return svc, d
}

func testEcole() *domain.Ecole {
	return &domain.Ecole{
		ID:           uuid.New(),
		Name:         "ESC Lyon",
		Address:      "23 avenue Guy de Collongue",
		PostalCode:   "69130",
		City:         "Écully",
		ContactEmail: "compta@esc.fr",
	}
}

func factureInput(ecoleID uuid.UUID) service.FactureInput {
	return service.FactureInput{
		Type:         domain.FactureTypeIntervenant,
		EcoleID:      ecoleID,
		DateEmission: domain.NewDate(2024, 3, 1),
		Lignes: []service.LigneInput{
			{Description: "Atelier", Quantite: 2, PrixUnitaire: 45000},
			{Description: "Déplacement", Quantite: 1, PrixUnitaire: 5050},
		},
	}
}

func TestFactureService_Create_IntervenantComputesTotals(t *testing.T) {
	svc, d := newFactureService()
	actor := intervenantActor()
	ecole := testEcole()

	d.ecoles.On("GetByID", mock.Anything, ecole.ID).Return(ecole, nil)
	d.repo.On("NextSequence", mock.Anything).Return(int64(42), nil)
	d.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Facture")).Return(nil)

	in := factureInput(ecole.ID)
	other := uuid.New()
	in.IntervenantID = &other

	f, err := svc.Create(context.Background(), actor, in)
	require.NoError(t, err)
	assert.Equal(t, "FAC-2024-00042", f.Numero)
	require.NotNil(t, f.IntervenantID)
	assert.Equal(t, actor.ProfileID, *f.IntervenantID)
	assert.Equal(t, actor.UserID, f.CreatedBy)
	assert.Equal(t, int64(95050), f.MontantHT)
	assert.Equal(t, float64(20), f.TauxTVA)
	assert.Equal(t, int64(19010), f.TVA)
	assert.Equal(t, int64(114060), f.MontantTTC)
	assert.Equal(t, domain.NewDate(2024, 3, 31), f.DateEcheance)
}

func TestFactureService_Create_Refusals(t *testing.T) {
	svc, d := newFactureService()
	ecole := testEcole()
	d.ecoles.On("GetByID", mock.Anything, ecole.ID).Return(ecole, nil)

	in := factureInput(ecole.ID)
	in.Type = domain.FactureTypeEcole
	_, err := svc.Create(context.Background(), intervenantActor(), in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Create(context.Background(), ecoleActor(), factureInput(ecole.ID))
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)

	in = factureInput(ecole.ID)
	in.DateEcheance = domain.NewDate(2024, 2, 1)
	_, err = svc.Create(context.Background(), intervenantActor(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	in = factureInput(ecole.ID)
	in.Lignes = nil
	_, err = svc.Create(context.Background(), intervenantActor(), in)
	assert.ErrorIs(t, err, domain.ErrFactureHasNoLines)

	d.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFactureService_Create_AdminIntervenantTypeNeedsIntervenant(t *testing.T) {
	svc, _ := newFactureService()
	_, err := svc.Create(context.Background(), adminActor(), factureInput(uuid.New()))
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func draftFacture(actor domain.Actor, ecoleID uuid.UUID) *domain.Facture {
	id := actor.ProfileID
	return &domain.Facture{
		ID:            uuid.New(),
		Type:          domain.FactureTypeIntervenant,
		Numero:        "FAC-2024-00001",
		EcoleID:       ecoleID,
		IntervenantID: &id,
		Status:        domain.FactureBrouillon,
		CreatedBy:     actor.UserID,
		MontantTTC:    120000,
	}
}

func TestFactureService_Send_EmailsEcole(t *testing.T) {
	svc, d := newFactureService()
	actor := intervenantActor()
	ecole := testEcole()
	f := draftFacture(actor, ecole.ID)

	d.repo.On("GetByID", mock.Anything, f.ID).Return(f, nil)
	d.repo.On("UpdateStatus", mock.Anything, f.ID, []domain.FactureStatus{domain.FactureBrouillon}, domain.FactureEnvoyee).Return(nil)
	d.ecoles.On("GetByID", mock.Anything, ecole.ID).Return(ecole, nil)
	d.notifier.On("FactureSent", mock.Anything, service.Recipient{Email: "compta@esc.fr", Name: "ESC Lyon"}, f).
		Return(errors.New("smtp down"))

	out, err := svc.Send(context.Background(), actor, f.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FactureEnvoyee, out.Status)
	d.notifier.AssertExpectations(t)

	_, err = svc.Send(context.Background(), actor, f.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestFactureService_Access(t *testing.T) {
	svc, d := newFactureService()
	owner := intervenantActor()
	ecole := testEcole()
	f := draftFacture(owner, ecole.ID)
	d.repo.On("GetByID", mock.Anything, f.ID).Return(f, nil)

	_, err := svc.Get(context.Background(), intervenantActor(), f.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	client := domain.Actor{UserID: uuid.New(), Role: domain.RoleEcole, ProfileID: ecole.ID}
	got, err := svc.Get(context.Background(), client, f.ID)
	require.NoError(t, err)
	assert.Equal(t, f, got)

	_, err = svc.Cancel(context.Background(), client, f.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestFactureService_Update_OnlyDraft(t *testing.T) {
	svc, d := newFactureService()
	actor := intervenantActor()
	f := draftFacture(actor, uuid.New())
	f.Status = domain.FactureEnvoyee
	d.repo.On("GetByID", mock.Anything, f.ID).Return(f, nil)

	_, err := svc.Update(context.Background(), actor, f.ID, factureInput(f.EcoleID))
	assert.ErrorIs(t, err, domain.ErrNotEditable)
	assert.ErrorIs(t, svc.Delete(context.Background(), actor, f.ID), domain.ErrNotEditable)
}

func TestFactureService_Update_TypeIsLocked(t *testing.T) {
	svc, d := newFactureService()
	ecole := testEcole()
	f := &domain.Facture{
		ID:      uuid.New(),
		Type:    domain.FactureTypeEcole,
		Numero:  "FAC-2024-00002",
		EcoleID: ecole.ID,
		Status:  domain.FactureBrouillon,
	}
	d.repo.On("GetByID", mock.Anything, f.ID).Return(f, nil)
	d.ecoles.On("GetByID", mock.Anything, ecole.ID).Return(ecole, nil)
	d.repo.On("Update", mock.Anything, f).Return(nil)

	intervenantID := uuid.New()
	input := factureInput(ecole.ID)
	input.IntervenantID = &intervenantID

	_, err := svc.Update(context.Background(), adminActor(), f.ID, input)
	assert.ErrorIs(t, err, domain.ErrFactureTypeLocked)
	d.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Nil(t, f.IntervenantID)

	input = factureInput(ecole.ID)
	input.Type = domain.FactureTypeEcole
	out, err := svc.Update(context.Background(), adminActor(), f.ID, input)
	require.NoError(t, err)
	assert.Equal(t, domain.FactureTypeEcole, out.Type)
	d.repo.AssertCalled(t, "Update", mock.Anything, f)
}

func TestFactureService_MarkPaid(t *testing.T) {
	svc, d := newFactureService()
	actor := intervenantActor()
	f := draftFacture(actor, uuid.New())
	f.Status = domain.FactureEnRetard
	d.repo.On("GetByID", mock.Anything, f.ID).Return(f, nil)
	d.repo.On("MarkPaid", mock.Anything, f.ID, domain.PaiementVirement, domain.NewDate(2024, 4, 15)).Return(nil)

	_, err := svc.MarkPaid(context.Background(), actor, f.ID, service.MarkPaidInput{ModePaiement: "bitcoin"})
	assert.ErrorIs(t, err, domain.ErrInvalidModePaiement)

	out, err := svc.MarkPaid(context.Background(), actor, f.ID, service.MarkPaidInput{
		ModePaiement: domain.PaiementVirement,
		DatePaiement: domain.NewDate(2024, 4, 15),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FacturePayee, out.Status)
	require.NotNil(t, out.ModePaiement)
	assert.Equal(t, domain.PaiementVirement, *out.ModePaiement)

	_, err = svc.MarkPaid(context.Background(), actor, f.ID, service.MarkPaidInput{ModePaiement: domain.PaiementCheque})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestFactureService_Cancel_FromDraftOnlyOnce(t *testing.T) {
	svc, d := newFactureService()
	actor := adminActor()
	f := draftFacture(intervenantActor(), uuid.New())
	from := []domain.FactureStatus{domain.FactureBrouillon, domain.FactureEnvoyee, domain.FactureEnRetard}
	d.repo.On("GetByID", mock.Anything, f.ID).Return(f, nil)
	d.repo.On("UpdateStatus", mock.Anything, f.ID, from, domain.FactureAnnulee).Return(nil)

	out, err := svc.Cancel(context.Background(), actor, f.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FactureAnnulee, out.Status)

	_, err = svc.Cancel(context.Background(), actor, f.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestFactureService_GeneratePDF_IntervenantIssuer(t *testing.T) {
	svc, d := newFactureService()
	actor := intervenantActor()
	ecole := testEcole()
	f := draftFacture(actor, ecole.ID)
	issuer := &domain.Intervenant{ID: actor.ProfileID, FirstName: "Léa", LastName: "Martin", City: "Lyon", Siret: "98765432100019"}

	d.repo.On("GetByID", mock.Anything, f.ID).Return(f, nil)
	d.ecoles.On("GetByID", mock.Anything, ecole.ID).Return(ecole, nil)
	d.intervenants.On("GetByID", mock.Anything, actor.ProfileID).Return(issuer, nil)
	d.renderer.On("Render", f, mock.MatchedBy(func(p domain.FactureParties) bool {
		return p.Issuer.Name == "Léa Martin" &&
			p.Client.Name == "ESC Lyon" &&
			p.Client.Address == "23 avenue Guy de Collongue, 69130 Écully"
	})).Return([]byte("%PDF-1.7"), nil)
	d.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "test-bucket" && in.Key == f.PDFKey() && in.ContentType == "application/pdf" && in.Size == 8
	})).Return(&port.UploadOutput{}, nil)
	d.repo.On("SetPDFPath", mock.Anything, f.ID, f.PDFKey()).Return(nil)

	out, err := svc.GeneratePDF(context.Background(), actor, f.ID)
	require.NoError(t, err)
	require.NotNil(t, out.PDFPath)
	assert.True(t, strings.HasSuffix(*out.PDFPath, "FAC-2024-00001.pdf"))
	d.renderer.AssertExpectations(t)
	d.storage.AssertExpectations(t)
}

func TestFactureService_GeneratePDF_PlatformIssuer(t *testing.T) {
	svc, d := newFactureService()
	ecole := testEcole()
	f := &domain.Facture{ID: uuid.New(), Type: domain.FactureTypeEcole, Numero: "FAC-2024-00002", EcoleID: ecole.ID}

	d.repo.On("GetByID", mock.Anything, f.ID).Return(f, nil)
	d.ecoles.On("GetByID", mock.Anything, ecole.ID).Return(ecole, nil)
	d.renderer.On("Render", f, mock.MatchedBy(func(p domain.FactureParties) bool {
		return p.Issuer.Name == "EduLink SAS" && p.Issuer.Siret == "12345678900011"
	})).Return(nil, errors.New("font missing"))

	_, err := svc.GeneratePDF(context.Background(), adminActor(), f.ID)
	assert.ErrorIs(t, err, domain.ErrPDFGenerationFailed)
	d.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestFactureService_DownloadPDF(t *testing.T) {
	svc, d := newFactureService()
	actor := intervenantActor()
	f := draftFacture(actor, uuid.New())
	d.repo.On("GetByID", mock.Anything, f.ID).Return(f, nil)

	_, err := svc.DownloadPDF(context.Background(), actor, f.ID)
	assert.ErrorIs(t, err, domain.ErrPDFNotGenerated)

	path := f.PDFKey()
	f.PDFPath = &path
	d.storage.On("Download", mock.Anything, "test-bucket", path).Return([]byte("%PDF"), nil)

	file, err := svc.DownloadPDF(context.Background(), actor, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "FAC-2024-00001.pdf", file.Filename)
	assert.Equal(t, []byte("%PDF"), file.Data)
}

func TestFactureService_List_ScopedToEcole(t *testing.T) {
	svc, d := newFactureService()
	actor := ecoleActor()
	id := actor.ProfileID
	filter := domain.FactureFilter{EcoleID: &id, Year: 2024}
	totals := &domain.FactureTotals{Count: 0}

	d.repo.On("List", mock.Anything, filter, 0, 20).Return(nil, 0, nil)
	d.repo.On("Totals", mock.Anything, filter).Return(totals, nil)

	list, total, err := svc.List(context.Background(), actor, domain.FactureFilter{Year: 2024}, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, list.Factures)
	assert.Equal(t, totals, list.Totals)
}

func TestFactureService_ExportCSV(t *testing.T) {
	svc, d := newFactureService()
	d.repo.On("ListForExport", mock.Anything, domain.FactureFilter{}).Return([]domain.Facture{
		{Numero: "FAC-2024-00003", Status: domain.FactureEnvoyee, MontantTTC: 12000, DateEmission: domain.NewDate(2024, 1, 2)},
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), domain.FactureFilter{}, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "FAC-2024-00003")
}

func TestFactureService_MarkOverdue(t *testing.T) {
	svc, d := newFactureService()
	ecole := testEcole()
	f := &domain.Facture{ID: uuid.New(), Numero: "FAC-2024-00009", EcoleID: ecole.ID, Status: domain.FactureEnvoyee}

	d.repo.On("UpdateStatus", mock.Anything, f.ID, []domain.FactureStatus{domain.FactureEnvoyee}, domain.FactureEnRetard).Return(nil)
	d.ecoles.On("GetByID", mock.Anything, ecole.ID).Return(ecole, nil)
	d.notifier.On("FactureOverdue", mock.Anything, mock.Anything, f).Return(nil)

	require.NoError(t, svc.MarkOverdue(context.Background(), f))
	assert.Equal(t, domain.FactureEnRetard, f.Status)
	d.notifier.AssertExpectations(t)
}
