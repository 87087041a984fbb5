package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"edulink/internal/domain"
	"edulink/internal/service"
	"edulink/mocks"
)

type collabDeps struct {
	repo         *mocks.MockCollaborationRepo
	ecoles       *mocks.MockEcoleRepo
	intervenants *mocks.MockIntervenantRepo
	notifier     *mocks.MockNotificationService
}

func newCollaborationService() (service.CollaborationService, collabDeps) {
	d := collabDeps{
		repo:         new(mocks.MockCollaborationRepo),
		ecoles:       new(mocks.MockEcoleRepo),
		intervenants: new(mocks.MockIntervenantRepo),
		notifier:     new(mocks.MockNotificationService),
	}
	return service.NewCollaborationService(d.repo, d.ecoles, d.intervenants, d.notifier), d
}

// parties returns an école actor, an intervenant actor and a draft between them.
func collaborationTerms(titre string) service.CollaborationTerms {
	return service.CollaborationTerms{
		Titre:     titre,
		DateDebut: domain.NewDate(2024, 9, 2),
		DateFin:   domain.NewDate(2024, 9, 6),
		MontantHT: 120000,
	}
}

func parties(createdBy domain.CollaborationParty) (domain.Actor, domain.Actor, *domain.Collaboration) {
	ecole := ecoleActor()
	intervenant := intervenantActor()
	c := &domain.Collaboration{
		ID:            uuid.New(),
		EcoleID:       ecole.ProfileID,
		IntervenantID: intervenant.ProfileID,
		Titre:         "Atelier design",
		DateDebut:     domain.NewDate(2024, 9, 2),
		DateFin:       domain.NewDate(2024, 9, 6),
		Status:        domain.CollaborationBrouillon,
		CreatedBy:     createdBy,
	}
	return ecole, intervenant, c
}

func TestCollaborationService_Create_ByEcole(t *testing.T) {
	svc, d := newCollaborationService()
	actor := ecoleActor()
	ecole := &domain.Ecole{ID: actor.ProfileID, Name: "ESC Lyon"}
	intervenant := &domain.Intervenant{ID: uuid.New(), FirstName: "Léa", Email: "lea@test.fr", Status: domain.ModerationApproved}

	d.intervenants.On("GetByID", mock.Anything, intervenant.ID).Return(intervenant, nil)
	d.ecoles.On("GetByID", mock.Anything, ecole.ID).Return(ecole, nil)
	d.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Collaboration")).Return(nil)
	d.notifier.On("CollaborationProposed", mock.Anything, service.Recipient{Email: "lea@test.fr", Name: "Léa"},
		mock.AnythingOfType("*domain.Collaboration"), "ESC Lyon").Return(nil)

	view, err := svc.Create(context.Background(), actor, service.CreateCollaborationInput{
		IntervenantID:      &intervenant.ID,
		CollaborationTerms: collaborationTerms(" Atelier "),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PartyEcole, view.CreatedBy)
	assert.Equal(t, "Atelier", view.Titre)
	assert.Equal(t, domain.NewDate(2024, 9, 2), view.DateDebut)
	assert.False(t, view.ValidatedByEcole)
	assert.False(t, view.ValidatedByIntervenant)
	assert.True(t, view.CanDelete)
	assert.True(t, view.CanValidate)
	d.notifier.AssertExpectations(t)
}

func TestCollaborationService_Create_PendingIntervenantRefused(t *testing.T) {
	svc, d := newCollaborationService()
	intervenant := &domain.Intervenant{ID: uuid.New(), Status: domain.ModerationPending}
	d.intervenants.On("GetByID", mock.Anything, intervenant.ID).Return(intervenant, nil)

	_, err := svc.Create(context.Background(), ecoleActor(), service.CreateCollaborationInput{
		IntervenantID:      &intervenant.ID,
		CollaborationTerms: collaborationTerms("x"),
	})
	assert.ErrorIs(t, err, domain.ErrIntervenantNotApproved)
}

func TestCollaborationService_Create_DatesRequired(t *testing.T) {
	tests := []struct {
		name  string
		terms service.CollaborationTerms
	}{
		{"no dates", service.CollaborationTerms{Titre: "Atelier"}},
		{"no end date", service.CollaborationTerms{Titre: "Atelier", DateDebut: domain.NewDate(2024, 9, 2)}},
		{"no start date", service.CollaborationTerms{Titre: "Atelier", DateFin: domain.NewDate(2024, 9, 6)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newCollaborationService()
			id := uuid.New()

			_, err := svc.Create(context.Background(), ecoleActor(), service.CreateCollaborationInput{
				IntervenantID:      &id,
				CollaborationTerms: tt.terms,
			})

			assert.ErrorIs(t, err, domain.ErrDatesRequired)
			d.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCollaborationService_Create_AdminRefused(t *testing.T) {
	svc, _ := newCollaborationService()
	_, err := svc.Create(context.Background(), adminActor(), service.CreateCollaborationInput{})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestCollaborationService_Validate_OwnFlagOnly(t *testing.T) {
	svc, d := newCollaborationService()
	ecole, _, c := parties(domain.PartyEcole)
	d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)
	d.repo.On("SetValidated", mock.Anything, c.ID, domain.PartyEcole).Return(nil)

	view, err := svc.Validate(context.Background(), ecole, c.ID)
	require.NoError(t, err)
	assert.True(t, view.ValidatedByEcole)
	assert.False(t, view.ValidatedByIntervenant)
	assert.False(t, view.CanValidate)
}

func TestCollaborationService_Validate_AlreadyValidated(t *testing.T) {
	svc, d := newCollaborationService()
	ecole, _, c := parties(domain.PartyEcole)
	c.ValidatedByEcole = true
	d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)

	_, err := svc.Validate(context.Background(), ecole, c.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyValidated)
	d.repo.AssertNotCalled(t, "SetValidated", mock.Anything, mock.Anything, mock.Anything)
}

func TestCollaborationService_Validate_NotDraft(t *testing.T) {
	svc, d := newCollaborationService()
	_, intervenant, c := parties(domain.PartyEcole)
	c.Status = domain.CollaborationEnCours
	d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)

	_, err := svc.Validate(context.Background(), intervenant, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotEditable)
}

func TestCollaborationService_ChangeStatus_StartRequiresBothValidations(t *testing.T) {
	svc, d := newCollaborationService()
	ecole, _, c := parties(domain.PartyEcole)
	c.ValidatedByEcole = true
	d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)

	_, err := svc.ChangeStatus(context.Background(), ecole, c.ID, domain.CollaborationEnCours)
	assert.ErrorIs(t, err, domain.ErrValidationsIncomplete)
	d.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCollaborationService_ChangeStatus_Start(t *testing.T) {
	svc, d := newCollaborationService()
	_, intervenant, c := parties(domain.PartyEcole)
	c.ValidatedByEcole = true
	c.ValidatedByIntervenant = true
	d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)
	d.repo.On("UpdateStatus", mock.Anything, c.ID, domain.CollaborationBrouillon, domain.CollaborationEnCours).Return(nil)

	view, err := svc.ChangeStatus(context.Background(), intervenant, c.ID, domain.CollaborationEnCours)
	require.NoError(t, err)
	assert.Equal(t, domain.CollaborationEnCours, view.Status)
	assert.False(t, view.CanEdit)
	assert.False(t, view.CanDelete)
}

func TestCollaborationService_ChangeStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    domain.CollaborationStatus
		to      domain.CollaborationStatus
		wantErr error
	}{
		{domain.CollaborationEnCours, domain.CollaborationTerminee, nil},
		{domain.CollaborationEnCours, domain.CollaborationAnnulee, nil},
		{domain.CollaborationBrouillon, domain.CollaborationAnnulee, nil},
		{domain.CollaborationBrouillon, domain.CollaborationTerminee, domain.ErrInvalidTransition},
		{domain.CollaborationTerminee, domain.CollaborationEnCours, domain.ErrInvalidTransition},
		{domain.CollaborationAnnulee, domain.CollaborationBrouillon, domain.ErrInvalidTransition},
		{domain.CollaborationEnCours, "archivee", domain.ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			svc, d := newCollaborationService()
			ecole, _, c := parties(domain.PartyEcole)
			c.Status = tt.from
			d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)
			d.repo.On("UpdateStatus", mock.Anything, c.ID, tt.from, tt.to).Return(nil)

			_, err := svc.ChangeStatus(context.Background(), ecole, c.ID, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCollaborationService_ChangeStatus_AdminIsReadOnly(t *testing.T) {
	svc, d := newCollaborationService()
	_, _, c := parties(domain.PartyEcole)
	d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)

	_, err := svc.ChangeStatus(context.Background(), adminActor(), c.ID, domain.CollaborationAnnulee)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	view, err := svc.Get(context.Background(), adminActor(), c.ID)
	require.NoError(t, err)
	assert.False(t, view.CanEdit)
	assert.False(t, view.CanValidate)
}

func TestCollaborationService_Get_OutsiderNotFound(t *testing.T) {
	svc, d := newCollaborationService()
	_, _, c := parties(domain.PartyEcole)
	d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)

	_, err := svc.Get(context.Background(), ecoleActor(), c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollaborationService_Update_ResetsValidations(t *testing.T) {
	svc, d := newCollaborationService()
	_, intervenant, c := parties(domain.PartyEcole)
	c.ValidatedByEcole = true
	d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)
	d.repo.On("Update", mock.Anything, c).Return(nil)

	terms := collaborationTerms("Nouveau titre")
	terms.MontantHT = 5000
	view, err := svc.Update(context.Background(), intervenant, c.ID, terms)
	require.NoError(t, err)
	assert.False(t, view.ValidatedByEcole)
	assert.False(t, view.ValidatedByIntervenant)
	assert.Equal(t, int64(5000), view.MontantHT)
}

func TestCollaborationService_Update_InvalidDates(t *testing.T) {
	svc, d := newCollaborationService()
	ecole, _, c := parties(domain.PartyEcole)
	d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)

	_, err := svc.Update(context.Background(), ecole, c.ID, service.CollaborationTerms{
		Titre:     "x",
		DateDebut: domain.NewDate(2024, 5, 10),
		DateFin:   domain.NewDate(2024, 5, 1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = svc.Update(context.Background(), ecole, c.ID, service.CollaborationTerms{Titre: "x"})
	assert.ErrorIs(t, err, domain.ErrDatesRequired)
	d.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCollaborationService_Delete(t *testing.T) {
	t.Run("creator deletes draft", func(t *testing.T) {
		svc, d := newCollaborationService()
		_, intervenant, c := parties(domain.PartyIntervenant)
		d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)
		d.repo.On("Delete", mock.Anything, c.ID, domain.PartyIntervenant).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), intervenant, c.ID))
	})

	t.Run("other party is not creator", func(t *testing.T) {
		svc, d := newCollaborationService()
		ecole, _, c := parties(domain.PartyIntervenant)
		d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)

		assert.ErrorIs(t, svc.Delete(context.Background(), ecole, c.ID), domain.ErrNotCreator)
	})

	t.Run("started collaboration", func(t *testing.T) {
		svc, d := newCollaborationService()
		ecole, _, c := parties(domain.PartyEcole)
		c.Status = domain.CollaborationEnCours
		d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)

		assert.ErrorIs(t, svc.Delete(context.Background(), ecole, c.ID), domain.ErrNotEditable)
	})
}

func TestCollaborationService_List_ScopedWithStats(t *testing.T) {
	svc, d := newCollaborationService()
	ecole, _, c := parties(domain.PartyEcole)
	id := ecole.ProfileID
	stats := domain.StatusCounts{"brouillon": 1, "en_cours": 2}

	d.repo.On("CountByStatus", mock.Anything, domain.CollaborationFilter{EcoleID: &id}).Return(stats, nil)
	d.repo.On("List", mock.Anything, domain.CollaborationFilter{EcoleID: &id, Status: domain.CollaborationBrouillon}, 0, 20).
		Return([]domain.Collaboration{*c}, 1, nil)

	list, total, err := svc.List(context.Background(), ecole, domain.CollaborationBrouillon, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, stats, list.Stats)
	require.Len(t, list.Collaborations, 1)
	assert.True(t, list.Collaborations[0].CanDelete)
}
