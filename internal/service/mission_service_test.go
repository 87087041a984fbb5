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

type missionDeps struct {
	repo         *mocks.MockMissionRepo
	intervenants *mocks.MockIntervenantRepo
}

func newMissionService() (service.MissionService, missionDeps) {
	d := missionDeps{repo: new(mocks.MockMissionRepo), intervenants: new(mocks.MockIntervenantRepo)}
	return service.NewMissionService(d.repo, d.intervenants), d
}

func missionInput() service.MissionInput {
	return service.MissionInput{
		Title:      "Jury de soutenance",
		StartDate:  domain.NewDate(2024, 6, 1),
		EndDate:    domain.NewDate(2024, 6, 3),
		PriceCents: 90000,
	}
}

func TestMissionService_Create(t *testing.T) {
	svc, d := newMissionService()
	actor := ecoleActor()
	d.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Mission")).Return(nil)

	m, err := svc.Create(context.Background(), actor, missionInput())
	require.NoError(t, err)
	assert.Equal(t, actor.ProfileID, m.EcoleID)
	assert.Equal(t, domain.MissionActive, m.Status)

	_, err = svc.Create(context.Background(), intervenantActor(), missionInput())
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)

	bad := missionInput()
	bad.EndDate = domain.NewDate(2024, 5, 1)
	_, err = svc.Create(context.Background(), actor, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestMissionService_ToggleStatus(t *testing.T) {
	svc, d := newMissionService()
	actor := ecoleActor()
	m := &domain.Mission{ID: uuid.New(), EcoleID: actor.ProfileID, Status: domain.MissionCompleted}
	d.repo.On("GetByID", mock.Anything, m.ID).Return(m, nil)
	d.repo.On("SetStatus", mock.Anything, m.ID, domain.MissionCompleted, domain.MissionActive).Return(nil)

	out, err := svc.ToggleStatus(context.Background(), actor, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MissionActive, out.Status)

	_, err = svc.ToggleStatus(context.Background(), ecoleActor(), m.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMissionService_Assign(t *testing.T) {
	svc, d := newMissionService()
	actor := ecoleActor()
	m := &domain.Mission{ID: uuid.New(), EcoleID: actor.ProfileID, Status: domain.MissionActive}
	approved := &domain.Intervenant{ID: uuid.New(), Status: domain.ModerationApproved}
	pending := &domain.Intervenant{ID: uuid.New(), Status: domain.ModerationPending}

	d.repo.On("GetByID", mock.Anything, m.ID).Return(m, nil)
	d.intervenants.On("GetByID", mock.Anything, approved.ID).Return(approved, nil)
	d.intervenants.On("GetByID", mock.Anything, pending.ID).Return(pending, nil)
	d.repo.On("AssignIntervenant", mock.Anything, m.ID, &approved.ID).Return(nil)
	d.repo.On("AssignIntervenant", mock.Anything, m.ID, (*uuid.UUID)(nil)).Return(nil)

	out, err := svc.Assign(context.Background(), actor, m.ID, &approved.ID)
	require.NoError(t, err)
	assert.Equal(t, &approved.ID, out.IntervenantID)

	_, err = svc.Assign(context.Background(), actor, m.ID, &pending.ID)
	assert.ErrorIs(t, err, domain.ErrIntervenantNotApproved)

	out, err = svc.Assign(context.Background(), actor, m.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, out.IntervenantID)
}

func TestMissionService_List_IntervenantSeesActiveBoard(t *testing.T) {
	svc, d := newMissionService()
	d.repo.On("List", mock.Anything, domain.MissionFilter{Status: domain.MissionActive}, 0, 20).Return([]domain.Mission{}, 0, nil)

	_, _, err := svc.List(context.Background(), intervenantActor(), domain.MissionCompleted, 0, 20)
	require.NoError(t, err)

	_, _, err = svc.List(context.Background(), ecoleActor(), "", 0, 20)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	d.repo.AssertExpectations(t)
}

func TestMissionService_Get_Visibility(t *testing.T) {
	svc, d := newMissionService()
	m := &domain.Mission{ID: uuid.New(), EcoleID: uuid.New(), Status: domain.MissionCompleted}
	d.repo.On("GetByID", mock.Anything, m.ID).Return(m, nil)

	_, err := svc.Get(context.Background(), intervenantActor(), m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(context.Background(), ecoleActor(), m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(context.Background(), adminActor(), m.ID)
	assert.NoError(t, err)
}
