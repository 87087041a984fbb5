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

type statsDeps struct {
	stats          *mocks.MockStatsRepo
	intervenants   *mocks.MockIntervenantRepo
	documents      *mocks.MockDocumentRepo
	challenges     *mocks.MockChallengeRepo
	missions       *mocks.MockMissionRepo
	collaborations *mocks.MockCollaborationRepo
	declarations   *mocks.MockDeclarationRepo
	factures       *mocks.MockFactureRepo
	favorites      *mocks.MockFavoriteRepo
}

func newStatsService() (service.StatsService, statsDeps) {
	d := statsDeps{
		stats:          new(mocks.MockStatsRepo),
		intervenants:   new(mocks.MockIntervenantRepo),
		documents:      new(mocks.MockDocumentRepo),
		challenges:     new(mocks.MockChallengeRepo),
		missions:       new(mocks.MockMissionRepo),
		collaborations: new(mocks.MockCollaborationRepo),
		declarations:   new(mocks.MockDeclarationRepo),
		factures:       new(mocks.MockFactureRepo),
		favorites:      new(mocks.MockFavoriteRepo),
	}
	svc := service.NewStatsService(service.StatsRepos{
		Stats:          d.stats,
		Intervenants:   d.intervenants,
		Documents:      d.documents,
		Challenges:     d.challenges,
		Missions:       d.missions,
		Collaborations: d.collaborations,
		Declarations:   d.declarations,
		Factures:       d.factures,
		Favorites:      d.favorites,
	})
	return svc, d
}

func TestStatsService_Admin(t *testing.T) {
	svc, d := newStatsService()
	d.intervenants.On("CountByStatus", mock.Anything).Return(&domain.ModerationStats{Total: 5, Pending: 2, Approved: 3}, nil)
	d.challenges.On("Stats", mock.Anything, (*uuid.UUID)(nil)).Return(&domain.ModerationStats{Total: 1, Rejected: 1}, nil)
	d.missions.On("CountByStatus", mock.Anything, domain.MissionFilter{}).Return(domain.StatusCounts{"ACTIVE": 4}, nil)
	d.collaborations.On("CountByStatus", mock.Anything, domain.CollaborationFilter{}).Return(domain.StatusCounts{"en_cours": 1}, nil)
	d.factures.On("Totals", mock.Anything, domain.FactureFilter{}).Return(&domain.FactureTotals{Count: 2, MontantTTC: 24000}, nil)
	d.stats.On("CountEcoles", mock.Anything).Return(7, nil)

	stats, err := svc.GetStats(context.Background(), adminActor())
	require.NoError(t, err)
	require.NotNil(t, stats.Admin)
	assert.Nil(t, stats.Ecole)
	assert.Nil(t, stats.Intervenant)
	assert.Equal(t, 2, stats.Admin.Intervenants.Pending)
	assert.Equal(t, 1, stats.Admin.Challenges.Rejected)
	assert.Equal(t, 4, stats.Admin.Missions["ACTIVE"])
	assert.Equal(t, int64(24000), stats.Admin.Factures.MontantTTC)
	assert.Equal(t, 7, stats.Admin.Ecoles)
}

func TestStatsService_EcoleScoped(t *testing.T) {
	svc, d := newStatsService()
	actor := ecoleActor()
	id := actor.ProfileID
	d.missions.On("CountByStatus", mock.Anything, domain.MissionFilter{EcoleID: &id}).Return(domain.StatusCounts{}, nil)
	d.collaborations.On("CountByStatus", mock.Anything, domain.CollaborationFilter{EcoleID: &id}).Return(domain.StatusCounts{"brouillon": 2}, nil)
	d.favorites.On("Count", mock.Anything, id).Return(3, nil)
	d.factures.On("Totals", mock.Anything, domain.FactureFilter{EcoleID: &id}).Return(&domain.FactureTotals{}, nil)

	stats, err := svc.GetStats(context.Background(), actor)
	require.NoError(t, err)
	require.NotNil(t, stats.Ecole)
	assert.Equal(t, domain.RoleEcole, stats.Role)
	assert.Equal(t, 3, stats.Ecole.Favorites)
	assert.Equal(t, 2, stats.Ecole.Collaborations["brouillon"])
	d.stats.AssertNotCalled(t, "CountEcoles", mock.Anything)
}

func TestStatsService_Intervenant(t *testing.T) {
	svc, d := newStatsService()
	actor := intervenantActor()
	id := actor.ProfileID
	d.intervenants.On("GetByID", mock.Anything, id).Return(&domain.Intervenant{ID: id, Status: domain.ModerationPending}, nil)
	d.documents.On("ListByIntervenant", mock.Anything, id).Return([]domain.Document{
		{Type: domain.DocCV}, {Type: domain.DocDiplome}, {Type: domain.DocRIB},
	}, nil)
	d.challenges.On("Stats", mock.Anything, &id).Return(&domain.ModerationStats{Total: 2, Approved: 2}, nil)
	d.collaborations.On("CountByStatus", mock.Anything, domain.CollaborationFilter{IntervenantID: &id}).Return(domain.StatusCounts{}, nil)
	d.stats.On("CountAssignedMissions", mock.Anything, id).Return(1, nil)
	d.declarations.On("Summary", mock.Anything, &id, mock.AnythingOfType("int")).Return(&domain.DeclarationSummary{Count: 4}, nil)

	stats, err := svc.GetStats(context.Background(), actor)
	require.NoError(t, err)
	require.NotNil(t, stats.Intervenant)
	assert.Equal(t, domain.ModerationPending, stats.Intervenant.Status)
	assert.Equal(t, 43, stats.Intervenant.DocumentCompletion)
	assert.Equal(t, 2, stats.Intervenant.Challenges.Approved)
	assert.Equal(t, 1, stats.Intervenant.AssignedMissions)
	assert.Equal(t, 4, stats.Intervenant.Declarations.Count)
}

func TestStatsService_IntervenantWithoutProfile(t *testing.T) {
	svc, d := newStatsService()
	actor := intervenantActor()
	d.intervenants.On("GetByID", mock.Anything, actor.ProfileID).Return(nil, domain.ErrNotFound)

	_, err := svc.GetStats(context.Background(), actor)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestStatsService_Reference(t *testing.T) {
	svc, _ := newStatsService()
	ref := svc.Reference()

	assert.NotEmpty(t, ref.Thematiques)
	assert.Len(t, ref.DocumentRequirements, len(domain.DocumentRequirements))
	assert.Contains(t, ref.ModesPaiement, domain.PaiementVirement)
	assert.Contains(t, ref.Statuses, "collaboration")
}
