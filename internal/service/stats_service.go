package service

import (
	"context"
	"time"

	"edulink/internal/domain"
	"edulink/internal/port"
)

// StatsRepos bundles the repositories the dashboard reads from.
type StatsRepos struct {
	Stats          port.StatsRepository
	Intervenants   port.IntervenantRepository
	Documents      port.DocumentRepository
	Challenges     port.ChallengeRepository
	Missions       port.MissionRepository
	Collaborations port.CollaborationRepository
	Declarations   port.DeclarationRepository
	Factures       port.FactureRepository
	Favorites      port.FavoriteRepository
}

// StatsService provides the role-scoped dashboard and static reference data.
type StatsService interface {
	GetStats(ctx context.Context, actor domain.Actor) (*domain.Stats, error)
	Reference() domain.Reference
}

type statsService struct {
	repos StatsRepos
	now   func() time.Time
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(repos StatsRepos) StatsService {
	return &statsService{repos: repos, now: time.Now}
}

func (s *statsService) Reference() domain.Reference {
	return domain.ReferenceData()
}

func (s *statsService) GetStats(ctx context.Context, actor domain.Actor) (*domain.Stats, error) {
	out := &domain.Stats{Role: actor.Role}
	var err error
	switch actor.Role {
	case domain.RoleAdmin:
		out.Admin, err = s.adminStats(ctx)
	case domain.RoleEcole:
		out.Ecole, err = s.ecoleStats(ctx, actor)
	case domain.RoleIntervenant:
		out.Intervenant, err = s.intervenantStats(ctx, actor)
	default:
		return nil, domain.ErrInsufficientRole
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *statsService) adminStats(ctx context.Context) (*domain.AdminStats, error) {
	intervenants, err := s.repos.Intervenants.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	challenges, err := s.repos.Challenges.Stats(ctx, nil)
	if err != nil {
		return nil, err
	}
	missions, err := s.repos.Missions.CountByStatus(ctx, domain.MissionFilter{})
	if err != nil {
		return nil, err
	}
	collabs, err := s.repos.Collaborations.CountByStatus(ctx, domain.CollaborationFilter{})
	if err != nil {
		return nil, err
	}
	factures, err := s.repos.Factures.Totals(ctx, domain.FactureFilter{})
	if err != nil {
		return nil, err
	}
	ecoles, err := s.repos.Stats.CountEcoles(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.AdminStats{
		Intervenants:   *intervenants,
		Challenges:     *challenges,
		Missions:       missions,
		Collaborations: collabs,
		Factures:       *factures,
		Ecoles:         ecoles,
	}, nil
}

func (s *statsService) ecoleStats(ctx context.Context, actor domain.Actor) (*domain.EcoleStats, error) {
	id := actor.ProfileID
	missions, err := s.repos.Missions.CountByStatus(ctx, domain.MissionFilter{EcoleID: &id})
	if err != nil {
		return nil, err
	}
	collabs, err := s.repos.Collaborations.CountByStatus(ctx, domain.CollaborationFilter{EcoleID: &id})
	if err != nil {
		return nil, err
	}
	favorites, err := s.repos.Favorites.Count(ctx, id)
	if err != nil {
		return nil, err
	}
	factures, err := s.repos.Factures.Totals(ctx, domain.FactureFilter{EcoleID: &id})
	if err != nil {
		return nil, err
	}
	return &domain.EcoleStats{
		Missions:       missions,
		Collaborations: collabs,
		Favorites:      favorites,
		Factures:       *factures,
	}, nil
}

func (s *statsService) intervenantStats(ctx context.Context, actor domain.Actor) (*domain.IntervenantStats, error) {
	id := actor.ProfileID
	profile, err := s.repos.Intervenants.GetByID(ctx, id)
	if err != nil {
		return nil, profileErr(err)
	}
	docs, err := s.repos.Documents.ListByIntervenant(ctx, id)
	if err != nil {
		return nil, err
	}
	challenges, err := s.repos.Challenges.Stats(ctx, &id)
	if err != nil {
		return nil, err
	}
	collabs, err := s.repos.Collaborations.CountByStatus(ctx, domain.CollaborationFilter{IntervenantID: &id})
	if err != nil {
		return nil, err
	}
	assigned, err := s.repos.Stats.CountAssignedMissions(ctx, id)
	if err != nil {
		return nil, err
	}
	summary, err := s.repos.Declarations.Summary(ctx, &id, s.now().Year())
	if err != nil {
		return nil, err
	}
	return &domain.IntervenantStats{
		Status:             profile.Status,
		DocumentCompletion: domain.Completion(domain.DocumentRequirements, docs),
		Challenges:         *challenges,
		Collaborations:     collabs,
		AssignedMissions:   assigned,
		Declarations:       *summary,
	}, nil
}
