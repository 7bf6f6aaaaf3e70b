package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/aidar/taskhive/internal/access"
	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/metrics"
	"github.com/aidar/taskhive/internal/repository"
)

// TeamService handles business logic for teams and membership
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	guard    *access.Guard
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, guard *access.Guard) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		guard:    guard,
	}
}

// CreateTeam creates a team; the actor becomes its creator and sole initial member
func (s *TeamService) CreateTeam(ctx context.Context, actor, teamName string) (*domain.Team, error) {
	team := &domain.Team{
		TeamID:    uuid.NewString(),
		TeamName:  strings.TrimSpace(teamName),
		CreatedBy: actor,
		MemberIDs: []string{actor},
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	metrics.ObserveMutation("team", "create")

	// Return the created team
	return s.view(ctx, team.TeamID)
}

// ListTeams returns teams where the actor is creator or member
func (s *TeamService) ListTeams(ctx context.Context, actor string) ([]*domain.Team, error) {
	teams, err := s.teamRepo.ListByUser(ctx, actor)
	if err != nil {
		return nil, err
	}

	for _, team := range teams {
		if err := s.populate(ctx, team); err != nil {
			return nil, err
		}
	}

	return teams, nil
}

// GetTeam retrieves a team with member summaries
func (s *TeamService) GetTeam(ctx context.Context, actor, teamID string) (*domain.Team, error) {
	res, err := s.guard.Team(ctx, actor, teamID, access.ActionReadTeam)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, res.Team); err != nil {
		return nil, err
	}
	return res.Team, nil
}

// InviteMember adds the user registered under email to the team. Any member may invite.
func (s *TeamService) InviteMember(ctx context.Context, actor, teamID, email string) (*domain.Team, error) {
	res, err := s.guard.Team(ctx, actor, teamID, access.ActionInviteMember)
	if err != nil {
		return nil, err
	}

	invitee, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if err := access.PrepareInvite(res.Team, invitee.UserID); err != nil {
		return nil, err
	}

	// The store rejects a concurrent duplicate with ErrAlreadyMember as well
	if err := s.teamRepo.AddMember(ctx, res.Team.TeamID, invitee.UserID); err != nil {
		return nil, err
	}
	metrics.ObserveMutation("team", "invite")

	return s.view(ctx, res.Team.TeamID)
}

// RemoveMember removes a member from the team. Only the creator may remove, and never themselves.
func (s *TeamService) RemoveMember(ctx context.Context, actor, teamID, memberID string) (*domain.Team, error) {
	res, err := s.guard.Team(ctx, actor, teamID, access.ActionRemoveMember)
	if err != nil {
		return nil, err
	}

	if err := access.PrepareRemoval(res.Team, memberID); err != nil {
		return nil, err
	}

	if err := s.teamRepo.RemoveMember(ctx, res.Team.TeamID, memberID); err != nil {
		return nil, err
	}
	metrics.ObserveMutation("team", "remove_member")

	return s.view(ctx, res.Team.TeamID)
}

// view re-reads the team after a write; a team gone in between surfaces as not found
func (s *TeamService) view(ctx context.Context, teamID string) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) populate(ctx context.Context, team *domain.Team) error {
	members, err := memberSummaries(ctx, s.userRepo, team.EffectiveMemberIDs())
	if err != nil {
		return err
	}
	team.Members = members
	return nil
}
