package service

import (
	"context"
	"fmt"
	"strings"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"

	"github.com/rs/zerolog"
)

const (
	minHeightCm = 50
	maxHeightCm = 300
)

// AuthService is the registration/login gate and the owner of the
// explicit session player.
type AuthService struct {
	players *repository.PlayerRepository
	session *repository.SessionRepository
	logger  zerolog.Logger
}

func NewAuthService(players *repository.PlayerRepository, session *repository.SessionRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{players: players, session: session, logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	DOB      domain.Date
	Height   float64
}

// Register appends a new player and logs them in. A candidate whose
// email matches an existing player case-insensitively is rejected with
// no state change.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: %q is not an email address", domain.ErrInvalidInput, email)
	}
	if in.Height < minHeightCm || in.Height > maxHeightCm {
		return nil, fmt.Errorf("%w: height must be %d-%d cm", domain.ErrInvalidInput, minHeightCm, maxHeightCm)
	}

	existing, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if strings.EqualFold(p.Email, email) {
			s.logger.Info().Str("email", email).Msg("registration rejected, duplicate email")
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, email)
		}
	}

	player := domain.Player{
		Name:     name,
		Email:    email,
		Password: in.Password,
		DOB:      in.DOB,
		Height:   in.Height,
	}
	if err := s.players.Append(ctx, player); err != nil {
		return nil, err
	}
	if err := s.session.Set(ctx, &player); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", player.Email).Msg("player registered")
	return &player, nil
}

// Login matches email case-insensitively and password exactly. That
// is the sole check.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range players {
		if strings.EqualFold(players[i].Email, email) && players[i].Password == password {
			if err := s.session.Set(ctx, &players[i]); err != nil {
				return nil, err
			}
			s.logger.Info().Str("email", players[i].Email).Msg("login succeeded")
			return &players[i], nil
		}
	}

	s.logger.Info().Str("email", email).Msg("login failed")
	return nil, domain.ErrInvalidCredentials
}

// Logout clears the session player; nothing else is reset.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}

// Current returns the session player, nil when logged out.
func (s *AuthService) Current(ctx context.Context) (*domain.Player, error) {
	return s.session.Current(ctx)
}

// Get looks a player up by email.
func (s *AuthService) Get(ctx context.Context, email string) (*domain.Player, error) {
	return s.players.FindByEmail(ctx, email)
}

// List returns all registered players.
func (s *AuthService) List(ctx context.Context) ([]domain.Player, error) {
	return s.players.List(ctx)
}

// Search filters players by a case-insensitive substring of name or
// email.
func (s *AuthService) Search(ctx context.Context, term string) ([]domain.Player, error) {
	players, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return players, nil
	}
	needle := strings.ToLower(term)
	out := make([]domain.Player, 0, len(players))
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Email), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

// UpdateName changes the display name of the given player, refreshing
// the session copy when it is the same account.
func (s *AuthService) UpdateName(ctx context.Context, email, name string) (*domain.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
	}
	return s.updatePlayer(ctx, email, func(p *domain.Player) { p.Name = name })
}

func (s *AuthService) UpdatePassword(ctx context.Context, email, password string) (*domain.Player, error) {
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", domain.ErrInvalidInput)
	}
	return s.updatePlayer(ctx, email, func(p *domain.Player) { p.Password = password })
}

func (s *AuthService) UpdateAvatar(ctx context.Context, email, avatarURL string) (*domain.Player, error) {
	return s.updatePlayer(ctx, email, func(p *domain.Player) { p.AvatarURL = avatarURL })
}

func (s *AuthService) updatePlayer(ctx context.Context, email string, fn func(*domain.Player)) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	updated, err := s.players.Update(ctx, email, fn)
	if err != nil {
		return nil, err
	}

	current, err := s.session.Current(ctx)
	if err != nil {
		return nil, err
	}
	if current != nil && strings.EqualFold(current.Email, email) {
		if err := s.session.Set(ctx, updated); err != nil {
			return nil, err
		}
	}
	return updated, nil
}
