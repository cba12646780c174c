package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	models "docvault/internal/domain/models/docsystem"
	docsysRepo "docvault/internal/domain/repositories/docsystem"

	"gopkg.in/yaml.v3"
)

//go:embed data/seed.yaml
var defaultSeed []byte

// File is the YAML shape of a seed file
type File struct {
	Users []UserSeed `yaml:"users"`
	Tags  []TagSeed  `yaml:"tags"`
}

type UserSeed struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Email  string `yaml:"email"`
	Avatar string `yaml:"avatar"`
	Role   string `yaml:"role"`
}

type TagSeed struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Seeder loads the fixed user set and the starter tag catalog
type Seeder struct {
	userRepo docsysRepo.UserRepository
	tagRepo  docsysRepo.TagRepository
	logger   *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(userRepo docsysRepo.UserRepository, tagRepo docsysRepo.TagRepository, logger *slog.Logger) *Seeder {
	return &Seeder{
		userRepo: userRepo,
		tagRepo:  tagRepo,
		logger:   logger,
	}
}

// Load reads path, or the embedded seed when path is empty
func Load(path string) (*File, error) {
	data := defaultSeed
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes and checks a seed document
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed: %w", err)
	}
	if len(f.Users) == 0 {
		return nil, fmt.Errorf("seed must define at least one user")
	}
	for _, u := range f.Users {
		if u.ID == "" || u.Name == "" {
			return nil, fmt.Errorf("seed user needs id and name: %+v", u)
		}
		switch models.Role(u.Role) {
		case "", models.RoleAdmin, models.RoleEditor, models.RoleViewer:
		default:
			return nil, fmt.Errorf("seed user %q has unknown role %q", u.ID, u.Role)
		}
	}
	return &f, nil
}

// Seed stores the users and tags of f
func (s *Seeder) Seed(ctx context.Context, f *File) error {
	for _, u := range f.Users {
		user := &models.User{
			ID:     u.ID,
			Name:   u.Name,
			Email:  u.Email,
			Avatar: u.Avatar,
			Role:   models.Role(u.Role),
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %q: %w", u.ID, err)
		}
	}

	for _, t := range f.Tags {
		color := t.Color
		if color == "" {
			color = models.DefaultTagColor
		}
		if err := s.tagRepo.Create(ctx, &models.Tag{ID: t.ID, Name: t.Name, Color: color}); err != nil {
			return fmt.Errorf("seed tag %q: %w", t.ID, err)
		}
	}

	s.logger.Info("seed data loaded", "users", len(f.Users), "tags", len(f.Tags))
	return nil
}
