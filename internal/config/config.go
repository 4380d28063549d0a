// Package config loads the plumber run plan: which repositories to
// clean, which steps to remove, and who reviews the resulting pull
// requests.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-plumber/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrNoWorkspace    = errors.New("workspace cannot be empty")
	ErrNoRepositories = errors.New("at least one repository is required")
	ErrNoSteps        = errors.New("at least one step is required")
	ErrEmptyStepName  = errors.New("step name cannot be empty")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
)

// Field length limits. Bitbucket caps workspace and repository slugs
// well below these; the limits exist to reject obviously corrupt input.
const (
	MaxWorkspaceLength = 100
	MaxRepoSlugLength  = 100
	MaxStepNameLength  = 100
	MaxBranchLength    = 250
	MaxFilePathLength  = 500
	MaxReviewerLength  = 50 // "{uuid}" form
)

// Config is the full run plan, loaded from a YAML file.
type Config struct {
	// Workspace is the Bitbucket workspace slug owning the repositories.
	Workspace string `yaml:"workspace"`

	// DefaultBranches are tried in order when resolving each
	// repository's latest commit.
	DefaultBranches []string `yaml:"defaultBranches"`

	// Repositories are the slugs whose pipelines files get cleaned.
	Repositories []string `yaml:"repositories"`

	// Steps are removed one at a time, each in its own pass over every
	// repository.
	Steps []Step `yaml:"steps"`

	// Reviewers are UUIDs added to every pull request.
	Reviewers []string `yaml:"reviewers"`
}

// Step names one build step to remove and any files only that step
// uses, which are deleted in the same commit.
type Step struct {
	Name  string   `yaml:"name"`
	Files []string `yaml:"files"`
}

// DefaultConfig returns a config with Bitbucket's conventional default
// branches and nothing else; Workspace, Repositories and Steps must
// come from a file.
func DefaultConfig() *Config {
	return &Config{
		DefaultBranches: []string{"main", "master"},
	}
}

// LoadConfig reads and validates a run plan from path.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the run plan for missing or oversized fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Workspace) == "" {
		return ErrNoWorkspace
	}
	if err := validateFieldLength("workspace", c.Workspace, MaxWorkspaceLength); err != nil {
		return err
	}

	if len(c.Repositories) == 0 {
		return ErrNoRepositories
	}
	for _, repo := range c.Repositories {
		if err := validateFieldLength("repository", repo, MaxRepoSlugLength); err != nil {
			return err
		}
	}

	if len(c.Steps) == 0 {
		return ErrNoSteps
	}
	for _, step := range c.Steps {
		if strings.TrimSpace(step.Name) == "" {
			return ErrEmptyStepName
		}
		if err := validateFieldLength("step name", step.Name, MaxStepNameLength); err != nil {
			return err
		}
		for _, file := range step.Files {
			if err := validateFieldLength("step file", file, MaxFilePathLength); err != nil {
				return err
			}
		}
	}

	for _, branch := range c.DefaultBranches {
		if err := validateFieldLength("branch", branch, MaxBranchLength); err != nil {
			return err
		}
	}
	for _, reviewer := range c.Reviewers {
		if err := validateFieldLength("reviewer", reviewer, MaxReviewerLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength returns an error if value exceeds maxLength.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s is %d chars (max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}
