package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `workspace: acme
repositories:
  - repo-a
  - repo-b
steps:
  - name: sonar-scan
    files:
      - sonar-project.properties
reviewers:
  - "{uuid-1}"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plumber.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Workspace != "acme" {
		t.Errorf("Workspace = %q, want %q", cfg.Workspace, "acme")
	}
	if len(cfg.Repositories) != 2 {
		t.Errorf("got %d repositories, want 2", len(cfg.Repositories))
	}
	if len(cfg.Steps) != 1 || cfg.Steps[0].Name != "sonar-scan" {
		t.Errorf("Steps = %+v", cfg.Steps)
	}
	if len(cfg.Steps[0].Files) != 1 {
		t.Errorf("step files = %v", cfg.Steps[0].Files)
	}

	// Defaults apply when the file does not set them.
	if len(cfg.DefaultBranches) != 2 || cfg.DefaultBranches[0] != "main" {
		t.Errorf("DefaultBranches = %v", cfg.DefaultBranches)
	}
}

func TestLoadConfigOverridesDefaultBranches(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfig(t, validConfig+"defaultBranches:\n  - trunk\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.DefaultBranches) != 1 || cfg.DefaultBranches[0] != "trunk" {
		t.Errorf("DefaultBranches = %v, want [trunk]", cfg.DefaultBranches)
	}
}

func TestLoadConfigNotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("error = %v, want %v", err, ErrConfigNotFound)
	}
}

func TestLoadConfigParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "workspace: [unclosed\n"},
		{name: "unknown field", content: validConfig + "bogus: true\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(writeConfig(t, tt.content))
			if !errors.Is(err, ErrConfigParse) {
				t.Errorf("error = %v, want %v", err, ErrConfigParse)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			Workspace:       "acme",
			DefaultBranches: []string{"main"},
			Repositories:    []string{"repo-a"},
			Steps:           []Step{{Name: "scan"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing workspace",
			mutate:  func(c *Config) { c.Workspace = " " },
			wantErr: ErrNoWorkspace,
		},
		{
			name:    "no repositories",
			mutate:  func(c *Config) { c.Repositories = nil },
			wantErr: ErrNoRepositories,
		},
		{
			name:    "no steps",
			mutate:  func(c *Config) { c.Steps = nil },
			wantErr: ErrNoSteps,
		},
		{
			name:    "blank step name",
			mutate:  func(c *Config) { c.Steps = []Step{{Name: ""}} },
			wantErr: ErrEmptyStepName,
		},
		{
			name:    "oversized repository slug",
			mutate:  func(c *Config) { c.Repositories = []string{strings.Repeat("r", MaxRepoSlugLength+1)} },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "oversized reviewer",
			mutate:  func(c *Config) { c.Reviewers = []string{strings.Repeat("u", MaxReviewerLength+1)} },
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
