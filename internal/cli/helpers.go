package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/slrename/slrename/internal/config"
	"github.com/slrename/slrename/internal/project"
	"github.com/slrename/slrename/internal/vcs"
)

func findRootFrom(dir string) (string, error) {
	return project.FindRoot(dir)
}

func isNoProject(err error) bool {
	return errors.Is(err, project.ErrNoProject)
}

// openProject loads the resolved project's manifest. Failure here aborts
// the whole run; everything after is per-file.
func openProject() (*project.Project, error) {
	proj, err := project.Load(getProjectRoot())
	if err != nil {
		return nil, err
	}
	return proj, nil
}

// loadProjectOptionsSafe loads per-project options from slrename.yaml.
// Returns an error if the file exists but is invalid.
func loadProjectOptionsSafe(proj *project.Project) (*config.ProjectOptions, error) {
	options, err := config.LoadProjectOptions(proj.Root)
	if err != nil {
		return nil, err
	}
	if options == nil {
		return &config.ProjectOptions{}, nil
	}
	return options, nil
}

// resolveGit decides whether renames go through git. The chain is
// --no-vcs flag, then the project's slrename.yaml, then global config,
// then repository auto-detection. A warning is returned only when config
// explicitly enables git and no repository or binary is available.
func resolveGit(proj *project.Project, options *config.ProjectOptions) (*vcs.Git, []Warning) {
	if noVCS {
		log.Debug().Msg("vcs disabled by --no-vcs")
		return nil, nil
	}
	if options != nil && options.VCSDisabled() {
		log.Debug().Msgf("vcs disabled by %s", config.OptionsFileName)
		return nil, nil
	}
	globalCfg := getConfig()
	if !globalCfg.VCSEnabled() {
		log.Debug().Msg("vcs disabled by config")
		return nil, nil
	}

	git, ok := vcs.Detect(proj.Root)
	if ok {
		return git, nil
	}

	// Explicitly enabled but unusable is worth surfacing; the default
	// "auto" silently falls back to filesystem moves.
	if globalCfg.VCS.Enabled != nil && *globalCfg.VCS.Enabled {
		return nil, []Warning{{
			Code:    WarnVCSUnavailable,
			Message: "git integration is enabled but no repository was found; using filesystem moves",
		}}
	}
	log.Debug().Msgf("no git repository at %s", proj.Root)
	return nil, nil
}

// projectLabel names the project in human output.
func projectLabel(proj *project.Project) string {
	if proj.Name != "" {
		return proj.Name
	}
	return proj.Root
}

// pluralize returns the singular or plural form based on count.
func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// countNoun formats "3 files" style phrases.
func countNoun(count int, singular, plural string) string {
	return fmt.Sprintf("%d %s", count, pluralize(count, singular, plural))
}
