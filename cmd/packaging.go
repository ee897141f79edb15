package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/anchore/srcjar/internal"
	"github.com/anchore/srcjar/internal/bus"
	"github.com/anchore/srcjar/internal/log"
	"github.com/anchore/srcjar/internal/version"
	"github.com/anchore/srcjar/srcjar/presenter"
	"github.com/anchore/srcjar/srcjar/presenter/models"
	"github.com/anchore/srcjar/srcjar/project"
	"github.com/anchore/srcjar/srcjar/source"
)

func startPackagingWorker(ctx context.Context, dir string, goal *source.Goal) <-chan error {
	errs := make(chan error)
	go func() {
		defer close(errs)

		if appConfig.CheckForAppUpdate {
			checkForApplicationUpdate(ctx)
		}

		session, err := loadSession(afero.NewOsFs(), dir)
		if err != nil {
			errs <- err
			return
		}

		results, err := packageSources(ctx, session, goal)
		if err != nil {
			errs <- err
			return
		}

		doc := models.NewDocument(session.ID, results, appConfig)
		bus.PackagingFinished(presenter.GetPresenter(appConfig.PresenterOpt, appConfig.OutputTemplateFile, doc))
	}()
	return errs
}

func loadSession(fs afero.Fs, dir string) (*project.Session, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve project directory %q: %w", dir, err)
	}

	projects, err := project.LoadReactor(fs, abs, !appConfig.Reactor.NonRecursive)
	if err != nil {
		return nil, err
	}

	if len(appConfig.Reactor.Projects) > 0 {
		projects = project.Filter(projects, appConfig.Reactor.Projects)
		if len(projects) == 0 {
			return nil, fmt.Errorf("no project in %q matches the selection %v", abs, appConfig.Reactor.Projects)
		}
	}

	log.Debugf("reactor of %d project(s) loaded from %s", len(projects), abs)
	return project.NewSession(fs, projects), nil
}

func packageSources(ctx context.Context, session *project.Session, goal *source.Goal) ([]source.Result, error) {
	mon := source.NewMonitor(len(session.Projects))
	bus.PackagingStarted(mon.Packaging())

	cfg := source.Config{
		Options:   appConfig.Source.ToOptions(),
		CreatedBy: version.FromBuild().CreatedBy(internal.ApplicationName),
		Monitor:   mon,
	}

	if goal == nil {
		return source.RunExecutions(ctx, session, cfg)
	}
	return source.Run(ctx, session, *goal, cfg)
}

func checkForApplicationUpdate(ctx context.Context) {
	log.Debugf("checking if new version of %s is available", internal.ApplicationName)
	isAvailable, newVersion, err := version.IsUpdateAvailable(ctx)
	if err != nil {
		// this should never stop the application
		log.Errorf(err.Error())
	}
	if isAvailable {
		log.Infof("new version of %s is available: %s (current version is %s)", internal.ApplicationName, newVersion, version.FromBuild().Version)

		bus.AppUpdateAvailable(newVersion)
	} else {
		log.Debugf("no new %s update available", internal.ApplicationName)
	}
}
