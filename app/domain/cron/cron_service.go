package cron

import (
	"context"
	"errors"

	"github.com/mileusna/crontab"
	"github.com/sirupsen/logrus"
	"menlo.ai/catalog-admin/app/domain/auth"
	"menlo.ai/catalog-admin/app/domain/workspace"
	"menlo.ai/catalog-admin/app/utils/logger"
	"menlo.ai/catalog-admin/config/environment_variables"
)

const (
	// EnvReloadSchedule reloads the environment every minute.
	EnvReloadSchedule = "* * * * *"
	// WorkspaceSweepSchedule drops workspaces of expired sessions every five minutes.
	WorkspaceSweepSchedule = "*/5 * * * *"
)

type CronService struct {
	authService *auth.AuthService
	registry    *workspace.Registry
}

func NewCronService(authService *auth.AuthService, registry *workspace.Registry) *CronService {
	return &CronService{
		authService: authService,
		registry:    registry,
	}
}

func (cs *CronService) Start(ctx context.Context, ctab *crontab.Crontab) error {
	if err := ctab.AddJob(EnvReloadSchedule, reloadEnvironment); err != nil {
		return err
	}
	return ctab.AddJob(WorkspaceSweepSchedule, func() {
		cs.sweepWorkspaces(ctx)
	})
}

func reloadEnvironment() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
	logger.GetLogger().Debug("environment reloaded")
}

// sweepWorkspaces keeps a workspace when its session lookup fails for any
// reason other than the session being gone.
func (cs *CronService) sweepWorkspaces(ctx context.Context) {
	removed := cs.registry.Sweep(func(sessionID string) bool {
		_, err := cs.authService.Find(ctx, sessionID)
		return !errors.Is(err, auth.ErrSessionNotFound)
	})
	if removed > 0 {
		logger.GetLogger().WithFields(logrus.Fields{
			"removed":   removed,
			"remaining": cs.registry.Len(),
		}).Info("expired workspaces removed")
	}
}
