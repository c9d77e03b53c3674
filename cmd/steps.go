package cmd

import (
	"context"

	"pvp-pipeline/feature/characters"
	"pvp-pipeline/feature/leaderboard"

	"go.uber.org/zap"
)

func (a *app) extractLeaderboard(ctx context.Context) error {
	return a.stage("extract_leaderboard", func() error {
		svc, err := a.leaderboardService(ctx)
		if err != nil {
			return err
		}
		token, err := a.token(ctx)
		if err != nil {
			return err
		}
		results, err := svc.Extract(ctx, token, a.date)
		if err != nil {
			return err
		}
		for _, r := range results {
			a.log.Info("Leaderboard extracted", zap.String("bracket", r.Bracket), zap.String("key", r.Key), zap.Int("rows", r.Rows))
		}
		return nil
	})
}

func (a *app) loadLeaderboard(ctx context.Context) error {
	return a.stage("load_leaderboard", func() error {
		svc, err := a.leaderboardService(ctx)
		if err != nil {
			return err
		}
		n, err := svc.LoadRaw(ctx, a.date)
		a.rec.RowsLoaded(leaderboard.RawTable, n)
		return err
	})
}

func (a *app) transformLeaderboard(ctx context.Context) error {
	return a.stage("transform_leaderboard", func() error {
		svc, err := a.leaderboardService(ctx)
		if err != nil {
			return err
		}
		n, err := svc.Transform(ctx, a.date)
		a.rec.RowsLoaded(leaderboard.CurTable, n)
		return err
	})
}

func (a *app) extractCharacters(ctx context.Context) error {
	return a.stage("extract_characters", func() error {
		svc, err := a.charactersService(ctx)
		if err != nil {
			return err
		}
		token, err := a.token(ctx)
		if err != nil {
			return err
		}
		_, _, err = svc.Extract(ctx, token, a.date)
		return err
	})
}

func (a *app) loadCharacters(ctx context.Context) error {
	return a.stage("load_characters", func() error {
		svc, err := a.charactersService(ctx)
		if err != nil {
			return err
		}
		n, err := svc.LoadRaw(ctx, a.date)
		a.rec.RowsLoaded(characters.RawTable, n)
		return err
	})
}

func (a *app) transformCharacters(ctx context.Context) error {
	return a.stage("transform_characters", func() error {
		svc, err := a.charactersService(ctx)
		if err != nil {
			return err
		}
		n, err := svc.Transform(ctx, a.date)
		a.rec.RowsLoaded(characters.CurTable, n)
		return err
	})
}

func (a *app) publish(ctx context.Context) error {
	return a.stage("publish", func() error {
		svc, err := a.snapshotService(ctx)
		if err != nil {
			return err
		}
		_, err = svc.Publish(ctx, a.date)
		return err
	})
}

// ReloadStaging reloads the character staging tables of date from landing.
func (a *app) ReloadStaging(ctx context.Context, date string) error {
	a.date = date
	if err := a.loadCharacters(ctx); err != nil {
		return err
	}
	return a.transformCharacters(ctx)
}

// Republish republishes the warehouse snapshot of date.
func (a *app) Republish(ctx context.Context, date string) error {
	a.date = date
	return a.publish(ctx)
}
