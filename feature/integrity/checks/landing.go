package checks

import (
	"context"
	"fmt"

	"pvp-pipeline/core/storage"
	"pvp-pipeline/feature/landing"
)

// CheckLanding returns the landing objects missing for date: one leaderboard
// snapshot per bracket and the character profile snapshot.
func CheckLanding(ctx context.Context, client storage.Client, bucket string, store *landing.Store, date string, brackets []string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	objects, err := store.LeaderboardObjects(ctx, date)
	if err != nil {
		return nil, err
	}
	landed := make(map[string]bool, len(objects))
	for _, obj := range objects {
		landed[obj.Bracket] = true
	}

	var missing []string
	for _, bracket := range brackets {
		if !landed[bracket] {
			missing = append(missing, fmt.Sprintf("leaderboard %s", bracket))
		}
	}

	profileKey := landing.ProfileKey(store.Prefix(), date)
	keys, err := store.List(ctx, "ch_profile_"+date)
	if err != nil {
		return nil, err
	}
	found := false
	for _, key := range keys {
		if key == profileKey {
			found = true
			break
		}
	}
	if !found {
		missing = append(missing, profileKey)
	}

	return missing, nil
}
