package landing

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
)

const (
	leaderboardPrefix = "pvp_leaderboard_"
	profilePrefix     = "ch_profile_"
	extension         = ".json"
)

// ErrInvalidKey is returned when an object name does not follow the landing layout.
var ErrInvalidKey = errors.New("invalid landing object name")

// LeaderboardKey is the object name of one bracket's leaderboard for a date:
// {prefix}/pvp_leaderboard_s{season}_{bracket}_{date}.json
func LeaderboardKey(prefix string, seasonID int, bracket, date string) string {
	name := fmt.Sprintf("%ss%d_%s_%s%s", leaderboardPrefix, seasonID, bracket, date, extension)
	return join(prefix, name)
}

// ProfileKey is the object name of the character profile snapshot for a date.
func ProfileKey(prefix, date string) string {
	return join(prefix, profilePrefix+date+extension)
}

// LeaderboardObject identifies a landed leaderboard snapshot.
type LeaderboardObject struct {
	Key      string
	SeasonID int
	Bracket  string
	Date     string
}

// ParseLeaderboardKey extracts season, bracket and date from a leaderboard object name.
func ParseLeaderboardKey(key string) (LeaderboardObject, error) {
	name := path.Base(key)
	if !strings.HasPrefix(name, leaderboardPrefix) || !strings.HasSuffix(name, extension) {
		return LeaderboardObject{}, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}

	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(name, leaderboardPrefix), extension), "_")
	if len(parts) != 3 || !strings.HasPrefix(parts[0], "s") {
		return LeaderboardObject{}, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}

	season, err := strconv.Atoi(strings.TrimPrefix(parts[0], "s"))
	if err != nil {
		return LeaderboardObject{}, fmt.Errorf("%w: bad season in %s", ErrInvalidKey, key)
	}
	if parts[1] == "" || len(parts[2]) != 8 {
		return LeaderboardObject{}, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}

	return LeaderboardObject{Key: key, SeasonID: season, Bracket: parts[1], Date: parts[2]}, nil
}

func join(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
