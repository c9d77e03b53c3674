package characters

import (
	"context"
	"testing"

	"pvp-pipeline/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLandingSource(t *testing.T) {
	src := NewLandingSource(landedProfiles(`[
		{"id":"42","name":"Manongauz","realm_slug":"demon-soul","faction":"Horde","class":"Warrior","spec":"Arms","a_ilvl":"626","e_ilvl":"","bracket":"2v2","selection_rank":"1","fecha_proceso":"20250115"}
	]`))
	assert.Equal(t, "landing", src.Name())

	records, err := src.Load(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, map[string]reconcile.Record{
		"42": {Name: "Manongauz", Fields: map[string]string{
			"realm": "demon-soul", "faction": "Horde", "class": "Warrior", "spec": "Arms",
			"average_item_level": "626", "equipped_item_level": "",
		}},
	}, records)
}

func TestStagingSource_MatchesLanding(t *testing.T) {
	db := setupStagingDB(t)
	body := `[
		{"id":"42","name":"Manongauz","realm_slug":"demon-soul","faction":"Horde","class":"Warrior","spec":"","a_ilvl":"626","e_ilvl":"624","bracket":"2v2","selection_rank":"1","fecha_proceso":"20250115"}
	]`
	svc := NewService(db, nil, landedProfiles(body), zap.NewNop())
	_, err := svc.LoadRaw(context.Background(), testDate)
	require.NoError(t, err)
	_, err = svc.Transform(context.Background(), testDate)
	require.NoError(t, err)
	require.NoError(t, db.Create(&CurChinfo{CharName: "NoID", FechaProceso: testDate}).Error)

	src := NewStagingSource(db)
	assert.Equal(t, "staging", src.Name())
	staged, err := src.Load(context.Background(), testDate)
	require.NoError(t, err)
	require.Len(t, staged, 1)

	landed, err := NewLandingSource(landedProfiles(body)).Load(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, landed["42"], staged["42"], "a loaded and transformed profile renders like its landed row")
}
