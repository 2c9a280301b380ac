package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testActivity(id string) Activity {
	return Activity{
		ID:          id,
		DisplayName: "Pricing Intel Query",
		Category:    "pricing",
		TaskType:    id,
	}
}

func TestLoadOrCreate_MissingFile(t *testing.T) {
	reg, err := LoadOrCreate(filepath.Join(t.TempDir(), "activity-registry.json"))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", reg.Version)
	assert.Empty(t, reg.Activities)
}

func TestRegistry_UpsertSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "activity-registry.json")

	reg, err := LoadOrCreate(path)
	require.NoError(t, err)

	assert.False(t, reg.Upsert(testActivity("pricing-intel-query")))
	updated := testActivity("pricing-intel-query")
	updated.Version = "1.1.0"
	assert.True(t, reg.Upsert(updated))
	require.Len(t, reg.Activities, 1)
	assert.NotEmpty(t, reg.LastUpdated)

	require.NoError(t, reg.Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, loaded.Activities, 1)
	assert.Equal(t, "1.1.0", loaded.Activities[0].Version)
}

func TestRegistry_Validate(t *testing.T) {
	tests := []struct {
		name       string
		activities []Activity
		wantErr    string
	}{
		{"valid", []Activity{testActivity("a"), testActivity("b")}, ""},
		{"empty", nil, "no activities"},
		{"duplicate", []Activity{testActivity("a"), testActivity("a")}, "duplicate activity ID: a"},
		{"missing id", []Activity{{DisplayName: "x", TaskType: "x", Category: "x"}}, "missing required field: ID"},
		{"missing category", []Activity{{ID: "a", DisplayName: "x", TaskType: "a"}}, "missing required field: Category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &ActivityRegistry{Activities: tt.activities}
			err := reg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
