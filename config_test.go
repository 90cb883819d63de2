package tripgraph_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgraph/tripgraph"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, ".tripgraph.yaml", `
connection:
  uri: neo4j://localhost:7687
  username: neo4j
  password: secret
embedding:
  endpoint: http://localhost:8080/embed
  dimension: 384
data:
  hotels: data/hotels.csv
`)

	cfg, err := tripgraph.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "neo4j://localhost:7687", cfg.Connection.URI)
	assert.Equal(t, "neo4j", cfg.Connection.Username)
	assert.Equal(t, 384, cfg.Embedding.Dimension)
	assert.Equal(t, "data/hotels.csv", cfg.Data.Hotels)
	require.NoError(t, cfg.Connection.Validate())
}

func TestFindConfig_WalksUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	want := writeConfig(t, root, "tripgraph.yaml", "connection:\n  uri: neo4j://localhost\n")

	got, err := tripgraph.FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindConfig_NotFound(t *testing.T) {
	t.Parallel()

	_, err := tripgraph.FindConfig(t.TempDir())
	require.ErrorIs(t, err, tripgraph.ErrConfigNotFound)
}

func TestConnConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     tripgraph.ConnConfig
		wantErr error
	}{
		{
			name:    "missing uri",
			cfg:     tripgraph.ConnConfig{},
			wantErr: tripgraph.ErrMissingURI,
		},
		{
			name:    "username without password",
			cfg:     tripgraph.ConnConfig{URI: "neo4j://localhost", Username: "neo4j"},
			wantErr: tripgraph.ErrMissingPassword,
		},
		{
			name: "anonymous connection",
			cfg:  tripgraph.ConnConfig{URI: "neo4j://localhost"},
		},
		{
			name: "full credentials",
			cfg:  tripgraph.ConnConfig{URI: "neo4j://localhost", Username: "neo4j", Password: "secret"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}
