package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/roomcraft/internal/config"
	"github.com/Veraticus/roomcraft/internal/model"
)

const testCatalogYAML = `
categories:
  - name: Sofas
    products:
      - name: Harper 3 Seater Sofa
        price: "$1,999"
        collection: Harper
      - name: Dawson Loveseat
        price: "$899"
        collection: Dawson
  - name: Tables
    products:
      - name: Marlow Coffee Table
        price: "$449"
        collection: Marlow
`

// setupCommandEnv points the global configuration at a temporary catalog
// and database.
func setupCommandEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "products.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalogYAML), 0o600))

	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults(viper.GetViper())
	viper.Set(config.KeyCatalogPath, catalogPath)
	viper.Set(config.KeyDatabasePath, filepath.Join(dir, "roomcraft.db"))
	return dir
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, sub := range cmd.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

func TestCommandTree(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		subs []string
	}{
		{cmd: catalogCmd(), subs: []string{"search", "show", "categories", "next"}},
		{cmd: recommendCmd(), subs: []string{"batch"}},
		{cmd: cacheCmd(), subs: []string{"prune", "stats"}},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			for _, name := range tt.subs {
				assert.NotNil(t, findSubcommand(tt.cmd, name), "missing subcommand %s", name)
			}
		})
	}
}

func TestRecommendCmdFlags(t *testing.T) {
	cmd := recommendCmd()

	tests := []struct {
		flag string
		def  string
	}{
		{flag: "room-type", def: "living_room"},
		{flag: "unit", def: "meters"},
		{flag: "currency", def: "SGD"},
		{flag: "language", def: "en"},
		{flag: "smart", def: "false"},
		{flag: "explain", def: "false"},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := cmd.Flag(tt.flag)
			require.NotNil(t, flag)
			assert.Equal(t, tt.def, flag.DefValue)
		})
	}
}

func TestRequestFlags(t *testing.T) {
	t.Run("budget only when set", func(t *testing.T) {
		cmd := &cobra.Command{Use: "test"}
		var flags requestFlags
		flags.register(cmd)
		require.NoError(t, cmd.ParseFlags([]string{"--room-type", "bedroom", "--unit", "feet", "--collection", "harper, dawson"}))

		req := flags.request(cmd)
		assert.Equal(t, model.RoomTypeBedroom, req.RoomType)
		assert.Equal(t, model.UnitFeet, req.Dimensions.Unit)
		assert.Equal(t, []string{"harper", "dawson"}, req.Preferences.SelectedCollections)
		assert.Nil(t, req.Budget)
	})

	t.Run("budget with currency", func(t *testing.T) {
		cmd := &cobra.Command{Use: "test"}
		var flags requestFlags
		flags.register(cmd)
		require.NoError(t, cmd.ParseFlags([]string{"--budget", "2500", "--currency", "USD"}))

		req := flags.request(cmd)
		require.NotNil(t, req.Budget)
		assert.InDelta(t, 2500, req.Budget.Amount, 1e-9)
		assert.Equal(t, "USD", req.Budget.Currency)
	})
}

func TestRecommendCmd_JSON(t *testing.T) {
	setupCommandEnv(t)

	out, err := runCommand(t, recommendCmd(), "--budget", "3000", "--json")
	require.NoError(t, err)

	var result model.RecommendationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, model.StrategyRuleBased, result.Strategy)
	assert.False(t, result.BudgetExceeded)
	assert.NotEmpty(t, result.Recommendations)
	assert.LessOrEqual(t, result.TotalPrice, 3000.0)
}

func TestRecommendCmd_SmartWithoutProvider(t *testing.T) {
	setupCommandEnv(t)
	for _, key := range []string{"OPENAI_API_KEY", "DASHSCOPE_API_KEY", "ROOMCRAFT_LLM_OPENAI_API_KEY", "ROOMCRAFT_LLM_DASHSCOPE_API_KEY"} {
		t.Setenv(key, "")
	}

	out, err := runCommand(t, recommendCmd(), "--smart", "--json")
	require.NoError(t, err)

	var result model.SmartResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	assert.Equal(t, model.StrategyRuleBased, result.Strategy)
	assert.Len(t, result.Products, 3)
	assert.Len(t, result.RecommendedProductIDs, 3)
}

func TestRecommendCmd_InvalidRequest(t *testing.T) {
	setupCommandEnv(t)

	_, err := runCommand(t, recommendCmd(), "--room-type", "garage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid recommendation request")
}

func TestRecommendBatchCmd(t *testing.T) {
	dir := setupCommandEnv(t)

	batch := `[
  {"name": "lounge", "roomType": "living_room",
   "dimensions": {"length": 5, "width": 4, "height": 2.7, "unit": "meters"},
   "budget": {"amount": 3000, "currency": "SGD"}},
  {"name": "garage", "roomType": "garage",
   "dimensions": {"length": 5, "width": 4, "height": 2.7, "unit": "meters"}}
]`
	path := filepath.Join(dir, "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(batch), 0o600))

	out, err := runCommand(t, recommendCmd(), "batch", path, "--json", "--workers", "2")
	require.NoError(t, err)

	var entries []batchEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, "lounge", entries[0].Name)
	assert.Empty(t, entries[0].Error)
	require.NotNil(t, entries[0].Result)
	assert.NotEmpty(t, entries[0].Result.Recommendations)

	assert.Equal(t, "garage", entries[1].Name)
	assert.Contains(t, entries[1].Error, "invalid request")
	assert.Nil(t, entries[1].Result)
}

func TestCatalogSearchCmd_JSON(t *testing.T) {
	setupCommandEnv(t)

	out, err := runCommand(t, catalogCmd(), "search", "--category", "sofa", "--max-price", "1000", "--json")
	require.NoError(t, err)

	var products []model.Product
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Dawson Loveseat", products[0].Name)
}

func TestCachePruneCmd(t *testing.T) {
	setupCommandEnv(t)

	out, err := runCommand(t, cacheCmd(), "prune", "--older-than", "1h")
	require.NoError(t, err)
	assert.Contains(t, out, "Pruned 0 responses")
}
