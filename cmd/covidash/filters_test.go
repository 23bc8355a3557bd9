package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/covidash/config"
	"github.com/spektr-org/covidash/engine"
)

func newFilterCommand(t *testing.T, args map[string]string) (*cobra.Command, *filterFlags) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	f := &filterFlags{}
	f.register(cmd)
	for name, value := range args {
		require.NoError(t, cmd.Flags().Set(name, value))
	}
	return cmd, f
}

func TestFilterFlags_Defaults(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cmd, f := newFilterCommand(t, nil)

	criteria, err := f.criteria(cmd, &cfg.Dashboard, []string{"prediction", "forecast"})
	require.NoError(t, err)

	assert.Equal(t, engine.SubregionsSelected, criteria.Mode)
	assert.Equal(t, "2020-03-02", criteria.Start.Format(engine.DateLayout))
	assert.Equal(t, "2021-11-10", criteria.End.Format(engine.DateLayout))
	assert.Empty(t, criteria.Subregions)
	assert.Equal(t, []string{"TX"}, criteria.ComparisonSubregions)
	assert.Equal(t, []string{"prediction", "forecast"}, criteria.Models)
}

func TestFilterFlags_Explicit(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cmd, f := newFilterCommand(t, map[string]string{
		"start":      "2020-04-01",
		"end":        "2020-05-01",
		"all-states": "true",
		"subregions": "ca,ny,CA",
		"comparison": "ny",
		"models":     "",
	})

	criteria, err := f.criteria(cmd, &cfg.Dashboard, []string{"prediction"})
	require.NoError(t, err)

	assert.Equal(t, engine.SubregionsAll, criteria.Mode)
	assert.Equal(t, "2020-04-01", criteria.Start.Format(engine.DateLayout))
	assert.Equal(t, "2020-05-01", criteria.End.Format(engine.DateLayout))
	assert.Equal(t, []string{"CA", "NY"}, criteria.Subregions)
	assert.Equal(t, []string{"NY"}, criteria.ComparisonSubregions)
	assert.Empty(t, criteria.Models, "an explicitly empty model list selects nothing")
}

func TestFilterFlags_BadDate(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	for _, flag := range []string{"start", "end"} {
		t.Run(flag, func(t *testing.T) {
			cmd, f := newFilterCommand(t, map[string]string{flag: "01/04/2020"})
			_, err := f.criteria(cmd, &cfg.Dashboard, nil)
			assert.ErrorContains(t, err, "invalid --"+flag)
		})
	}
}
