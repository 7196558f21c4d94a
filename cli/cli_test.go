package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exit "github.com/twitter/lineup/common/errors"
)

var exactSlots = []string{"PG", "SG", "SF", "PF", "C", "G", "F", "UTIL"}

// writePool writes one candidate per slot, each eligible for that slot only,
// so the pool holds exactly one roster.
func writePool(t *testing.T, salary int, score float64, dupFirst bool) string {
	var entries []string
	for i, s := range exactSlots {
		id := fmt.Sprintf("p%d", i)
		if dupFirst && i == 1 {
			id = "p0"
		}
		entries = append(entries, fmt.Sprintf(
			`{"id": %q, "name": "Player %d", "team": "BOS", "salary": %d, "projectedScore": %g, "rosterPositions": %q}`,
			id, i, salary, score, s))
	}
	path := filepath.Join(t.TempDir(), "pool.json")
	require.NoError(t, os.WriteFile(path, []byte("["+strings.Join(entries, ",\n")+"]"), 0644))
	return path
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	cl := NewCLIClient(&out)
	cl.RootCmd.SetArgs(append(args, "--log_level", "error"))
	err := cl.Exec()
	return out.String(), err
}

func TestOptimizeJSON(t *testing.T) {
	path := writePool(t, 6000, 35, false)
	out, err := execute("optimize", "--pool", path, "--json", "--workers", "2")
	require.NoError(t, err)

	var res struct {
		Status  string `json:"status"`
		Rosters []struct {
			TotalSalary int     `json:"totalSalary"`
			TotalScore  float64 `json:"totalScore"`
		} `json:"rosters"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	assert.Equal(t, "feasible", res.Status)
	require.Len(t, res.Rosters, 1)
	assert.Equal(t, 48000, res.Rosters[0].TotalSalary)
	assert.Equal(t, 280.0, res.Rosters[0].TotalScore)
}

func TestOptimizeTable(t *testing.T) {
	path := writePool(t, 6000, 35, false)
	out, err := execute("optimize", "--pool", path, "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Player 7")
	assert.Contains(t, out, "feasible")
	assert.Contains(t, out, "runsCounter")
}

func TestOptimizeExitCodes(t *testing.T) {
	feasible := writePool(t, 6000, 35, false)
	tests := []struct {
		name string
		args []string
		code exit.ExitCode
	}{
		{"unknown preset", []string{"optimize", "--pool", feasible, "--config", "nosuch"}, exit.ConfigErrorExitCode},
		{"bad workers", []string{"optimize", "--pool", feasible, "--workers", "many"}, exit.ConfigErrorExitCode},
		{"missing pool", []string{"optimize", "--pool", filepath.Join(t.TempDir(), "none.json")}, exit.InputErrorExitCode},
		{"no pool flag", []string{"optimize"}, exit.InputErrorExitCode},
		{"bad override", []string{"optimize", "--pool", feasible, "--set", "budget=lots"}, exit.ConfigErrorExitCode},
		{"duplicate id", []string{"optimize", "--pool", writePool(t, 6000, 35, true)}, exit.InputErrorExitCode},
		{"score floor", []string{"optimize", "--pool", writePool(t, 6000, 20, false)}, exit.InfeasibleExitCode},
		{"over budget", []string{"optimize", "--pool", writePool(t, 7000, 35, false)}, exit.InfeasibleExitCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(tt.args...)
			require.Error(t, err)
			assert.Equal(t, int(tt.code), exit.ExitCodeOf(err), err.Error())
		})
	}
}

func TestResolveConfigOverrides(t *testing.T) {
	o := &optimizeCmd{configSelector: "local.quick", workers: "3", topK: 7, timeBudget: time.Second}
	cfg, err := o.resolveConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.WorkerCount)
	assert.Equal(t, 7, cfg.TopK)
	assert.Equal(t, time.Second, cfg.TimeBudget)
	assert.Equal(t, 24, cfg.PoolSize)

	o = &optimizeCmd{configSelector: "default", workers: "auto"}
	cfg, err = o.resolveConfig()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.WorkerCount)
}

func TestDumpConfig(t *testing.T) {
	path := writePool(t, 6000, 35, false)
	out, err := execute("optimize", "--pool", path, "--dump_config", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, "MinSpend: (int) 45000")
}

func TestPresets(t *testing.T) {
	out, err := execute("presets")
	require.NoError(t, err)
	for _, name := range []string{"default", "dk.nba.classic", "dk.nba.wide", "local.quick"} {
		assert.Contains(t, out, name)
	}

	out, err = execute("presets", "--json")
	require.NoError(t, err)
	var presets map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &presets))
	assert.Equal(t, 50000.0, presets["default"]["budget"])
}

func TestOptimizeOverrides(t *testing.T) {
	// 8 x 7000 only fits once the budget is raised
	path := writePool(t, 7000, 35, false)
	out, err := execute("optimize", "--pool", path, "--json", "--set", "budget=60000,minSpend=50000")
	require.NoError(t, err)

	var res struct {
		Status  string `json:"status"`
		Rosters []struct {
			TotalSalary int `json:"totalSalary"`
		} `json:"rosters"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	assert.Equal(t, "feasible", res.Status)
	require.Len(t, res.Rosters, 1)
	assert.Equal(t, 56000, res.Rosters[0].TotalSalary)
}
