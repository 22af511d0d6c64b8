package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
	"github.com/Lixing-Zhang/nutribalance/internal/seed"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestParseMeals(t *testing.T) {
	entries, err := parseMeals([]string{"Apple=2", "Chicken Breast = 1.5", "A=B=0.5"})
	require.NoError(t, err)
	assert.Equal(t, []models.MealEntry{
		{Food: "Apple", Portion: 2},
		{Food: "Chicken Breast", Portion: 1.5},
		{Food: "A=B", Portion: 0.5},
	}, entries)

	_, err = parseMeals([]string{"Apple"})
	assert.ErrorContains(t, err, "want Food=portion")

	_, err = parseMeals([]string{"=2"})
	assert.Error(t, err)

	_, err = parseMeals([]string{"Apple=lots"})
	assert.ErrorContains(t, err, "invalid portion")
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	out, err := runCommand(t, "analyze", "--age", "30", "--weight", "70", "--height", "175",
		"--meal", "Apple=2", "--meal", "Egg=1", "--json")
	require.NoError(t, err)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, models.GroupAdult, result.Group)
	assert.InDelta(t, 172, result.Submission.Nutrients.Calories, 1e-9)
	assert.Equal(t, "sedentary", result.Submission.Activity)
}

func TestAnalyzeCommand_Table(t *testing.T) {
	out, err := runCommand(t, "analyze", "--age", "8", "--weight", "25", "--height", "120", "--meal", "Rice=1")
	require.NoError(t, err)

	assert.Contains(t, out, "(child)")
	assert.Contains(t, out, "NUTRIENT")
	assert.Contains(t, out, "Increase protein intake")
}

func TestAnalyzeCommand_MissingInput(t *testing.T) {
	_, err := runCommand(t, "analyze", "--weight", "70", "--height", "175", "--meal", "Apple=1")
	assert.ErrorContains(t, err, "required")
}

func TestAnalyzeThenExport_WithDatabase(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "nutri.db")

	_, err := runCommand(t, "--db", db, "analyze", "--age", "40", "--weight", "80", "--height", "180",
		"--activity", "active", "--meal", "Broccoli=2")
	require.NoError(t, err)

	exportDir := filepath.Join(dir, "out")
	out, err := runCommand(t, "--db", db, "export", "--dir", exportDir)
	require.NoError(t, err)

	location := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(exportDir, "nutri_submissions.csv"), location)

	raw, err := os.ReadFile(location)
	require.NoError(t, err)
	lines := strings.Split(string(raw), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], ",40,80,180,active,[{Broccoli 2}],")
}

func TestSeedCommand(t *testing.T) {
	out, err := runCommand(t, "seed")
	require.NoError(t, err)

	data, err := seed.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, seed.Defaults(), data)
}

func TestSeedCommand_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("foods: []\nrecommendations:\n  protein: {adult: 1, child: 1}\n"), 0o644))

	_, err := runCommand(t, "--seed", path, "seed")
	assert.ErrorContains(t, err, "invalid seed recommendations")
}
