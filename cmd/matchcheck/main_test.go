package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	color.NoColor = true
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

const travelerProfile = `{
  "userType": "traveler",
  "hometown": {"city": "Austin", "state": "Texas"},
  "plans": [
    {"destination": "Miami", "startDate": "2025-03-10", "endDate": "2025-03-15"},
    {"destination": "Lisbon", "startDate": "2025-04-01"}
  ],
  "selections": {"interests": ["Music", "Film"], "languages": ["Spanish"]},
  "custom": {"activities": ["Paragliding"]},
  "today": "2025-03-12"
}`

func TestRun_TravelerMidTrip(t *testing.T) {
	code, out, _ := runCLI(t, writeProfile(t, travelerProfile))

	require.Equal(t, 0, code)
	assert.Contains(t, out, "current: Miami [traveling]")
	assert.Contains(t, out, "locals: Austin, Texas [hometown]")
	assert.Contains(t, out, "readiness: traveler 4/10 (partially_selected) select 6 more items")
	assert.Contains(t, out, "  interests=Film\n  interests=Music\n")
	assert.Contains(t, out, "  activities=Paragliding\n")
	assert.Contains(t, out, "GET /search?")
}

func TestRun_TodayFlagOverridesFile(t *testing.T) {
	code, out, _ := runCLI(t, "-today", "2025-05-01", writeProfile(t, travelerProfile))

	require.Equal(t, 0, code)
	assert.Contains(t, out, "current: Lisbon [traveling]")
}

func TestRun_StrictFailsBelowThreshold(t *testing.T) {
	code, _, _ := runCLI(t, "-strict", writeProfile(t, travelerProfile))

	assert.Equal(t, 1, code)
}

func TestRun_StrictPassesUnderLocalPolicy(t *testing.T) {
	code, out, _ := runCLI(t, "-strict", "-policy", "local", writeProfile(t, `{
  "hometown": {"city": "Lisbon", "country": "Portugal"},
  "selections": {"interests": ["Music", "Film", "History"]},
  "today": "2025-03-12"
}`))

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "current: Lisbon, Portugal [hometown]")
	assert.Contains(t, out, "(threshold_met)")
}

func TestRun_NoLocation(t *testing.T) {
	code, out, _ := runCLI(t, "-strict", "-policy", "business", writeProfile(t, `{"today": "2025-03-12"}`))

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "not searchable: enter a location to search")
}

func TestRun_Errors(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage:")

	code, _, stderr = runCLI(t, "-policy", "vip", writeProfile(t, travelerProfile))
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown policy "vip"`)

	code, _, stderr = runCLI(t, writeProfile(t, `{"plans":[{"destination":"Rome","startDate":"2025-03-10","endDate":"2025-03-01"}]}`))
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "ends before it starts")

	code, _, _ = runCLI(t, filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, 2, code)
}
