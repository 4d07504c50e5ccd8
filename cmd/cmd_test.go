package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "revenue-forecast/pkg/errors"
)

func executeCommand(args ...string) (string, string, error) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	root := NewRootCmd()
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const singlePlanCatalog = `
name: single
plans:
  - name: hosting
    price: 100
    type: recurring
    display_name: Hosting
    probability: 1.0
`

func TestSimulateCommand_CSV(t *testing.T) {
	cfg := writeFile(t, "config.yaml", `
setup_fee: 50
annual_domain_cost: 120
scenarios:
  - label: one
    customers_per_month: 1
  - label: two
    customers_per_month: 2
`)
	catalogFile := writeFile(t, "catalog.yaml", singlePlanCatalog)

	out, _, err := executeCommand("simulate", "--config", cfg, "--catalog", catalogFile, "--seed", "5", "--months", "3", "-o", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1+2*3)
	assert.Equal(t, "Scenario,Month,Total Customers,New Customers,One-Time Revenue (Cumulative),Base Hosting Revenue,Upsell Revenue,Total Monthly Revenue,Total Revenue (Cumulative),Hosting", lines[0])
	assert.Equal(t, "one,1,1,1,40.00,100.00,-10.00,90.00,130.00,100.00", lines[1])
	assert.Equal(t, "two,3,6,2,240.00,600.00,-60.00,540.00,1320.00,600.00", lines[6])
}

func TestSimulateCommand_OutputFlagIgnoresCase(t *testing.T) {
	out, _, err := executeCommand("simulate", "--model", "buddy", "--seed", "3", "--months", "1", "-o", "CSV")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Scenario,Month,"), out)
}

func TestSimulateCommand_SameSeedSameOutput(t *testing.T) {
	args := []string{"simulate", "--model", "web_design", "--seed", "99", "--months", "6", "-o", "json"}

	first, _, err := executeCommand(args...)
	require.NoError(t, err)
	second, _, err := executeCommand(args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, `"label": "10 customers per month"`)
}

func TestSimulateCommand_InvalidCatalog(t *testing.T) {
	catalogFile := writeFile(t, "catalog.yaml", `
plans:
  - name: a
    probability: 0.3
  - name: b
    probability: 0.2
`)
	out, _, err := executeCommand("simulate", "--catalog", catalogFile, "--seed", "1")
	require.Error(t, err)
	assert.True(t, ierr.IsConfiguration(err))
	assert.Empty(t, out)
}

func TestSimulateCommand_RejectsBadFlags(t *testing.T) {
	_, _, err := executeCommand("simulate", "--months", "0")
	assert.True(t, ierr.IsConfiguration(err))

	_, _, err = executeCommand("simulate", "--model", "nope", "--seed", "1")
	assert.True(t, ierr.IsConfiguration(err))
}

func TestCatalogCommand(t *testing.T) {
	out, _, err := executeCommand("catalog", "--model", "web_design")
	require.NoError(t, err)
	assert.Contains(t, out, "Model:")
	assert.Contains(t, out, "extra_pages")
	assert.Contains(t, out, "seo_updates, seo_articles")
}

func TestModelsCommand(t *testing.T) {
	out, _, err := executeCommand("models")
	require.NoError(t, err)
	assert.Contains(t, out, "web_design")
	assert.Regexp(t, `buddy\s+3\s+0\s+\*`, out)
}
