package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownSteps(t *testing.T) {
	n, err := downSteps([]string{"2"}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = downSteps(nil, true)
	assert.NoError(t, err)

	for _, tc := range []struct {
		args []string
		all  bool
	}{
		{nil, false},
		{[]string{"1"}, true},
		{[]string{"0"}, false},
		{[]string{"x"}, false},
	} {
		_, err := downSteps(tc.args, tc.all)
		assert.Error(t, err, "%v all=%t", tc.args, tc.all)
	}
}

func TestRootCommand_Arbol(t *testing.T) {
	root := NewRootCommand(&bytes.Buffer{})
	migrateCmd, _, err := root.Find([]string{"migrate", "version"})
	require.NoError(t, err)
	assert.Equal(t, "version", migrateCmd.Name())

	reportCmd, _, err := root.Find([]string{"report"})
	require.NoError(t, err)
	assert.Equal(t, "pdf", reportCmd.Flag("format").DefValue)
}

func TestReportCommand_FormatoInvalidoNoConecta(t *testing.T) {
	root := NewRootCommand(&bytes.Buffer{})
	root.SetArgs([]string{"report", "s-1", "--format", "docx", "--database-url", "postgres://nadie@127.0.0.1:1/x"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no soportado")
}

func TestMigrateDown_SinArgumentosFallaAntesDeConectar(t *testing.T) {
	root := NewRootCommand(&bytes.Buffer{})
	root.SetArgs([]string{"migrate", "down", "--database-url", "postgres://nadie@127.0.0.1:1/x"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all")
}
