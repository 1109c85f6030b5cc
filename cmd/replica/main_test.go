package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/replica"
	"github.com/zoobzio/replica/invite"
)

const partnersFile = "../../invite/testdata/partners.json"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestInviteCommand_Text(t *testing.T) {
	out, err := execute(t, "invite", "--file", partnersFile)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Invitees\n"))
	assert.Contains(t, out, "Company name: Spring Development")
	assert.Contains(t, out, "Company address: Banbury Court, 12 Gresse Street, London W1T 1RT")
	assert.NotContains(t, out, "Gallus Consulting")
	assert.Less(t, strings.Index(out, "Aerial Solutions"), strings.Index(out, "Spring Development"))
}

func TestInviteCommand_JSON(t *testing.T) {
	out, err := execute(t, "invite", "--file", partnersFile, "--radius", "500", "--format", "json")
	require.NoError(t, err)

	var report invite.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 500.0, report.RadiusKm)
	assert.Len(t, report.Candidates, 4)
}

func TestInviteCommand_Epicenter(t *testing.T) {
	out, err := execute(t, "invite", "--file", partnersFile, "--lat", "1.3521", "--lon", "103.8198")
	require.NoError(t, err)
	assert.Contains(t, out, "Blue Square 360")
	assert.NotContains(t, out, "Spring Development")
}

func TestInviteCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"missing file", []string{"--file", "testdata/missing.json"}, invite.CodeInvalidInput},
		{"bad office", []string{"--file", "../../invite/testdata/partners-bad.json"}, invite.CodeInvalidOffice},
		{"bad epicenter", []string{"--file", partnersFile, "--lat", "120"}, invite.CodeInvalidEpicenter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"invite"}, tt.args...)...)
			require.Error(t, err)

			code, ok := replica.CodeOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestInviteCommand_UnknownFormat(t *testing.T) {
	_, err := execute(t, "invite", "--file", partnersFile, "--format", "csv")
	assert.ErrorContains(t, err, `unknown format "csv"`)
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, replica.NewCodedError("Invalid epicenter coordinates provided", "ERR::EPI::INV"))
	assert.Equal(t, "Error: Invalid epicenter coordinates provided\nERR_CODE: ERR::EPI::INV\n", buf.String())

	buf.Reset()
	reportError(&buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestCloneCommand(t *testing.T) {
	out, err := execute(t, "clone", "--file", "testdata/doc.json")
	require.NoError(t, err)

	assert.Contains(t, out, "kind: generic")
	assert.Contains(t, out, "match:  true")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	src := strings.TrimSpace(strings.TrimPrefix(lines[1], "source:"))
	dst := strings.TrimSpace(strings.TrimPrefix(lines[2], "clone:"))
	assert.Equal(t, src, dst)
}

func TestCloneCommand_Encoded(t *testing.T) {
	out, err := execute(t, "clone", "--file", "testdata/doc.json", "--format", "json")
	require.NoError(t, err)

	idx := strings.Index(out, "{")
	require.GreaterOrEqual(t, idx, 0)
	assert.JSONEq(t, `{"a":1,"b":{"c":1,"d":[{"e":3,"f":[1,2,3,4]},{"g":78}]}}`, out[idx:])
}

func TestCloneCommand_RequiresFile(t *testing.T) {
	_, err := execute(t, "clone")
	assert.Error(t, err)
}
