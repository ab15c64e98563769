package payload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/jobmatch/internal/jobs"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     func(t *testing.T) Source
		expect  string
		wantErr error
		errText string
	}{
		{
			name:   "file",
			src:    func(t *testing.T) Source { return Source{Path: writeFile(t, "  {\"jobs\": []}\n")} },
			expect: `{"jobs": []}`,
		},
		{
			name:   "stdin",
			src:    func(*testing.T) Source { return Source{Path: Stdin, Stdin: strings.NewReader(`{"a":1}`)} },
			expect: `{"a":1}`,
		},
		{
			name:    "empty file",
			src:     func(t *testing.T) Source { return Source{Path: writeFile(t, " \n\t")} },
			wantErr: ErrEmptyInput,
		},
		{
			name:    "empty stdin",
			src:     func(*testing.T) Source { return Source{Path: Stdin, Stdin: strings.NewReader("")} },
			wantErr: ErrEmptyInput,
		},
		{
			name:    "missing file",
			src:     func(t *testing.T) Source { return Source{Path: filepath.Join(t.TempDir(), "nope.json")} },
			errText: "reading input from file",
		},
		{
			name:    "no path",
			src:     func(*testing.T) Source { return Source{} },
			errText: "input is not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := Load(tt.src(t))
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.ErrorContains(t, err, tt.errText)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expect, string(data))
			}
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	req, err := Decode([]byte(`{
		"user_data": {"profile_skills": ["Go"], "applied_job_ids": [3]},
		"target_job": {"id": 1, "skillsRequired": ["go"]},
		"jobs": [{"id": 2}, null]
	}`))
	require.NoError(t, err)

	assert.Equal(t, jobs.StringList{"Go"}, req.UserData.ProfileSkills)
	assert.True(t, req.UserData.AppliedIDs().Has("3"))
	assert.Equal(t, []string{"go"}, req.TargetJob.Skills())
	require.Len(t, req.Jobs, 2)
	assert.Equal(t, jobs.ID("2"), req.Jobs[0].ID())
	assert.Nil(t, req.Jobs[1])
}

func TestDecodeDefaultsUserData(t *testing.T) {
	t.Parallel()

	req, err := Decode([]byte(`{"jobs": []}`))
	require.NoError(t, err)
	require.NotNil(t, req.UserData)
	assert.True(t, req.TargetJob.IsEmpty())
}

func TestDecodeRejectsMalformed(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"jobs": [1]}`))
	require.ErrorContains(t, err, "decoding request")

	_, err = Decode([]byte(`not json`))
	require.Error(t, err)
}
