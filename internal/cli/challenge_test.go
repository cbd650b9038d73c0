package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestChallengeCommand_Text(t *testing.T) {
	out, err := execute(t, "challenge", "--date", "2026-10-15")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "challenge_text", []byte(out))
}

func TestChallengeCommand_JSON(t *testing.T) {
	out, err := execute(t, "challenge", "--date", "2026-10-15", "--format", "json")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "challenge_json", []byte(out))
}

func TestChallengeCommand_YAML(t *testing.T) {
	out, err := execute(t, "challenge", "--date", "2026-10-15", "--format", "yaml")
	require.NoError(t, err)

	var resp struct {
		Status string        `yaml:"status"`
		Data   ChallengeView `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Thu Oct 15 2026", string(resp.Data.Date))
	assert.Equal(t, "#a25f70", resp.Data.Color.Hex)
	assert.Len(t, resp.Data.Melody, 7)
	assert.Equal(t, RoundView{Word: "yellow", Ink: "red"}, resp.Data.Words[0])
}

func TestChallengeCommand_Today(t *testing.T) {
	out, err := execute(t, "challenge")
	require.NoError(t, err)
	assert.Contains(t, out, "Date:")
	assert.Contains(t, out, "Melody:")
}

func TestChallengeCommand_InvalidDate(t *testing.T) {
	_, err := execute(t, "challenge", "--date", "15/10/2026")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestChallengeCommand_WordsNeverMatchInk(t *testing.T) {
	for _, day := range []string{"2026-01-01", "2026-02-28", "2026-10-15", "2027-06-30"} {
		out, err := execute(t, "challenge", "--date", day, "--format", "yaml")
		require.NoError(t, err)
		var resp struct {
			Data ChallengeView `yaml:"data"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(out), &resp))
		for _, r := range resp.Data.Words {
			assert.NotEqual(t, r.Word, r.Ink, day)
		}
	}
}
