package scaffold

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityAdapter(base string) string { return base }

func TestInstructionsFor_When_CreateReactApp(t *testing.T) {
	t.Parallel()

	got, err := instructionsFor(TypeCreateReactApp, "/tmp/my-app", identityAdapter)
	require.NoError(t, err)
	assert.Equal(t, []string{"npx", "create-react-app", "/tmp/my-app"}, got)
}

func TestInstructionsFor_When_Gatsby(t *testing.T) {
	t.Parallel()

	got, err := instructionsFor(TypeGatsby, "/tmp/my-blog", identityAdapter)
	require.NoError(t, err)
	assert.Equal(t, []string{"npx", "gatsby", "new", "/tmp/my-blog"}, got)
}

func TestInstructionsFor_When_AdapterRewritesCommand(t *testing.T) {
	t.Parallel()

	adapt := func(base string) string { return base + ".cmd" }
	got, err := instructionsFor(TypeCreateReactApp, `C:\projects\app`, adapt)
	require.NoError(t, err)
	assert.Equal(t, "npx.cmd", got[0])
}

func TestInstructionsFor_When_UnrecognizedType(t *testing.T) {
	t.Parallel()

	_, err := instructionsFor(ProjectType("ember"), "/tmp/x", identityAdapter)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnrecognizedProjectType))

	var typeErr *UnrecognizedTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, ProjectType("ember"), typeErr.Type)
}

func TestInstructionsFor_When_RepeatedCalls_AreIdentical(t *testing.T) {
	t.Parallel()

	first, err := instructionsFor(TypeGatsby, "/p", identityAdapter)
	require.NoError(t, err)
	second, err := instructionsFor(TypeGatsby, "/p", identityAdapter)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseProjectType_When_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"create-react-app", "gatsby"} {
		got, err := ParseProjectType(s)
		require.NoError(t, err)
		assert.Equal(t, ProjectType(s), got)
	}
}

func TestParseProjectType_When_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ParseProjectType("vue")
	assert.True(t, errors.Is(err, ErrUnrecognizedProjectType))
}
