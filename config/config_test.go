package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":            "9000",
		"BAD_INT":         "nine",
		"ENABLED":         "true",
		"ORIGINS":         " https://a.com, ,.vercel.app ",
		"TIMEOUT_SECONDS": "15",
		"EMPTY":           "",
	}

	assert.Equal(t, "9000", GetString(c, "PORT", "8080"))
	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))

	assert.Equal(t, 9000, GetInt(c, "PORT", 1))
	assert.Equal(t, 1, GetInt(c, "BAD_INT", 1))
	assert.Equal(t, 1, GetInt(c, "MISSING", 1))

	assert.True(t, GetBool(c, "ENABLED", false))
	assert.True(t, GetBool(c, "MISSING", true))
	assert.False(t, GetBool(c, "BAD_INT", false))

	assert.Equal(t, 15*time.Second, GetSeconds(c, "TIMEOUT_SECONDS", 60))
	assert.Equal(t, []string{"https://a.com", ".vercel.app"}, GetList(c, "ORIGINS"))
	assert.Nil(t, GetList(c, "MISSING"))
}

func TestNew_LoadsEnvFileWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORTFOLIO_TEST_FROM_FILE=file\nPORTFOLIO_TEST_SET=file\n"), 0o600))

	t.Setenv("PORTFOLIO_TEST_SET", "process")
	t.Cleanup(func() { os.Unsetenv("PORTFOLIO_TEST_FROM_FILE") })

	c := New(envFile, filepath.Join(dir, "missing.env"))
	assert.Equal(t, "file", c["PORTFOLIO_TEST_FROM_FILE"])
	assert.Equal(t, "process", c["PORTFOLIO_TEST_SET"])
}

type fakeParameterStore struct {
	pages [][]types.Parameter
	err   error
	calls int
}

func (f *fakeParameterStore) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++

	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestOverlayParameters(t *testing.T) {
	store := &fakeParameterStore{pages: [][]types.Parameter{
		{{Name: aws.String("/portfolio/prod/DATABASE_URL"), Value: aws.String("postgres://ssm")}},
		{
			{Name: aws.String("/portfolio/prod/PORT"), Value: aws.String("9999")},
			{Name: aws.String("/portfolio/prod/JWT_SECRET_KEY"), Value: aws.String("secret")},
		},
	}}
	c := map[string]string{"PORT": "8080"}

	require.NoError(t, overlayParameters(context.Background(), store, c, "/portfolio/prod"))

	assert.Equal(t, 2, store.calls)
	assert.Equal(t, "postgres://ssm", c["DATABASE_URL"])
	assert.Equal(t, "secret", c["JWT_SECRET_KEY"])
	assert.Equal(t, "8080", c["PORT"])
}

func TestOverlayParameters_Error(t *testing.T) {
	store := &fakeParameterStore{err: errors.New("access denied")}

	err := overlayParameters(context.Background(), store, map[string]string{}, "/portfolio/prod")
	require.Error(t, err)
}
