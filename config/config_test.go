package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":     "9090",
		"BAD_INT":  "nine",
		"ENABLED":  "true",
		"BAD_BOOL": "maybe",
		"ORIGINS":  "http://a.test, ,http://b.test",
	}

	assert.Equal(t, "9090", GetString(cfg, "PORT", "8080"))
	assert.Equal(t, "fallback", GetString(cfg, "MISSING", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))

	assert.Equal(t, 9090, GetInt(cfg, "PORT", 1))
	assert.Equal(t, 1, GetInt(cfg, "BAD_INT", 1))
	assert.Equal(t, 1, GetInt(cfg, "MISSING", 1))

	assert.True(t, GetBool(cfg, "ENABLED", false))
	assert.False(t, GetBool(cfg, "BAD_BOOL", false))
	assert.True(t, GetBool(nil, "ENABLED", true))

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetStrings(cfg, "ORIGINS"))
	assert.Nil(t, GetStrings(cfg, "MISSING"))
}

func TestSplit(t *testing.T) {
	key, value := split("DATABASE_URL=postgres://u:p@h/db?sslmode=disable")
	assert.Equal(t, "DATABASE_URL", key)
	assert.Equal(t, "postgres://u:p@h/db?sslmode=disable", value)

	key, value = split("EMPTY")
	assert.Equal(t, "EMPTY", key)
	assert.Equal(t, "", value)
}

func TestLoad_ReadsDotEnvWithoutOverridingEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BLOG_TEST_FROM_FILE=file\nBLOG_TEST_PRESET=file\n"), 0o600))

	t.Setenv("BLOG_TEST_PRESET", "env")
	t.Cleanup(func() { os.Unsetenv("BLOG_TEST_FROM_FILE") })

	cfg, err := Load(envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "file", cfg["BLOG_TEST_FROM_FILE"])
	assert.Equal(t, "env", cfg["BLOG_TEST_PRESET"])
}

type fakeSSM struct {
	pages [][]types.Parameter
	calls int
	err   error
}

func (f *fakeSSM) GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
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

func TestOverlaySSM(t *testing.T) {
	client := &fakeSSM{pages: [][]types.Parameter{
		{{Name: aws.String("/blog-admin/prod/JWT_SECRET"), Value: aws.String("s3cret")}},
		{{Name: aws.String("/blog-admin/prod/PORT"), Value: aws.String("9000")}},
	}}
	cfg := map[string]string{"PORT": "8080", "KEEP": "me"}

	applied, err := OverlaySSM(context.Background(), client, "/blog-admin/prod", cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "s3cret", cfg["JWT_SECRET"])
	assert.Equal(t, "9000", cfg["PORT"])
	assert.Equal(t, "me", cfg["KEEP"])
}

func TestOverlaySSM_EmptyPathIsNoop(t *testing.T) {
	client := &fakeSSM{err: errors.New("must not be called")}
	applied, err := OverlaySSM(context.Background(), client, "", map[string]string{})
	require.NoError(t, err)
	assert.Zero(t, applied)
}

func TestOverlaySSM_Error(t *testing.T) {
	client := &fakeSSM{err: errors.New("access denied")}
	_, err := OverlaySSM(context.Background(), client, "/blog-admin", map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
