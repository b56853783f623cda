package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestCellStrings(t *testing.T) {
	values := [][]interface{}{
		{"key", "note", "en"},
		{"count", nil, 3.5},
		{},
		{"flag", true},
	}
	assert.Equal(t, [][]string{
		{"key", "note", "en"},
		{"count", "", "3.5"},
		{},
		{"flag", "true"},
	}, cellStrings(values))
}

func TestTokenCache(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".credentials", "token.json")
	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, saveToken(file, tok))
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := tokenFromFile(file)
	require.NoError(t, err)
	assert.Equal(t, tok.AccessToken, got.AccessToken)
	assert.Equal(t, tok.RefreshToken, got.RefreshToken)
	assert.True(t, tok.Expiry.Equal(got.Expiry))
}

func TestAuthorizedClientErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("not json"), 0600))
	badSecret := filepath.Join(dir, "secret.json")
	require.NoError(t, os.WriteFile(badSecret, []byte(`{"web": {}}`), 0600))

	tests := []struct {
		name        string
		credentials string
	}{
		{name: "not configured", credentials: ""},
		{name: "missing file", credentials: filepath.Join(dir, "missing.json")},
		{name: "not json", credentials: garbage},
		{name: "incomplete client secret", credentials: badSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{CredentialsPath: tt.credentials, TokenPath: filepath.Join(dir, "token.json")}
			_, err := authorizedClient(context.Background(), cfg)
			assert.ErrorIs(t, err, ErrAuth)
		})
	}
}

func TestOpenSpreadsheetWorkbook(t *testing.T) {
	cfg := &Config{Backend: BackendXLSX, WorkbookPath: "book.xlsx"}
	sheet, err := openSpreadsheet(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &workbookSheet{}, sheet)
}
