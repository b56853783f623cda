package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
spreadsheetId: 1AbC
sheetName: Translations
range: A1:D
languages: [en, fr]
header: [key, note, en, fr]
format: strings
languagesRootPath: ios/App
languagePathPattern: "{{language}}.lproj/Localizable.strings"
credentialsPath: creds.json
`

func TestParseConfig(t *testing.T) {
	t.Setenv(credentialsEnvVar, "")

	cfg, err := parseConfig([]byte(testConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, "1AbC", cfg.SpreadsheetID)
	assert.Equal(t, []string{"en", "fr"}, cfg.Languages)
	assert.Equal(t, []string{"key", "note", "en", "fr"}, cfg.Header)
	assert.Equal(t, FormatStrings, cfg.Format)
	assert.Equal(t, BackendGoogle, cfg.Backend)
	assert.Equal(t, "creds.json", cfg.CredentialsPath)
	assert.Equal(t, "Translations!A1:D", cfg.sheetRange())
	assert.Equal(t, filepath.Join("ios", "App", "fr.lproj", "Localizable.strings"), cfg.translationPath("fr"))
}

func TestParseConfigJSON(t *testing.T) {
	// configuration files from the first version of the tool
	input := `{
  "spreadsSheetId": "legacy-id",
  "sheetName": "Sheet1",
  "range": "A:D",
  "languages": ["en", "fr"],
  "header": null,
  "languagesRootPath": "locales",
  "languagePathPattern": "{{language}}.json"
}`
	cfg, err := parseConfig([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "legacy-id", cfg.SpreadsheetID)
	assert.Nil(t, cfg.Header)
	assert.Equal(t, FormatJSON, cfg.Format)
}

func TestParseConfigCredentialsFromEnvironment(t *testing.T) {
	t.Setenv(credentialsEnvVar, "/secrets/sheets.json")
	cfg, err := parseConfig([]byte(testConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, "/secrets/sheets.json", cfg.CredentialsPath)
}

func TestParseConfigErrors(t *testing.T) {
	base := map[string]string{
		"spreadsheetId":       "id",
		"languages":           "[en, fr]",
		"languagePathPattern": `"{{language}}.json"`,
	}
	tests := []struct {
		name     string
		override map[string]string
	}{
		{name: "unknown format", override: map[string]string{"format": "yaml"}},
		{name: "no languages", override: map[string]string{"languages": "[]"}},
		{name: "duplicate language", override: map[string]string{"languages": "[en, en]"}},
		{name: "no placeholder", override: map[string]string{"languagePathPattern": "strings.json"}},
		{name: "header without key", override: map[string]string{"header": "[id, en, fr]"}},
		{name: "header without language", override: map[string]string{"header": "[key, en]"}},
		{name: "missing spreadsheet", override: map[string]string{"spreadsheetId": `""`}},
		{name: "unknown backend", override: map[string]string{"backend": "csv"}},
		{name: "workbook without path", override: map[string]string{"backend": "xlsx"}},
		{name: "not yaml", override: map[string]string{"languages": "[en"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var input string
			for k, v := range base {
				if o, ok := tt.override[k]; ok {
					v = o
				}
				input += k + ": " + v + "\n"
			}
			for k, v := range tt.override {
				if _, ok := base[k]; !ok {
					input += k + ": " + v + "\n"
				}
			}
			_, err := parseConfig([]byte(input))
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, ErrConfig)

	path := filepath.Join(t.TempDir(), defaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0666))
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Translations", cfg.SheetName)
}

func TestSheetRange(t *testing.T) {
	tests := []struct {
		sheet    string
		cells    string
		expected string
	}{
		{sheet: "Sheet1", cells: "A1:D", expected: "Sheet1!A1:D"},
		{sheet: "My Sheet", cells: "A:D", expected: "'My Sheet'!A:D"},
		{sheet: "It's", cells: "A1", expected: "'It''s'!A1"},
		{sheet: "'My Sheet'", cells: "A1:D", expected: "'My Sheet'!A1:D"},
		{sheet: "Sheet1", cells: "", expected: "Sheet1"},
		{sheet: "", cells: "A1:D", expected: "A1:D"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			cfg := &Config{SheetName: tt.sheet, Range: tt.cells}
			assert.Equal(t, tt.expected, cfg.sheetRange())
		})
	}
}
