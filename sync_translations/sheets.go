package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Spreadsheet reads and overwrites a range of cells. Ranges use A1 notation.
type Spreadsheet interface {
	GetValues(ctx context.Context, readRange string) ([][]string, error)
	UpdateValues(ctx context.Context, writeRange string, rows [][]string) error
}

// sheetOpener authorizes and returns the spreadsheet configured in cfg.
type sheetOpener func(ctx context.Context, cfg *Config) (Spreadsheet, error)

func openSpreadsheet(ctx context.Context, cfg *Config) (Spreadsheet, error) {
	if cfg.Backend == BackendXLSX {
		return newWorkbookSheet(cfg.WorkbookPath), nil
	}
	return newGoogleSheet(ctx, cfg)
}

type googleSheet struct {
	srv           *sheets.Service
	spreadsheetID string
}

func newGoogleSheet(ctx context.Context, cfg *Config) (*googleSheet, error) {
	client, err := authorizedClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create sheets client: %w", ErrAuth, err)
	}
	return &googleSheet{srv: srv, spreadsheetID: cfg.SpreadsheetID}, nil
}

func (g *googleSheet) GetValues(ctx context.Context, readRange string) ([][]string, error) {
	resp, err := g.srv.Spreadsheets.Values.Get(g.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrRemoteIO, readRange, err)
	}
	return cellStrings(resp.Values), nil
}

// UpdateValues overwrites writeRange with rows, values are stored as given.
func (g *googleSheet) UpdateValues(ctx context.Context, writeRange string, rows [][]string) error {
	values := make([][]interface{}, len(rows))
	for i, r := range rows {
		values[i] = make([]interface{}, len(r))
		for j, v := range r {
			values[i][j] = v
		}
	}
	vr := &sheets.ValueRange{Values: values}
	_, err := g.srv.Spreadsheets.Values.Update(g.spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: updating %s: %w", ErrRemoteIO, writeRange, err)
	}
	return nil
}

func cellStrings(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, r := range values {
		rows[i] = make([]string, len(r))
		for j, v := range r {
			switch s := v.(type) {
			case nil:
			case string:
				rows[i][j] = s
			default:
				rows[i][j] = fmt.Sprint(s)
			}
		}
	}
	return rows
}

// authorizedClient builds an HTTP client from a service account key or from installed-app
// client secrets. The latter caches its token and asks for a code on first use.
func authorizedClient(ctx context.Context, cfg *Config) (*http.Client, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("%w: no credentials file, set credentialsPath or %s", ErrAuth, credentialsEnvVar)
	}
	data, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read credentials: %w", ErrAuth, err)
	}

	var kind struct {
		Type string `json:"type"`
	}
	if err = json.Unmarshal(data, &kind); err != nil {
		return nil, fmt.Errorf("%w: unable to parse credentials: %w", ErrAuth, err)
	}
	if kind.Type == "service_account" {
		jwt, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAuth, err)
		}
		return jwt.Client(ctx), nil
	}

	config, err := google.ConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to parse client secret file: %w", ErrAuth, err)
	}
	tokenFile := cfg.TokenPath
	if tokenFile == "" {
		if tokenFile, err = tokenCacheFile(); err != nil {
			return nil, fmt.Errorf("%w: unable to get path to cached credential file: %w", ErrAuth, err)
		}
	}
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		tok, err = tokenFromWeb(ctx, config, os.Stdin, os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAuth, err)
		}
		if err = saveToken(tokenFile, tok); err != nil {
			log.WithField("file", tokenFile).Warnf("unable to cache oauth token: %v", err)
		}
	}
	return config.Client(ctx, tok), nil
}

func tokenFromWeb(ctx context.Context, config *oauth2.Config, in io.Reader, out io.Writer) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(out, "Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var code string
	if _, err := fmt.Fscan(in, &code); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}
	tok, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

func tokenCacheFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".credentials",
		url.QueryEscape("sheets.googleapis.com-sheet-translations.json")), nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(file string, tok *oauth2.Token) error {
	log.WithField("file", file).Info("saving oauth token")
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
