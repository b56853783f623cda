package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// push reads every language file and overwrites the configured range with one row per key.
func push(ctx context.Context, cfg *Config, open sheetOpener) error {
	r := newRun("push")
	r.log.Info("Pushing...")
	err := r.finish(r.push(ctx, cfg, open))
	if err != nil {
		r.log.WithError(err).Error("Push error")
		return err
	}
	r.log.Info("Push completed")
	return nil
}

func (r *run) push(ctx context.Context, cfg *Config, open sheetOpener) error {
	r.enter(stateAuthorizing)
	sheet, err := open(ctx, cfg)
	if err != nil {
		return err
	}

	r.enter(stateReading)
	codec := cfg.Format.Codec()
	docs := make(map[string]*Document, len(cfg.Languages))
	for _, lang := range cfg.Languages {
		path := cfg.translationPath(lang)
		data, err := readFile(path)
		if err != nil {
			return err
		}
		doc, err := codec.Unmarshal(data)
		if err != nil {
			return fmt.Errorf("%s (%s): %w", lang, path, err)
		}
		r.log.WithFields(log.Fields{
			"language": lang,
			"path":     path,
			"keys":     doc.Len(),
		}).Debug("read translations")
		docs[lang] = doc
	}

	r.enter(stateTransforming)
	rows, err := rowsFromDocuments(docs, newColumnResolver(cfg.Header, cfg.Languages), cfg.Languages, cfg.Header)
	if err != nil {
		return err
	}
	values := normalizeRows(rows)
	r.log.WithField("rows", len(values)).Debugf("%v", values)

	r.enter(stateWriting)
	return sheet.UpdateValues(ctx, cfg.sheetRange(), values)
}
