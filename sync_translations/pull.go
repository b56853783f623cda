package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// pull fetches the configured range and merges each language's translations into its file.
func pull(ctx context.Context, cfg *Config, open sheetOpener) error {
	r := newRun("pull")
	r.log.Info("Pulling...")
	err := r.finish(r.pull(ctx, cfg, open))
	if err != nil {
		r.log.WithError(err).Error("Pull error")
		return err
	}
	r.log.Info("Pull completed")
	return nil
}

func (r *run) pull(ctx context.Context, cfg *Config, open sheetOpener) error {
	r.enter(stateAuthorizing)
	sheet, err := open(ctx, cfg)
	if err != nil {
		return err
	}

	r.enter(stateFetching)
	rows, err := sheet.GetValues(ctx, cfg.sheetRange())
	if err != nil {
		return err
	}
	r.log.WithField("rows", len(rows)).Debug("fetched rows")

	r.enter(stateTransforming)
	if cfg.Header != nil && len(rows) > 0 {
		rows = rows[1:]
	}
	docs, err := documentsFromRows(rows, newColumnResolver(cfg.Header, cfg.Languages), cfg.Languages)
	if err != nil {
		return err
	}

	r.enter(stateWriting)
	codec := cfg.Format.Codec()
	for _, lang := range cfg.Languages {
		path := cfg.translationPath(lang)
		doc := readDocumentIfExists(codec, path)
		doc.Merge(docs[lang])

		data, err := codec.Marshal(doc)
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrFileWrite, lang, err)
		}
		if err = writeFile(path, data); err != nil {
			return err
		}
		r.log.WithFields(log.Fields{
			"language": lang,
			"path":     path,
			"keys":     doc.Len(),
		}).Info("wrote translations")
	}
	return nil
}
