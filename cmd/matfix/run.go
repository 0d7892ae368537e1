// cmd/matfix/run.go
package main

import (
	"errors"
	"io"
	"log"

	"github.com/davecgh/go-spew/spew"

	"github.com/tamzrod/material-normalizer/internal/config"
	"github.com/tamzrod/material-normalizer/internal/document"
	"github.com/tamzrod/material-normalizer/internal/material"
	"github.com/tamzrod/material-normalizer/internal/scanner"
	"github.com/tamzrod/material-normalizer/internal/status"
	"github.com/tamzrod/material-normalizer/internal/synonym"
	"github.com/tamzrod/material-normalizer/internal/writer"
)

// loggers separates operator feedback (out) from problems (errs).
type loggers struct {
	out  *log.Logger
	errs *log.Logger
}

// run processes every document below the configured root.
// Only a failing discovery stops the run.
func run(cfg *config.Config, lg loggers, dump io.Writer) (status.Snapshot, error) {
	var snap status.Snapshot
	n := cfg.Normalizer

	// --------------------
	// Synonym index
	// --------------------

	idx, skipped, err := synonym.Load(n.Synonyms)
	if err != nil {
		if errors.Is(err, synonym.ErrNoTable) {
			lg.errs.Printf("warning: %v", err)
		} else {
			lg.errs.Printf("synonym table load failed: %v", err)
		}
	}
	for _, s := range skipped {
		lg.errs.Printf("warning: %v", s)
	}

	if dump != nil {
		spew.Fdump(dump, idx.Entries())
	}

	resolver := &material.Resolver{
		Index: idx,
		OnChange: func(old, new string) {
			lg.out.Printf("%s -> %s", old, new)
		},
	}

	// --------------------
	// Discovery
	// --------------------

	sc, err := scanner.Build(n)
	if err != nil {
		return snap, err
	}
	paths, unreadable, err := sc.ScanOnce()
	if err != nil {
		return snap, err
	}
	for _, u := range unreadable {
		lg.errs.Printf("warning: %v", u)
	}

	w := writer.New(writer.Plan{DryRun: n.DryRun})

	// --------------------
	// Per-document pipeline
	// --------------------

	for _, p := range paths {
		rw := &material.Rewriter{
			Resolver:  resolver,
			Field:     n.Field,
			TypeField: n.TypeField,
			Marker:    n.Marker,
		}

		outcome, changes := processFile(p, rw, w, n.Indent, lg)
		snap.Record(outcome, changes)

		if outcome == status.OutcomeModified {
			lg.out.Printf("modified: %s", p)
		}
	}

	return snap, nil
}

// processFile loads, rewrites and conditionally persists one document.
func processFile(path string, rw *material.Rewriter, w writer.Writer, indent int, lg loggers) (int, int) {
	doc, err := document.Load(path)
	if err != nil {
		lg.errs.Printf("skip %s: %v", path, err)
		return status.OutcomeFailed, 0
	}
	doc.Indent = indent

	if !doc.Apply(rw) {
		return status.OutcomeUnchanged, 0
	}

	out, err := doc.Render()
	if err != nil {
		lg.errs.Printf("skip %s: %v", path, err)
		return status.OutcomeFailed, 0
	}

	if err := w.Write(path, out); err != nil {
		lg.errs.Printf("skip %s: %v", path, err)
		return status.OutcomeFailed, 0
	}

	return status.OutcomeModified, len(doc.Changes())
}
