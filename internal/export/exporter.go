// Package export implements the vault-to-site export pipeline: per-file
// publish and staleness decisions, front-matter substitution, body
// rewriting, and the watch-driven incremental loop.
package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/ehwaz/internal/checksum"
	"github.com/starford/ehwaz/internal/frontmatter"
	"github.com/starford/ehwaz/internal/journal"
	"github.com/starford/ehwaz/internal/site"
	"github.com/starford/ehwaz/internal/slug"
	"github.com/starford/ehwaz/internal/vault"
)

// Event kinds passed to the EventFunc callback.
const (
	EventPostExported = "post.exported"
	EventAssetCopied  = "asset.copied"
)

// EventFunc is called after a successful export or asset copy.
type EventFunc func(kind, path, slug string)

// Exporter mirrors publishable vault notes into the site tree.
type Exporter struct {
	vault   *vault.FS
	site    *site.Site
	journal journal.Recorder
	logger  *slog.Logger
	notify  EventFunc
}

// New creates an Exporter. The journal and notify callback may be nil.
func New(v *vault.FS, s *site.Site, j journal.Recorder, logger *slog.Logger, notify EventFunc) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{vault: v, site: s, journal: j, logger: logger, notify: notify}
}

// ExportAll walks the vault and exports every Markdown note. Walk and
// export I/O failures abort the run.
func (e *Exporter) ExportAll() error {
	for rel, err := range e.vault.Notes() {
		if err != nil {
			return fmt.Errorf("export: walk vault: %w", err)
		}
		if err := e.ExportFile(rel); err != nil {
			return err
		}
	}
	return nil
}

// ExportFile runs the per-file pipeline for one vault-relative path.
//
// The decision chain short-circuits: a note with no front matter, a note
// not published to the web, or a note whose artifact is already up to
// date all terminate without touching the site tree. Only a stale,
// publishable note is rendered and written, copying referenced assets as
// a side effect. Any I/O failure is returned and aborts the whole run.
func (e *Exporter) ExportFile(rel string) error {
	data, err := e.vault.Read(rel)
	if err != nil {
		return err
	}

	lines := splitLines(data)
	props, bodyStart := frontmatter.Parse(lines)
	if props == nil {
		e.logger.Debug("skip: no front matter", slog.String("path", rel))
		return nil
	}
	if !publishable(props) {
		e.logger.Debug("skip: not publishable", slog.String("path", rel))
		return nil
	}

	slugName := slug.Encode(rel)
	srcTime, err := e.vault.ModTime(rel)
	if err != nil {
		return err
	}
	dstTime, exists, err := e.site.PostModTime(slugName)
	if err != nil {
		return err
	}
	// Equal timestamps count as up to date.
	if exists && !srcTime.After(dstTime) {
		e.logger.Debug("skip: up to date", slog.String("path", rel))
		return nil
	}

	e.logger.Info("export",
		slog.String("src", rel),
		slog.String("dst", slugName))

	title := strings.TrimSuffix(filepath.Base(rel), ".md")

	var buf bytes.Buffer
	if err := buildProps(props, title, srcTime).Render(&buf); err != nil {
		return fmt.Errorf("export: render front matter: %w", err)
	}
	if err := rewriteBody(lines[bodyStart:], &buf, e.copyAsset); err != nil {
		return err
	}
	if err := e.site.WritePost(slugName, buf.Bytes()); err != nil {
		return err
	}

	if e.journal != nil {
		jErr := e.journal.RecordExport(journal.ExportRow{
			Path:       rel,
			Slug:       slugName,
			Title:      title,
			Checksum:   checksum.Sum(data),
			ExportedAt: time.Now(),
		})
		if jErr != nil {
			e.logger.Warn("journal: record export failed",
				slog.String("path", rel),
				slog.String("error", jErr.Error()))
		}
	}
	if e.notify != nil {
		e.notify(EventPostExported, rel, slugName)
	}
	return nil
}

// copyAsset copies one referenced image from the vault assets directory
// into the site assets root under its slug.
func (e *Exporter) copyAsset(name, slugName string) error {
	src, err := e.vault.AssetPath(name)
	if err != nil {
		return err
	}

	e.logger.Info("copy",
		slog.String("asset", name),
		slog.String("dst", slugName))

	if err := e.site.CopyAsset(src, slugName); err != nil {
		return err
	}

	if e.journal != nil {
		jErr := e.journal.RecordAsset(journal.AssetRow{
			Name:     name,
			Slug:     slugName,
			CopiedAt: time.Now(),
		})
		if jErr != nil {
			e.logger.Warn("journal: record asset failed",
				slog.String("asset", name),
				slog.String("error", jErr.Error()))
		}
	}
	if e.notify != nil {
		e.notify(EventAssetCopied, name, slugName)
	}
	return nil
}

// publishable reports whether the note opts into web publishing: a
// scalar "publish" property equal to exactly "web". Lists, other
// strings, and a missing key all fail the gate.
func publishable(props frontmatter.Props) bool {
	v, ok := props["publish"]
	return ok && v.Kind == frontmatter.KindScalar && v.Str == "web"
}

// buildProps derives the destination front matter. The schema is fixed:
// title (filename without extension, verbatim), date (source mtime), and
// tags carried over when the source has them. Nothing else propagates.
func buildProps(src frontmatter.Props, title string, modTime time.Time) frontmatter.Props {
	dst := frontmatter.Props{
		"title": frontmatter.Scalar(title),
		"date":  frontmatter.Scalar(modTime.Format(time.RFC3339)),
	}
	if tags, ok := src["tags"]; ok {
		dst["tags"] = tags
	}
	return dst
}

// splitLines splits file content into lines without trailing newlines,
// dropping the empty final element a trailing newline would produce.
func splitLines(data []byte) []string {
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
