// Package plan turns grouped media into concrete destination paths. The
// builder never consults the destination filesystem: collision handling is
// purely in-memory over the paths planned in this run, which keeps planning
// side-effect free and dry-run accurate.
package plan

import (
	"fmt"
	"path/filepath"
	"strings"

	"curator/internal/classify"
	"curator/internal/group"
	"curator/internal/media"
	"curator/internal/textutil"
)

// Entry is one planned file move: copy Source to Dest, optionally through
// the transcode pipeline first.
type Entry struct {
	Source    media.File
	Dest      string
	Kind      classify.Kind
	GroupKey  string
	Transcode bool
}

// Plan is the full set of planned placements plus the files that could not
// be placed.
type Plan struct {
	Entries    []Entry
	Unresolved []classify.Item
	TotalBytes int64
}

// Builder renders destination paths under the configured library roots.
type Builder struct {
	moviesDir string
	showsDir  string
}

func NewBuilder(moviesDir, showsDir string) *Builder {
	return &Builder{moviesDir: moviesDir, showsDir: showsDir}
}

// Build plans every group member. Groups and members arrive in deterministic
// order, so version suffixes assigned on collision are deterministic too.
func (b *Builder) Build(groups []group.Group, unresolved []classify.Item) *Plan {
	resolver := newCollisionResolver()
	p := &Plan{Unresolved: unresolved}

	for _, g := range groups {
		dir := b.groupDir(g)
		for _, item := range g.Items {
			name := b.fileName(g, item)
			dest := resolver.Resolve(dir, name, item.File.Ext)
			p.add(item, dest, g.Key)
		}
		for _, item := range g.Extras {
			extraDir := filepath.Join(dir, item.Attrs.Extra.Folder())
			name := textutil.SanitizeFileName(item.File.Stem())
			dest := resolver.Resolve(extraDir, name, item.File.Ext)
			p.add(item, dest, g.Key)
		}
	}
	return p
}

func (p *Plan) add(item classify.Item, dest, groupKey string) {
	p.Entries = append(p.Entries, Entry{
		Source:   item.File,
		Dest:     dest,
		Kind:     item.Kind,
		GroupKey: groupKey,
		// Extras are copied verbatim; only main features are eligible for
		// the downmix pipeline.
		Transcode: item.Kind != classify.KindExtra,
	})
	p.TotalBytes += item.File.Size
}

// groupDir is the library folder owning the group: the titled movie folder
// or the show's season folder.
func (b *Builder) groupDir(g group.Group) string {
	switch g.Type {
	case group.TypeShowSeason:
		return filepath.Join(b.showsDir, titledFolder(g.Title, g.Year), fmt.Sprintf("Season %02d", g.Season))
	default:
		return filepath.Join(b.moviesDir, titledFolder(g.Title, g.Year))
	}
}

func (b *Builder) fileName(g group.Group, item classify.Item) string {
	switch g.Type {
	case group.TypeShowSeason:
		return episodeFileName(g, item)
	default:
		return movieFileName(g, item)
	}
}

// movieFileName renders "<Title> (<Year>)[ - <Resolution>][ - partN]".
func movieFileName(g group.Group, item classify.Item) string {
	parts := []string{titledFolder(g.Title, g.Year)}
	if item.Attrs.Resolution != "" {
		parts = append(parts, item.Attrs.Resolution)
	}
	if item.Attrs.Part > 0 {
		parts = append(parts, fmt.Sprintf("part%d", item.Attrs.Part))
	}
	return strings.Join(parts, " - ")
}

// episodeFileName renders "<Series> - S<NN>E<EE>[-E<EE>][ - Part N][ - <Resolution>]".
func episodeFileName(g group.Group, item classify.Item) string {
	parts := []string{textutil.SanitizeFileName(g.Title)}
	label := fmt.Sprintf("S%02d", g.Season)
	if item.Attrs.Episodes != nil {
		label += item.Attrs.Episodes.Label()
	}
	parts = append(parts, label)
	if item.Attrs.Part > 0 {
		parts = append(parts, fmt.Sprintf("Part %d", item.Attrs.Part))
	}
	if item.Attrs.Resolution != "" {
		parts = append(parts, item.Attrs.Resolution)
	}
	return strings.Join(parts, " - ")
}

// titledFolder renders "<Title> (<Year>)", dropping the year when unknown.
func titledFolder(title string, year int) string {
	name := textutil.SanitizeFileName(title)
	if year != 0 {
		name = fmt.Sprintf("%s (%d)", name, year)
	}
	return name
}

// collisionResolver hands out " - v2", " - v3" suffixes when two planned
// files would share a destination path. Keys are lowercased so the plan is
// safe on case-insensitive filesystems.
type collisionResolver struct {
	seen map[string]int
}

func newCollisionResolver() *collisionResolver {
	return &collisionResolver{seen: make(map[string]int)}
}

func (r *collisionResolver) Resolve(dir, name, ext string) string {
	base := filepath.Join(dir, name+ext)
	key := strings.ToLower(base)
	r.seen[key]++
	if r.seen[key] == 1 {
		return base
	}
	versioned := filepath.Join(dir, fmt.Sprintf("%s - v%d%s", name, r.seen[key], ext))
	// A hand-named "... - v2" source could collide with a generated suffix.
	for {
		vkey := strings.ToLower(versioned)
		if r.seen[vkey] == 0 {
			r.seen[vkey]++
			return versioned
		}
		r.seen[key]++
		versioned = filepath.Join(dir, fmt.Sprintf("%s - v%d%s", name, r.seen[key], ext))
	}
}
