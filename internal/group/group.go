// Package group clusters classified files into logical media units: one
// group per movie release or per show season. Keys are normalized so case
// and punctuation variants of the same title land together.
package group

import (
	"fmt"
	"sort"

	"curator/internal/classify"
	"curator/internal/media"
	"curator/internal/textutil"
)

// Type discriminates the two group shapes.
type Type int

const (
	TypeMovie Type = iota
	TypeShowSeason
)

func (t Type) String() string {
	if t == TypeShowSeason {
		return "show-season"
	}
	return "movie"
}

// Group owns the ordered files of one movie release or one show season.
// All members share the same normalized key.
type Group struct {
	Type   Type
	Title  string // display title: movie title or series name
	Year   int    // inherited from the first member that supplied one
	Season int    // show seasons only
	Key    string
	Items  []classify.Item // main-feature members, deterministic order
	Extras []classify.Item // ancillary members, routed to kind subfolders
}

// Options carries grouping policy.
type Options struct {
	// DefaultSeason is assigned to episodes with no season tag.
	DefaultSeason int
}

// Build clusters items into groups. Unresolved items are ignored here; the
// caller reports them separately. The result ordering, and the ordering
// inside every group, is deterministic for a fixed input order.
func Build(items []classify.Item, opts Options) []Group {
	byKey := make(map[string]*Group)
	var order []string

	obtain := func(key string, blueprint Group) *Group {
		if g, ok := byKey[key]; ok {
			return g
		}
		g := &Group{}
		*g = blueprint
		g.Key = key
		byKey[key] = g
		order = append(order, key)
		return g
	}

	for _, item := range items {
		switch item.Kind {
		case classify.KindEpisode:
			g := obtain(showKey(item, opts), Group{
				Type:   TypeShowSeason,
				Title:  item.Attrs.Title,
				Season: seasonOf(item, opts),
			})
			g.Items = append(g.Items, item)
			inheritYear(g, item)
		case classify.KindMovie:
			g := obtain(movieKey(item), Group{
				Type:  TypeMovie,
				Title: item.Attrs.Title,
			})
			g.Items = append(g.Items, item)
			inheritYear(g, item)
		case classify.KindExtra:
			key, blueprint := extraHome(item, opts)
			g := obtain(key, blueprint)
			g.Extras = append(g.Extras, item)
			inheritYear(g, item)
		}
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		g := byKey[key]
		sortMembers(g)
		groups = append(groups, *g)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Type != groups[j].Type {
			return groups[i].Type < groups[j].Type
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// movieKey clusters movies by normalized title. Year is part of the cluster
// identity only once known: files missing a year join the title cluster and
// inherit the year from whichever member supplies one first, so a missing
// year never splits an otherwise-matching group.
func movieKey(item classify.Item) string {
	return "movie/" + textutil.NormalizeKey(item.Attrs.Title)
}

func showKey(item classify.Item, opts Options) string {
	return fmt.Sprintf("show/%s/%d", textutil.NormalizeKey(item.Attrs.Title), seasonOf(item, opts))
}

func seasonOf(item classify.Item, opts Options) int {
	if item.Attrs.HasSeason {
		return item.Attrs.Season
	}
	return opts.DefaultSeason
}

// extraHome routes an extra to the group it belongs to: show season when the
// filename carries episode or season hints, movie cluster otherwise. A group
// holding only extras is still materialized so the extra lands under its
// title's folder.
func extraHome(item classify.Item, opts Options) (string, Group) {
	if item.Attrs.HasSeason || item.Attrs.HasEpisode() {
		return showKey(item, opts), Group{
			Type:   TypeShowSeason,
			Title:  item.Attrs.Title,
			Season: seasonOf(item, opts),
		}
	}
	return movieKey(item), Group{Type: TypeMovie, Title: item.Attrs.Title}
}

func inheritYear(g *Group, item classify.Item) {
	if g.Year == 0 && item.Attrs.Year != 0 {
		g.Year = item.Attrs.Year
	}
}

// sortMembers orders group members deterministically: movies best resolution
// first then filename; episodes by number then part then filename. Extras
// order by filename.
func sortMembers(g *Group) {
	switch g.Type {
	case TypeMovie:
		sort.SliceStable(g.Items, func(i, j int) bool {
			ri := media.ResolutionRank(g.Items[i].Attrs.Resolution)
			rj := media.ResolutionRank(g.Items[j].Attrs.Resolution)
			if ri != rj {
				return ri > rj
			}
			return g.Items[i].File.Name < g.Items[j].File.Name
		})
	case TypeShowSeason:
		sort.SliceStable(g.Items, func(i, j int) bool {
			ei, ej := episodeStart(g.Items[i]), episodeStart(g.Items[j])
			if ei != ej {
				return ei < ej
			}
			if g.Items[i].Attrs.Part != g.Items[j].Attrs.Part {
				return g.Items[i].Attrs.Part < g.Items[j].Attrs.Part
			}
			return g.Items[i].File.Name < g.Items[j].File.Name
		})
	}
	sort.SliceStable(g.Extras, func(i, j int) bool {
		return g.Extras[i].File.Name < g.Extras[j].File.Name
	})
}

func episodeStart(item classify.Item) int {
	if item.Attrs.Episodes == nil {
		return 0
	}
	return item.Attrs.Episodes.Start
}
