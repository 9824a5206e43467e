package group_test

import (
	"testing"

	"curator/internal/classify"
	"curator/internal/group"
	"curator/internal/media"
)

func movieItem(name, title string, year int, resolution string) classify.Item {
	return classify.Item{
		File: media.File{Path: "/src/" + name, Name: name, Ext: ".mkv"},
		Attrs: media.Attributes{
			Title:      title,
			Year:       year,
			Resolution: resolution,
		},
		Kind: classify.KindMovie,
	}
}

func episodeItem(name, series string, season, ep int) classify.Item {
	item := classify.Item{
		File: media.File{Path: "/src/" + name, Name: name, Ext: ".mkv"},
		Attrs: media.Attributes{
			Title:    series,
			Episodes: &media.EpisodeRange{Start: ep, End: ep},
		},
		Kind: classify.KindEpisode,
	}
	if season > 0 {
		item.Attrs.Season = season
		item.Attrs.HasSeason = true
	}
	return item
}

func TestBuildClustersTitleVariants(t *testing.T) {
	items := []classify.Item{
		movieItem("The.Movie.2020.1080p.mkv", "The Movie", 2020, "1080p"),
		movieItem("the movie (2020).mkv", "the movie", 2020, ""),
	}
	groups := group.Build(items, group.Options{DefaultSeason: 1})
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	g := groups[0]
	if g.Type != group.TypeMovie {
		t.Fatalf("unexpected group type %s", g.Type)
	}
	if len(g.Items) != 2 {
		t.Fatalf("expected both files in the cluster, got %d", len(g.Items))
	}
	if g.Title != "The Movie" {
		t.Fatalf("display title should come from the first member, got %q", g.Title)
	}
}

func TestBuildYearInheritance(t *testing.T) {
	items := []classify.Item{
		movieItem("Movie.Title.mkv", "Movie Title", 0, ""),
		movieItem("Movie.Title.2020.1080p.mkv", "Movie Title", 2020, "1080p"),
	}
	groups := group.Build(items, group.Options{DefaultSeason: 1})
	if len(groups) != 1 {
		t.Fatalf("missing year must not split the cluster, got %d groups", len(groups))
	}
	if groups[0].Year != 2020 {
		t.Fatalf("group should inherit year 2020, got %d", groups[0].Year)
	}
}

func TestBuildSeparatesSeasons(t *testing.T) {
	items := []classify.Item{
		episodeItem("Show.S01E02.mkv", "Show", 1, 2),
		episodeItem("Show.S02E01.mkv", "Show", 2, 1),
		episodeItem("Show.S01E01.mkv", "Show", 1, 1),
	}
	groups := group.Build(items, group.Options{DefaultSeason: 1})
	if len(groups) != 2 {
		t.Fatalf("expected one group per season, got %d", len(groups))
	}
	s1 := groups[0]
	if s1.Season != 1 || len(s1.Items) != 2 {
		t.Fatalf("season 1 group wrong: season=%d items=%d", s1.Season, len(s1.Items))
	}
	if s1.Items[0].Attrs.Episodes.Start != 1 || s1.Items[1].Attrs.Episodes.Start != 2 {
		t.Fatalf("episodes not ordered by number: %v %v", s1.Items[0].Attrs.Episodes, s1.Items[1].Attrs.Episodes)
	}
}

func TestBuildDefaultSeason(t *testing.T) {
	item := episodeItem("Show.Episode.5.mkv", "Show", 0, 5)
	groups := group.Build([]classify.Item{item}, group.Options{DefaultSeason: 1})
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	if groups[0].Season != 1 {
		t.Fatalf("season should fall back to the default, got %d", groups[0].Season)
	}
}

func TestBuildMovieOrderByResolution(t *testing.T) {
	items := []classify.Item{
		movieItem("Movie.2020.720p.mkv", "Movie", 2020, "720p"),
		movieItem("Movie.2020.2160p.mkv", "Movie", 2020, "2160p"),
		movieItem("Movie.2020.1080p.mkv", "Movie", 2020, "1080p"),
	}
	groups := group.Build(items, group.Options{DefaultSeason: 1})
	got := groups[0].Items
	want := []string{"2160p", "1080p", "720p"}
	for i, res := range want {
		if got[i].Attrs.Resolution != res {
			t.Fatalf("position %d: want %s got %s", i, res, got[i].Attrs.Resolution)
		}
	}
}

func TestBuildExtraJoinsMovieGroup(t *testing.T) {
	items := []classify.Item{
		movieItem("Movie.2020.mkv", "Movie", 2020, ""),
		{
			File:  media.File{Path: "/src/Movie.Trailer.mkv", Name: "Movie.Trailer.mkv", Ext: ".mkv"},
			Attrs: media.Attributes{Title: "Movie", Extra: media.ExtraTrailer},
			Kind:  classify.KindExtra,
		},
	}
	groups := group.Build(items, group.Options{DefaultSeason: 1})
	if len(groups) != 1 {
		t.Fatalf("extra should join the movie cluster, got %d groups", len(groups))
	}
	if len(groups[0].Extras) != 1 {
		t.Fatalf("expected one extra in the group, got %d", len(groups[0].Extras))
	}
}

func TestBuildExtraOnlyGroup(t *testing.T) {
	items := []classify.Item{{
		File:  media.File{Path: "/src/Thing.Trailer.mkv", Name: "Thing.Trailer.mkv", Ext: ".mkv"},
		Attrs: media.Attributes{Title: "Thing", Extra: media.ExtraTrailer},
		Kind:  classify.KindExtra,
	}}
	groups := group.Build(items, group.Options{DefaultSeason: 1})
	if len(groups) != 1 {
		t.Fatalf("an orphan extra still needs a home group, got %d", len(groups))
	}
	if len(groups[0].Items) != 0 || len(groups[0].Extras) != 1 {
		t.Fatalf("unexpected membership: items=%d extras=%d", len(groups[0].Items), len(groups[0].Extras))
	}
}

func TestBuildDeterministicOrder(t *testing.T) {
	items := []classify.Item{
		episodeItem("Zeta.S01E01.mkv", "Zeta", 1, 1),
		movieItem("Beta.2020.mkv", "Beta", 2020, ""),
		movieItem("Alpha.2019.mkv", "Alpha", 2019, ""),
	}
	groups := group.Build(items, group.Options{DefaultSeason: 1})
	if len(groups) != 3 {
		t.Fatalf("expected three groups, got %d", len(groups))
	}
	if groups[0].Title != "Alpha" || groups[1].Title != "Beta" || groups[2].Title != "Zeta" {
		t.Fatalf("groups out of order: %q %q %q", groups[0].Title, groups[1].Title, groups[2].Title)
	}
}
