package classify_test

import (
	"testing"

	"curator/internal/classify"
	"curator/internal/media"
	"curator/internal/parse"
)

func TestClassifyKinds(t *testing.T) {
	ep := &media.EpisodeRange{Start: 1, End: 1}
	cases := []struct {
		name   string
		attrs  media.Attributes
		parsed bool
		want   classify.Kind
	}{
		{"movie", media.Attributes{Title: "Movie Title", Year: 2020}, true, classify.KindMovie},
		{"movie without year", media.Attributes{Title: "Movie Title"}, true, classify.KindMovie},
		{"episode", media.Attributes{Title: "Show", Season: 1, HasSeason: true, Episodes: ep}, true, classify.KindEpisode},
		{"episode without series name", media.Attributes{Episodes: ep}, true, classify.KindUnresolved},
		{"extra wins over movie", media.Attributes{Title: "Movie", Extra: media.ExtraTrailer}, true, classify.KindExtra},
		{"extra wins over episode", media.Attributes{Title: "Show", Episodes: ep, Extra: media.ExtraFeaturette}, true, classify.KindExtra},
		{"unparseable", media.Attributes{}, false, classify.KindUnresolved},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, reason := classify.Classify(tc.attrs, tc.parsed)
			if kind != tc.want {
				t.Fatalf("kind = %v, want %v", kind, tc.want)
			}
			if kind == classify.KindUnresolved && reason == "" {
				t.Fatal("unresolved classification must carry a reason")
			}
		})
	}
}

func TestApplyForcedContentType(t *testing.T) {
	files := []media.File{
		media.NewFile("/src/Movie.Title.2020.mkv", 100),
		media.NewFile("/src/Show.Name.S01E01.mkv", 100),
	}
	extractor := parse.New()

	moviesOnly := classify.Apply(files, extractor, classify.ContentMovies)
	if moviesOnly[0].Kind != classify.KindMovie {
		t.Fatalf("movie item = %v", moviesOnly[0].Kind)
	}
	if moviesOnly[1].Kind != classify.KindUnresolved {
		t.Fatalf("episode in movies-only run = %v, want unresolved", moviesOnly[1].Kind)
	}

	tvOnly := classify.Apply(files, extractor, classify.ContentTV)
	if tvOnly[0].Kind != classify.KindUnresolved {
		t.Fatalf("movie in tv-only run = %v, want unresolved", tvOnly[0].Kind)
	}
	if tvOnly[1].Kind != classify.KindEpisode {
		t.Fatalf("episode item = %v", tvOnly[1].Kind)
	}

	auto := classify.Apply(files, extractor, classify.ContentAuto)
	if auto[0].Kind != classify.KindMovie || auto[1].Kind != classify.KindEpisode {
		t.Fatalf("auto mode should keep both kinds: %v, %v", auto[0].Kind, auto[1].Kind)
	}
}

func TestSummarize(t *testing.T) {
	items := []classify.Item{
		{Kind: classify.KindMovie},
		{Kind: classify.KindMovie},
		{Kind: classify.KindEpisode},
		{Kind: classify.KindExtra},
		{Kind: classify.KindUnresolved},
	}
	s := classify.Summarize(items)
	if s.Movies != 2 || s.Episodes != 1 || s.Extras != 1 || s.Unresolved != 1 {
		t.Fatalf("summary = %+v", s)
	}
}
