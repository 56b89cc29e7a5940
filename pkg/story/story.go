// Package story models the static chapter/episode graph and the unlock
// progression that runs on episode completion.
package story

import "fmt"

// Episode is one playable unit inside a chapter.
type Episode struct {
	Number      int    `json:"episodeNumber"`
	Title       string `json:"title,omitempty"`
	ScriptFile  string `json:"scriptFile,omitempty"`
	IsUnlocked  bool   `json:"isUnlocked"`
	IsCompleted bool   `json:"isCompleted"`
}

// Chapter is an ordered group of episodes.
type Chapter struct {
	Number     int       `json:"chapterNumber"`
	Title      string    `json:"title,omitempty"`
	Episodes   []Episode `json:"episodes"`
	IsUnlocked bool      `json:"isUnlocked"`
}

// Episode returns the chapter's episode with the given number, nil when absent.
func (c *Chapter) Episode(number int) *Episode {
	for i := range c.Episodes {
		if c.Episodes[i].Number == number {
			return &c.Episodes[i]
		}
	}
	return nil
}

// FindChapter returns the chapter with the given number, nil when absent.
func FindChapter(chapters []Chapter, number int) *Chapter {
	for i := range chapters {
		if chapters[i].Number == number {
			return &chapters[i]
		}
	}
	return nil
}

// StepKind says what kind of next step completion produced.
type StepKind string

const (
	StepNextEpisode  StepKind = "next_episode"
	StepNextChapter  StepKind = "next_chapter"
	StepGameComplete StepKind = "game_complete"
)

// NextStep is the outcome of completing an episode: where the player may go
// next, or the fact that the whole story is done.
type NextStep struct {
	Kind    StepKind
	Chapter int
	Episode int
	Title   string
}

func (s NextStep) String() string {
	if s.Kind == StepGameComplete {
		return "game complete"
	}
	return fmt.Sprintf("%d-%d", s.Chapter, s.Episode)
}

// CompleteEpisode marks the given episode completed in the graph and unlocks
// exactly one step ahead: the next episode of the same chapter, or the first
// episode of the next chapter. It never unlocks further, and re-running it
// for an already-completed episode changes nothing beyond the idempotent
// flags. The caller owns persisting both the graph and the player's
// completed-story set.
func CompleteEpisode(chapters []Chapter, chapter, episode int) NextStep {
	ch := FindChapter(chapters, chapter)
	if ch == nil {
		return NextStep{Kind: StepGameComplete}
	}
	if ep := ch.Episode(episode); ep != nil {
		ep.IsCompleted = true
	}

	if next := ch.Episode(episode + 1); next != nil {
		next.IsUnlocked = true
		return NextStep{Kind: StepNextEpisode, Chapter: chapter, Episode: next.Number, Title: next.Title}
	}

	if nc := FindChapter(chapters, chapter+1); nc != nil && len(nc.Episodes) > 0 {
		nc.IsUnlocked = true
		first := &nc.Episodes[0]
		first.IsUnlocked = true
		return NextStep{Kind: StepNextChapter, Chapter: nc.Number, Episode: first.Number, Title: nc.Title}
	}

	return NextStep{Kind: StepGameComplete}
}
