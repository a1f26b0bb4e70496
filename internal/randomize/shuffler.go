package randomize

import (
	"math/rand"
	"time"

	"manabiya-quiz/internal/models"
)

// Shuffler produces student-safe MCQ question views, optionally permuting
// question and option order. Permutations are drawn fresh on every call and
// never persisted; original_index on each view element is the only link back
// to the canonical definition.
type Shuffler struct {
	rand *rand.Rand
}

// NewShuffler creates a shuffler with a time-based seed.
func NewShuffler() *Shuffler {
	return NewShufflerWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewShufflerWithSource creates a shuffler with an explicit source, used by
// tests to get reproducible permutations.
func NewShufflerWithSource(src rand.Source) *Shuffler {
	return &Shuffler{rand: rand.New(src)}
}

// Questions redacts every question of the variant (no is_correct anywhere)
// and applies the variant's randomization flags.
func (s *Shuffler) Questions(variant *models.MCQVariant) []models.RedactedQuestion {
	order := s.permutation(len(variant.Questions), variant.RandomizeQuestions)

	views := make([]models.RedactedQuestion, 0, len(variant.Questions))
	for _, qi := range order {
		q := variant.Questions[qi]
		optOrder := s.permutation(len(q.Options), variant.RandomizeOptions)
		opts := make([]models.RedactedOption, 0, len(q.Options))
		for _, oi := range optOrder {
			opts = append(opts, models.RedactedOption{
				Text:          q.Options[oi].Text,
				OriginalIndex: oi,
			})
		}
		views = append(views, models.RedactedQuestion{
			Text:          q.Text,
			Points:        q.Points,
			OriginalIndex: qi,
			Options:       opts,
		})
	}
	return views
}

func (s *Shuffler) permutation(n int, shuffle bool) []int {
	if shuffle {
		return s.rand.Perm(n)
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
