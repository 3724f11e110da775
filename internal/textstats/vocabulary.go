package textstats

import "strings"

// Vocabulary is a closed, ordered set of lower-case words counted verbatim
type Vocabulary struct {
	Name  string // short identifier, also used to name output regions
	Title string // display heading
	words []string
	index map[string]int
}

// NewVocabulary builds a vocabulary. Words are lower-cased and duplicates
// are dropped, keeping the first occurrence.
func NewVocabulary(name, title string, words []string) *Vocabulary {
	v := &Vocabulary{
		Name:  name,
		Title: title,
		index: make(map[string]int, len(words)),
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := v.index[w]; dup {
			continue
		}
		v.index[w] = len(v.words)
		v.words = append(v.words, w)
	}
	return v
}

// Words returns a copy of the vocabulary in its declared order
func (v *Vocabulary) Words() []string {
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}

// Contains reports whether word is in the vocabulary (exact match)
func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.index[word]
	return ok
}

// Len returns the number of words
func (v *Vocabulary) Len() int {
	return len(v.words)
}

// Built-in vocabularies
var (
	Pronouns = NewVocabulary("pronouns", "Pronouns", []string{
		"i", "me", "my", "mine", "myself",
		"you", "your", "yours", "yourself", "yourselves",
		"he", "him", "his", "himself",
		"she", "her", "hers", "herself",
		"it", "its", "itself",
		"we", "us", "our", "ours", "ourselves",
		"they", "them", "their", "theirs", "themselves",
		"who", "whom", "whose",
		"this", "that", "these", "those",
		"what", "which",
	})

	Prepositions = NewVocabulary("prepositions", "Prepositions", []string{
		"about", "above", "across", "after", "against", "along", "amid", "among",
		"around", "at", "before", "behind", "below", "beneath", "beside", "between",
		"beyond", "by", "concerning", "considering", "despite", "down", "during",
		"except", "for", "from", "in", "inside", "into", "like", "near", "of", "off",
		"on", "onto", "out", "outside", "over", "past", "regarding", "round", "since",
		"through", "throughout", "to", "toward", "under", "underneath", "until", "unto",
		"up", "upon", "with", "within", "without",
	})

	IndefiniteArticles = NewVocabulary("articles", "Indefinite Articles", []string{"a", "an"})
)

// DefaultVocabularies returns the built-in vocabularies in display order
func DefaultVocabularies() []*Vocabulary {
	return []*Vocabulary{Pronouns, Prepositions, IndefiniteArticles}
}
