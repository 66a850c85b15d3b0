package domain

// Dictionary is a named word list for one source→target language pair.
// Words are ordered newest first.
type Dictionary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	Words          []Word `json:"words"`
}

// NewDictionary is the validated input of dictionary creation
type NewDictionary struct {
	Name           string `validate:"required"`
	SourceLanguage string `validate:"required"`
	TargetLanguage string `validate:"required,nefield=SourceLanguage"`
}

// Clone returns a copy that shares no word storage with d
func (d Dictionary) Clone() Dictionary {
	c := d
	c.Words = make([]Word, len(d.Words))
	for i, w := range d.Words {
		c.Words[i] = w.clone()
	}
	return c
}

// HasSourceWord reports whether the dictionary already holds sourceWord (case-insensitive)
func (d Dictionary) HasSourceWord(sourceWord string) bool {
	for _, w := range d.Words {
		if SameSourceWord(w.SourceWord, sourceWord) {
			return true
		}
	}
	return false
}

// SourceKeys returns the set of case-insensitive source words
func (d Dictionary) SourceKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(d.Words))
	for _, w := range d.Words {
		keys[SourceKey(w.SourceWord)] = struct{}{}
	}
	return keys
}

func (w Word) clone() Word {
	if w.LastReviewed != nil {
		t := *w.LastReviewed
		w.LastReviewed = &t
	}
	return w
}
