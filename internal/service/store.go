package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lingolearn/internal/domain"
	"lingolearn/internal/repository"
)

const (
	dataKeyName   = "lingoLearnData"
	activeKeyName = "lingoLearnActiveDictionary"
)

// StorageKeys names the two values a store persists
type StorageKeys struct {
	// Data holds the JSON array of dictionaries
	Data string
	// Active remembers the last active dictionary id; best effort only
	Active string
}

// KeysFor returns the storage keys of one user namespace
func KeysFor(namespace string) StorageKeys {
	if namespace == "" {
		return StorageKeys{Data: dataKeyName, Active: activeKeyName}
	}
	return StorageKeys{
		Data:   namespace + ":" + dataKeyName,
		Active: namespace + ":" + activeKeyName,
	}
}

// WordBank is the part of DictionaryStore used by the quiz, import and stats services
type WordBank interface {
	Dictionaries() []domain.Dictionary
	ResolveActive() (domain.Dictionary, error)
	AddWord(ctx context.Context, details domain.WordDetails) (domain.Word, error)
	PrependWords(ctx context.Context, dictionaryID string, words []domain.Word) ([]domain.Word, error)
	UpdateWordMastery(ctx context.Context, wordID string, isCorrect bool) error
}

// DictionaryStore owns all dictionaries of one user and writes the full
// state through to the blob store on every mutation.
type DictionaryStore struct {
	mu     sync.Mutex
	blobs  repository.BlobStore
	keys   StorageKeys
	logger *zap.Logger

	now   func() time.Time
	newID func() string

	dictionaries []domain.Dictionary
	activeID     string
}

// NewDictionaryStore creates an empty store; call Load to read persisted state
func NewDictionaryStore(blobs repository.BlobStore, keys StorageKeys, logger *zap.Logger) *DictionaryStore {
	return &DictionaryStore{
		blobs:        blobs,
		keys:         keys,
		logger:       logger.With(zap.String("store", keys.Data)),
		now:          time.Now,
		newID:        uuid.NewString,
		dictionaries: []domain.Dictionary{},
	}
}

// storedDictionary detects missing fields of persisted entries
type storedDictionary struct {
	ID             *string        `json:"id"`
	Name           *string        `json:"name"`
	SourceLanguage string         `json:"sourceLanguage"`
	TargetLanguage string         `json:"targetLanguage"`
	Words          *[]domain.Word `json:"words"`
}

// Load replaces the in-memory state with the persisted one. Entries that
// fail shape validation are dropped and the cleaned set is written back.
// A blob that is not a JSON array resets the store and is deleted.
func (s *DictionaryStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dictionaries = []domain.Dictionary{}
	s.activeID = ""

	data, err := s.blobs.Get(ctx, s.keys.Data)
	if err != nil {
		s.logger.Error("Failed to read dictionaries, starting empty", zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if data == nil {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("Persisted dictionaries are corrupt, resetting", zap.Error(err))
		if err := s.blobs.Delete(ctx, s.keys.Data); err != nil {
			s.logger.Error("Failed to clear corrupt dictionaries", zap.Error(err))
		}
		return nil
	}

	dropped := 0
	for i, entry := range raw {
		dict, err := decodeDictionary(entry)
		if err != nil {
			dropped++
			s.logger.Warn("Dropping invalid dictionary entry",
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		s.dictionaries = append(s.dictionaries, dict)
	}

	if dropped > 0 {
		if err := s.persist(ctx); err != nil {
			s.logger.Error("Failed to persist cleaned dictionaries", zap.Error(err))
		}
	}

	s.activeID = s.restoreActive(ctx)

	s.logger.Info("Dictionaries loaded",
		zap.Int("dictionaries", len(s.dictionaries)),
		zap.Int("dropped", dropped),
	)
	return nil
}

func decodeDictionary(entry json.RawMessage) (domain.Dictionary, error) {
	var stored storedDictionary
	if err := json.Unmarshal(entry, &stored); err != nil {
		return domain.Dictionary{}, err
	}
	switch {
	case stored.ID == nil || *stored.ID == "":
		return domain.Dictionary{}, fmt.Errorf("missing id")
	case stored.Name == nil:
		return domain.Dictionary{}, fmt.Errorf("missing name")
	case stored.Words == nil:
		return domain.Dictionary{}, fmt.Errorf("missing words")
	}

	words := *stored.Words
	for i := range words {
		words[i].MasteryLevel = domain.ClampMastery(words[i].MasteryLevel)
	}

	return domain.Dictionary{
		ID:             *stored.ID,
		Name:           *stored.Name,
		SourceLanguage: stored.SourceLanguage,
		TargetLanguage: stored.TargetLanguage,
		Words:          words,
	}, nil
}

// restoreActive resolves the remembered active id, falling back to the first dictionary
func (s *DictionaryStore) restoreActive(ctx context.Context) string {
	remembered, err := s.blobs.Get(ctx, s.keys.Active)
	if err != nil {
		s.logger.Warn("Failed to read active dictionary", zap.Error(err))
	}
	if id := string(remembered); id != "" && s.indexOf(id) >= 0 {
		return id
	}
	if len(s.dictionaries) > 0 {
		return s.dictionaries[0].ID
	}
	return ""
}

// CreateDictionary appends a new empty dictionary. The first dictionary becomes active.
func (s *DictionaryStore) CreateDictionary(ctx context.Context, name, sourceLanguage, targetLanguage string) (domain.Dictionary, error) {
	input := domain.NewDictionary{
		Name:           strings.TrimSpace(name),
		SourceLanguage: strings.TrimSpace(sourceLanguage),
		TargetLanguage: strings.TrimSpace(targetLanguage),
	}
	if err := validateInput(input); err != nil {
		return domain.Dictionary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dict := domain.Dictionary{
		ID:             s.newID(),
		Name:           input.Name,
		SourceLanguage: input.SourceLanguage,
		TargetLanguage: input.TargetLanguage,
		Words:          []domain.Word{},
	}
	s.dictionaries = append(s.dictionaries, dict)

	if len(s.dictionaries) == 1 {
		s.activeID = dict.ID
		s.persistActive(ctx)
	}

	s.logger.Info("Dictionary created",
		zap.String("dictionary_id", dict.ID),
		zap.String("name", dict.Name),
	)
	return dict.Clone(), s.persist(ctx)
}

// DeleteDictionary removes a dictionary with all its words and re-selects the active one
func (s *DictionaryStore) DeleteDictionary(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrDictionaryNotFound, id)
	}
	s.dictionaries = append(s.dictionaries[:i], s.dictionaries[i+1:]...)

	if s.activeID == id {
		s.activeID = ""
		if len(s.dictionaries) > 0 {
			s.activeID = s.dictionaries[0].ID
		}
		s.persistActive(ctx)
	}

	s.logger.Info("Dictionary deleted", zap.String("dictionary_id", id))
	return s.persist(ctx)
}

// SetActiveDictionary points the store at id; an empty id clears the selection
func (s *DictionaryStore) SetActiveDictionary(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && s.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", domain.ErrDictionaryNotFound, id)
	}
	s.activeID = id
	s.persistActive(ctx)
	return nil
}

// AddWord inserts a new word at the front of the active dictionary
func (s *DictionaryStore) AddWord(ctx context.Context, details domain.WordDetails) (domain.Word, error) {
	details.SourceWord = strings.TrimSpace(details.SourceWord)
	if err := validateInput(details); err != nil {
		return domain.Word{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dict, err := s.activeLocked()
	if err != nil {
		return domain.Word{}, err
	}
	if dict.HasSourceWord(details.SourceWord) {
		return domain.Word{}, fmt.Errorf("%w: %q", domain.ErrDuplicateWord, details.SourceWord)
	}

	word := domain.Word{
		ID:              s.newID(),
		SourceWord:      details.SourceWord,
		TranslatedWord:  details.TranslatedWord,
		Definition:      details.Definition,
		ExampleSentence: details.ExampleSentence,
	}
	dict.Words = append([]domain.Word{word}, dict.Words...)

	return word, s.persist(ctx)
}

// PrependWords adds an import batch to dictionaryID in one persisted write.
// Words colliding with the dictionary's current words are dropped and returned.
func (s *DictionaryStore) PrependWords(ctx context.Context, dictionaryID string, words []domain.Word) ([]domain.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(dictionaryID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrDictionaryNotFound, dictionaryID)
	}
	dict := &s.dictionaries[i]

	seen := dict.SourceKeys()
	accepted := make([]domain.Word, 0, len(words))
	var dropped []domain.Word
	for _, w := range words {
		key := domain.SourceKey(w.SourceWord)
		if _, ok := seen[key]; ok {
			dropped = append(dropped, w)
			continue
		}
		seen[key] = struct{}{}

		w.ID = s.newID()
		w.MasteryLevel = domain.ClampMastery(w.MasteryLevel)
		accepted = append(accepted, w)
	}

	if len(accepted) == 0 {
		return dropped, nil
	}
	dict.Words = append(accepted, dict.Words...)

	return dropped, s.persist(ctx)
}

// UpdateWordMastery moves a word's mastery one step and stamps the review time.
// Unknown ids are ignored.
func (s *DictionaryStore) UpdateWordMastery(ctx context.Context, wordID string, isCorrect bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	word := s.findActiveWord(wordID)
	if word == nil {
		return nil
	}

	delta := -1
	if isCorrect {
		delta = 1
	}
	word.MasteryLevel = domain.ClampMastery(word.MasteryLevel + delta)
	// stored at the precision of domain.TimestampLayout so exports read back equal
	reviewed := s.now().UTC().Truncate(time.Millisecond)
	word.LastReviewed = &reviewed

	return s.persist(ctx)
}

// UpdateWord changes the editable content of a word. Unknown ids are ignored.
func (s *DictionaryStore) UpdateWord(ctx context.Context, wordID string, edit domain.WordEdit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	word := s.findActiveWord(wordID)
	if word == nil {
		return nil
	}
	word.TranslatedWord = edit.TranslatedWord
	word.ExampleSentence = edit.ExampleSentence

	return s.persist(ctx)
}

// DeleteWord removes a word from the active dictionary. Unknown ids are ignored.
func (s *DictionaryStore) DeleteWord(ctx context.Context, wordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dict, err := s.activeLocked()
	if err != nil {
		return nil
	}
	for i := range dict.Words {
		if dict.Words[i].ID == wordID {
			dict.Words = append(dict.Words[:i], dict.Words[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// DeleteAllData clears every dictionary and the active selection
func (s *DictionaryStore) DeleteAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dictionaries = []domain.Dictionary{}
	s.activeID = ""
	s.persistActive(ctx)

	s.logger.Info("All data deleted")
	return s.persist(ctx)
}

// Dictionaries returns a copy of all dictionaries in creation order
func (s *DictionaryStore) Dictionaries() []domain.Dictionary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Dictionary, len(s.dictionaries))
	for i, d := range s.dictionaries {
		out[i] = d.Clone()
	}
	return out
}

// Dictionary returns a copy of the dictionary with the given id
func (s *DictionaryStore) Dictionary(id string) (domain.Dictionary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Dictionary{}, fmt.Errorf("%w: %s", domain.ErrDictionaryNotFound, id)
	}
	return s.dictionaries[i].Clone(), nil
}

// ActiveID returns the active dictionary id or "" when none is active
func (s *DictionaryStore) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// ResolveActive returns a copy of the active dictionary or domain.ErrNoActiveDictionary
func (s *DictionaryStore) ResolveActive() (domain.Dictionary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dict, err := s.activeLocked()
	if err != nil {
		return domain.Dictionary{}, err
	}
	return dict.Clone(), nil
}

func (s *DictionaryStore) activeLocked() (*domain.Dictionary, error) {
	i := s.indexOf(s.activeID)
	if i < 0 {
		return nil, domain.ErrNoActiveDictionary
	}
	return &s.dictionaries[i], nil
}

func (s *DictionaryStore) findActiveWord(wordID string) *domain.Word {
	dict, err := s.activeLocked()
	if err != nil {
		return nil
	}
	for i := range dict.Words {
		if dict.Words[i].ID == wordID {
			return &dict.Words[i]
		}
	}
	return nil
}

func (s *DictionaryStore) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.dictionaries {
		if s.dictionaries[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the full state. Callers hold s.mu.
func (s *DictionaryStore) persist(ctx context.Context) error {
	for i := range s.dictionaries {
		if s.dictionaries[i].Words == nil {
			s.dictionaries[i].Words = []domain.Word{}
		}
	}

	data, err := json.Marshal(s.dictionaries)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := s.blobs.Set(ctx, s.keys.Data, data); err != nil {
		s.logger.Error("Failed to persist dictionaries", zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// persistActive remembers the active id. Failures are logged only.
func (s *DictionaryStore) persistActive(ctx context.Context) {
	var err error
	if s.activeID == "" {
		err = s.blobs.Delete(ctx, s.keys.Active)
	} else {
		err = s.blobs.Set(ctx, s.keys.Active, []byte(s.activeID))
	}
	if err != nil {
		s.logger.Warn("Failed to remember active dictionary", zap.Error(err))
	}
}
