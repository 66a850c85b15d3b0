package domain

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle             UserState = "idle"
	StateWaitingWordList  UserState = "waiting_word_list"
	StateWaitingExamples  UserState = "waiting_examples"
	StateWaitingCSV       UserState = "waiting_csv"
	StateWaitingNewWord   UserState = "waiting_new_word"
	StateWaitingDictInput UserState = "waiting_dictionary"
	StateWaitingWordEdit  UserState = "waiting_word_edit"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State     UserState
	MessageID int    // For editing messages
	WordID    string // Word being edited
}
