package store

import "time"

// ArticleOrigin describes how an article entered the library
type ArticleOrigin string

const (
	// OriginTyped marks manually pasted or uploaded text
	OriginTyped ArticleOrigin = "typed"
	// OriginScanned marks text recovered from an image
	OriginScanned ArticleOrigin = "scanned"
	// OriginFetched marks text found through web search or a URL
	OriginFetched ArticleOrigin = "web"
)

// Article is an imported reading text. Immutable once created except for
// deletion.
type Article struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Source    string        `json:"source,omitempty"`
	Origin    ArticleOrigin `json:"origin"`
	CreatedAt time.Time     `json:"createdAt"`
}

// WordDefinition is a single dictionary lookup result produced fresh by
// the model per lookup.
type WordDefinition struct {
	Word         string   `json:"word"`
	Phonetic     string   `json:"phonetic,omitempty"`
	Meaning      string   `json:"meaning"`
	Definition   string   `json:"definition"`
	Example      string   `json:"example,omitempty"`
	PartOfSpeech string   `json:"partOfSpeech,omitempty"`
	Level        string   `json:"level"`
	Synonyms     []string `json:"synonyms,omitempty"`
	Antonyms     []string `json:"antonyms,omitempty"`
	Related      []string `json:"related,omitempty"`
}

// SavedWord is a definition kept in the notebook. At most one SavedWord
// exists per distinct word text (case-insensitive); the store enforces
// this at insertion time.
type SavedWord struct {
	ID          string         `json:"id"`
	Definition  WordDefinition `json:"definition"`
	SavedAt     time.Time      `json:"savedAt"`
	ReviewCount int            `json:"reviewCount"`
}

// ChatMessage is one turn of a tutor conversation. Chat sessions live in
// memory only and are never persisted.
type ChatMessage struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Text string `json:"text"`
}

// QuizKind classifies a quiz question
type QuizKind string

const (
	QuizFillBlank     QuizKind = "fill-blank"
	QuizPhoneticMatch QuizKind = "phonetic-match"
	QuizToNative      QuizKind = "translate-to-native"
	QuizFromNative    QuizKind = "translate-from-native"
)

// QuizQuestion is a single multiple-choice question. CorrectIndex is
// always a valid index into Options.
type QuizQuestion struct {
	ID           string   `json:"id"`
	Kind         QuizKind `json:"kind"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Mistake records a missed exam question together with its correct answer
type Mistake struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ExamResult is an immutable record of a completed exam
type ExamResult struct {
	ID       string    `json:"id"`
	TakenAt  time.Time `json:"takenAt"`
	Score    int       `json:"score"`
	Total    int       `json:"total"`
	Mistakes []Mistake `json:"mistakes,omitempty"`
	Kind     string    `json:"kind"`
}

// Note is a free-form notebook entry
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Settings holds the AI provider configuration that drives every domain
// operation's routing decision.
type Settings struct {
	Provider    string  `json:"provider"`
	BaseURL     string  `json:"baseUrl,omitempty"`
	APIKey      string  `json:"apiKey,omitempty"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	Persona     string  `json:"persona"`
}

// Stats are derived statistics recomputed on every state change
type Stats struct {
	WordCount      int    `json:"wordCount"`
	ArticleCount   int    `json:"articleCount"`
	EstimatedLevel string `json:"estimatedLevel"`
}
