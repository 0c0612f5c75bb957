package models

// Lesson difficulty levels.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// Lesson is a pre-authored drawing lesson. The catalog is static content
// compiled into the binary, not a database entity.
type Lesson struct {
	ID          string
	Title       string
	Description string
	Difficulty  string
	Topics      []string
	Content     string
}

// Context returns the natural-language string that biases the inference
// prompts toward this lesson.
func (l Lesson) Context() string {
	return l.Title + ": " + l.Description
}
