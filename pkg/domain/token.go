package domain

// CategoryNoMatch is the category reported when no pattern accepts any
// prefix of the remaining input. Emitting it is caller policy; the lexer
// surfaces it as ErrNoMatch.
const CategoryNoMatch = "NO_MATCH"

// Token is a lexeme recognized by the longest-match lexer.
type Token struct {
	// Category is the name of the winning pattern.
	Category string `json:"category"`

	// Lexeme is the accepted input prefix.
	Lexeme string `json:"lexeme"`

	// Offset is the rune index of the lexeme's first character in the
	// original input.
	Offset int `json:"offset"`
}
