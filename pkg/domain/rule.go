package domain

// Rule defines a single transition of an automaton: reading Symbol while
// in state From moves the machine to state To.
type Rule struct {
	From StateID `json:"from" yaml:"from"`

	// Symbol is the input character this rule consumes. Automata are
	// defined over Unicode scalar values, not bytes.
	Symbol rune `json:"symbol" yaml:"symbol"`

	To StateID `json:"to" yaml:"to"`
}

// Pattern is a named automaton definition. It is pure data: the runtime
// behavior lives in pkg/automaton.
type Pattern struct {
	// Name is the lexical category this pattern recognizes (e.g. "ID").
	Name string `json:"name" yaml:"name"`

	// Rules is the flat transition list. Duplicate (from, symbol) keys are
	// a caller error; they are not rejected here (see automaton.Machine).
	Rules []Rule `json:"rules" yaml:"rules"`

	// Accept lists the accepting state identifiers. Duplicates collapse.
	Accept []StateID `json:"accept" yaml:"accept"`
}
