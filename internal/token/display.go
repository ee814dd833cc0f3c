package token

// display maps each Type to a human-readable form for diagnostics (a quoted
// symbol or keyword rather than the all-caps constant name). The compiler's
// own error messages are fixed strings and do not go through this table.
var display = map[Type]string{
	LeftParen:  "'('",
	RightParen: "')'",
	LeftBrace:  "'{'",
	RightBrace: "'}'",
	Comma:      "','",
	Dot:        "'.'",
	Minus:      "'-'",
	Plus:       "'+'",
	Semicolon:  "';'",
	Slash:      "'/'",
	Star:       "'*'",

	Bang:         "'!'",
	BangEqual:    "'!='",
	Equal:        "'='",
	EqualEqual:   "'=='",
	Greater:      "'>'",
	GreaterEqual: "'>='",
	Less:         "'<'",
	LessEqual:    "'<='",

	Identifier: "identifier",
	String:     "string",
	Number:     "number",

	And:      "'and'",
	Or:       "'or'",
	If:       "'if'",
	Else:     "'else'",
	For:      "'for'",
	While:    "'while'",
	Var:      "'var'",
	Fun:      "'fun'",
	Class:    "'class'",
	Nil:      "'nil'",
	True:     "'true'",
	False:    "'false'",
	Print:    "'print'",
	Return:   "'return'",
	This:     "'this'",
	Super:    "'super'",
	Break:    "'break'",
	Continue: "'continue'",
	Switch:   "'switch'",
	Case:     "'case'",
	Default:  "'default'",

	EOF: "end of file",
}

// Display returns a human-readable name for t, falling back to the raw Type
// string for anything not in the table (e.g. Error).
func (t Type) Display() string {
	if s, ok := display[t]; ok {
		return s
	}
	return string(t)
}
