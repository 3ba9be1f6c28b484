package parser

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

// Definition of token types
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers + literals
	IDENT  TokenType = "IDENT"  // main, foo, _bar
	NUMBER TokenType = "NUMBER" // 12345, 2.5

	// Keywords
	TYPE   TokenType = "TYPE" // int, float
	RETURN TokenType = "RETURN"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
)

var keywords = map[string]TokenType{
	"int":    TYPE,
	"float":  TYPE,
	"return": RETURN,
}

// Token is a scanned token with its 1-based source position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// Lexer scans NUL-terminated source text.
type Lexer struct {
	input     []byte
	pos       int // current reading position in input
	line      int
	lineStart int // offset of the first byte of the current line
}

// NewLexer returns a lexer over input. The input should end with a 0 byte;
// one is appended to a copy if it is missing.
func NewLexer(input []byte) *Lexer {
	if len(input) == 0 || input[len(input)-1] != 0 {
		input = append(input[:len(input):len(input)], 0)
	}
	return &Lexer{input: input, line: 1}
}

// NextToken scans the next token. Once the terminating 0 byte is reached it
// keeps returning EOF. A 0 byte anywhere else is ILLEGAL.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	tok := Token{Line: l.line, Column: l.pos - l.lineStart + 1}
	c := l.input[l.pos]

	if c == 0 && l.pos == len(l.input)-1 {
		tok.Type = EOF
		return tok
	}

	switch c {
	case '=':
		tok.Type = ASSIGN
	case '+':
		tok.Type = PLUS
	case '-':
		tok.Type = MINUS
	case '*':
		tok.Type = ASTERISK
	case '/':
		tok.Type = SLASH
	case ',':
		tok.Type = COMMA
	case ';':
		tok.Type = SEMICOLON
	case '(':
		tok.Type = LPAREN
	case ')':
		tok.Type = RPAREN
	case '{':
		tok.Type = LBRACE
	case '}':
		tok.Type = RBRACE
	default:
		if isLetter(c) {
			tok.Literal = l.readIdentifier()
			if kw, ok := keywords[tok.Literal]; ok {
				tok.Type = kw
			} else {
				tok.Type = IDENT
			}
			return tok
		}
		if isDigit(c) {
			tok.Type = NUMBER
			tok.Literal = l.readNumber()
			return tok
		}
		tok.Type = ILLEGAL
	}

	tok.Literal = string(c)
	l.pos++
	return tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		c := l.input[l.pos]
		switch {
		case c == '\n':
			l.pos++
			l.line++
			l.lineStart = l.pos
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && l.input[l.pos+1] == '/':
			for l.input[l.pos] != '\n' && l.input[l.pos] != 0 {
				l.pos++
			}
		default:
			return
		}
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.input[l.pos]) || isDigit(l.input[l.pos]) {
		l.pos++
	}
	return string(l.input[start:l.pos])
}

// readNumber reads digits with an optional fractional part. A '.' not
// followed by a digit is left for the next token.
func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.input[l.pos] == '.' && isDigit(l.input[l.pos+1]) {
		l.pos++
		for isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	return string(l.input[start:l.pos])
}
