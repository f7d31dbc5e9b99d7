package jsonutil

type tokenType uint8

const (
	eofToken tokenType = iota
	nullToken
	trueToken
	falseToken
	intToken
	floatToken
	stringToken
	commaToken
	colonToken
	arrayOToken
	arrayCToken
	objectOToken
	objectCToken
)

// token is one lexical unit. Offset is the byte offset of its first
// character in the input.
type token struct {
	Type   tokenType
	Value  string
	Offset int
}

func newToken(b byte, offset int) token {
	switch b {
	case '{':
		return token{Type: objectOToken, Offset: offset}
	case '}':
		return token{Type: objectCToken, Offset: offset}
	case '[':
		return token{Type: arrayOToken, Offset: offset}
	case ']':
		return token{Type: arrayCToken, Offset: offset}
	case ':':
		return token{Type: colonToken, Offset: offset}
	case ',':
		return token{Type: commaToken, Offset: offset}
	default:
		panic("newToken: not a delimiter: " + string(b))
	}
}

// String generates a readable form of a token for error messages.
func (t token) String() string {
	switch t.Type {
	case eofToken:
		return "end of input"
	case nullToken:
		return "'null'"
	case trueToken:
		return "'true'"
	case falseToken:
		return "'false'"
	case intToken, floatToken:
		return "number " + t.Value
	case stringToken:
		return "string"
	case commaToken:
		return "','"
	case colonToken:
		return "':'"
	case arrayOToken:
		return "'['"
	case arrayCToken:
		return "']'"
	case objectOToken:
		return "'{'"
	case objectCToken:
		return "'}'"
	default:
		return "unknown token"
	}
}
