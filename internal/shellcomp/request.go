package shellcomp

import (
	"strconv"
	"strings"
)

// Request is a decoded completion query: the words before the cursor
// with the program name stripped, and the partial word under the
// cursor.
type Request struct {
	Shell      Shell
	Args       []string
	Incomplete string
}

// FromEnv decodes a completion request from the environment. ok
// reports whether the marker variable is set at all; a set marker with
// malformed contents yields (nil, true) and the caller answers with
// zero candidates.
func FromEnv(lookup func(string) string) (*Request, bool) {
	marker := lookup(Marker)
	if marker == "" {
		return nil, false
	}

	shell := Shell(strings.TrimSuffix(marker, "_complete"))
	switch shell {
	case Bash, Zsh:
		return indexedRequest(shell, lookup), true
	case Powershell:
		return cursorRequest(lookup), true
	default:
		return nil, true
	}
}

// indexedRequest handles the bash/zsh form: COMP_WORDS holds the
// word-joined command line, COMP_CWORD the index of the word being
// completed.
func indexedRequest(shell Shell, lookup func(string) string) *Request {
	words := splitCommandLine(lookup("COMP_WORDS"))
	cword, err := strconv.Atoi(lookup("COMP_CWORD"))
	if err != nil || cword < 1 || len(words) == 0 {
		return nil
	}

	var incomplete string
	if cword < len(words) {
		incomplete = words[cword]
	}

	end := min(cword, len(words))
	args := words[1:end]
	// "git twig ..." leaves the subcommand alias as the first argument.
	if words[0] == "git" && len(args) > 0 && args[0] == "twig" {
		args = args[1:]
	}

	return &Request{Shell: shell, Args: args, Incomplete: incomplete}
}

// cursorRequest handles the powershell form: COMP_WORDS holds the raw
// command line and COMP_CPOS the cursor position. The last word counts
// as incomplete unless the cursor sits past the end of the line.
func cursorRequest(lookup func(string) string) *Request {
	line := lookup("COMP_WORDS")
	pos, err := strconv.Atoi(lookup("COMP_CPOS"))
	if err != nil || pos < 0 {
		return nil
	}

	words := splitCommandLine(line)
	switch {
	case len(words) > 1 && words[0] == "git" && words[1] == "twig":
		words = words[2:]
	case len(words) > 0 && (words[0] == "twig" || words[0] == "git-twig"):
		words = words[1:]
	default:
		return nil
	}

	var incomplete string
	if len(line) >= pos && len(words) > 0 {
		incomplete = words[len(words)-1]
		words = words[:len(words)-1]
	}

	return &Request{Shell: Powershell, Args: words, Incomplete: incomplete}
}

// splitCommandLine splits a command line the way the hooks encode it:
// whitespace separated, honoring single quotes, double quotes and
// backslash escapes. An unterminated quote yields the partial word,
// which is exactly what a user mid-typing produces.
func splitCommandLine(line string) []string {
	var (
		words   []string
		current strings.Builder
		quote   byte
		escaped bool
		started bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case escaped:
			current.WriteByte(c)
			escaped = false
		case quote == '\'':
			if c == '\'' {
				quote = 0
			} else {
				current.WriteByte(c)
			}
		case quote == '"':
			switch {
			case c == '"':
				quote = 0
			case c == '\\' && i+1 < len(line) && strings.IndexByte(`"\$`+"`", line[i+1]) >= 0:
				escaped = true
			default:
				current.WriteByte(c)
			}
		case c == '\\':
			escaped = true
			started = true
		case c == '\'' || c == '"':
			quote = c
			started = true
		case c == ' ' || c == '\t' || c == '\n':
			if started {
				words = append(words, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteByte(c)
			started = true
		}
	}

	if started {
		words = append(words, current.String())
	}

	return words
}
