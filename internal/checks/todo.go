package checks

import (
	"github.com/dlclark/regexp2"
	"github.com/spf13/afero"

	"github.com/Iron-Ham/hookkit/internal/pyregex"
)

// TodoHeading introduces the list of badly formatted TODOs.
const TodoHeading = "The following TODOs do not correspond to the JIRA-Ticket TODO format 'TODO(ABC-1234):':"

var (
	// A TODO mention is "todo", "to-do" (any case) or "TO DO" that is not the
	// start of a longer word such as "todos" or "todo-list".
	todoMention = pyregex.MustCompile(`^.*(?=(?i:to-?do)|TO DO)(?!(?i:to-?do)[\w-]+)`, regexp2.None)

	todoTicket = pyregex.MustCompile(`TODO\([A-Z]+-[0-9]+\):`, regexp2.None)
)

// LineHasIncorrectTodo reports whether line mentions a TODO without a ticket
// reference of the form TODO(ABC-1234):.
func LineHasIncorrectTodo(line string) bool {
	mentioned, err := todoMention.MatchString(line)
	if err != nil || !mentioned {
		return false
	}
	referenced, err := todoTicket.MatchString(line)
	return err == nil && !referenced
}

// FindIncorrectTodos returns every line in files that fails
// LineHasIncorrectTodo.
func FindIncorrectTodos(fs afero.Fs, files []string) ([]Finding, error) {
	return scanLines(fs, files, LineHasIncorrectTodo)
}
