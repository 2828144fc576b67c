package pipeline

import "fmt"

// ElementNotFoundError reports a required element that the page does not
// have. The message names the selector or class marker that failed so the
// operator knows which structural assumption broke.
type ElementNotFoundError struct {
	Selector string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element not found: %s", e.Selector)
}
