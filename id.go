package history

import "fmt"

type ID interface {
	fmt.Stringer
}

type IDService interface {
	NewID() ID
}
