package bust

import (
	"fmt"
	"strings"
)

// A NotFoundError is returned when the directory a pass should rewrite
// doesn't exist
type NotFoundError struct {
	Path string // The missing directory, relative to Root
}

func (err NotFoundError) Error() string {
	return fmt.Sprintf("%s/ not found", strings.TrimSuffix(err.Path, "/"))
}
