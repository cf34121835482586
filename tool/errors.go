package tool

import "fmt"

// ErrToolNotFound is returned when a tool call names an unregistered tool.
type ErrToolNotFound struct {
	Name string
}

func (e *ErrToolNotFound) Error() string {
	return fmt.Sprintf("tool not found: %s", e.Name)
}

// ErrToolAlreadyRegistered is returned when registering a duplicate tool name.
type ErrToolAlreadyRegistered struct {
	Name string
}

func (e *ErrToolAlreadyRegistered) Error() string {
	return fmt.Sprintf("tool already registered: %s", e.Name)
}
