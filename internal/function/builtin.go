// Package function holds the registry of enumeration functions and the
// functions edd ships with. Registration is explicit: Builtins is the table
// the CLI builds its registry from, so adding a function means adding a
// constructor there.
package function

import "edd/internal/domain"

// Builtins returns a constructor for every function compiled into edd, in
// the order they are listed by --listfunctions.
func Builtins() []Constructor {
	ctors := []Constructor{
		func() (domain.Function, error) { return NewDomainControllerFunction(), nil },
		func() (domain.Function, error) { return NewComputerIPFunction(), nil },
		func() (domain.Function, error) { return NewShareFileFunction(), nil },
	}
	for _, entry := range catalog {
		ctors = append(ctors, entry.constructor())
	}
	return ctors
}
