package domain

import "strings"

// DefaultThreads is the thread count functions see when none (or a
// non-positive one) was given.
const DefaultThreads = 5

// Args carries every parameter a function might need. It is filled once from
// the command line and handed to the dispatcher by value.
type Args struct {
	ComputerName  string
	CanonicalName string
	DomainName    string
	GroupName     string
	ProcessName   string
	UserName      string
	Password      string
	Threads       int
	LDAPQuery     string
	ADRights      []string
	SearchTerms   []string
	SharePath     string
}

// Normalized returns a copy of a with Threads defaulted when it is <= 0.
// The slices are copied so functions cannot alter the caller's bag.
func (a Args) Normalized() Args {
	if a.Threads <= 0 {
		a.Threads = DefaultThreads
	}
	a.ADRights = cloneStrings(a.ADRights)
	a.SearchTerms = cloneStrings(a.SearchTerms)
	return a
}

// SplitList splits a comma-separated flag value. Empty input yields nil,
// input without commas a single element.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
