// Package grammar carries the language's EBNF grammar as a checked-in
// reference document: grammar_test.go verifies it is well-formed and
// free of undefined or unreachable productions, the same sanity check a
// hand-written parser has no way to enforce on itself.
package grammar

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

func TestEBNF(t *testing.T) {
	f, err := os.Open("rox.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("rox.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Program"); err != nil {
		t.Fatal(err)
	}
}
