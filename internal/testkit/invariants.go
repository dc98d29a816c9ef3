// Package testkit provides small invariant checkers shared
// across the parser, formatter, and validator test suites.
package testkit

import (
	"fmt"
	"sort"

	"fortio.org/safecast"

	"zplforge/internal/ast"
	"zplforge/internal/source"
)

// CheckSpanInvariants verifies spec.md §3's lossless-parse invariant for a
// parsed document: every node's span lies within the file's bounds, and the
// spans recovered by walking the host plane plus every label's body and
// (non-synthetic) closing command partition the source bytes exactly --
// no gap, no overlap -- so their concatenation reproduces the file
// byte-for-byte.
func CheckSpanInvariants(doc *ast.Document, sf *source.File) error {
	if doc == nil || sf == nil {
		return fmt.Errorf("nil document or file")
	}

	var spans []source.Span
	collect := func(sp source.Span) error {
		if sp.File != sf.ID {
			return fmt.Errorf("span %v belongs to a different file (want %d)", sp, sf.ID)
		}
		lenContent, err := safecast.Conv[uint32](len(sf.Content))
		if err != nil {
			return fmt.Errorf("len content overflow: %w", err)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("span %v is out of file bounds (len=%d)", sp, lenContent)
		}
		spans = append(spans, sp)
		return nil
	}

	var walkNodes func(nodes []ast.Node) error
	walkNodes = func(nodes []ast.Node) error {
		for _, n := range nodes {
			switch n.Kind {
			case ast.NodeCommand:
				c := doc.Command(n.Command)
				if c == nil {
					return fmt.Errorf("nil command for id=%d", n.Command)
				}
				if err := collect(c.Span); err != nil {
					return err
				}
			case ast.NodeTrivia:
				t := doc.TriviaNode(n.Trivia)
				if t == nil {
					return fmt.Errorf("nil trivia for id=%d", n.Trivia)
				}
				if err := collect(t.Span); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walkNodes(doc.Host); err != nil {
		return err
	}
	for _, lbl := range doc.Labels {
		if err := walkNodes(lbl.Body); err != nil {
			return err
		}
		if !lbl.EndSynthetic {
			if end := doc.Command(lbl.End); end != nil {
				if err := collect(end.Span); err != nil {
					return err
				}
			}
		}
	}

	if len(spans) == 0 {
		if len(sf.Content) != 0 {
			return fmt.Errorf("document has no spans but file has %d bytes", len(sf.Content))
		}
		return nil
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	if spans[0].Start != 0 {
		return fmt.Errorf("gap at start of file: first span begins at %d", spans[0].Start)
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].Start != spans[i-1].End {
			return fmt.Errorf("gap or overlap between spans %v and %v", spans[i-1], spans[i])
		}
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if spans[len(spans)-1].End != lenContent {
		return fmt.Errorf("gap at end of file: last span ends at %d, file length %d", spans[len(spans)-1].End, lenContent)
	}
	return nil
}
