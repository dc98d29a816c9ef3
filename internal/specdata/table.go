package specdata

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Table is the immutable, process-wide spec table: opcode → CommandSpec,
// plus a longest-match trie over opcodes (2-3 ASCII characters) for
// constant-ish-time lookup from the lexer. Table is built once and never
// mutated; concurrent reads from multiple goroutines are always safe.
type Table struct {
	Version string
	byOpcode map[string]*CommandSpec
	trie     trieNode
}

type trieNode struct {
	spec     *CommandSpec
	children map[byte]*trieNode
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[byte]*trieNode)}
}

func (n *trieNode) insert(opcode string, spec *CommandSpec) {
	cur := n
	for i := 0; i < len(opcode); i++ {
		b := opcode[i]
		child, ok := cur.children[b]
		if !ok {
			child = newTrieNode()
			cur.children[b] = child
		}
		cur = child
	}
	cur.spec = spec
}

// LookupLongestMatch walks s byte by byte, returning the longest opcode in
// the table that prefixes s, and its length. ok is false if no opcode in the
// table prefixes s at all (an unknown opcode).
func (t *Table) LookupLongestMatch(s string) (spec *CommandSpec, length int, ok bool) {
	cur := &t.trie
	var lastSpec *CommandSpec
	lastLen := 0
	for i := 0; i < len(s); i++ {
		child, exists := cur.children[s[i]]
		if !exists {
			break
		}
		cur = child
		if cur.spec != nil {
			lastSpec = cur.spec
			lastLen = i + 1
		}
	}
	if lastSpec == nil {
		return nil, 0, false
	}
	return lastSpec, lastLen, true
}

// Lookup returns the spec for an exact opcode string, if present.
func (t *Table) Lookup(opcode string) (*CommandSpec, bool) {
	s, ok := t.byOpcode[opcode]
	return s, ok
}

// Len returns the number of opcodes the table carries.
func (t *Table) Len() int { return len(t.byOpcode) }

// tableWire is the on-disk/on-wire msgpack representation of a Table.
type tableWire struct {
	Version  string          `msgpack:"version"`
	Commands []*CommandSpec  `msgpack:"commands"`
}

// Decode builds a Table from a msgpack-encoded compiled spec-table artifact.
// The core performs no schema validation of this artifact at runtime; it is
// trusted, per spec.
func Decode(r io.Reader) (*Table, error) {
	var wire tableWire
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("specdata: decode compiled table: %w", err)
	}
	return build(wire.Version, wire.Commands), nil
}

// Encode serializes a Table back to the msgpack wire format, mainly useful
// for tests and for callers compiling their own spec-table artifacts.
func (t *Table) Encode(w io.Writer) error {
	wire := tableWire{Version: t.Version}
	for _, spec := range t.byOpcode {
		wire.Commands = append(wire.Commands, spec)
	}
	enc := msgpack.NewEncoder(w)
	return enc.Encode(&wire)
}

func build(version string, commands []*CommandSpec) *Table {
	t := &Table{
		Version:  version,
		byOpcode: make(map[string]*CommandSpec, len(commands)),
		trie:     *newTrieNode(),
	}
	for _, c := range commands {
		t.byOpcode[c.Opcode] = c
		t.trie.insert(c.Opcode, c)
	}
	return t
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the process-wide built-in spec table, lazily decoded from
// the compiled-in msgpack artifact exactly once. Every caller shares the
// same immutable *Table by reference.
func Default() *Table {
	defaultOnce.Do(func() {
		table, err := Decode(bytes.NewReader(builtinTableBytes()))
		if err != nil {
			panic(fmt.Errorf("specdata: corrupt built-in table: %w", err))
		}
		defaultTable = table
	})
	return defaultTable
}

// builtinTableBytes msgpack-encodes the hand-authored built-in command set
// on first use. In a full build this would instead be a //go:embed of a file
// produced by the out-of-scope spec compiler; the core treats both the same
// way, as an opaque versioned artifact decoded once.
func builtinTableBytes() []byte {
	var buf bytes.Buffer
	builtin := build("1.1.0", builtinCommands())
	if err := builtin.Encode(&buf); err != nil {
		panic(fmt.Errorf("specdata: encode built-in table: %w", err))
	}
	return buf.Bytes()
}
