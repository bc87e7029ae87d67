// Package dict implements the word dictionary: a committed name->word map
// plus a single pending reservation used so a word body can call itself
// before its definition completes, grounded on the teacher's
// lookup/compileHeader linked-list-through-memory scan (here an explicit
// map, since the engine's code buffer no longer doubles as dictionary
// storage).
package dict

import (
	"sort"

	"github.com/jcorbin/exst/internal/addr"
	"github.com/jcorbin/exst/internal/vmerr"
)

// Word is a dictionary entry.
type Word struct {
	CodeEntry addr.Code
	Immediate bool
	Doc       string
}

// Dict holds the committed word map, the pending reservation (if any), and
// an address-ordered index for guess_name.
type Dict struct {
	committed map[string]*Word
	order     []entry // sorted by CodeEntry ascending, built lazily
	last      *Word   // most recently committed word

	reservedName string
	reservedWord *Word
	hasReserved  bool

	dirty bool
}

type entry struct {
	name string
	word *Word
}

// Reserve installs a pending entry visible only to FindWithReservation; any
// previous reservation is overwritten.
func (d *Dict) Reserve(name string, w Word) {
	d.reservedName = name
	wc := w
	d.reservedWord = &wc
	d.hasReserved = true
}

// Complete promotes the pending reservation into the committed map,
// shadowing any prior entry with the same name, and records it in the
// address-ordered index. Fails if nothing is reserved.
func (d *Dict) Complete() error {
	if !d.hasReserved {
		return vmerr.CompleteWordInUnreserved{}
	}
	if d.committed == nil {
		d.committed = make(map[string]*Word)
	}
	d.committed[d.reservedName] = d.reservedWord
	d.order = append(d.order, entry{d.reservedName, d.reservedWord})
	d.last = d.reservedWord
	d.dirty = true
	d.reservedWord = nil
	d.reservedName = ""
	d.hasReserved = false
	return nil
}

// Find looks up name among committed entries only.
func (d *Dict) Find(name string) (Word, error) {
	if w, ok := d.committed[name]; ok {
		return *w, nil
	}
	return Word{}, vmerr.UndefinedWord{Name: name}
}

// FindWithReservation checks the reserved slot first, then falls back to
// committed entries; used to resolve self-reference inside a still
// compiling word.
func (d *Dict) FindWithReservation(name string) (Word, error) {
	if d.hasReserved && d.reservedName == name {
		return *d.reservedWord, nil
	}
	return d.Find(name)
}

// LastWordChangeImmediate mutates the current reservation (or, if nothing
// is reserved, the most recently committed word) to be immediate.
func (d *Dict) LastWordChangeImmediate() {
	if w := d.lastWord(); w != nil {
		w.Immediate = true
	}
}

// LastWordSetDocument mutates the current reservation (or most recently
// committed word) to carry doc as its documentation string.
func (d *Dict) LastWordSetDocument(doc string) {
	if w := d.lastWord(); w != nil {
		w.Doc = doc
	}
}

func (d *Dict) lastWord() *Word {
	if d.hasReserved {
		return d.reservedWord
	}
	return d.last
}

// GuessName returns the name whose committed range contains addr -- the
// name with the greatest CodeEntry <= addr -- for debug tooling.
func (d *Dict) GuessName(a addr.Code) (string, bool) {
	if d.dirty {
		sort.Slice(d.order, func(i, j int) bool { return d.order[i].word.CodeEntry < d.order[j].word.CodeEntry })
		d.dirty = false
	}
	// binary search for the greatest entry with CodeEntry <= a
	i := sort.Search(len(d.order), func(i int) bool { return d.order[i].word.CodeEntry > a })
	if i == 0 {
		return "", false
	}
	return d.order[i-1].name, true
}

// Local is the flat local-variable scope: name -> relative environment
// offset, cleared between word definitions.
type Local struct {
	names map[string]addr.EnvRel
	next  addr.EnvRel
}

// Push appends name at the next relative slot.
func (l *Local) Push(name string) addr.EnvRel {
	if l.names == nil {
		l.names = make(map[string]addr.EnvRel)
	}
	rel := l.next
	l.names[name] = rel
	l.next++
	return rel
}

// Find looks up a local variable's relative offset.
func (l *Local) Find(name string) (addr.EnvRel, bool) {
	rel, ok := l.names[name]
	return rel, ok
}

// Clear empties the local scope, as done after each word completes.
func (l *Local) Clear() {
	l.names = nil
	l.next = 0
}
