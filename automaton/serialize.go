package automaton

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/demi-w/srsdfa/symset"
)

// jsonDFA mirrors the on-disk JSON shape from spec §6 exactly: keys
// starting_state, state_transitions, accepting_states, symbol_set.
type jsonDFA struct {
	StartingState     int           `json:"starting_state"`
	StateTransitions  [][]int       `json:"state_transitions"`
	AcceptingStates   []bool        `json:"accepting_states"`
	SymbolSet         jsonSymbolSet `json:"symbol_set"`
}

type jsonSymbolSet struct {
	Length          int      `json:"length"`
	Representations []string `json:"representations"`
}

// SaveJSON writes the DFA in the canonical JSON form (§6).
func (d *DFA) SaveJSON(w io.Writer) error {
	doc := jsonDFA{
		StartingState:    d.Start,
		StateTransitions: d.Trans,
		AcceptingStates:  d.Accepting,
		SymbolSet: jsonSymbolSet{
			Length:          d.Alphabet.Len(),
			Representations: d.Alphabet.Names(),
		},
	}
	enc := json.NewEncoder(w)
	return enc.Encode(&doc)
}

// LoadJSON reads a DFA from its canonical JSON form (§6).
func LoadJSON(r io.Reader) (*DFA, error) {
	var doc jsonDFA
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("automaton: decode json: %w", err)
	}
	alphabet, err := symset.NewAlphabet(doc.SymbolSet.Representations)
	if err != nil {
		return nil, err
	}
	d := &DFA{
		Alphabet:  alphabet,
		Start:     doc.StartingState,
		Trans:     doc.StateTransitions,
		Accepting: doc.AcceptingStates,
	}
	return d, nil
}

// JFLAP XML structure, matching the shape spec §6 describes.

type jflapStructure struct {
	XMLName xml.Name   `xml:"structure"`
	Type    string     `xml:"type"`
	Automat jflapAuto  `xml:"automaton"`
}

type jflapAuto struct {
	States      []jflapState      `xml:"state"`
	Transitions []jflapTransition `xml:"transition"`
}

type jflapState struct {
	ID      int          `xml:"id,attr"`
	Name    string       `xml:"name,attr"`
	Initial *struct{}    `xml:"initial"`
	Final   *struct{}    `xml:"final"`
}

type jflapTransition struct {
	From int    `xml:"from"`
	To   int    `xml:"to"`
	Read string `xml:"read"`
}

// SaveJFLAP writes the DFA as a JFLAP automaton XML document (§6).
func (d *DFA) SaveJFLAP(w io.Writer) error {
	doc := jflapStructure{Type: "fa"}
	for s := 0; s < d.NumStates(); s++ {
		st := jflapState{ID: s, Name: fmt.Sprintf("q%d", s)}
		if s == d.Start {
			st.Initial = &struct{}{}
		}
		if d.Accepting[s] {
			st.Final = &struct{}{}
		}
		doc.Automat.States = append(doc.Automat.States, st)
	}
	for s := 0; s < d.NumStates(); s++ {
		for sym := 0; sym < d.Alphabet.Len(); sym++ {
			doc.Automat.Transitions = append(doc.Automat.Transitions, jflapTransition{
				From: s,
				To:   d.Trans[s][sym],
				Read: d.Alphabet.Name(symset.Symbol(sym)),
			})
		}
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(&doc)
}

// LoadJFLAP reads a JFLAP automaton XML document. Because JFLAP files
// encode symbols as the literal strings used by `read`, the alphabet must
// be supplied by the caller (the source format carries no alphabet
// declaration of its own). States absent from the explicit transitions for
// some symbol default to a constructed absorbing error state (§6).
func LoadJFLAP(r io.Reader, alphabet *symset.Alphabet) (*DFA, error) {
	var doc jflapStructure
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("automaton: decode jflap: %w", err)
	}

	idToIdx := make(map[int]int, len(doc.Automat.States))
	start := 0
	d := New(alphabet, 0, 0)
	for _, st := range doc.Automat.States {
		idx := d.AddState()
		idToIdx[st.ID] = idx
		if st.Final != nil {
			d.SetAccepting(idx, true)
		}
		if st.Initial != nil {
			start = idx
		}
	}
	d.Start = start

	defined := make([][]bool, d.NumStates())
	for i := range defined {
		defined[i] = make([]bool, alphabet.Len())
	}
	for _, t := range doc.Automat.Transitions {
		from, ok := idToIdx[t.From]
		if !ok {
			return nil, fmt.Errorf("automaton: jflap transition references unknown state %d", t.From)
		}
		to, ok := idToIdx[t.To]
		if !ok {
			return nil, fmt.Errorf("automaton: jflap transition references unknown state %d", t.To)
		}
		sym, ok := alphabet.Symbol(t.Read)
		if !ok {
			return nil, &symset.UnknownSymbolError{Token: t.Read, Position: from}
		}
		d.SetTransition(from, sym, to)
		defined[from][sym] = true
	}

	// Any (state, symbol) left undefined routes to a constructed absorbing
	// error state, created lazily on first need.
	errState := -1
	for s := 0; s < d.NumStates(); s++ {
		for sym := 0; sym < alphabet.Len(); sym++ {
			if defined[s][sym] {
				continue
			}
			if errState == -1 {
				errState = d.AddState()
				for es := 0; es < alphabet.Len(); es++ {
					d.SetTransition(errState, symset.Symbol(es), errState)
				}
			}
			d.SetTransition(s, symset.Symbol(sym), errState)
		}
	}
	return d, nil
}
