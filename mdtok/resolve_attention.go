package mdtok

// resolveAttention implements a bracket-matching reduction of CommonMark's
// "rule of 3" emphasis resolution (spec.md §4.5): attention sequences are
// matched LIFO by identical marker rune, each match consuming 2 characters
// per side as Strong when both sides have at least 2 left, else 1 as
// Emphasis, with any leftover width on either side re-emitted as a
// shorter, still-literal attention sequence. Left/right-flanking
// classification is not computed; see SPEC_FULL.md for the reduction.
func resolveAttention(t *Tokenizer) {
	events := t.events

	type seq struct {
		enterIdx int
		exitIdx  int
		marker   rune
		length   int
	}
	var seqs []seq
	for i := 0; i < len(events); i++ {
		e := events[i]
		if e.Kind == Enter && e.Name == AttentionSequence && i+1 < len(events) && events[i+1].Kind == Exit {
			seqs = append(seqs, seq{i, i + 1, e.Marker, events[i+1].Point.Offset - e.Point.Offset})
		}
	}
	if len(seqs) == 0 {
		return
	}

	type match struct {
		open, close   seq
		strong        bool
		openLeftover  int
		closeLeftover int
	}
	openMatches := make(map[int]match)
	closeMatches := make(map[int]match)
	skip := make(map[int]bool)

	var stack []seq
	for _, s := range seqs {
		matchedAt := -1
		for k := len(stack) - 1; k >= 0; k-- {
			if stack[k].marker == s.marker {
				matchedAt = k
				break
			}
		}
		if matchedAt < 0 {
			stack = append(stack, s)
			continue
		}
		open := stack[matchedAt]
		stack = stack[:matchedAt]

		n := 1
		strong := open.length >= 2 && s.length >= 2
		if strong {
			n = 2
		}
		m := match{
			open: open, close: s, strong: strong,
			openLeftover:  open.length - n,
			closeLeftover: s.length - n,
		}
		openMatches[open.enterIdx] = m
		closeMatches[s.enterIdx] = m
		skip[open.exitIdx] = true
		skip[s.exitIdx] = true
	}

	if len(openMatches) == 0 {
		return
	}

	var out []Event
	for i := 0; i < len(events); i++ {
		if skip[i] {
			continue
		}
		if m, ok := openMatches[i]; ok {
			n := 1
			name, innerName, textName := Emphasis, EmphasisSequence, EmphasisText
			if m.strong {
				n = 2
				name, innerName, textName = Strong, StrongSequence, StrongText
			}
			openStart := events[i].Point
			if m.openLeftover > 0 {
				out = append(out,
					Event{Kind: Enter, Name: AttentionSequence, Point: openStart, Marker: m.open.marker},
					Event{Kind: Exit, Name: AttentionSequence, Point: pointPlus(openStart, m.openLeftover)},
				)
			}
			markStart := pointPlus(openStart, m.openLeftover)
			markEnd := pointPlus(markStart, n)
			out = append(out,
				Event{Kind: Enter, Name: name, Point: markStart},
				Event{Kind: Enter, Name: innerName, Point: markStart},
				Event{Kind: Exit, Name: innerName, Point: markEnd},
				Event{Kind: Enter, Name: textName, Point: markEnd},
			)
			continue
		}
		if m, ok := closeMatches[i]; ok {
			n := 1
			innerName, textName, name := EmphasisSequence, EmphasisText, Emphasis
			if m.strong {
				n = 2
				innerName, textName, name = StrongSequence, StrongText, Strong
			}
			closeStart := events[i].Point
			closeMarkEnd := pointPlus(closeStart, n)
			closeEnd := events[m.close.exitIdx].Point
			out = append(out,
				Event{Kind: Exit, Name: textName, Point: closeStart},
				Event{Kind: Enter, Name: innerName, Point: closeStart},
				Event{Kind: Exit, Name: innerName, Point: closeMarkEnd},
				Event{Kind: Exit, Name: name, Point: closeMarkEnd},
			)
			if m.closeLeftover > 0 {
				out = append(out,
					Event{Kind: Enter, Name: AttentionSequence, Point: closeMarkEnd, Marker: m.close.marker},
					Event{Kind: Exit, Name: AttentionSequence, Point: closeEnd},
				)
			}
			continue
		}
		out = append(out, events[i])
	}

	t.events = out
}

func pointPlus(p Point, k int) Point {
	return Point{Line: p.Line, Column: p.Column + k, Offset: p.Offset + k}
}
