package mdtok

import "strings"

// resolveLabelEnd implements a reduced version of the label-end resolver
// (spec.md §4.6): it matches each LabelEnd ("]") against the nearest open,
// unclaimed label start ("["/"![") on a LIFO stack. Spans already resolved
// into an inline Link/Image by tokenizeInline (a Resource immediately
// follows) are left untouched; the rest are looked up as reference-style
// links/images against t.Definitions(), using the explicit "[label]"/"[]"
// tail when present (Event.RefLabel) or else the label's own text
// (shortcut reference). A match wraps the span in Link/Image; a miss
// leaves the brackets as literal marker text.
//
// Full reference-form byte ranges (Reference/ReferenceMarker/
// ReferenceString) are not reconstructed by this reduced pass; only the
// resolved Link/Image wrapping is emitted. See SPEC_FULL.md.
func resolveLabelEnd(t *Tokenizer) {
	events := t.events

	type openLabel struct {
		markerIdx int // index of the open LabelMarker Enter
		labelIdx  int // index of the Enter(Label)
	}
	var stack []openLabel
	wrapOpens := make(map[int][]TokenName)
	wrapCloses := make(map[int][]TokenName)

	for i := 0; i < len(events); i++ {
		e := events[i]
		if e.Kind == Enter && e.Name == LabelMarker && i+2 < len(events) &&
			events[i+2].Kind == Enter && events[i+2].Name == Label {
			stack = append(stack, openLabel{markerIdx: i, labelIdx: i + 2})
			continue
		}
		if e.Kind == Enter && e.Name == LabelEnd {
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if i+2 < len(events) && events[i+2].Name == Resource {
				continue // already resolved inline
			}

			var label string
			if e.RefLabel != nil && *e.RefLabel != "" {
				label = normalizeLabel(*e.RefLabel)
			} else {
				closeLabel := findPrecedingLabelExit(events, i)
				if closeLabel < 0 {
					continue
				}
				label = normalizeLabel(t.textBetween(events[open.labelIdx].Point, events[closeLabel].Point))
			}

			def, ok := t.definitions[label]
			if !ok {
				continue
			}
			_ = def

			isImage := events[open.markerIdx+1].Point.Offset-events[open.markerIdx].Point.Offset == 2
			wrapName := Link
			if isImage {
				wrapName = Image
			}
			wrapOpens[open.markerIdx] = append(wrapOpens[open.markerIdx], wrapName)
			wrapCloses[i+1] = append(wrapCloses[i+1], wrapName)
		}
	}

	if len(wrapOpens) == 0 {
		return
	}

	out := make([]Event, 0, len(events)+len(wrapOpens)*2)
	for idx, e := range events {
		for _, name := range wrapOpens[idx] {
			out = append(out, Event{Kind: Enter, Name: name, Point: e.Point})
		}
		out = append(out, e)
		for _, name := range wrapCloses[idx] {
			out = append(out, Event{Kind: Exit, Name: name, Point: e.Point})
		}
	}
	t.events = out
}

// findPrecedingLabelExit scans backward from a LabelEnd's Enter index for
// the Exit(Label) that closes the same label span.
func findPrecedingLabelExit(events []Event, labelEndIdx int) int {
	for i := labelEndIdx - 1; i >= 0; i-- {
		if events[i].Kind == Exit && events[i].Name == Label {
			return i
		}
	}
	return -1
}

func normalizeLabel(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, " ")
}
