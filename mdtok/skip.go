package mdtok

// opt scans forward from index over a run of Enter/Exit events whose Name
// is one of names, returning the index just past the run. It is used by
// resolvers to step over optional whitespace/markers between the spans
// they actually care about, without caring how many events that took.
func opt(events []Event, index int, names ...TokenName) int {
	for index < len(events) && nameIn(names, events[index].Name) {
		index++
	}
	return index
}

// optBack is opt run backwards: it scans from index down to (but not
// including) the event before the run, returning the index of the first
// event in the run. Used when a resolver walks events right-to-left.
func optBack(events []Event, index int, names ...TokenName) int {
	for index >= 0 && nameIn(names, events[index].Name) {
		index--
	}
	return index
}

func nameIn(names []TokenName, name TokenName) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// findEnter scans forward from index for the next Enter event named name,
// returning its index or -1 if none remains.
func findEnter(events []Event, index int, name TokenName) int {
	for ; index < len(events); index++ {
		if events[index].Kind == Enter && events[index].Name == name {
			return index
		}
	}
	return -1
}

// MatchingExit exposes matchingExit for collaborator packages (the html
// compiler) that need to find a span's extent to recurse over its children.
func MatchingExit(events []Event, enterIndex int) int { return matchingExit(events, enterIndex) }

// matchingExit returns the index of the Exit event that closes the Enter
// event at enterIndex, by tracking nesting depth of the same Name.
func matchingExit(events []Event, enterIndex int) int {
	name := events[enterIndex].Name
	depth := 0
	for i := enterIndex; i < len(events); i++ {
		e := events[i]
		if e.Name != name {
			continue
		}
		if e.Kind == Enter {
			depth++
		} else {
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
