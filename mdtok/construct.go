package mdtok

// Result is what a state function returns about the single code it was
// handed: whether the recogniser wants to continue (inspect the next code),
// has accepted its span (Ok), or has rejected it (Nok). Construct interface,
// spec.md §4.1.
type Result int8

// Result values.
const (
	// Continue asks the driver to call the returned StateFn with the next code.
	Continue Result = iota
	// OK means this recogniser has accepted its span.
	OK
	// Nok means this recogniser has rejected; any enclosing attempt rolls
	// back events and position to before the recogniser ran.
	Nok
)

// StateFn is one state of a construct's state machine. It MUST consume
// exactly the codes it inspects via Tokenizer.consume, MUST open and close
// every token it enters, and MUST NOT pop the tokenizer's pre-entry stack.
// Producing the same Ok/Nok outcome for identical input after rollback is
// required (determinism, spec.md §4.1).
type StateFn func(t *Tokenizer, code Code) (Result, StateFn)

// Construct names a state machine entry point for resolver de-duplication
// and debug display.
type Construct struct {
	Name  string
	Start StateFn
}
