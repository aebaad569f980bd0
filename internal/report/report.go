// Package report holds the audit trail a BV calculation writes as it runs.
//
// The engine only appends. A Report can be rendered afterwards as aligned
// text or as TSV; nothing in the calculation reads it back.
package report

// Sink receives the ordered trace of one calculation.
//
// Tentative sections let a caller open a block, fill it, and then decide
// whether to keep it. Tentative sections nest.
type Sink interface {
	Header(title string)
	SubHeader(title string)
	Line(label, formula string, total float64)
	Info(label, text string)
	Blank()
	BeginTentative()
	EndTentative(keep bool)
}

// EntryKind tags each recorded entry.
type EntryKind int

const (
	KindHeader EntryKind = iota
	KindSubHeader
	KindLine
	KindInfo
	KindBlank
)

// Entry is one recorded report row.
type Entry struct {
	Kind    EntryKind
	Label   string
	Formula string
	Total   float64
}

// Report is the in-memory Sink.
type Report struct {
	entries []Entry
	marks   []int
}

// New returns an empty Report.
func New() *Report {
	return &Report{}
}

func (r *Report) Header(title string) {
	r.entries = append(r.entries, Entry{Kind: KindHeader, Label: title})
}

func (r *Report) SubHeader(title string) {
	r.entries = append(r.entries, Entry{Kind: KindSubHeader, Label: title})
}

func (r *Report) Line(label, formula string, total float64) {
	r.entries = append(r.entries, Entry{Kind: KindLine, Label: label, Formula: formula, Total: total})
}

func (r *Report) Info(label, text string) {
	r.entries = append(r.entries, Entry{Kind: KindInfo, Label: label, Formula: text})
}

func (r *Report) Blank() {
	r.entries = append(r.entries, Entry{Kind: KindBlank})
}

// BeginTentative marks the start of a section that may be discarded.
func (r *Report) BeginTentative() {
	r.marks = append(r.marks, len(r.entries))
}

// EndTentative closes the innermost tentative section. When keep is false
// everything appended since the matching BeginTentative is dropped.
// An unmatched call is ignored.
func (r *Report) EndTentative(keep bool) {
	if len(r.marks) == 0 {
		return
	}
	start := r.marks[len(r.marks)-1]
	r.marks = r.marks[:len(r.marks)-1]
	if !keep {
		r.entries = r.entries[:start]
	}
}

// Entries returns a copy of the recorded entries.
func (r *Report) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lines returns only the calculation lines, in order.
func (r *Report) Lines() []Entry {
	var out []Entry
	for _, e := range r.entries {
		if e.Kind == KindLine {
			out = append(out, e)
		}
	}
	return out
}

// Len is the number of recorded entries.
func (r *Report) Len() int { return len(r.entries) }

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Header(string) {}
func (discard) SubHeader(string) {}
func (discard) Line(string, string, float64) {}
func (discard) Info(string, string) {}
func (discard) Blank() {}
func (discard) BeginTentative() {}
func (discard) EndTentative(bool) {}
