package cluster

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/webarticle"
	"golang.org/x/net/html"
)

// DefaultBlur is the number of trailing path elements dropped when grouping
// text runs into buckets.
const DefaultBlur = 5

// Run is a text run stored in a bucket. Marked runs were found one level
// below the bucket's own depth and are dropped when they sit at the
// bucket's edges.
type Run struct {
	Text   string
	Marked bool
}

// Bucket is the ordered list of runs sharing one blurred path.
type Bucket struct {
	Key  Path
	Runs []Run
}

// Text returns the bucket's runs, trimmed and concatenated.
func (b *Bucket) Text() string {
	var sb strings.Builder
	for _, r := range Trim(b.Runs) {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Stats describes what an Aggregator saw.
type Stats struct {
	Runs           int
	Buckets        int
	IgnoredRegions int
	FooterClasses  int
}

// Aggregator reduces a stream of parse events to position-keyed buckets of
// text. An Aggregator holds the state of one document and is not safe for
// concurrent use.
type Aggregator struct {
	blur     int
	tracker  PathTracker
	buckets  map[string]*Bucket
	ignoring bool
	anchor   Path
	stats    Stats
}

// NewAggregator returns an empty Aggregator. Returns EINVALID for a
// negative blur.
func NewAggregator(blur int) (*Aggregator, error) {
	if blur < 0 {
		return nil, webarticle.Errorf(webarticle.EINVALID, "blur must not be negative, got %d", blur)
	}
	return &Aggregator{
		blur:    blur,
		buckets: make(map[string]*Bucket),
	}, nil
}

// Handle applies a single event.
func (a *Aggregator) Handle(ev Event) {
	switch ev.Kind {
	case EventTagOpen:
		a.OnTagOpen(ev.Tag, ev.Attrs)
	case EventTagClose:
		a.OnTagClose(ev.Tag)
	case EventText:
		a.OnText(ev.Data)
	case EventCharRef:
		a.OnCharRef(ev.Data)
	}
}

// OnTagOpen descends into tag. If the tag starts an ignored region, the
// region is anchored at the element's own path.
func (a *Aggregator) OnTagOpen(tag string, attrs []html.Attribute) {
	rule := Rule(tag, attrs)
	if rule == RuleFooterClass {
		a.stats.FooterClasses++
	}
	path := a.tracker.Enter()
	if rule.Ignore() && !a.ignoring {
		a.startIgnoring(path)
	}
}

// OnTagClose leaves the current element. Closing the element that anchors
// the ignored region ends it. Any element at the same path does, including
// a sibling reached through unbalanced markup.
func (a *Aggregator) OnTagClose(tag string) {
	if a.ignoring && a.tracker.at(a.anchor) {
		a.ignoring = false
		a.anchor = nil
	}
	a.tracker.Exit()
}

// OnText records a text run unless inside an ignored region. Text starting
// with "copyright" opens an ignored region at the current element.
func (a *Aggregator) OnText(data string) {
	if a.ignoring || data == "" {
		return
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(data)), "copyright") {
		a.startIgnoring(a.tracker.Path())
		return
	}

	path := a.tracker.path
	a.add(path.Blur(a.blur), Run{Text: data})

	// One level up, so text inside inline markup also counts toward the
	// enclosing block. Near the root both runs land in the same bucket.
	a.add(path.Blur(a.blur+1), Run{Text: data, Marked: true})
}

// OnCharRef decodes a character reference name ("amp", "65", "#x42") and
// records the result as text.
func (a *Aggregator) OnCharRef(name string) {
	a.OnText(decodeName(name))
}

// Stats returns counters for the events seen so far.
func (a *Aggregator) Stats() Stats {
	s := a.stats
	s.Buckets = len(a.buckets)
	return s
}

// Buckets returns the buckets ordered by key.
func (a *Aggregator) Buckets() []Bucket {
	out := make([]Bucket, 0, len(a.buckets))
	for _, b := range a.buckets {
		out = append(out, Bucket{Key: slices.Clone(b.Key), Runs: slices.Clone(b.Runs)})
	}
	slices.SortFunc(out, func(x, y Bucket) int { return x.Key.Compare(y.Key) })
	return out
}

// Plaintext returns the normalized text of the bucket with the most
// characters. Equal lengths go to the greater key. An Aggregator that
// stored no text returns "".
func (a *Aggregator) Plaintext() string {
	var (
		best    string
		bestLen int
		bestKey Path
		found   bool
	)
	for _, b := range a.buckets {
		text := Normalize(b.Text())
		n := utf8.RuneCountInString(text)
		if !found || n > bestLen || (n == bestLen && b.Key.Compare(bestKey) > 0) {
			best, bestLen, bestKey, found = text, n, b.Key, true
		}
	}
	return best
}

func (a *Aggregator) startIgnoring(anchor Path) {
	a.ignoring = true
	a.anchor = anchor
	a.stats.IgnoredRegions++
}

func (a *Aggregator) add(key Path, r Run) {
	k := key.String()
	b, ok := a.buckets[k]
	if !ok {
		b = &Bucket{Key: key}
		a.buckets[k] = b
	}
	b.Runs = append(b.Runs, r)
	a.stats.Runs++
}

// Trim drops marked runs from both edges of runs. A blank or unmarked run
// ends the trim on its side.
func Trim(runs []Run) []Run {
	kept := trimLeading(runs)
	slices.Reverse(kept)
	kept = trimLeading(kept)
	slices.Reverse(kept)
	return kept
}

// trimLeading returns a new slice without the leading marked runs.
func trimLeading(runs []Run) []Run {
	for i, r := range runs {
		if !r.Marked || strings.TrimSpace(r.Text) == "" {
			return slices.Clone(runs[i:])
		}
	}
	return []Run{}
}
