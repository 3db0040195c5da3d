package cluster

import (
	"io"
	"iter"
	"regexp"

	"golang.org/x/net/html"
)

// EventKind identifies a parse event.
type EventKind int

const (
	EventTagOpen EventKind = iota + 1
	EventTagClose
	EventText
	EventCharRef
)

// Event is a single parse event. Tag and Attrs are set for tag events;
// Data holds the text for EventText and the reference name (without "&"
// and ";") for EventCharRef.
type Event struct {
	Kind  EventKind
	Tag   string
	Attrs []html.Attribute
	Data  string
}

// voidTags have no content and no end tag, so they never change depth.
var voidTags = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

var charRefRe = regexp.MustCompile(`&#?[0-9A-Za-z]+;`)

// Events tokenizes r and yields parse events in document order. Malformed
// markup is passed through as the tokenizer sees it; the sequence ends at
// EOF or at the first read error. Self-closing and void tags, comments and
// doctypes yield nothing.
func Events(r io.Reader) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		z := html.NewTokenizer(r)
		for {
			switch z.Next() {
			case html.ErrorToken:
				return

			case html.TextToken:
				if !yieldText(string(z.Raw()), yield) {
					return
				}

			case html.StartTagToken:
				name, hasAttr := z.TagName()
				tag := string(name)
				var attrs []html.Attribute
				for hasAttr {
					var key, val []byte
					key, val, hasAttr = z.TagAttr()
					attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
				}
				if voidTags[tag] {
					continue
				}
				if !yield(Event{Kind: EventTagOpen, Tag: tag, Attrs: attrs}) {
					return
				}

			case html.EndTagToken:
				name, _ := z.TagName()
				tag := string(name)
				if voidTags[tag] {
					continue
				}
				if !yield(Event{Kind: EventTagClose, Tag: tag}) {
					return
				}
			}
		}
	}
}

// yieldText splits raw text into text and character reference events.
// Text between references is unescaped for legacy forms without a
// trailing semicolon.
func yieldText(raw string, yield func(Event) bool) bool {
	last := 0
	for _, loc := range charRefRe.FindAllStringIndex(raw, -1) {
		if loc[0] > last {
			if !yield(Event{Kind: EventText, Data: html.UnescapeString(raw[last:loc[0]])}) {
				return false
			}
		}
		if !yield(Event{Kind: EventCharRef, Data: raw[loc[0]+1 : loc[1]-1]}) {
			return false
		}
		last = loc[1]
	}
	if last < len(raw) {
		return yield(Event{Kind: EventText, Data: html.UnescapeString(raw[last:])})
	}
	return true
}
