// Package chardet implements webarticle.Decoder on top of
// golang.org/x/net/html/charset and github.com/gogs/chardet.
package chardet

import (
	"strings"

	"github.com/fwojciec/webarticle"
	"github.com/gogs/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// MinConfidence is the lowest statistical detection confidence accepted
// before falling back to windows-1252.
const MinConfidence = 50

// Ensure Decoder implements webarticle.Decoder at compile time.
var _ webarticle.Decoder = (*Decoder)(nil)

// Decoder converts fetched bytes to UTF-8.
//
// Detection order: a forced label, then a byte order mark or the charset
// parameter of the Content-Type, then a <meta> declaration or valid UTF-8,
// then statistical detection.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Decode(body []byte, contentType, label string) (string, string, error) {
	enc, name, err := d.determine(body, contentType, label)
	if err != nil {
		return "", "", err
	}

	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		// Fall back to the raw bytes; invalid sequences are replaced below.
		out = body
		name = "utf-8"
	}
	return strings.ToValidUTF8(string(out), "\uFFFD"), name, nil
}

func (d *Decoder) determine(body []byte, contentType, label string) (encoding.Encoding, string, error) {
	if label != "" {
		enc, name := charset.Lookup(label)
		if enc == nil {
			return nil, "", webarticle.Errorf(webarticle.EINVALID, "unknown encoding %q", label)
		}
		return enc, name, nil
	}

	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if certain || name != "windows-1252" {
		return enc, name, nil
	}

	// windows-1252 is the sniffer's default when nothing was declared and
	// the body is not valid UTF-8.
	result, err := chardet.NewTextDetector().DetectBest(body)
	if err != nil || result.Confidence < MinConfidence {
		return enc, name, nil
	}
	if detected, detectedName := charset.Lookup(result.Charset); detected != nil {
		return detected, detectedName, nil
	}
	return enc, name, nil
}
