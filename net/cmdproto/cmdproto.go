// Package cmdproto encodes clock commands and their results as UDP
// datagrams.
//
// A request is the command words quoted as for a POSIX shell, e.g.
//
//	format 0 -format '%Y %m' -gmt 1
//
// A response is "ok <result>" or "error <kind> <message>".
package cmdproto

import (
	"bytes"
	"errors"

	"github.com/kballard/go-shellquote"
)

const (
	MaxPacketLen = 2048

	kindEngine = "engine"
)

var (
	prefixOK    = []byte("ok ")
	prefixError = []byte("error ")

	errEmptyRequest      = errors.New("empty request")
	errPacketTooLong     = errors.New("packet exceeds maximum length")
	errMalformedResponse = errors.New("malformed response")
)

type Response struct {
	// Kind is empty for a successful response.
	Kind string
	Text string
}

func (r Response) OK() bool { return r.Kind == "" }

func EncodeRequest(b *[]byte, words []string) error {
	if len(words) == 0 {
		return errEmptyRequest
	}
	s := shellquote.Join(words...)
	if len(s) > MaxPacketLen {
		return errPacketTooLong
	}
	*b = append((*b)[:0], s...)
	return nil
}

func DecodeRequest(b []byte) ([]string, error) {
	if len(b) > MaxPacketLen {
		return nil, errPacketTooLong
	}
	words, err := shellquote.Split(string(b))
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, errEmptyRequest
	}
	return words, nil
}

// ResultTooLongText is the text of the response sent in place of a result
// that does not fit a packet.
const ResultTooLongText = "result exceeds packet size"

// EncodeResponse writes r to b. A response longer than a packet is
// replaced by an engine error response.
func EncodeResponse(b *[]byte, r Response) {
	encodeResponse(b, r)
	if len(*b) > MaxPacketLen {
		encodeResponse(b, Response{Kind: kindEngine, Text: ResultTooLongText})
	}
}

func encodeResponse(b *[]byte, r Response) {
	*b = (*b)[:0]
	if r.OK() {
		*b = append(*b, prefixOK...)
	} else {
		*b = append(*b, prefixError...)
		*b = append(*b, r.Kind...)
		*b = append(*b, ' ')
	}
	*b = append(*b, r.Text...)
}

func DecodeResponse(r *Response, b []byte) error {
	switch {
	case bytes.HasPrefix(b, prefixOK):
		r.Kind = ""
		r.Text = string(b[len(prefixOK):])
	case bytes.HasPrefix(b, prefixError):
		rest := b[len(prefixError):]
		i := bytes.IndexByte(rest, ' ')
		if i <= 0 {
			return errMalformedResponse
		}
		r.Kind = string(rest[:i])
		r.Text = string(rest[i+1:])
	default:
		return errMalformedResponse
	}
	return nil
}
