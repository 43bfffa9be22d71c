package callbacks

import (
	"net/url"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// PayloadInt parses callback payload as int.
func PayloadInt(c tele.Context) (int, error) {
	p := CallbackPayload(c)
	return strconv.Atoi(p)
}

// EncodeName percent-encodes a free-form name so it survives the '|'
// separated callback data format.
func EncodeName(name string) string {
	return url.QueryEscape(name)
}

// DecodeName reverses EncodeName.
func DecodeName(payload string) (string, error) {
	return url.QueryUnescape(payload)
}

// DecodeNameIndex parses a payload of the form "<escaped-name>|<index>".
func DecodeNameIndex(payload string) (string, int, error) {
	sep := strings.LastIndex(payload, "|")
	if sep < 0 {
		return "", 0, strconv.ErrSyntax
	}
	name, err := DecodeName(payload[:sep])
	if err != nil {
		return "", 0, err
	}
	index, err := strconv.Atoi(payload[sep+1:])
	if err != nil {
		return "", 0, err
	}
	return name, index, nil
}
