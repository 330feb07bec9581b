// Package frame decides what an inbound websocket frame is: a control
// command, image bytes, or garbage.
package frame

import (
	"encoding/base64"
	"regexp"
	"strings"
)

// Kind is the classification of one inbound frame.
type Kind int

const (
	KindCommand Kind = iota
	KindImage
	KindMalformed
)

// CommandCapture is the reserved control token: the literal text is echoed to
// every sibling connection of the sender's client group.
const CommandCapture = "capture"

// reservedCommands holds every recognized control token, lowercased.
var reservedCommands = map[string]struct{}{
	CommandCapture: {},
}

// Message types as defined by RFC 6455 (matching gorilla/websocket values).
const (
	TextMessage   = 1
	BinaryMessage = 2
)

// dataURIPrefix matches the "data:image/jpeg;base64," style header some
// clients prepend to base64 frames.
var dataURIPrefix = regexp.MustCompile(`^data:[^;,]*;base64,`)

// Classified is the outcome of classifying one frame. Image holds the decoded
// image bytes for KindImage; Command holds the normalized token for
// KindCommand.
type Classified struct {
	Kind    Kind
	Command string
	Image   []byte
}

// Classify inspects a raw frame. Binary frames are taken directly as encoded
// image bytes. Text frames are either a reserved command (case-insensitive)
// or base64 image data, optionally behind a data-URI prefix. Anything else is
// malformed; classification never fails the connection.
func Classify(messageType int, data []byte) Classified {
	if len(data) == 0 {
		return Classified{Kind: KindMalformed}
	}

	if messageType == BinaryMessage {
		return Classified{Kind: KindImage, Image: data}
	}

	if messageType != TextMessage {
		return Classified{Kind: KindMalformed}
	}

	text := strings.TrimSpace(string(data))
	if token := strings.ToLower(text); isReservedCommand(token) {
		return Classified{Kind: KindCommand, Command: token}
	}

	encoded := dataURIPrefix.ReplaceAllString(text, "")
	imageBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(imageBytes) == 0 {
		return Classified{Kind: KindMalformed}
	}
	return Classified{Kind: KindImage, Image: imageBytes}
}

func isReservedCommand(token string) bool {
	_, ok := reservedCommands[token]
	return ok
}
