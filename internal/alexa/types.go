// Package alexa holds the inbound and outbound event envelopes of the
// speech platform. The platform itself (natural-language parsing, slot
// filling) is an external collaborator; this package only models its wire
// shapes.
package alexa

import "encoding/json"

type RequestType string

const (
	RequestTypeLaunch       RequestType = "LaunchRequest"
	RequestTypeIntent       RequestType = "IntentRequest"
	RequestTypeSessionEnded RequestType = "SessionEndedRequest"
)

type RequestEnvelope struct {
	Session  Session  `json:"session"`
	Request  Request  `json:"request"`
	Identity Identity `json:"identity"`
}

type Session struct {
	New bool   `json:"isNew"`
	ID  string `json:"sessionId"`
	// Attributes round-trip the session state between turns; nil on the
	// first turn of a conversation.
	Attributes json.RawMessage `json:"attributes,omitempty"`
}

type Identity struct {
	UserID string `json:"userId"`
}

type Request struct {
	Type   RequestType `json:"type"`
	ID     string      `json:"requestId"`
	Intent *Intent     `json:"intent,omitempty"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots"`
}

type Slot struct {
	Value string `json:"value"`
}

// SlotValue returns the named slot's value, empty when the slot is absent
// or unfilled.
func (r Request) SlotValue(name string) string {
	if r.Intent == nil {
		return ""
	}
	return r.Intent.Slots[name].Value
}

type ResponseEnvelope struct {
	Version           string          `json:"version"`
	SessionAttributes json.RawMessage `json:"sessionAttributes,omitempty"`
	Response          *Response       `json:"response,omitempty"`
}

type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Reprompt struct {
	OutputSpeech *OutputSpeech `json:"outputSpeech,omitempty"`
}
