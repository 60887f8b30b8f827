package alexa

import "fmt"

const (
	envelopeVersion = "1.0"
	speechTypePlain = "PlainText"
	cardTypeSimple  = "Simple"
	cardTitlePrefix = "SessionSpeechlet"
)

// NewResponse assembles the speechlet response. A nil reprompt signals
// "do not reprompt, end the turn silently on no answer".
func NewResponse(title, text string, reprompt *string, endSession bool) *Response {
	response := &Response{
		OutputSpeech: &OutputSpeech{Type: speechTypePlain, Text: text},
		Card: &Card{
			Type:    cardTypeSimple,
			Title:   fmt.Sprintf("%s - %s", cardTitlePrefix, title),
			Content: fmt.Sprintf("%s - %s", cardTitlePrefix, text),
		},
		ShouldEndSession: endSession,
	}

	if reprompt != nil {
		response.Reprompt = &Reprompt{
			OutputSpeech: &OutputSpeech{Type: speechTypePlain, Text: *reprompt},
		}
	}

	return response
}

func NewEnvelope(attributes []byte, response *Response) *ResponseEnvelope {
	return &ResponseEnvelope{
		Version:           envelopeVersion,
		SessionAttributes: attributes,
		Response:          response,
	}
}
