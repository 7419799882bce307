package services

import (
	pubnub "github.com/pubnub/go"
)

// Publisher abstracts the status broadcast channel so services can be
// tested without a live PubNub connection.
type Publisher interface {
	Publish(channel string, message map[string]any)
}

type pubnubPublisher struct {
	pn *pubnub.PubNub
}

// NewPubNubPublisher wraps a PubNub client as a Publisher.
func NewPubNubPublisher(pn *pubnub.PubNub) Publisher {
	return &pubnubPublisher{pn: pn}
}

func (p *pubnubPublisher) Publish(channel string, message map[string]any) {
	p.pn.Publish().
		Channel(channel).
		Message(message).
		Execute()
}
