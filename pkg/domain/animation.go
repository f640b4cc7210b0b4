package domain

import "encoding/json"

// Animation is a decorative Lottie document fetched at startup.
type Animation struct {
	URL       string
	Data      json.RawMessage
	Version   string
	FrameRate float64
	Width     int
	Height    int
}
