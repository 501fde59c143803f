package protocol

//input structs coming in from the client.

type Hello struct {
	V     int     `json:"v"`               // version
	Name  string  `json:"name,omitempty"`  // optional name
	ViewW float64 `json:"viewW,omitempty"` // viewport size for the camera
	ViewH float64 `json:"viewH,omitempty"`
}

type Input struct {
	Dx float64 `json:"dx"` // -1..1 movement X
	Dy float64 `json:"dy"` // -1..1 movement Y
}

// Fly and Attack carry no data; the envelope type is the command.
type Fly struct{}

type Attack struct{}
