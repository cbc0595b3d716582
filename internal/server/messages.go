package server

import (
	"github.com/zoodb/zoodb/internal/cart"
	"github.com/zoodb/zoodb/pkg/routematch"
)

// Client to server message types.
const (
	msgNavigate   = "navigate"
	msgPopState   = "popstate"
	msgBack       = "back"
	msgForward    = "forward"
	msgCartGet    = "cart.get"
	msgCartAdd    = "cart.add"
	msgCartRemove = "cart.remove"
	msgCartClear  = "cart.clear"
)

// clientMessage is any message sent by the browser. Fields are used
// according to Type.
type clientMessage struct {
	Type string `json:"type"`

	// navigate, popstate
	Path      string `json:"path,omitempty"`
	Replace   bool   `json:"replace,omitempty"`
	ScrollTop *bool  `json:"scrollTop,omitempty"`
	Length    int    `json:"length,omitempty"`

	// cart.add, cart.remove
	Item cart.Item `json:"item"`
	ID   string    `json:"id,omitempty"`
}

type helloMessage struct {
	Type    string `json:"type"`
	Session string `json:"session"`
	Path    string `json:"path"`
}

type historyMessage struct {
	Type  string `json:"type"`
	Op    string `json:"op"`
	Path  string `json:"path,omitempty"`
	Delta int    `json:"delta,omitempty"`
}

type scrollMessage struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type viewMessage struct {
	Type   string            `json:"type"`
	Path   string            `json:"path"`
	Route  string            `json:"route"`
	Found  bool              `json:"found"`
	Params routematch.Params `json:"params,omitempty"`
}

type cartMessage struct {
	Type  string      `json:"type"`
	Items []cart.Item `json:"items"`
	Count int         `json:"count"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
