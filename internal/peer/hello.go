// Package peer finds other pets nearby. A pet advertises itself with a
// websocket beacon and discovers others by dialing their beacons in
// periodic scan windows.
package peer

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ProtocolVersion is sent in every HELLO.
const ProtocolVersion = "1.0"

// ServiceName is the name every pet advertises unless configured otherwise.
// Scanners only count beacons that advertise the same name.
const ServiceName = "JSgotchi_Service"

//go:embed schema/hello.json
var helloSchemaJSON string

var helloSchema = jsonschema.MustCompileString("hello.json", helloSchemaJSON)

// Hello is the message a beacon sends to every scanner that connects.
type Hello struct {
	Type            string    `json:"type"`
	ProtocolVersion string    `json:"protocol_version"`
	PetID           uuid.UUID `json:"pet_id"`
	Name            string    `json:"name"`
	Level           int       `json:"level"`
	State           string    `json:"state"`
	SentAt          time.Time `json:"sent_at"`
}

// Status is what a beacon reports about its pet.
type Status struct {
	Level int
	State string
}

// NewHello builds a HELLO for the given pet.
func NewHello(id uuid.UUID, name string, st Status, now time.Time) Hello {
	return Hello{
		Type:            "HELLO",
		ProtocolVersion: ProtocolVersion,
		PetID:           id,
		Name:            name,
		Level:           st.Level,
		State:           st.State,
		SentAt:          now.UTC(),
	}
}

// DecodeHello validates raw against the HELLO schema and decodes it.
func DecodeHello(raw []byte) (Hello, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Hello{}, fmt.Errorf("peer: bad hello: %w", err)
	}
	if err := helloSchema.Validate(doc); err != nil {
		return Hello{}, fmt.Errorf("peer: invalid hello: %w", err)
	}

	var h Hello
	if err := json.Unmarshal(raw, &h); err != nil {
		return Hello{}, fmt.Errorf("peer: bad hello: %w", err)
	}
	if major(h.ProtocolVersion) != major(ProtocolVersion) {
		return Hello{}, fmt.Errorf("peer: unsupported protocol %s", h.ProtocolVersion)
	}
	return h, nil
}

func major(v string) string {
	m, _, _ := strings.Cut(v, ".")
	return m
}
