// Package env provides information about the host running desklift.
package env

import (
	"github.com/denisbrodbeck/machineid"
)

const appID = "desklift"

// NodeID returns the ID identifying this desklift node. It is derived
// from the machine ID, so it is safe to log or display. It is empty when
// the machine ID is unavailable.
func NodeID() string {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		return ""
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}
