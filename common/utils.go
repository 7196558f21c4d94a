package common

import (
	uuid "github.com/nu7hatch/gouuid"
)

// GenUUID returns a random v4 uuid string, used to tag search runs.
func GenUUID() string {
	// uuid.NewV4() reads crypto/rand and only fails if the system entropy
	// source does, retry until it succeeds.
	for {
		if id, err := uuid.NewV4(); err == nil {
			return id.String()
		}
	}
}
