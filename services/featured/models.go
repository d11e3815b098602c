package featured

import (
	"time"

	"github.com/AbdulWasayUl/country-explorer/services/country"
)

const (
	serviceName = "featured"
	snapshotID  = "current"
)

// Snapshot is the set of countries shown on the home page until the next
// rotation. Only one is kept.
type Snapshot struct {
	ID        string           `bson:"_id"`
	Codes     []string         `bson:"codes"`
	Countries []country.Record `bson:"countries"`
	RotatedAt time.Time        `bson:"rotated_at"`
}
