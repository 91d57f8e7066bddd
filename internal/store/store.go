package store

import "context"

// Collection keys. These are the stable namespaces of the persisted state;
// any storage engine behind CollectionStore must preserve them.
const (
	KeyUsers            = "users"
	KeyProjects         = "projects"
	KeyProgressUpdates  = "progressUpdates"
	KeyPaymentRequests  = "paymentRequests"
	KeyVehicles         = "vehicles"
	KeyDrivers          = "drivers"
	KeyTenders          = "tenders"
	KeyTenderBills      = "tenderBills"
	KeyFinalSubmissions = "finalSubmissions"
	KeyBackupLinks      = "backup_links"
)

// CollectionStore persists one serialized JSON collection per key. Every Set
// overwrites the whole collection and is visible to subsequent Get calls.
type CollectionStore interface {
	// Get returns the stored payload for key, or nil when nothing has been
	// stored yet. It never fails on malformed content; decoding is the
	// caller's concern.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the payload for key.
	Set(ctx context.Context, key string, data []byte) error
}
