package structs

// Worker is a registered remote process that executes tasks.
type Worker struct {
	// ID is a unique identifier for this worker
	ID string `json:"id"`

	// Name is a human chosen, unique name
	Name string `json:"name"`

	// Description is optional free text
	Description string `json:"description"`

	// Token is the worker's long lived opaque secret. Workers authenticate
	// every task-protocol call with it; it is never a human user credential.
	Token string `json:"-"`

	// OriginAddress is the remote address the worker registered from
	OriginAddress string `json:"origin_address"`

	// Version is the worker software version, if reported
	Version string `json:"version"`

	// RegistrationTokenID is the registration token that admitted this worker
	RegistrationTokenID string `json:"registration_token_id"`

	// LastContactAt is the last time this worker called us, unix seconds
	LastContactAt int64 `json:"last_contact_at"`

	// CreatedAt is the time this worker registered, unix seconds
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the time this worker was last updated, unix seconds
	UpdatedAt int64 `json:"updated_at"`
}

// RegistrationToken is a pre-shared secret that admits new workers.
// It may admit any number of workers until it is deleted; deleting it
// does not revoke workers it already admitted.
type RegistrationToken struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	CreatedAt int64  `json:"created_at"`
}
