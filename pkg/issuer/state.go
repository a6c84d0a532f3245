package issuer

// State is a stage of the issuance pipeline. A run moves forward through the states in order
// and ends in StateDone or StateFailed.
type State string

const (
	StateStart               State = "START"
	StateCredentialsResolved State = "CREDENTIALS_RESOLVED"
	StateAuthenticated       State = "AUTHENTICATED"
	StateKeyPairGenerated    State = "KEYPAIR_GENERATED"
	StateCSRBuilt            State = "CSR_BUILT"
	StateSigned              State = "SIGNED"
	StateImported            State = "IMPORTED"
	StatePersisted           State = "PERSISTED"
	StateDone                State = "DONE"
	StateFailed              State = "FAILED"
)

func (s State) String() string {
	return string(s)
}
