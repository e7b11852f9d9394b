package account

// AccountStatus is the lifecycle state of an account. An inactive account is
// kept in the catalog but rejects new writes.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

// IsValid reports whether s is a recognized account status.
func (s AccountStatus) IsValid() bool {
	return s == AccountStatusActive || s == AccountStatusInactive
}

// ContainerStatus is the lifecycle state of a container within its account.
type ContainerStatus string

const (
	ContainerStatusActive   ContainerStatus = "ACTIVE"
	ContainerStatusInactive ContainerStatus = "INACTIVE"
)

// IsValid reports whether s is a recognized container status.
func (s ContainerStatus) IsValid() bool {
	return s == ContainerStatusActive || s == ContainerStatusInactive
}

// NamedBlobMode controls whether name-addressed blob lookup is permitted in a
// container, alongside or instead of id-addressed lookup.
type NamedBlobMode string

const (
	// NamedBlobModeDisabled rejects named blob operations.
	NamedBlobModeDisabled NamedBlobMode = "DISABLED"
	// NamedBlobModeOptional allows both named and id-addressed operations.
	NamedBlobModeOptional NamedBlobMode = "OPTIONAL"
	// NamedBlobModeNoUpdate allows named blob operations but rejects updates
	// to an existing name.
	NamedBlobModeNoUpdate NamedBlobMode = "NO_UPDATE"
)

// IsValid reports whether m is a recognized named blob mode.
func (m NamedBlobMode) IsValid() bool {
	switch m {
	case NamedBlobModeDisabled, NamedBlobModeOptional, NamedBlobModeNoUpdate:
		return true
	}
	return false
}
