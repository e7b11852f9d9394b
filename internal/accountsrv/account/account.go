package account

import (
	"fmt"

	"github.com/nimbusworks/nimbus/internal/accountsrv/quota"
)

// Account field defaults used by the codec when optional document fields are
// absent.
const (
	accountDefaultSnapshotVersion         = 0
	accountDefaultLastModifiedTime        = int64(0)
	accountDefaultACLInheritedByContainer = false
)

// Account is a tenant record owning a set of containers. It is immutable and
// safe to share across goroutines; every mutation goes through an
// AccountBuilder, which validates all invariants and produces a new Account.
//
// Invariants, enforced at build time: the account has an id, a non-empty name
// and a valid status; container ids and names are unique within the account;
// every container's parent account id equals the account id.
type Account struct {
	id                      int16
	name                    string
	status                  AccountStatus
	aclInheritedByContainer bool
	snapshotVersion         int
	lastModifiedTime        int64
	quotaResourceType       quota.ResourceType
	containersByID          map[int16]*Container
	containersByName        map[string]*Container
}

// ID returns the account id, unique across the catalog.
func (a *Account) ID() int16 { return a.id }

// Name returns the account name, unique across the catalog.
func (a *Account) Name() string { return a.name }

// Status returns the account lifecycle status.
func (a *Account) Status() AccountStatus { return a.status }

// IsACLInheritedByContainer reports whether containers inherit the account
// ACL.
func (a *Account) IsACLInheritedByContainer() bool { return a.aclInheritedByContainer }

// SnapshotVersion returns the optimistic-concurrency counter.
func (a *Account) SnapshotVersion() int { return a.snapshotVersion }

// LastModifiedTime returns the epoch millisecond time of the last update.
func (a *Account) LastModifiedTime() int64 { return a.lastModifiedTime }

// QuotaResourceType returns whether quota for this tenant is accounted per
// account or per container.
func (a *Account) QuotaResourceType() quota.ResourceType { return a.quotaResourceType }

// ContainerByID returns the container with the given id, or nil.
func (a *Account) ContainerByID(id int16) *Container {
	return a.containersByID[id]
}

// ContainerByName returns the container with the given name, or nil.
func (a *Account) ContainerByName(name string) *Container {
	return a.containersByName[name]
}

// AllContainers returns the account's containers. Order is unspecified; the
// slice is a copy.
func (a *Account) AllContainers() []*Container {
	out := make([]*Container, 0, len(a.containersByID))
	for _, c := range a.containersByID {
		out = append(out, c)
	}
	return out
}

// QuotaResource returns the quota resource for the account, honoring its
// quota resource type: the account itself for account-level accounting, the
// given container for container-level accounting.
func (a *Account) QuotaResource(containerID int16) quota.Resource {
	if a.quotaResourceType == quota.ResourceTypeAccount {
		return quota.AccountResource(a.id)
	}
	return quota.ContainerResource(a.id, containerID)
}

func (a *Account) String() string {
	return fmt.Sprintf("Account[%d,%d]", a.id, a.snapshotVersion)
}

// Equal reports structural equality: all scalar fields plus the container set
// compared as a set.
func (a *Account) Equal(other *Account) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.id != other.id ||
		a.name != other.name ||
		a.status != other.status ||
		a.aclInheritedByContainer != other.aclInheritedByContainer ||
		a.snapshotVersion != other.snapshotVersion ||
		a.lastModifiedTime != other.lastModifiedTime ||
		a.quotaResourceType != other.quotaResourceType ||
		len(a.containersByID) != len(other.containersByID) {
		return false
	}
	for id, c := range a.containersByID {
		if !c.Equal(other.containersByID[id]) {
			return false
		}
	}
	return true
}
