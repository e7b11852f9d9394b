package account

import (
	"fmt"

	"github.com/nimbusworks/nimbus/internal/accountsrv/quota"
	"github.com/nimbusworks/nimbus/internal/common/apperrors"
)

// AccountBuilder stages field changes for an Account. It is not safe for
// concurrent use. Build validates all invariants atomically and returns a new
// immutable Account; a failed Build leaves the builder unchanged and produces
// nothing.
type AccountBuilder struct {
	id                      int16
	name                    string
	status                  AccountStatus
	aclInheritedByContainer bool
	snapshotVersion         int
	lastModifiedTime        int64
	quotaResourceType       quota.ResourceType
	containers              []*Container // staged set; duplicates surface at Build
}

// NewAccountBuilder seeds a builder from scratch with the required fields.
func NewAccountBuilder(id int16, name string, status AccountStatus, quotaResourceType quota.ResourceType) *AccountBuilder {
	return &AccountBuilder{
		id:                      id,
		name:                    name,
		status:                  status,
		quotaResourceType:       quotaResourceType,
		aclInheritedByContainer: accountDefaultACLInheritedByContainer,
		snapshotVersion:         accountDefaultSnapshotVersion,
		lastModifiedTime:        accountDefaultLastModifiedTime,
	}
}

// NewAccountBuilderFromAccount seeds a builder with every field of an
// existing account, including its containers.
func NewAccountBuilderFromAccount(a *Account) *AccountBuilder {
	containers := make([]*Container, 0, len(a.containersByID))
	for _, c := range a.containersByID {
		containers = append(containers, c)
	}
	return &AccountBuilder{
		id:                      a.id,
		name:                    a.name,
		status:                  a.status,
		aclInheritedByContainer: a.aclInheritedByContainer,
		snapshotVersion:         a.snapshotVersion,
		lastModifiedTime:        a.lastModifiedTime,
		quotaResourceType:       a.quotaResourceType,
		containers:              containers,
	}
}

// SetID stages a new account id. Containers staged with the old id will fail
// the parent-linkage check at Build unless updated or removed.
func (b *AccountBuilder) SetID(id int16) *AccountBuilder {
	b.id = id
	return b
}

// SetName stages a new account name.
func (b *AccountBuilder) SetName(name string) *AccountBuilder {
	b.name = name
	return b
}

// SetStatus stages a new lifecycle status.
func (b *AccountBuilder) SetStatus(status AccountStatus) *AccountBuilder {
	b.status = status
	return b
}

// SetACLInheritedByContainer stages the ACL inheritance flag.
func (b *AccountBuilder) SetACLInheritedByContainer(inherited bool) *AccountBuilder {
	b.aclInheritedByContainer = inherited
	return b
}

// SetSnapshotVersion stages the optimistic-concurrency counter.
func (b *AccountBuilder) SetSnapshotVersion(v int) *AccountBuilder {
	b.snapshotVersion = v
	return b
}

// SetLastModifiedTime stages the last modified time.
func (b *AccountBuilder) SetLastModifiedTime(t int64) *AccountBuilder {
	b.lastModifiedTime = t
	return b
}

// SetQuotaResourceType stages the quota accounting granularity.
func (b *AccountBuilder) SetQuotaResourceType(rt quota.ResourceType) *AccountBuilder {
	b.quotaResourceType = rt
	return b
}

// SetContainers replaces the staged container set. nil or empty clears it.
// Duplicates in the list are kept as staged and rejected at Build.
func (b *AccountBuilder) SetContainers(containers []*Container) *AccountBuilder {
	b.containers = nil
	for _, c := range containers {
		if c != nil {
			b.containers = append(b.containers, c)
		}
	}
	return b
}

// AddOrUpdateContainer stages a container, replacing any staged container
// with the same id.
func (b *AccountBuilder) AddOrUpdateContainer(c *Container) *AccountBuilder {
	if c == nil {
		return b
	}
	for i, staged := range b.containers {
		if staged.id == c.id {
			b.containers[i] = c
			return b
		}
	}
	b.containers = append(b.containers, c)
	return b
}

// RemoveContainer removes the staged container with the same id as c. A nil
// container, or one that is not staged, is a no-op.
func (b *AccountBuilder) RemoveContainer(c *Container) *AccountBuilder {
	if c == nil {
		return b
	}
	for i, staged := range b.containers {
		if staged.id == c.id {
			b.containers = append(b.containers[:i], b.containers[i+1:]...)
			return b
		}
	}
	return b
}

// Build validates the staged state and returns a new immutable Account. All
// invariants are re-checked on every call: required fields, parent linkage of
// every staged container against the currently staged account id, and
// container id and name uniqueness.
func (b *AccountBuilder) Build() (*Account, apperrors.Error) {
	if b.name == "" {
		return nil, ErrInvariantViolation.Msg("account name must not be empty")
	}
	if !b.status.IsValid() {
		return nil, ErrInvariantViolation.Msg(fmt.Sprintf("invalid account status %q", b.status))
	}
	if !b.quotaResourceType.IsValid() {
		return nil, ErrInvalidEnumValue.Msg(fmt.Sprintf("invalid quota resource type %q", b.quotaResourceType))
	}

	byID := make(map[int16]*Container, len(b.containers))
	byName := make(map[string]*Container, len(b.containers))
	for _, c := range b.containers {
		if c.parentAccountID != b.id {
			return nil, ErrInvariantViolation.Msg(fmt.Sprintf(
				"container %q has parent account id %d, want %d", c.name, c.parentAccountID, b.id))
		}
		if _, ok := byID[c.id]; ok {
			return nil, ErrInvariantViolation.Msg(fmt.Sprintf("duplicate container id %d", c.id))
		}
		if _, ok := byName[c.name]; ok {
			return nil, ErrInvariantViolation.Msg(fmt.Sprintf("duplicate container name %q", c.name))
		}
		byID[c.id] = c
		byName[c.name] = c
	}

	return &Account{
		id:                      b.id,
		name:                    b.name,
		status:                  b.status,
		aclInheritedByContainer: b.aclInheritedByContainer,
		snapshotVersion:         b.snapshotVersion,
		lastModifiedTime:        b.lastModifiedTime,
		quotaResourceType:       b.quotaResourceType,
		containersByID:          byID,
		containersByName:        byName,
	}, nil
}

// NewAccount constructs an Account directly from its parts, running the same
// validation as the builder.
func NewAccount(id int16, name string, status AccountStatus, aclInheritedByContainer bool,
	snapshotVersion int, containers []*Container, quotaResourceType quota.ResourceType) (*Account, apperrors.Error) {
	return NewAccountBuilder(id, name, status, quotaResourceType).
		SetACLInheritedByContainer(aclInheritedByContainer).
		SetSnapshotVersion(snapshotVersion).
		SetContainers(containers).
		Build()
}
