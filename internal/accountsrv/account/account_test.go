package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbusworks/nimbus/internal/accountsrv/quota"
)

func mustContainer(t *testing.T, id int16, name string, parentAccountID int16) *Container {
	t.Helper()
	c, err := NewContainerBuilder(id, name, ContainerStatusActive, "", parentAccountID).Build()
	require.Nil(t, err)
	return c
}

func TestAccountBuilder(t *testing.T) {
	c1 := mustContainer(t, 1, "one", 101)
	c2 := mustContainer(t, 2, "two", 101)

	a, err := NewAccountBuilder(101, "media", AccountStatusActive, quota.ResourceTypeContainer).
		SetACLInheritedByContainer(true).
		SetSnapshotVersion(3).
		SetLastModifiedTime(1234).
		AddOrUpdateContainer(c1).
		AddOrUpdateContainer(c2).
		Build()
	require.Nil(t, err)

	assert.Equal(t, int16(101), a.ID())
	assert.Equal(t, "media", a.Name())
	assert.Equal(t, AccountStatusActive, a.Status())
	assert.True(t, a.IsACLInheritedByContainer())
	assert.Equal(t, 3, a.SnapshotVersion())
	assert.Equal(t, int64(1234), a.LastModifiedTime())
	assert.Equal(t, quota.ResourceTypeContainer, a.QuotaResourceType())

	assert.True(t, c1.Equal(a.ContainerByID(1)))
	assert.True(t, c2.Equal(a.ContainerByName("two")))
	assert.Nil(t, a.ContainerByID(9))
	assert.Nil(t, a.ContainerByName("nine"))
	assert.Len(t, a.AllContainers(), 2)
}

func TestAccountBuilderValidation(t *testing.T) {
	tests := []struct {
		name    string
		builder *AccountBuilder
		wantErr error
	}{
		{
			name:    "empty name",
			builder: NewAccountBuilder(101, "", AccountStatusActive, quota.ResourceTypeContainer),
			wantErr: ErrInvariantViolation,
		},
		{
			name:    "invalid status",
			builder: NewAccountBuilder(101, "a", AccountStatus("SUSPENDED"), quota.ResourceTypeContainer),
			wantErr: ErrInvariantViolation,
		},
		{
			name:    "invalid quota resource type",
			builder: NewAccountBuilder(101, "a", AccountStatusActive, quota.ResourceType("BLOB")),
			wantErr: ErrInvalidEnumValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.builder.Build()
			assert.Nil(t, a)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAccountBuilderRejectsDuplicateContainerIDs(t *testing.T) {
	dupA := mustContainer(t, 1, "one", 101)
	dupB := mustContainer(t, 1, "other", 101)

	_, err := NewAccountBuilder(101, "media", AccountStatusActive, quota.ResourceTypeContainer).
		SetContainers([]*Container{dupA, dupB}).
		Build()
	assert.ErrorIs(t, err, ErrInvariantViolation)

	_, err = NewAccount(101, "media", AccountStatusActive, false, 0,
		[]*Container{dupA, dupB}, quota.ResourceTypeContainer)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestAccountBuilderRejectsDuplicateContainerNames(t *testing.T) {
	dupA := mustContainer(t, 1, "same", 101)
	dupB := mustContainer(t, 2, "same", 101)

	_, err := NewAccountBuilder(101, "media", AccountStatusActive, quota.ResourceTypeContainer).
		SetContainers([]*Container{dupA, dupB}).
		Build()
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestAccountBuilderRejectsParentMismatch(t *testing.T) {
	stray := mustContainer(t, 1, "stray", 999)

	_, err := NewAccountBuilder(101, "media", AccountStatusActive, quota.ResourceTypeContainer).
		AddOrUpdateContainer(stray).
		Build()
	assert.ErrorIs(t, err, ErrInvariantViolation)

	// changing the account id after staging re-triggers the linkage check
	good := mustContainer(t, 1, "good", 101)
	b := NewAccountBuilder(101, "media", AccountStatusActive, quota.ResourceTypeContainer).
		AddOrUpdateContainer(good)
	_, err = b.Build()
	require.Nil(t, err)
	_, err = b.SetID(102).Build()
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestAddOrUpdateContainerReplacesByID(t *testing.T) {
	orig := mustContainer(t, 1, "one", 101)
	replacement, err := NewContainerBuilderFromContainer(orig).SetName("one-renamed").Build()
	require.Nil(t, err)

	a, aerr := NewAccountBuilder(101, "media", AccountStatusActive, quota.ResourceTypeContainer).
		AddOrUpdateContainer(orig).
		AddOrUpdateContainer(replacement).
		Build()
	require.Nil(t, aerr)
	assert.Len(t, a.AllContainers(), 1)
	assert.Equal(t, "one-renamed", a.ContainerByID(1).Name())
	assert.Nil(t, a.ContainerByName("one"))
}

func TestRemoveContainer(t *testing.T) {
	c1 := mustContainer(t, 1, "one", 101)
	c2 := mustContainer(t, 2, "two", 101)

	b := NewAccountBuilder(101, "media", AccountStatusActive, quota.ResourceTypeContainer).
		AddOrUpdateContainer(c1).
		AddOrUpdateContainer(c2)

	// removing nil or an unstaged container is a no-op
	b.RemoveContainer(nil)
	b.RemoveContainer(mustContainer(t, 9, "nine", 101))

	a, err := b.Build()
	require.Nil(t, err)
	assert.Len(t, a.AllContainers(), 2)

	a, err = b.RemoveContainer(c1).Build()
	require.Nil(t, err)
	assert.Len(t, a.AllContainers(), 1)
	assert.Nil(t, a.ContainerByID(1))
	assert.NotNil(t, a.ContainerByID(2))
}

func TestSetContainersClears(t *testing.T) {
	c1 := mustContainer(t, 1, "one", 101)
	b := NewAccountBuilder(101, "media", AccountStatusActive, quota.ResourceTypeContainer).
		AddOrUpdateContainer(c1)

	a, err := b.SetContainers(nil).Build()
	require.Nil(t, err)
	assert.Len(t, a.AllContainers(), 0)

	a, err = b.SetContainers([]*Container{c1}).SetContainers([]*Container{}).Build()
	require.Nil(t, err)
	assert.Len(t, a.AllContainers(), 0)
}

func TestAccountBuilderFromAccount(t *testing.T) {
	c1 := mustContainer(t, 1, "one", 101)
	orig, err := NewAccount(101, "media", AccountStatusActive, true, 5,
		[]*Container{c1}, quota.ResourceTypeAccount)
	require.Nil(t, err)

	copied, err := NewAccountBuilderFromAccount(orig).Build()
	require.Nil(t, err)
	assert.True(t, orig.Equal(copied))

	changed, err := NewAccountBuilderFromAccount(orig).SetStatus(AccountStatusInactive).Build()
	require.Nil(t, err)
	assert.False(t, orig.Equal(changed))
	assert.Equal(t, AccountStatusActive, orig.Status())
}

func TestAccountEqualComparesContainersAsSet(t *testing.T) {
	c1 := mustContainer(t, 1, "one", 101)
	c2 := mustContainer(t, 2, "two", 101)

	a, err := NewAccount(101, "media", AccountStatusActive, false, 0,
		[]*Container{c1, c2}, quota.ResourceTypeContainer)
	require.Nil(t, err)
	b, err := NewAccount(101, "media", AccountStatusActive, false, 0,
		[]*Container{c2, c1}, quota.ResourceTypeContainer)
	require.Nil(t, err)
	assert.True(t, a.Equal(b))

	smaller, err := NewAccount(101, "media", AccountStatusActive, false, 0,
		[]*Container{c1}, quota.ResourceTypeContainer)
	require.Nil(t, err)
	assert.False(t, a.Equal(smaller))

	var nilAccount *Account
	assert.False(t, a.Equal(nil))
	assert.True(t, nilAccount.Equal(nil))
}

func TestAccountQuotaResource(t *testing.T) {
	c1 := mustContainer(t, 5, "one", 101)

	perContainer, err := NewAccount(101, "media", AccountStatusActive, false, 0,
		[]*Container{c1}, quota.ResourceTypeContainer)
	require.Nil(t, err)
	res := perContainer.QuotaResource(5)
	assert.Equal(t, quota.ContainerResource(101, 5), res)

	perAccount, err := NewAccount(101, "media", AccountStatusActive, false, 0,
		[]*Container{c1}, quota.ResourceTypeAccount)
	require.Nil(t, err)
	res = perAccount.QuotaResource(5)
	assert.Equal(t, quota.AccountResource(101), res)
}

func TestAccountString(t *testing.T) {
	a, err := NewAccount(101, "media", AccountStatusActive, false, 7, nil, quota.ResourceTypeContainer)
	require.Nil(t, err)
	assert.Equal(t, "Account[101,7]", a.String())
}
