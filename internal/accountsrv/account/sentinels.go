package account

import (
	"github.com/nimbusworks/nimbus/internal/accountsrv/quota"
)

// Reserved identities. Requests that carry no explicit account or container
// resolve to these fixed values; their ids and names are never assigned to
// real tenants.
const (
	UnknownAccountID   int16 = -1
	UnknownAccountName       = "nimbus-unknown-account"

	UnknownContainerID          int16 = -1
	UnknownContainerName              = "nimbus-unknown-container"
	UnknownContainerDescription       = "Container for blobs stored without a target account and container"

	DefaultPublicContainerID          int16 = 0
	DefaultPublicContainerName              = "default-public-container"
	DefaultPublicContainerDescription       = "Default public container for blobs stored without a target container"

	DefaultPrivateContainerID          int16 = 1
	DefaultPrivateContainerName              = "default-private-container"
	DefaultPrivateContainerDescription       = "Default private container for blobs stored without a target container"
)

// Reserved entities, built once at process start and never mutated. They
// compare equal across calls by structural equality.
var (
	// UnknownContainer is the container for blobs stored without explicit
	// placement. Publicly cacheable, never encrypted.
	UnknownContainer *Container

	// DefaultPublicContainer holds blobs stored without a target container
	// under public (cacheable) access.
	DefaultPublicContainer *Container

	// DefaultPrivateContainer holds blobs stored without a target container
	// under private (non-cacheable) access.
	DefaultPrivateContainer *Container

	// UnknownAccount is the account for blobs stored without a tenant. It
	// holds exactly the three reserved containers.
	UnknownAccount *Account
)

func init() {
	UnknownContainer = mustBuildContainer(
		NewContainerBuilder(UnknownContainerID, UnknownContainerName, ContainerStatusActive,
			UnknownContainerDescription, UnknownAccountID).
			SetCacheable(true))
	DefaultPublicContainer = mustBuildContainer(
		NewContainerBuilder(DefaultPublicContainerID, DefaultPublicContainerName, ContainerStatusActive,
			DefaultPublicContainerDescription, UnknownAccountID).
			SetCacheable(true))
	DefaultPrivateContainer = mustBuildContainer(
		NewContainerBuilder(DefaultPrivateContainerID, DefaultPrivateContainerName, ContainerStatusActive,
			DefaultPrivateContainerDescription, UnknownAccountID).
			SetCacheable(false))

	a, err := NewAccountBuilder(UnknownAccountID, UnknownAccountName, AccountStatusActive, quota.DefaultResourceType).
		SetContainers([]*Container{UnknownContainer, DefaultPublicContainer, DefaultPrivateContainer}).
		Build()
	if err != nil {
		panic(err)
	}
	UnknownAccount = a
}

func mustBuildContainer(b *ContainerBuilder) *Container {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
