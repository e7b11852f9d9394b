package account

import (
	"github.com/nimbusworks/nimbus/internal/common/apperrors"
	"github.com/nimbusworks/nimbus/pkg/types"
)

// ContainerBuilder stages field changes for a Container. It is not safe for
// concurrent use; one caller assembles one update and calls Build, which
// validates every invariant atomically and returns a new immutable Container.
type ContainerBuilder struct {
	id                   int16
	name                 string
	status               ContainerStatus
	description          string
	parentAccountID      int16
	encrypted            bool
	previouslyEncrypted  bool
	cacheable            bool
	backupEnabled        bool
	mediaScanDisabled    bool
	ttlRequired          bool
	securePathRequired   bool
	overrideAccountACL   bool
	replicationPolicy    types.NullableString
	namedBlobMode        NamedBlobMode
	contentTypeAllowList []string
	deleteTriggerTime    int64
	lastModifiedTime     int64
	snapshotVersion      int
}

// NewContainerBuilder seeds a builder from scratch. Every optional field
// starts at its documented default.
func NewContainerBuilder(id int16, name string, status ContainerStatus, description string, parentAccountID int16) *ContainerBuilder {
	return &ContainerBuilder{
		id:                  id,
		name:                name,
		status:              status,
		description:         description,
		parentAccountID:     parentAccountID,
		encrypted:           containerDefaultEncrypted,
		previouslyEncrypted: containerDefaultPreviouslyEncrypted,
		cacheable:           containerDefaultCacheable,
		backupEnabled:       containerDefaultBackupEnabled,
		mediaScanDisabled:   containerDefaultMediaScanDisabled,
		ttlRequired:         containerDefaultTTLRequired,
		securePathRequired:  containerDefaultSecurePathRequired,
		overrideAccountACL:  containerDefaultOverrideAccountACL,
		namedBlobMode:       containerDefaultNamedBlobMode,
		deleteTriggerTime:   containerDefaultDeleteTriggerTime,
		lastModifiedTime:    containerDefaultLastModifiedTime,
		snapshotVersion:     containerDefaultSnapshotVersion,
	}
}

// NewContainerBuilderFromContainer seeds a builder with every field of an
// existing container.
func NewContainerBuilderFromContainer(c *Container) *ContainerBuilder {
	return &ContainerBuilder{
		id:                   c.id,
		name:                 c.name,
		status:               c.status,
		description:          c.description,
		parentAccountID:      c.parentAccountID,
		encrypted:            c.encrypted,
		previouslyEncrypted:  c.previouslyEncrypted,
		cacheable:            c.cacheable,
		backupEnabled:        c.backupEnabled,
		mediaScanDisabled:    c.mediaScanDisabled,
		ttlRequired:          c.ttlRequired,
		securePathRequired:   c.securePathRequired,
		overrideAccountACL:   c.overrideAccountACL,
		replicationPolicy:    c.replicationPolicy,
		namedBlobMode:        c.namedBlobMode,
		contentTypeAllowList: normalizeAllowList(c.contentTypeAllowList),
		deleteTriggerTime:    c.deleteTriggerTime,
		lastModifiedTime:     c.lastModifiedTime,
		snapshotVersion:      c.snapshotVersion,
	}
}

// SetID stages a new container id.
func (b *ContainerBuilder) SetID(id int16) *ContainerBuilder {
	b.id = id
	return b
}

// SetName stages a new container name.
func (b *ContainerBuilder) SetName(name string) *ContainerBuilder {
	b.name = name
	return b
}

// SetStatus stages a new lifecycle status.
func (b *ContainerBuilder) SetStatus(status ContainerStatus) *ContainerBuilder {
	b.status = status
	return b
}

// SetDescription stages a new description.
func (b *ContainerBuilder) SetDescription(description string) *ContainerBuilder {
	b.description = description
	return b
}

// SetParentAccountID stages a new parent account id. The id is only a
// back-reference; account-level builds re-validate linkage.
func (b *ContainerBuilder) SetParentAccountID(id int16) *ContainerBuilder {
	b.parentAccountID = id
	return b
}

// SetEncrypted stages the encryption flag. Turning encryption on also marks
// the container as previously encrypted; turning it off leaves
// previouslyEncrypted at its current value, since already-written blobs stay
// encrypted.
func (b *ContainerBuilder) SetEncrypted(encrypted bool) *ContainerBuilder {
	b.encrypted = encrypted
	if encrypted {
		b.previouslyEncrypted = true
	}
	return b
}

// SetPreviouslyEncrypted stages the previously-encrypted flag directly. Used
// by the codec when reconstructing a container from its document; Build still
// rejects the contradictory encrypted-but-not-previously-encrypted state.
func (b *ContainerBuilder) SetPreviouslyEncrypted(previouslyEncrypted bool) *ContainerBuilder {
	b.previouslyEncrypted = previouslyEncrypted
	return b
}

// SetCacheable stages the cacheable flag.
func (b *ContainerBuilder) SetCacheable(cacheable bool) *ContainerBuilder {
	b.cacheable = cacheable
	return b
}

// SetBackupEnabled stages the backup flag.
func (b *ContainerBuilder) SetBackupEnabled(backupEnabled bool) *ContainerBuilder {
	b.backupEnabled = backupEnabled
	return b
}

// SetMediaScanDisabled stages the media scan flag.
func (b *ContainerBuilder) SetMediaScanDisabled(mediaScanDisabled bool) *ContainerBuilder {
	b.mediaScanDisabled = mediaScanDisabled
	return b
}

// SetTTLRequired stages the ttl-required flag.
func (b *ContainerBuilder) SetTTLRequired(ttlRequired bool) *ContainerBuilder {
	b.ttlRequired = ttlRequired
	return b
}

// SetSecurePathRequired stages the secure-path flag.
func (b *ContainerBuilder) SetSecurePathRequired(securePathRequired bool) *ContainerBuilder {
	b.securePathRequired = securePathRequired
	return b
}

// SetOverrideAccountACL stages the ACL override flag.
func (b *ContainerBuilder) SetOverrideAccountACL(overrideAccountACL bool) *ContainerBuilder {
	b.overrideAccountACL = overrideAccountACL
	return b
}

// SetReplicationPolicy stages the optional replication policy.
func (b *ContainerBuilder) SetReplicationPolicy(policy types.NullableString) *ContainerBuilder {
	b.replicationPolicy = policy
	return b
}

// SetNamedBlobMode stages the named blob mode.
func (b *ContainerBuilder) SetNamedBlobMode(mode NamedBlobMode) *ContainerBuilder {
	b.namedBlobMode = mode
	return b
}

// SetContentTypeAllowListForFilenamesOnDownload stages the allow list.
// nil and empty are equivalent and mean no restriction.
func (b *ContainerBuilder) SetContentTypeAllowListForFilenamesOnDownload(list []string) *ContainerBuilder {
	b.contentTypeAllowList = normalizeAllowList(list)
	return b
}

// SetDeleteTriggerTime stages the delete trigger time.
func (b *ContainerBuilder) SetDeleteTriggerTime(t int64) *ContainerBuilder {
	b.deleteTriggerTime = t
	return b
}

// SetLastModifiedTime stages the last modified time.
func (b *ContainerBuilder) SetLastModifiedTime(t int64) *ContainerBuilder {
	b.lastModifiedTime = t
	return b
}

// SetSnapshotVersion stages the optimistic-concurrency counter.
func (b *ContainerBuilder) SetSnapshotVersion(v int) *ContainerBuilder {
	b.snapshotVersion = v
	return b
}

// Build validates the staged state and returns a new immutable Container.
// Validation is atomic: on error no Container is produced and the builder is
// left unchanged for correction.
func (b *ContainerBuilder) Build() (*Container, apperrors.Error) {
	return NewContainer(b.id, b.name, b.status, b.description,
		b.encrypted, b.previouslyEncrypted, b.cacheable, b.backupEnabled, b.mediaScanDisabled,
		b.replicationPolicy, b.ttlRequired, b.securePathRequired,
		b.contentTypeAllowList, b.overrideAccountACL, b.namedBlobMode,
		b.parentAccountID, b.deleteTriggerTime, b.lastModifiedTime, b.snapshotVersion)
}
