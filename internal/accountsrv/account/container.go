package account

import (
	"fmt"
	"slices"

	"github.com/nimbusworks/nimbus/internal/common/apperrors"
	"github.com/nimbusworks/nimbus/pkg/types"
)

// Field defaults shared by the builder and the schema codec. A container
// document that omits an optional field decodes to these values.
const (
	containerDefaultEncrypted           = false
	containerDefaultPreviouslyEncrypted = false
	containerDefaultCacheable           = true
	containerDefaultBackupEnabled       = false
	containerDefaultMediaScanDisabled   = false
	containerDefaultTTLRequired         = false
	containerDefaultSecurePathRequired  = false
	containerDefaultOverrideAccountACL  = false
	containerDefaultNamedBlobMode       = NamedBlobModeDisabled
	containerDefaultDeleteTriggerTime   = int64(0)
	containerDefaultLastModifiedTime    = int64(0)
	containerDefaultSnapshotVersion     = 0
)

// Container is a named resource bucket within exactly one account. It is
// immutable: every field change goes through a ContainerBuilder, which
// produces a new Container. A Container carries no reference to its parent
// beyond the parent account id.
type Container struct {
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
	contentTypeAllowList []string // sorted and deduplicated; nil means no restriction
	deleteTriggerTime    int64
	lastModifiedTime     int64
	snapshotVersion      int
}

// NewContainer constructs a Container from all fields and enforces the
// constructor-level invariants: name and status must be set, the named blob
// mode must be recognized, and a container cannot be encrypted without
// previouslyEncrypted also being set. Callers normally go through
// ContainerBuilder instead.
func NewContainer(id int16, name string, status ContainerStatus, description string,
	encrypted, previouslyEncrypted, cacheable, backupEnabled, mediaScanDisabled bool,
	replicationPolicy types.NullableString, ttlRequired, securePathRequired bool,
	contentTypeAllowList []string, overrideAccountACL bool, namedBlobMode NamedBlobMode,
	parentAccountID int16, deleteTriggerTime, lastModifiedTime int64,
	snapshotVersion int) (*Container, apperrors.Error) {
	if name == "" {
		return nil, ErrInvariantViolation.Msg("container name must not be empty")
	}
	if !status.IsValid() {
		return nil, ErrInvariantViolation.Msg(fmt.Sprintf("invalid container status %q", status))
	}
	if !namedBlobMode.IsValid() {
		return nil, ErrInvalidEnumValue.Msg(fmt.Sprintf("invalid named blob mode %q", namedBlobMode))
	}
	if encrypted && !previouslyEncrypted {
		return nil, ErrInvariantViolation.Msg("container cannot be encrypted with previouslyEncrypted unset")
	}
	return &Container{
		id:                   id,
		name:                 name,
		status:               status,
		description:          description,
		parentAccountID:      parentAccountID,
		encrypted:            encrypted,
		previouslyEncrypted:  previouslyEncrypted,
		cacheable:            cacheable,
		backupEnabled:        backupEnabled,
		mediaScanDisabled:    mediaScanDisabled,
		ttlRequired:          ttlRequired,
		securePathRequired:   securePathRequired,
		overrideAccountACL:   overrideAccountACL,
		replicationPolicy:    replicationPolicy,
		namedBlobMode:        namedBlobMode,
		contentTypeAllowList: normalizeAllowList(contentTypeAllowList),
		deleteTriggerTime:    deleteTriggerTime,
		lastModifiedTime:     lastModifiedTime,
		snapshotVersion:      snapshotVersion,
	}, nil
}

// ID returns the container id, unique within the parent account.
func (c *Container) ID() int16 { return c.id }

// Name returns the container name, unique within the parent account.
func (c *Container) Name() string { return c.name }

// Status returns the container lifecycle status.
func (c *Container) Status() ContainerStatus { return c.status }

// Description returns the free-form description, possibly empty.
func (c *Container) Description() string { return c.description }

// ParentAccountID returns the id of the owning account.
func (c *Container) ParentAccountID() int16 { return c.parentAccountID }

// IsEncrypted reports whether blobs in the container are encrypted.
func (c *Container) IsEncrypted() bool { return c.encrypted }

// WasPreviouslyEncrypted reports whether the container was ever encrypted.
// Once set it stays set regardless of later encryption transitions, so
// readers know the container may still hold encrypted blobs.
func (c *Container) WasPreviouslyEncrypted() bool { return c.previouslyEncrypted }

// IsCacheable reports whether blob content may be served from edge caches.
func (c *Container) IsCacheable() bool { return c.cacheable }

// IsBackupEnabled reports whether the container is backed up.
func (c *Container) IsBackupEnabled() bool { return c.backupEnabled }

// IsMediaScanDisabled reports whether media scanning is turned off.
func (c *Container) IsMediaScanDisabled() bool { return c.mediaScanDisabled }

// IsTTLRequired reports whether uploads must carry a TTL.
func (c *Container) IsTTLRequired() bool { return c.ttlRequired }

// IsSecurePathRequired reports whether download paths must be signed.
func (c *Container) IsSecurePathRequired() bool { return c.securePathRequired }

// IsAccountACLOverridden reports whether the container's own ACL takes
// precedence over the account ACL.
func (c *Container) IsAccountACLOverridden() bool { return c.overrideAccountACL }

// ReplicationPolicy returns the optional replication policy. Absent means the
// cluster default applies.
func (c *Container) ReplicationPolicy() types.NullableString { return c.replicationPolicy }

// NamedBlobMode returns the named blob lookup mode.
func (c *Container) NamedBlobMode() NamedBlobMode { return c.namedBlobMode }

// ContentTypeAllowListForFilenamesOnDownload returns the content types for
// which a filename may be suggested on download. Empty means no restriction.
// The returned slice is sorted and a copy.
func (c *Container) ContentTypeAllowListForFilenamesOnDownload() []string {
	return slices.Clone(c.contentTypeAllowList)
}

// DeleteTriggerTime returns the epoch time at which deletion of the container
// was triggered, or 0 if deletion is not in progress.
func (c *Container) DeleteTriggerTime() int64 { return c.deleteTriggerTime }

// LastModifiedTime returns the epoch millisecond time of the last update.
func (c *Container) LastModifiedTime() int64 { return c.lastModifiedTime }

// SnapshotVersion returns the optimistic-concurrency counter.
func (c *Container) SnapshotVersion() int { return c.snapshotVersion }

func (c *Container) String() string {
	return fmt.Sprintf("Container[%d:%d]", c.parentAccountID, c.id)
}

// Equal reports structural equality over every field.
func (c *Container) Equal(other *Container) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.id == other.id &&
		c.name == other.name &&
		c.status == other.status &&
		c.description == other.description &&
		c.parentAccountID == other.parentAccountID &&
		c.encrypted == other.encrypted &&
		c.previouslyEncrypted == other.previouslyEncrypted &&
		c.cacheable == other.cacheable &&
		c.backupEnabled == other.backupEnabled &&
		c.mediaScanDisabled == other.mediaScanDisabled &&
		c.ttlRequired == other.ttlRequired &&
		c.securePathRequired == other.securePathRequired &&
		c.overrideAccountACL == other.overrideAccountACL &&
		c.replicationPolicy == other.replicationPolicy &&
		c.namedBlobMode == other.namedBlobMode &&
		slices.Equal(c.contentTypeAllowList, other.contentTypeAllowList) &&
		c.deleteTriggerTime == other.deleteTriggerTime &&
		c.lastModifiedTime == other.lastModifiedTime &&
		c.snapshotVersion == other.snapshotVersion
}

// normalizeAllowList sorts and deduplicates the allow list. nil and empty
// both normalize to nil, so "absent" and "empty" compare equal and encode the
// same way.
func normalizeAllowList(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	out := slices.Clone(list)
	slices.Sort(out)
	return slices.Compact(out)
}
