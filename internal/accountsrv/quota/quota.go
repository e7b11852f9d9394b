// Package quota defines the admission-control seam of the catalog. The
// account model declares which resource quota accounting keys on; the actual
// charge and throttle decisions live outside this repository and consume only
// the identities defined here.
package quota

import (
	"context"
	"strconv"

	"github.com/nimbusworks/nimbus/internal/common/apperrors"
)

// ResourceType selects whether quota for a tenant is tracked per account or
// per container.
type ResourceType string

const (
	ResourceTypeAccount   ResourceType = "ACCOUNT"
	ResourceTypeContainer ResourceType = "CONTAINER"
)

// DefaultResourceType is assumed when an account document predates the
// quotaResourceType field.
const DefaultResourceType = ResourceTypeContainer

// IsValid reports whether rt is a recognized resource type.
func (rt ResourceType) IsValid() bool {
	return rt == ResourceTypeAccount || rt == ResourceTypeContainer
}

// Method classifies a request for quota purposes.
type Method string

const (
	MethodRead  Method = "READ"
	MethodWrite Method = "WRITE"
)

var ErrQuota apperrors.Error = apperrors.New("quota processing failed")

// Resource identifies the unit quota usage is accumulated against: the
// account for account-level quota, a single container for container-level
// quota.
type Resource struct {
	ID   string
	Type ResourceType
}

// AccountResource returns the quota resource for account-level accounting.
func AccountResource(accountID int16) Resource {
	return Resource{
		ID:   strconv.Itoa(int(accountID)),
		Type: ResourceTypeAccount,
	}
}

// ContainerResource returns the quota resource for container-level
// accounting. The id embeds the parent account id since container ids are
// only unique within an account.
func ContainerResource(accountID, containerID int16) Resource {
	return Resource{
		ID:   strconv.Itoa(int(accountID)) + "_" + strconv.Itoa(int(containerID)),
		Type: ResourceTypeContainer,
	}
}

// ChargeCallback is implemented by the quota enforcement component. The
// catalog never calls it; it is the contract consumers program against.
type ChargeCallback interface {
	// Charge records usage of size bytes against the resource and returns an
	// error when the request should be throttled.
	Charge(ctx context.Context, size int64) apperrors.Error

	// Check reports whether usage already exceeds the limit.
	Check(ctx context.Context) bool

	// QuotaExceedAllowed reports whether usage may exceed the limit without
	// throttling.
	QuotaExceedAllowed() bool

	// Resource returns the resource being charged.
	Resource() (Resource, apperrors.Error)

	// Method returns the request classification.
	Method() Method
}

// NoopChargeCallback accepts every charge. Used where enforcement is
// disabled.
type NoopChargeCallback struct {
	Res Resource
}

func (n NoopChargeCallback) Charge(context.Context, int64) apperrors.Error { return nil }
func (n NoopChargeCallback) Check(context.Context) bool                    { return false }
func (n NoopChargeCallback) QuotaExceedAllowed() bool                      { return true }
func (n NoopChargeCallback) Resource() (Resource, apperrors.Error)         { return n.Res, nil }
func (n NoopChargeCallback) Method() Method                                { return MethodWrite }

var _ ChargeCallback = NoopChargeCallback{}
