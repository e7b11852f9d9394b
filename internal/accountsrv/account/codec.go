package account

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/nimbusworks/nimbus/internal/accountsrv/quota"
	"github.com/nimbusworks/nimbus/internal/common/apperrors"
	"github.com/nimbusworks/nimbus/pkg/types"
	"github.com/tidwall/gjson"
)

// Document schema versions. Accounts have a single version; containers have
// two, and each container document carries its own version tag, dispatched on
// independently of the enclosing account document.
const (
	AccountJSONVersion1 = 1

	ContainerJSONVersion1 = 1
	ContainerJSONVersion2 = 2

	CurrentAccountJSONVersion  = AccountJSONVersion1
	LatestContainerJSONVersion = ContainerJSONVersion2
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var docValidator = newDocValidator()

// newDocValidator builds the validator used for decoded wire documents, with
// JSON tag names reported in validation errors.
func newDocValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Codec translates between entities and their wire documents. The container
// schema version to write is fixed at construction; it is configuration, not
// process-wide state, so independent codecs can target different versions.
// Decoding always dispatches on the version tag embedded in the document.
//
// The zero Codec is not valid; use NewCodec or DefaultCodec.
type Codec struct {
	containerVersion int
}

// NewCodec returns a codec that encodes containers at the given schema
// version.
func NewCodec(containerVersion int) (Codec, apperrors.Error) {
	if containerVersion != ContainerJSONVersion1 && containerVersion != ContainerJSONVersion2 {
		return Codec{}, ErrUnsupportedSchemaVersion.Msg(
			fmt.Sprintf("unsupported container schema version %d", containerVersion))
	}
	return Codec{containerVersion: containerVersion}, nil
}

// DefaultCodec returns a codec that writes the latest container schema
// version.
func DefaultCodec() Codec {
	return Codec{containerVersion: LatestContainerJSONVersion}
}

// ContainerVersion returns the container schema version this codec writes.
func (c Codec) ContainerVersion() int {
	return c.containerVersion
}

// accountDocIn is the decoded form of an account document. Pointer fields
// distinguish absent from zero; absent optional fields take the documented
// defaults. Presence of required keys is checked against the raw document
// before unmarshaling, since zero values like account id 0 are legal.
type accountDocIn struct {
	ID                      *int16                `json:"accountId"`
	Name                    *string               `json:"accountName"`
	Status                  *string               `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	SnapshotVersion         *int                  `json:"snapshotVersion"`
	LastModifiedTime        *int64                `json:"lastModifiedTime"`
	ACLInheritedByContainer *bool                 `json:"aclInheritedByContainer"`
	QuotaResourceType       *string               `json:"quotaResourceType" validate:"omitempty,oneof=CONTAINER ACCOUNT"`
	Containers              []jsoniter.RawMessage `json:"containers"`
}

// accountDocOut is the encoded form. Every key is written; the containers key
// is present even when empty.
type accountDocOut struct {
	Version                 int                   `json:"version"`
	ID                      int16                 `json:"accountId"`
	Name                    string                `json:"accountName"`
	Status                  string                `json:"status"`
	SnapshotVersion         int                   `json:"snapshotVersion"`
	LastModifiedTime        int64                 `json:"lastModifiedTime"`
	ACLInheritedByContainer bool                  `json:"aclInheritedByContainer"`
	QuotaResourceType       string                `json:"quotaResourceType"`
	Containers              []jsoniter.RawMessage `json:"containers"`
}

type containerDocV1In struct {
	ID               *int16  `json:"containerId"`
	Name             *string `json:"containerName"`
	Status           *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	Description      string  `json:"description"`
	IsPrivate        *bool   `json:"isPrivate"`
	LastModifiedTime *int64  `json:"lastModifiedTime"`
	SnapshotVersion  *int    `json:"snapshotVersion"`
}

type containerDocV1Out struct {
	Version          int    `json:"version"`
	ID               int16  `json:"containerId"`
	Name             string `json:"containerName"`
	Status           string `json:"status"`
	Description      string `json:"description"`
	IsPrivate        bool   `json:"isPrivate"`
	ParentAccountID  int16  `json:"parentAccountId"`
	LastModifiedTime int64  `json:"lastModifiedTime"`
	SnapshotVersion  int    `json:"snapshotVersion"`
}

type containerDocV2In struct {
	ID                   *int16   `json:"containerId"`
	Name                 *string  `json:"containerName"`
	Status               *string  `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	DeleteTriggerTime    *int64   `json:"deleteTriggerTime"`
	Description          string   `json:"description"`
	Encrypted            *bool    `json:"encrypted"`
	PreviouslyEncrypted  *bool    `json:"previouslyEncrypted"`
	Cacheable            *bool    `json:"cacheable"`
	BackupEnabled        *bool    `json:"backupEnabled"`
	MediaScanDisabled    *bool    `json:"mediaScanDisabled"`
	ReplicationPolicy    *string  `json:"replicationPolicy"`
	TTLRequired          *bool    `json:"ttlRequired"`
	SecurePathRequired   *bool    `json:"securePathRequired"`
	OverrideAccountACL   *bool    `json:"overrideAccountAcl"`
	NamedBlobMode        *string  `json:"namedBlobMode" validate:"omitempty,oneof=DISABLED OPTIONAL NO_UPDATE"`
	ContentTypeAllowList []string `json:"contentTypeAllowListForFilenamesOnDownload"`
	LastModifiedTime     *int64   `json:"lastModifiedTime"`
	SnapshotVersion      *int     `json:"snapshotVersion"`
}

type containerDocV2Out struct {
	Version              int      `json:"version"`
	ID                   int16    `json:"containerId"`
	Name                 string   `json:"containerName"`
	Status               string   `json:"status"`
	DeleteTriggerTime    int64    `json:"deleteTriggerTime"`
	Description          string   `json:"description"`
	Encrypted            bool     `json:"encrypted"`
	PreviouslyEncrypted  bool     `json:"previouslyEncrypted"`
	Cacheable            bool     `json:"cacheable"`
	BackupEnabled        bool     `json:"backupEnabled"`
	MediaScanDisabled    bool     `json:"mediaScanDisabled"`
	ReplicationPolicy    *string  `json:"replicationPolicy,omitempty"`
	TTLRequired          bool     `json:"ttlRequired"`
	SecurePathRequired   bool     `json:"securePathRequired"`
	OverrideAccountACL   bool     `json:"overrideAccountAcl"`
	NamedBlobMode        string   `json:"namedBlobMode"`
	ParentAccountID      int16    `json:"parentAccountId"`
	LastModifiedTime     int64    `json:"lastModifiedTime"`
	SnapshotVersion      int      `json:"snapshotVersion"`
	ContentTypeAllowList []string `json:"contentTypeAllowListForFilenamesOnDownload,omitempty"`
}

// DecodeAccount parses an account document, decoding each nested container
// document with the version tag that container itself carries. A container
// that fails to decode fails the whole account.
func (c Codec) DecodeAccount(data []byte) (*Account, apperrors.Error) {
	if len(data) == 0 {
		return nil, ErrInvalidArgument.Msg("account document must not be empty")
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedDocument.Msg("account document is not valid JSON")
	}
	version := gjson.GetBytes(data, "version")
	if !version.Exists() {
		return nil, ErrMalformedDocument.Msg("account document has no version field")
	}
	if version.Int() != AccountJSONVersion1 {
		return nil, ErrUnsupportedSchemaVersion.Msg(
			fmt.Sprintf("unsupported account schema version %s", version.Raw))
	}
	if err := requireKeys(data, "accountId", "accountName", "status"); err != nil {
		return nil, err
	}

	var doc accountDocIn
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrMalformedDocument.Err(err)
	}
	if err := docValidator.Struct(&doc); err != nil {
		return nil, mapDocValidationError(err)
	}

	builder := NewAccountBuilder(*doc.ID, *doc.Name, AccountStatus(*doc.Status), quota.DefaultResourceType)
	if doc.QuotaResourceType != nil {
		builder.SetQuotaResourceType(quota.ResourceType(*doc.QuotaResourceType))
	}
	if doc.SnapshotVersion != nil {
		builder.SetSnapshotVersion(*doc.SnapshotVersion)
	}
	if doc.LastModifiedTime != nil {
		builder.SetLastModifiedTime(*doc.LastModifiedTime)
	}
	if doc.ACLInheritedByContainer != nil {
		builder.SetACLInheritedByContainer(*doc.ACLInheritedByContainer)
	}
	for _, raw := range doc.Containers {
		container, err := c.DecodeContainer(raw, *doc.ID)
		if err != nil {
			return nil, err
		}
		builder.AddOrUpdateContainer(container)
	}
	return builder.Build()
}

// DecodeContainer parses a container document. The parent account id comes
// from the caller, not the document: the embedded parentAccountId key is a
// back-reference only and is ignored on read.
func (c Codec) DecodeContainer(data []byte, parentAccountID int16) (*Container, apperrors.Error) {
	if len(data) == 0 {
		return nil, ErrInvalidArgument.Msg("container document must not be empty")
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedDocument.Msg("container document is not valid JSON")
	}
	version := gjson.GetBytes(data, "version")
	if !version.Exists() {
		return nil, ErrMalformedDocument.Msg("container document has no version field")
	}
	switch version.Int() {
	case ContainerJSONVersion1:
		return decodeContainerV1(data, parentAccountID)
	case ContainerJSONVersion2:
		return decodeContainerV2(data, parentAccountID)
	default:
		return nil, ErrUnsupportedSchemaVersion.Msg(
			fmt.Sprintf("unsupported container schema version %s", version.Raw))
	}
}

// decodeContainerV1 reads a legacy document. Cacheable derives from the
// inverted isPrivate flag; every field the legacy schema predates takes its
// default, regardless of extraneous keys in the document.
func decodeContainerV1(data []byte, parentAccountID int16) (*Container, apperrors.Error) {
	if err := requireKeys(data, "containerId", "containerName", "status", "isPrivate"); err != nil {
		return nil, err
	}
	var doc containerDocV1In
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrMalformedDocument.Err(err)
	}
	if err := docValidator.Struct(&doc); err != nil {
		return nil, mapDocValidationError(err)
	}

	builder := NewContainerBuilder(*doc.ID, *doc.Name, ContainerStatus(*doc.Status), doc.Description, parentAccountID).
		SetCacheable(!*doc.IsPrivate)
	if doc.LastModifiedTime != nil {
		builder.SetLastModifiedTime(*doc.LastModifiedTime)
	}
	if doc.SnapshotVersion != nil {
		builder.SetSnapshotVersion(*doc.SnapshotVersion)
	}
	return builder.Build()
}

func decodeContainerV2(data []byte, parentAccountID int16) (*Container, apperrors.Error) {
	if err := requireKeys(data, "containerId", "containerName", "status"); err != nil {
		return nil, err
	}
	var doc containerDocV2In
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrMalformedDocument.Err(err)
	}
	if err := docValidator.Struct(&doc); err != nil {
		return nil, mapDocValidationError(err)
	}

	builder := NewContainerBuilder(*doc.ID, *doc.Name, ContainerStatus(*doc.Status), doc.Description, parentAccountID)
	// previouslyEncrypted first: SetEncrypted keeps the monotonic rule even
	// for documents that contradict it.
	if doc.PreviouslyEncrypted != nil {
		builder.SetPreviouslyEncrypted(*doc.PreviouslyEncrypted)
	}
	if doc.Encrypted != nil {
		builder.SetEncrypted(*doc.Encrypted)
	}
	if doc.Cacheable != nil {
		builder.SetCacheable(*doc.Cacheable)
	}
	if doc.BackupEnabled != nil {
		builder.SetBackupEnabled(*doc.BackupEnabled)
	}
	if doc.MediaScanDisabled != nil {
		builder.SetMediaScanDisabled(*doc.MediaScanDisabled)
	}
	if doc.ReplicationPolicy != nil {
		builder.SetReplicationPolicy(types.NullableStringFrom(*doc.ReplicationPolicy))
	}
	if doc.TTLRequired != nil {
		builder.SetTTLRequired(*doc.TTLRequired)
	}
	if doc.SecurePathRequired != nil {
		builder.SetSecurePathRequired(*doc.SecurePathRequired)
	}
	if doc.OverrideAccountACL != nil {
		builder.SetOverrideAccountACL(*doc.OverrideAccountACL)
	}
	if doc.NamedBlobMode != nil {
		builder.SetNamedBlobMode(NamedBlobMode(*doc.NamedBlobMode))
	}
	if doc.DeleteTriggerTime != nil {
		builder.SetDeleteTriggerTime(*doc.DeleteTriggerTime)
	}
	if doc.LastModifiedTime != nil {
		builder.SetLastModifiedTime(*doc.LastModifiedTime)
	}
	if doc.SnapshotVersion != nil {
		builder.SetSnapshotVersion(*doc.SnapshotVersion)
	}
	builder.SetContentTypeAllowListForFilenamesOnDownload(doc.ContentTypeAllowList)
	return builder.Build()
}

// EncodeAccount writes the account in the single supported account schema
// version. Nested containers are written at the codec's container version,
// whatever version their documents originally carried. With
// incrementSnapshotVersion set, the written snapshotVersion is the account's
// plus one; the account itself is not modified.
func (c Codec) EncodeAccount(a *Account, incrementSnapshotVersion bool) ([]byte, apperrors.Error) {
	if a == nil {
		return nil, ErrInvalidArgument.Msg("account must not be nil")
	}
	snapshotVersion := a.snapshotVersion
	if incrementSnapshotVersion {
		snapshotVersion++
	}
	containers := make([]jsoniter.RawMessage, 0, len(a.containersByID))
	for _, container := range a.AllContainers() {
		raw, err := c.EncodeContainer(container)
		if err != nil {
			return nil, err
		}
		containers = append(containers, raw)
	}
	doc := accountDocOut{
		Version:                 CurrentAccountJSONVersion,
		ID:                      a.id,
		Name:                    a.name,
		Status:                  string(a.status),
		SnapshotVersion:         snapshotVersion,
		LastModifiedTime:        a.lastModifiedTime,
		ACLInheritedByContainer: a.aclInheritedByContainer,
		QuotaResourceType:       string(a.quotaResourceType),
		Containers:              containers,
	}
	data, err := json.Marshal(&doc)
	if err != nil {
		return nil, ErrAccountError.MsgErr("failed to encode account document", err)
	}
	return data, nil
}

// EncodeContainer writes the container at the codec's container version. A
// version 1 document omits every field the legacy schema predates; a version
// 2 document carries all fields, omitting the allow list when empty and the
// replication policy when absent.
func (c Codec) EncodeContainer(container *Container) ([]byte, apperrors.Error) {
	if container == nil {
		return nil, ErrInvalidArgument.Msg("container must not be nil")
	}
	var doc any
	switch c.containerVersion {
	case ContainerJSONVersion1:
		doc = &containerDocV1Out{
			Version:          ContainerJSONVersion1,
			ID:               container.id,
			Name:             container.name,
			Status:           string(container.status),
			Description:      container.description,
			IsPrivate:        !container.cacheable,
			ParentAccountID:  container.parentAccountID,
			LastModifiedTime: container.lastModifiedTime,
			SnapshotVersion:  container.snapshotVersion,
		}
	case ContainerJSONVersion2:
		out := &containerDocV2Out{
			Version:              ContainerJSONVersion2,
			ID:                   container.id,
			Name:                 container.name,
			Status:               string(container.status),
			DeleteTriggerTime:    container.deleteTriggerTime,
			Description:          container.description,
			Encrypted:            container.encrypted,
			PreviouslyEncrypted:  container.previouslyEncrypted,
			Cacheable:            container.cacheable,
			BackupEnabled:        container.backupEnabled,
			MediaScanDisabled:    container.mediaScanDisabled,
			TTLRequired:          container.ttlRequired,
			SecurePathRequired:   container.securePathRequired,
			OverrideAccountACL:   container.overrideAccountACL,
			NamedBlobMode:        string(container.namedBlobMode),
			ParentAccountID:      container.parentAccountID,
			LastModifiedTime:     container.lastModifiedTime,
			SnapshotVersion:      container.snapshotVersion,
			ContentTypeAllowList: container.contentTypeAllowList,
		}
		if container.replicationPolicy.Valid {
			policy := container.replicationPolicy.Value
			out.ReplicationPolicy = &policy
		}
		doc = out
	default:
		return nil, ErrUnsupportedSchemaVersion.Msg(
			fmt.Sprintf("unsupported container schema version %d", c.containerVersion))
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, ErrAccountError.MsgErr("failed to encode container document", err)
	}
	return data, nil
}

// requireKeys checks that every named key is present and non-null in the raw
// document. Presence cannot be left to struct validation: legal values like
// id 0 or isPrivate false are indistinguishable from Go zero values there.
func requireKeys(data []byte, keys ...string) apperrors.Error {
	for _, key := range keys {
		res := gjson.GetBytes(data, key)
		if !res.Exists() || res.Type == gjson.Null {
			return ErrMalformedDocument.Msg(fmt.Sprintf("missing required field %s", key))
		}
	}
	return nil
}

// mapDocValidationError converts validator failures into the catalog's error
// kinds: a failed enum check is an invalid enum value, everything else a
// malformed document.
func mapDocValidationError(err error) apperrors.Error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ErrMalformedDocument.Err(err)
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			return ErrInvalidEnumValue.Msg(
				fmt.Sprintf("unrecognized value %v for field %s", fe.Value(), fe.Field()))
		default:
			return ErrMalformedDocument.Msg(
				fmt.Sprintf("missing required field %s", fe.Field()))
		}
	}
	return ErrMalformedDocument.Err(err)
}
