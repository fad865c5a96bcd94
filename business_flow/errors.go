// Package businessflow contains the core business logic and use cases for campaign workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// User-related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrAccountInactive   = errors.New("account is inactive")
	ErrIncorrectPassword = errors.New("incorrect password")

	// Campaign-related errors
	ErrCampaignNotFound         = errors.New("campaign not found")
	ErrCampaignAccessDenied     = errors.New("campaign access denied")
	ErrCampaignTitleRequired    = errors.New("campaign title is required")
	ErrCampaignContentRequired  = errors.New("campaign content is required")
	ErrCampaignChannelRequired  = errors.New("at least one channel must be selected")
	ErrCampaignNotEditable      = errors.New("campaign cannot be modified in current status")
	ErrUnknownChannel           = errors.New("unknown channel")
	ErrInvalidStatusTransition  = errors.New("invalid campaign status transition")
	ErrScheduleTimeNotPresent   = errors.New("schedule time is not present")
	ErrScheduleTimeBeyondWindow = errors.New("schedule time is beyond the allowed window")
	ErrScheduleTimeInPast       = errors.New("schedule time is in the past")

	// Recipient-related errors
	ErrNoRecipients        = errors.New("no recipients resolved for dispatch")
	ErrTargetGroupNotFound = errors.New("target group not found")
	ErrClientNotFound      = errors.New("client not found")

	// Dispatch queue errors
	ErrDispatchSessionNotFound  = errors.New("dispatch session not found")
	ErrDispatchSessionActive    = errors.New("dispatch session already active")
	ErrDispatchQueueEmpty       = errors.New("dispatch queue is empty")
	ErrDispatchSessionClosed    = errors.New("dispatch session is closed")
	ErrDispatchStoreUnavailable = errors.New("dispatch session store is unavailable")

	// Wizard errors
	ErrStepIncomplete = errors.New("current step is incomplete")
	ErrForwardJump    = errors.New("forward step jump is not allowed")
	ErrNoFurtherStep  = errors.New("already at the final step")

	// Media-related errors
	ErrMediaNotFound        = errors.New("media asset not found")
	ErrMediaTooLarge        = errors.New("media file exceeds the size limit")
	ErrMediaTypeUnsupported = errors.New("media file type is not supported")
	ErrMediaEmpty           = errors.New("media file is empty")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsCampaignNotFound(err error) bool {
	return errors.Is(err, ErrCampaignNotFound)
}

func IsCampaignAccessDenied(err error) bool {
	return errors.Is(err, ErrCampaignAccessDenied)
}

func IsCampaignNotEditable(err error) bool {
	return errors.Is(err, ErrCampaignNotEditable)
}

func IsCampaignValidation(err error) bool {
	return errors.Is(err, ErrCampaignTitleRequired) ||
		errors.Is(err, ErrCampaignContentRequired) ||
		errors.Is(err, ErrCampaignChannelRequired) ||
		errors.Is(err, ErrUnknownChannel)
}

func IsScheduleTimeInvalid(err error) bool {
	return errors.Is(err, ErrScheduleTimeNotPresent) ||
		errors.Is(err, ErrScheduleTimeBeyondWindow) ||
		errors.Is(err, ErrScheduleTimeInPast)
}

func IsNoRecipients(err error) bool {
	return errors.Is(err, ErrNoRecipients)
}

func IsTargetGroupNotFound(err error) bool {
	return errors.Is(err, ErrTargetGroupNotFound)
}

func IsClientNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound)
}

func IsDispatchSessionNotFound(err error) bool {
	return errors.Is(err, ErrDispatchSessionNotFound)
}

func IsDispatchStoreUnavailable(err error) bool {
	return errors.Is(err, ErrDispatchStoreUnavailable)
}

func IsDispatchSessionActive(err error) bool {
	return errors.Is(err, ErrDispatchSessionActive)
}

func IsMediaNotFound(err error) bool {
	return errors.Is(err, ErrMediaNotFound)
}

func IsMediaRejected(err error) bool {
	return errors.Is(err, ErrMediaTooLarge) ||
		errors.Is(err, ErrMediaTypeUnsupported) ||
		errors.Is(err, ErrMediaEmpty)
}
