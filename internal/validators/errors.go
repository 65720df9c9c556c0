package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyName            = errors.New("name is required")
	ErrInvalidEmail         = errors.New("email must be a valid address")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters long")
	ErrEmptyMessage         = errors.New("message is required")
	ErrAttachmentTooLarge   = errors.New("image exceeds the size limit")
	ErrUnsupportedImageType = errors.New("only image files are accepted")
	ErrEmptyAttachment      = errors.New("image is empty")
	ErrMissingScore         = errors.New("score is required")
	ErrInvalidScore         = errors.New("score must be a finite number")
)
