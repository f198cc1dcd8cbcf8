package constants

const (
	ERROR_SOMETHING_WRONG      = "Something went wrong."
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_INPUT                = "Invalid input"
	ERROR_PARSE_DATA_TO_LOCALS = "Could not read request data"
	ERROR_CREATE               = "Could not create record"
	ERROR_EDIT                 = "Could not update record"
	ERROR_DELETE               = "Could not delete record"
	DATA_INPUT_IS_NOT_NUMBER   = "Id must be a number"
	NOT_FOUND_RECORDS          = "Record not found"
	VALIDATION_FAILED          = "Validation failed"

	MISSING_LOGIN_INPUT   = "Username and password are required"
	INVALID_USERNAME      = "Username does not exist"
	INVALID_EMAIL         = "Email does not exist"
	INVALID_PASSWORD      = "Incorrect password"
	ACCOUNT_NOT_ACTIVE    = "Account is disabled"
	CAN_NOT_HASH_PASSWORD = "Could not hash password"
	PASSWORD_NOT_MATCH    = "Passwords do not match"
	NOT_PERMISSION        = "You do not have permission"
	NOT_ADMIN             = "Only administrators are allowed"
	USERNAME_EXISTS       = "Username already exists"
	EMAIL_EXISTS          = "Email already exists"
	PHONE_EXISTS          = "Phone number already exists"
	NAME_EXISTS           = "Name already exists"
	RECORD_IN_USE         = "Record is referenced and cannot be deleted"

	INVALID_STATUS_TRANSITION = "Status change is not allowed"
	CATALOG_SYNC_FAILED       = "Catalog sync failed"
	CATALOG_NOT_CONFIGURED    = "WhatsApp catalog is not configured"
	PDF_RENDER_FAILED         = "Could not generate PDF"
	EMAIL_SEND_FAILED         = "Could not send email"
	UPLOAD_FAILED             = "Upload failed"
)
