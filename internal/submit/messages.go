package submit

import "fmt"

// User-facing notification messages for the submission and verification
// flows.
const (
	MsgEnterEmail             = "Please enter your email"
	MsgIncorrectOTP           = "Incorrect OTP"
	MsgServerError            = "Server error. Please try again."
	MsgConflictEmail          = "Conflict: Email already exists!"
	MsgPhotoUploadConflict    = "Conflict during photo upload!"
	MsgPhotoUploadServerError = "Photo upload server error."
	MsgPhotoUploadFailed      = "Photo upload failed."
	MsgSomethingWentWrong     = "Something went wrong"
	MsgFailedParseJSON        = "Failed to parse server response"
	MsgNoPhotoToUpload        = "No photo to upload"
)

// MsgProfileCreated is the success notification for a created profile.
func MsgProfileCreated(firstName, surName string) string {
	return fmt.Sprintf("Profile created successfully for %s %s!", firstName, surName)
}
