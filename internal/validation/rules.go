// Package validation holds the per-entity field rules. Every rule function
// is pure: it checks the whole payload and reports all violations together,
// keyed by field name.
package validation

import (
	"fmt"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/pawtrail/backend/internal/types"
)

const (
	// MaxPhotoBytes is the photo size ceiling (2048 KB).
	MaxPhotoBytes = 2048 * 1024

	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
)

var (
	genders           = []string{"male", "female"}
	healthRecordTypes = []string{"vaccination", "vet_visit", "medication", "allergy"}
	activityTypes     = []string{"walk", "play", "training"}
	photoMIMETypes    = []string{"image/jpeg", "image/png"}
)

// Errors maps a field name to the list of violation messages for it.
type Errors map[string][]string

func (e Errors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Any reports whether at least one field failed.
func (e Errors) Any() bool { return len(e) > 0 }

func (e Errors) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e))
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

func checkOptional(errs Errors, field string, value *string, max int) {
	if value != nil && tooLong(*value, max) {
		errs.add(field, fmt.Sprintf("The %s may not be greater than %d characters.", field, max))
	}
}

func checkDate(errs Errors, value string) time.Time {
	if value == "" {
		errs.add("date", "The date field is required.")
		return time.Time{}
	}
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		errs.add("date", "The date is not a valid date.")
		return time.Time{}
	}
	return d
}

// Pet validates a pet payload (photo excluded; see Photo).
func Pet(in types.PetInput) Errors {
	errs := Errors{}

	if in.Name == "" {
		errs.add("name", "The name field is required.")
	} else if tooLong(in.Name, 255) {
		errs.add("name", "The name may not be greater than 255 characters.")
	}

	if in.Breed == "" {
		errs.add("breed", "The breed field is required.")
	} else if tooLong(in.Breed, 255) {
		errs.add("breed", "The breed may not be greater than 255 characters.")
	}

	if in.Age == nil {
		errs.add("age", "The age field is required.")
	} else if *in.Age < 0 || *in.Age > 30 {
		errs.add("age", "The age must be between 0 and 30.")
	}

	if in.Gender == "" {
		errs.add("gender", "The gender field is required.")
	} else if !contains(genders, in.Gender) {
		errs.add("gender", "The selected gender is invalid.")
	}

	checkOptional(errs, "microchip_number", in.MicrochipNumber, 255)
	checkOptional(errs, "notes", in.Notes, 1000)

	return errs
}

// Photo validates an uploaded pet photo by its byte size and sniffed MIME
// type. Callers sniff with http.DetectContentType.
func Photo(size int64, mimeType string) Errors {
	errs := Errors{}
	if !contains(photoMIMETypes, mimeType) {
		errs.add("photo", "The photo must be a JPEG or PNG image.")
	}
	if size > MaxPhotoBytes {
		errs.add("photo", "The photo may not be greater than 2048 kilobytes.")
	}
	return errs
}

// HealthRecord validates a health record payload and returns the parsed
// date when it is well-formed.
func HealthRecord(in types.HealthRecordInput) (time.Time, Errors) {
	errs := Errors{}

	if in.Type == "" {
		errs.add("type", "The type field is required.")
	} else if !contains(healthRecordTypes, in.Type) {
		errs.add("type", "The selected type is invalid.")
	}

	if in.Title == "" {
		errs.add("title", "The title field is required.")
	} else if tooLong(in.Title, 255) {
		errs.add("title", "The title may not be greater than 255 characters.")
	}

	date := checkDate(errs, in.Date)

	checkOptional(errs, "description", in.Description, 1000)
	checkOptional(errs, "veterinarian", in.Veterinarian, 255)
	// medication_name is accepted for every type; it is only meaningful
	// for medications but that is not enforced.
	checkOptional(errs, "medication_name", in.MedicationName, 255)
	checkOptional(errs, "notes", in.Notes, 1000)

	return date, errs
}

// Workout validates a workout payload and returns the parsed date.
func Workout(in types.WorkoutInput) (time.Time, Errors) {
	errs := Errors{}

	if in.ActivityType == "" {
		errs.add("activity_type", "The activity type field is required.")
	} else if !contains(activityTypes, in.ActivityType) {
		errs.add("activity_type", "The selected activity type is invalid.")
	}

	if in.Duration == nil {
		errs.add("duration", "The duration field is required.")
	} else if *in.Duration < 1 || *in.Duration > 600 {
		errs.add("duration", "The duration must be between 1 and 600.")
	}

	if in.Distance != nil && (*in.Distance < 0 || *in.Distance > 100) {
		errs.add("distance", "The distance must be between 0 and 100.")
	}

	date := checkDate(errs, in.Date)

	checkOptional(errs, "notes", in.Notes, 1000)

	return date, errs
}

// Register validates a registration payload. Email uniqueness is a store
// concern and is reported by the auth service under the same field key.
func Register(in types.RegisterInput) Errors {
	errs := Errors{}

	if in.Name == "" {
		errs.add("name", "The name field is required.")
	} else if tooLong(in.Name, 255) {
		errs.add("name", "The name may not be greater than 255 characters.")
	}

	if in.Email == "" {
		errs.add("email", "The email field is required.")
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		errs.add("email", "The email must be a valid email address.")
	} else if tooLong(in.Email, 255) {
		errs.add("email", "The email may not be greater than 255 characters.")
	}

	if in.Password == "" {
		errs.add("password", "The password field is required.")
	} else if utf8.RuneCountInString(in.Password) < 8 {
		errs.add("password", "The password must be at least 8 characters.")
	}

	return errs
}
