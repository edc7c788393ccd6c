package types

// Request payloads. Fields are explicitly allow-listed here; nothing else
// from a request body ever reaches storage. Pointer fields distinguish
// "absent" from zero values so validation can report missing fields.

type RegisterInput struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type LoginInput struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type PetInput struct {
	Name            string  `form:"name" json:"name"`
	Breed           string  `form:"breed" json:"breed"`
	Age             *int    `form:"age" json:"age"`
	Gender          string  `form:"gender" json:"gender"`
	MicrochipNumber *string `form:"microchip_number" json:"microchip_number"`
	Notes           *string `form:"notes" json:"notes"`
}

type HealthRecordInput struct {
	Type           string  `json:"type"`
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	Date           string  `json:"date"`
	Veterinarian   *string `json:"veterinarian"`
	MedicationName *string `json:"medication_name"`
	Notes          *string `json:"notes"`
}

type WorkoutInput struct {
	ActivityType string   `json:"activity_type"`
	Duration     *int     `json:"duration"`
	Distance     *float64 `json:"distance"`
	Date         string   `json:"date"`
	Notes        *string  `json:"notes"`
}
